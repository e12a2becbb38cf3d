package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ministryservice/internal/app/dto"
	"ministryservice/internal/domain/attendance"
)

const dateLayout = "2006-01-02"

func attendanceDTO(r attendance.Record) dto.AttendanceRecord {
	return dto.AttendanceRecord{
		RecordID: r.ID,
		TenantID: r.TenantID,
		MemberID: r.MemberID,
		Date:     r.Date.Format(dateLayout),
		Status:   string(r.Status),
	}
}

func (h *Handler) AttendanceRecord(c *gin.Context) {
	var body struct {
		TenantID string `json:"tenant_id"`
		RecordID string `json:"record_id"`
		MemberID string `json:"member_id"`
		Date     string `json:"date"`
		Status   string `json:"status"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.TenantID == "" || body.MemberID == "" || body.Date == "" || body.Status == "" {
		h.badRequest(c, "tenant_id, member_id, date, status are required")
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		h.badRequest(c, "date must be YYYY-MM-DD")
		return
	}

	r, err := h.AttendanceSvc.RecordAttendance(c.Request.Context(), attendance.Record{
		ID:       body.RecordID,
		TenantID: body.TenantID,
		MemberID: body.MemberID,
		Date:     date,
		Status:   attendance.Status(body.Status),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Record dto.AttendanceRecord `json:"record"`
	}{
		Record: attendanceDTO(r),
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) AttendanceList(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		h.badRequest(c, "tenant_id is required")
		return
	}

	records, err := h.AttendanceSvc.ListAttendance(c.Request.Context(), tenantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.AttendanceRecord, 0, len(records))
	for _, r := range records {
		out = append(out, attendanceDTO(r))
	}

	resp := struct {
		Records []dto.AttendanceRecord `json:"records"`
	}{
		Records: out,
	}

	c.JSON(http.StatusOK, resp)
}
