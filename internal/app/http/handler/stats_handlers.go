package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ministryservice/internal/app/dto"
)

func (h *Handler) dateParam(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		h.badRequest(c, name+" must be YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func (h *Handler) StatsAttendance(c *gin.Context) {
	scope := strings.ToLower(c.DefaultQuery("scope", "all"))

	var tenantID *string
	if v := c.Query("tenant_id"); v != "" {
		tenantID = &v
	}
	var ministryName *string
	if v := c.Query("ministry"); v != "" {
		ministryName = &v
	}

	from, ok := h.dateParam(c, "from")
	if !ok {
		return
	}
	to, ok := h.dateParam(c, "to")
	if !ok {
		return
	}

	type (
		MemberStatDTO = dto.MemberAttendanceStat
		DateStatDTO   = dto.DateAttendanceStat
	)

	resp := dto.StatsResponse{}
	ctx := c.Request.Context()

	fillMembers := func() bool {
		memberStats, err := h.StatsSvc.GetMemberStats(ctx, tenantID, ministryName, from, to)
		if err != nil {
			h.writeError(c, err)
			return false
		}

		resp.PerMember = make([]MemberStatDTO, 0, len(memberStats))
		for _, s := range memberStats {
			resp.PerMember = append(resp.PerMember, MemberStatDTO{
				TenantID: s.TenantID,
				MemberID: s.MemberID,
				Total:    s.Total,
				Present:  s.Present,
				Absent:   s.Absent,
			})
		}
		return true
	}

	fillDates := func() bool {
		dateStats, err := h.StatsSvc.GetDateStats(ctx, tenantID, ministryName, from, to)
		if err != nil {
			h.writeError(c, err)
			return false
		}

		resp.PerDate = make([]DateStatDTO, 0, len(dateStats))
		for _, s := range dateStats {
			resp.PerDate = append(resp.PerDate, DateStatDTO{
				Date:    s.Date.Format(dateLayout),
				Total:   s.Total,
				Present: s.Present,
				Absent:  s.Absent,
			})
		}
		return true
	}

	switch scope {
	case "all", "":
		if !fillMembers() || !fillDates() {
			return
		}
	case "members":
		if !fillMembers() {
			return
		}
	case "dates":
		if !fillDates() {
			return
		}
	default:
		h.badRequest(c, "invalid scope, must be one of: all, members, dates")
		return
	}

	c.JSON(http.StatusOK, resp)
}
