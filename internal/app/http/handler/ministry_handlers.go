package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ministryservice/internal/app/dto"
	"ministryservice/internal/domain"
	"ministryservice/internal/domain/ministry"
)

func aggregateDTO(a ministry.Aggregate) dto.Aggregate {
	out := dto.Aggregate{
		Ministry:          a.Ministry,
		Members:           make([]dto.Member, 0, len(a.Members)),
		Bacentas:          make([]dto.Bacenta, 0, len(a.Bacentas)),
		AttendanceRecords: make([]dto.AttendanceRecord, 0, len(a.AttendanceRecords)),
		NewBelievers:      make([]dto.NewBeliever, 0, len(a.NewBelievers)),
		Confirmations:     make([]dto.Confirmation, 0, len(a.Confirmations)),
		Guests:            make([]dto.Guest, 0, len(a.Guests)),
		SourceTenants:     append(make([]string, 0, len(a.SourceTenants)), a.SourceTenants...),
	}

	for _, m := range a.Members {
		out.Members = append(out.Members, memberDTO(m))
	}
	for _, b := range a.Bacentas {
		out.Bacentas = append(out.Bacentas, dto.Bacenta{
			BacentaID: b.ID,
			TenantID:  b.TenantID,
			Name:      b.Name,
			LeaderID:  b.LeaderID,
		})
	}
	for _, r := range a.AttendanceRecords {
		out.AttendanceRecords = append(out.AttendanceRecords, attendanceDTO(r))
	}
	for _, nb := range a.NewBelievers {
		out.NewBelievers = append(out.NewBelievers, dto.NewBeliever{
			BelieverID: nb.ID,
			TenantID:   nb.TenantID,
			FirstName:  nb.FirstName,
			LastName:   nb.LastName,
			DateJoined: nb.DateJoined.Format(dateLayout),
		})
	}
	for _, cf := range a.Confirmations {
		out.Confirmations = append(out.Confirmations, dto.Confirmation{
			ConfirmationID: cf.ID,
			TenantID:       cf.TenantID,
			MemberID:       cf.MemberID,
			Date:           cf.Date.Format(dateLayout),
		})
	}
	for _, g := range a.Guests {
		out.Guests = append(out.Guests, dto.Guest{
			GuestID:   g.ID,
			TenantID:  g.TenantID,
			FirstName: g.FirstName,
			LastName:  g.LastName,
			InvitedBy: g.InvitedBy,
		})
	}

	return out
}

func streamParams(c *gin.Context) (ministry.StartParams, bool) {
	p := ministry.StartParams{
		Ministry:      c.Query("ministry"),
		HomeTenant:    c.Query("home_tenant"),
		CurrentTenant: c.Query("current_tenant"),
	}
	return p, p.Ministry != ""
}

func (h *Handler) MinistryAggregate(c *gin.Context) {
	p, ok := streamParams(c)
	if !ok {
		h.badRequest(c, "ministry is required")
		return
	}

	agg, err := h.MinistrySvc.Snapshot(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Aggregate dto.Aggregate `json:"aggregate"`
	}{
		Aggregate: aggregateDTO(agg),
	}

	c.JSON(http.StatusOK, resp)
}

// MinistryStream opens a live session and streams every merged aggregate to
// the client as server-sent events. The first frame carries the session ID so
// the client can call the optimistic endpoints; the session stops when the
// client disconnects.
func (h *Handler) MinistryStream(c *gin.Context) {
	p, ok := streamParams(c)
	if !ok {
		h.badRequest(c, "ministry is required")
		return
	}

	// One-slot mailbox: the session loop must never block on a slow
	// client, and only the newest aggregate matters.
	updates := make(chan ministry.Aggregate, 1)
	push := func(a ministry.Aggregate) {
		select {
		case updates <- a:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- a
		}
	}

	sess, err := h.MinistrySvc.StartSession(c.Request.Context(), p, push)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.registerSession(sess)
	defer func() {
		h.unregisterSession(sess.ID())
		sess.Stop()
	}()

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Writer.Flush()

	writeEvent := func(event string, data any) bool {
		payload, err := json.Marshal(data)
		if err != nil {
			h.Log.Warn("marshal stream event", zap.Error(err))
			return true
		}
		if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, payload); err != nil {
			return false
		}
		c.Writer.Flush()
		return true
	}

	opened := struct {
		SessionID string `json:"session_id"`
		Ministry  string `json:"ministry"`
	}{
		SessionID: sess.ID(),
		Ministry:  p.Ministry,
	}
	if !writeEvent("session", opened) {
		return
	}

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		case a := <-updates:
			if !writeEvent("aggregate", aggregateDTO(a)) {
				return
			}
		}
	}
}

func (h *Handler) MinistryMarkOptimistic(c *gin.Context) {
	h.optimistic(c, func(s *ministry.Session, recordID string) {
		s.MarkOptimistic(recordID)
	})
}

func (h *Handler) MinistryClearOptimistic(c *gin.Context) {
	h.optimistic(c, func(s *ministry.Session, recordID string) {
		s.ClearOptimistic(recordID)
	})
}

func (h *Handler) optimistic(c *gin.Context, apply func(*ministry.Session, string)) {
	var body struct {
		SessionID string `json:"session_id"`
		RecordID  string `json:"record_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.SessionID == "" || body.RecordID == "" {
		h.badRequest(c, "session_id, record_id are required")
		return
	}

	sess, ok := h.sessionByID(body.SessionID)
	if !ok {
		h.writeError(c, &domain.DomainError{
			Code:       domain.ErrorCodeSessionNotFound,
			Message:    "session not found",
			HTTPStatus: http.StatusNotFound,
		})
		return
	}

	apply(sess, body.RecordID)
	c.Status(http.StatusNoContent)
}
