package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/ministry"
	"ministryservice/internal/domain/stats"
	"ministryservice/internal/domain/tenant"
)

type Handler struct {
	TenantSvc     tenant.Service
	MemberSvc     member.Service
	AttendanceSvc attendance.Service
	CorrectionSvc correction.Service
	MinistrySvc   ministry.Service
	StatsSvc      stats.Service
	Log           *zap.Logger

	// Live sessions opened by stream handlers, keyed by session ID so the
	// optimistic-mark endpoints can reach them.
	mu       sync.Mutex
	sessions map[string]*ministry.Session
}

func New(
	tenantSvc tenant.Service,
	memberSvc member.Service,
	attendanceSvc attendance.Service,
	correctionSvc correction.Service,
	ministrySvc ministry.Service,
	statsSvc stats.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		TenantSvc:     tenantSvc,
		MemberSvc:     memberSvc,
		AttendanceSvc: attendanceSvc,
		CorrectionSvc: correctionSvc,
		MinistrySvc:   ministrySvc,
		StatsSvc:      statsSvc,
		Log:           log,
		sessions:      make(map[string]*ministry.Session),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) registerSession(s *ministry.Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()
}

func (h *Handler) unregisterSession(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *Handler) sessionByID(id string) (*ministry.Session, bool) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	return s, ok
}

// CloseSessions stops every live session. Called on shutdown.
func (h *Handler) CloseSessions() {
	h.mu.Lock()
	open := make([]*ministry.Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		open = append(open, s)
	}
	h.sessions = make(map[string]*ministry.Session)
	h.mu.Unlock()

	for _, s := range open {
		s.Stop()
	}
}
