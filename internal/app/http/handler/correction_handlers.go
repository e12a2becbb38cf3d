package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ministryservice/internal/app/dto"
	"ministryservice/internal/domain/correction"
)

func (h *Handler) OverrideSave(c *gin.Context) {
	var body struct {
		Ministry string  `json:"ministry"`
		TenantID string  `json:"tenant_id"`
		MemberID string  `json:"member_id"`
		Frozen   *bool   `json:"frozen"`
		Role     *string `json:"role"`
		Position *string `json:"position"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Ministry == "" || body.TenantID == "" || body.MemberID == "" {
		h.badRequest(c, "ministry, tenant_id, member_id are required")
		return
	}

	o, err := h.CorrectionSvc.SaveOverride(c.Request.Context(), correction.Override{
		Ministry: body.Ministry,
		TenantID: body.TenantID,
		MemberID: body.MemberID,
		Frozen:   body.Frozen,
		Role:     body.Role,
		Position: body.Position,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Override dto.Override `json:"override"`
	}{
		Override: dto.Override{
			Ministry:  o.Ministry,
			TenantID:  o.TenantID,
			MemberID:  o.MemberID,
			Frozen:    o.Frozen,
			Role:      o.Role,
			Position:  o.Position,
			UpdatedAt: o.UpdatedAt,
		},
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) OverrideDelete(c *gin.Context) {
	var body struct {
		Ministry string `json:"ministry"`
		TenantID string `json:"tenant_id"`
		MemberID string `json:"member_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Ministry == "" || body.TenantID == "" || body.MemberID == "" {
		h.badRequest(c, "ministry, tenant_id, member_id are required")
		return
	}

	if err := h.CorrectionSvc.DeleteOverride(c.Request.Context(), body.Ministry, body.TenantID, body.MemberID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ExclusionSave(c *gin.Context) {
	var body struct {
		Ministry string `json:"ministry"`
		TenantID string `json:"tenant_id"`
		MemberID string `json:"member_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Ministry == "" || body.TenantID == "" || body.MemberID == "" {
		h.badRequest(c, "ministry, tenant_id, member_id are required")
		return
	}

	e, err := h.CorrectionSvc.SaveExclusion(c.Request.Context(), correction.Exclusion{
		Ministry: body.Ministry,
		TenantID: body.TenantID,
		MemberID: body.MemberID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Exclusion dto.Exclusion `json:"exclusion"`
	}{
		Exclusion: dto.Exclusion{
			Ministry:  e.Ministry,
			TenantID:  e.TenantID,
			MemberID:  e.MemberID,
			CreatedAt: e.CreatedAt,
		},
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ExclusionDelete(c *gin.Context) {
	var body struct {
		Ministry string `json:"ministry"`
		TenantID string `json:"tenant_id"`
		MemberID string `json:"member_id"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Ministry == "" || body.TenantID == "" || body.MemberID == "" {
		h.badRequest(c, "ministry, tenant_id, member_id are required")
		return
	}

	if err := h.CorrectionSvc.DeleteExclusion(c.Request.Context(), body.Ministry, body.TenantID, body.MemberID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
