package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ministryservice/internal/app/dto"
	"ministryservice/internal/domain/member"
)

func memberDTO(m member.Member) dto.Member {
	return dto.Member{
		MemberID:             m.ID,
		TenantID:             m.TenantID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		Ministry:             m.Ministry,
		BacentaID:            m.BacentaID,
		Role:                 m.Role,
		Position:             m.Position,
		Frozen:               m.Frozen,
		IsActive:             m.IsActive,
		NativeMinistryMember: m.NativeMinistryMember,
	}
}

func (h *Handler) MemberUpsert(c *gin.Context) {
	var body struct {
		TenantID             string `json:"tenant_id"`
		MemberID             string `json:"member_id"`
		FirstName            string `json:"first_name"`
		LastName             string `json:"last_name"`
		Ministry             string `json:"ministry"`
		BacentaID            string `json:"bacenta_id"`
		Role                 string `json:"role"`
		Position             string `json:"position"`
		Frozen               bool   `json:"frozen"`
		IsActive             *bool  `json:"is_active"`
		NativeMinistryMember bool   `json:"native_ministry_member"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.TenantID == "" || body.FirstName == "" || body.LastName == "" {
		h.badRequest(c, "tenant_id, first_name, last_name are required")
		return
	}

	// Omitting is_active means the member stays active.
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	m, err := h.MemberSvc.UpsertMember(c.Request.Context(), member.Member{
		ID:                   body.MemberID,
		TenantID:             body.TenantID,
		FirstName:            body.FirstName,
		LastName:             body.LastName,
		Ministry:             body.Ministry,
		BacentaID:            body.BacentaID,
		Role:                 body.Role,
		Position:             body.Position,
		Frozen:               body.Frozen,
		IsActive:             active,
		NativeMinistryMember: body.NativeMinistryMember,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Member dto.Member `json:"member"`
	}{
		Member: memberDTO(m),
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) MemberList(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		h.badRequest(c, "tenant_id is required")
		return
	}

	members, err := h.MemberSvc.ListMembers(c.Request.Context(), tenantID, c.Query("ministry"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.Member, 0, len(members))
	for _, m := range members {
		out = append(out, memberDTO(m))
	}

	resp := struct {
		Members []dto.Member `json:"members"`
	}{
		Members: out,
	}

	c.JSON(http.StatusOK, resp)
}
