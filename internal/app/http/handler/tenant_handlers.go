package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ministryservice/internal/app/dto"
)

func (h *Handler) TenantAdd(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Name == "" {
		h.badRequest(c, "name is required")
		return
	}

	t, err := h.TenantSvc.AddTenant(c.Request.Context(), body.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Tenant dto.Tenant `json:"tenant"`
	}{
		Tenant: dto.Tenant{
			TenantID:  t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		},
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) TenantList(c *gin.Context) {
	tenants, err := h.TenantSvc.ListTenants(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.Tenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, dto.Tenant{
			TenantID:  t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		})
	}

	resp := struct {
		Tenants []dto.Tenant `json:"tenants"`
	}{
		Tenants: out,
	}

	c.JSON(http.StatusOK, resp)
}
