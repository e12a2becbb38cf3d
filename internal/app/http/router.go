package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ministryservice/internal/app/http/handler"
	"ministryservice/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/tenants/add", h.TenantAdd)
	r.GET("/tenants/list", h.TenantList)

	r.POST("/members/upsert", h.MemberUpsert)
	r.GET("/members/list", h.MemberList)

	r.POST("/attendance/record", h.AttendanceRecord)
	r.GET("/attendance/list", h.AttendanceList)

	r.GET("/ministry/aggregate", h.MinistryAggregate)
	r.GET("/ministry/stream", h.MinistryStream)
	r.POST("/ministry/markOptimistic", h.MinistryMarkOptimistic)
	r.POST("/ministry/clearOptimistic", h.MinistryClearOptimistic)

	r.POST("/overrides/save", h.OverrideSave)
	r.POST("/overrides/delete", h.OverrideDelete)
	r.POST("/exclusions/save", h.ExclusionSave)
	r.POST("/exclusions/delete", h.ExclusionDelete)

	r.GET("/stats/attendance", h.StatsAttendance)

	return r
}
