package routes

import (
	"net/http"
	"time"

	"glowslots/handlers"
	"glowslots/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSlotRoutes registers the slot search endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.POST("/single", hb.SingleStaffSlotsHandler)
		api.POST("/any", hb.AnyStaffSlotsHandler)
		api.POST("/team", hb.TeamSlotsHandler)
	}
}

// RegisterTravelRoutes registers travel estimation endpoints.
func RegisterTravelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/travel")
	{
		api.POST("/estimate", hb.EstimateTravelHandler)
		api.POST("/batch", hb.EstimateTravelBatchHandler)
	}
}

func RegisterConflictRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/conflicts/check", hb.CheckConflictHandler)
}

// RegisterHealthRoute reports the last snapshot taken by the health monitor. Redis
// is optional, so only Mongo decides the overall status.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		h := utils.GetHealthStatus()
		status := "ok"
		if !h.Mongo {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "mongo": h.Mongo, "redis": h.Redis, "checkedAt": h.CheckedAt})
	})
}

// RegisterMetricsRoute exposes the given registry in the Prometheus text format.
func RegisterMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		return
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterSlotRoutes(r, hb)
	RegisterTravelRoutes(r, hb)
	RegisterConflictRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, gatherer)
}
