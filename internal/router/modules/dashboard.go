package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ramah83/ST-System-Bank/internal/container"
	handlers "github.com/ramah83/ST-System-Bank/internal/interface/http"
	"github.com/ramah83/ST-System-Bank/internal/interface/middleware"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// DashboardModule wires the internal test-results dashboard under
// /api/dashboard. Staff only; runs execute asynchronously on the worker.

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard")
	dash.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RequireStaff(),
	)
	submitLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil)
	// polling endpoints get a wide budget
	pollLimiter := middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP())
	{
		dash.POST("/runs", submitLimiter, m.Handler.SubmitRun)
		dash.GET("/runs", pollLimiter, m.Handler.ListRuns)
		dash.GET("/runs/:id", pollLimiter, m.Handler.GetRun)
		dash.GET("/stats", pollLimiter, m.Handler.Stats)
	}
}
