package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/response"
	"github.com/ramah83/ST-System-Bank/pkg/validation"
)

// DashboardHandler is the internal test-results dashboard API. Runs are
// asynchronous: submit returns immediately and clients poll the run until
// its status settles.
type DashboardHandler struct {
	Dashboard *application.DashboardService
	Logger    *logrus.Logger
}

func NewDashboardHandler(dashboard *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Logger: logger}
}

type submitRunRequest struct {
	Name string `json:"name" binding:"required,min=3,max=120"`
}

func (h *DashboardHandler) SubmitRun(c *gin.Context) {
	var req submitRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	run, err := h.Dashboard.SubmitRun(c.Request.Context(), httpctx.Actor(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, viewRun(run), "run queued", nil)
}

func (h *DashboardHandler) GetRun(c *gin.Context) {
	run, cases, err := h.Dashboard.GetRun(c.Request.Context(), httpctx.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"run":   viewRun(run),
		"cases": viewCases(cases),
	}, "run", nil)
}

func (h *DashboardHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.Dashboard.ListRuns(c.Request.Context(), httpctx.Actor(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]runView, 0, len(runs))
	for _, r := range runs {
		out = append(out, viewRun(r))
	}
	response.Success(c, http.StatusOK, out, "runs", gin.H{"count": len(out)})
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context(), httpctx.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "dashboard stats", nil)
}
