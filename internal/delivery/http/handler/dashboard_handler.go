package handler

import (
	"net/http"

	"github.com/Augusto140/Englife-server/internal/usecase/dashboard"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Index)
	router.GET("/dashboard", h.Dashboard)
	router.GET("/api/estatisticas", h.LiveStats)
}

func (h *DashboardHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		renderLoadError(c, "dashboard", err)
		return
	}

	render(c, http.StatusOK, "dashboard", "Dashboard", gin.H{"Overview": overview})
}

// LiveStats is polled by the dashboard page.
func (h *DashboardHandler) LiveStats(c *gin.Context) {
	stats, err := h.service.LiveStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		utils.AbortWithError(c, http.StatusInternalServerError, appErrors.MessageOf(err))
		return
	}

	c.JSON(http.StatusOK, stats)
}
