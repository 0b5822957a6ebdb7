package handler

import (
	"net/http"

	"github.com/Augusto140/Englife-server/internal/usecase/device"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dispositivos", h.ListDevices)
	router.GET("/alimentadores", h.ListFeeders)
	router.GET("/dataloggers", h.ListDataloggers)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.service.ListDevices(c.Request.Context())
	if err != nil {
		renderLoadError(c, "dispositivos", err)
		return
	}

	render(c, http.StatusOK, "dispositivos", "Dispositivos", gin.H{"Devices": devices})
}

func (h *DeviceHandler) ListFeeders(c *gin.Context) {
	feeders, err := h.service.ListFeeders(c.Request.Context())
	if err != nil {
		renderLoadError(c, "alimentadores", err)
		return
	}

	render(c, http.StatusOK, "alimentadores", "Alimentadores", gin.H{"Feeders": feeders})
}

func (h *DeviceHandler) ListDataloggers(c *gin.Context) {
	dataloggers, err := h.service.ListDataloggers(c.Request.Context())
	if err != nil {
		renderLoadError(c, "dataloggers", err)
		return
	}

	render(c, http.StatusOK, "dataloggers", "Dataloggers", gin.H{"Dataloggers": dataloggers})
}
