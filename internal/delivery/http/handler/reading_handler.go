package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Augusto140/Englife-server/internal/usecase/reading"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReadingHandler struct {
	service *reading.Service
}

func NewReadingHandler(service *reading.Service) *ReadingHandler {
	return &ReadingHandler{service: service}
}

func (h *ReadingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leituras", h.Readings)
	router.GET("/leituras/exportar", h.Export)
	router.GET("/graficos", h.Charts)
}

func (h *ReadingHandler) Readings(c *gin.Context) {
	var req reading.ReadingsRequest
	// All fields are optional strings; binding cannot fail on their content.
	_ = c.ShouldBindQuery(&req)

	result, err := h.service.GetReadings(c.Request.Context(), &req)
	if err != nil {
		renderLoadError(c, "leituras", err)
		return
	}

	render(c, http.StatusOK, "leituras", "Leituras", gin.H{"Result": result})
}

func (h *ReadingHandler) Export(c *gin.Context) {
	var req reading.ReadingsRequest
	_ = c.ShouldBindQuery(&req)

	data, err := h.service.ExportReadings(c.Request.Context(), &req)
	if err != nil {
		renderLoadError(c, "leituras", err)
		return
	}

	filename := fmt.Sprintf("leituras_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ReadingHandler) Charts(c *gin.Context) {
	data, err := h.service.GetChartData(c.Request.Context())
	if err != nil {
		renderLoadError(c, "gráficos", err)
		return
	}

	graphs, err := data.Figures()
	if err != nil {
		renderLoadError(c, "gráficos", err)
		return
	}

	render(c, http.StatusOK, "graficos", "Gráficos", gin.H{"Graphs": graphs})
}
