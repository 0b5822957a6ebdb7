package handler

import (
	"net/http"

	"github.com/Augusto140/Englife-server/internal/logger"
	"github.com/Augusto140/Englife-server/internal/middleware"
	"github.com/Augusto140/Englife-server/internal/usecase/device"
	"github.com/Augusto140/Englife-server/internal/usecase/registration"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	registrationIndex = "/cadastros"

	locationFormPath     = "/cadastros/localizacoes"
	deviceFormPath       = "/cadastros/dispositivos"
	sensorFormPath       = "/cadastros/sensores"
	feederConfigFormPath = "/cadastros/config-alimentador"
	limitFormPath        = "/cadastros/limites-temperatura"
)

type RegistrationHandler struct {
	service *registration.Service
	devices *device.Service
}

func NewRegistrationHandler(service *registration.Service, devices *device.Service) *RegistrationHandler {
	return &RegistrationHandler{service: service, devices: devices}
}

func (h *RegistrationHandler) RegisterRoutes(router *gin.RouterGroup) {
	cadastros := router.Group(registrationIndex)
	{
		cadastros.GET("", h.Index)
		cadastros.GET("/lista", h.List)

		cadastros.GET("/localizacoes", h.LocationForm)
		cadastros.POST("/localizacoes/salvar", h.SaveLocation)

		cadastros.GET("/dispositivos", h.DeviceForm)
		cadastros.POST("/dispositivos/salvar", h.SaveDevice)

		cadastros.GET("/sensores", h.SensorForm)
		cadastros.POST("/sensores/salvar", h.SaveSensor)

		cadastros.GET("/config-alimentador", h.FeederConfigForm)
		cadastros.POST("/config-alimentador/salvar", h.SaveFeederConfig)

		cadastros.GET("/limites-temperatura", h.LimitForm)
		cadastros.POST("/limites-temperatura/salvar", h.SaveLimit)
	}
}

func (h *RegistrationHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "cadastros", "Cadastros", nil)
}

func (h *RegistrationHandler) List(c *gin.Context) {
	all, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		renderLoadError(c, "lista", err)
		return
	}

	render(c, http.StatusOK, "lista", "Cadastros", gin.H{"All": all})
}

func (h *RegistrationHandler) LocationForm(c *gin.Context) {
	render(c, http.StatusOK, "form_localizacao", "Nova localização", nil)
}

func (h *RegistrationHandler) SaveLocation(c *gin.Context) {
	var req registration.CreateLocationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.saveFailed(c, locationFormPath, "Erro ao cadastrar localização: ", appErrors.Validation(utils.ValidationMessage(err), err))
		return
	}

	if _, err := h.service.CreateLocation(c.Request.Context(), &req); err != nil {
		h.saveFailed(c, locationFormPath, "Erro ao cadastrar localização: ", err)
		return
	}

	redirectWithNotice(c, registrationIndex, NoticeSuccess, "Localização cadastrada com sucesso!")
}

func (h *RegistrationHandler) DeviceForm(c *gin.Context) {
	locations, err := h.service.LocationOptions(c.Request.Context())
	if err != nil {
		h.formUnavailable(c, err)
		return
	}

	render(c, http.StatusOK, "form_dispositivo", "Novo dispositivo", gin.H{"Locations": locations})
}

func (h *RegistrationHandler) SaveDevice(c *gin.Context) {
	var req device.CreateDeviceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.saveFailed(c, deviceFormPath, "Erro ao cadastrar dispositivo: ", appErrors.Validation(utils.ValidationMessage(err), err))
		return
	}

	if _, err := h.devices.CreateDevice(c.Request.Context(), &req); err != nil {
		h.saveFailed(c, deviceFormPath, "Erro ao cadastrar dispositivo: ", err)
		return
	}

	redirectWithNotice(c, registrationIndex, NoticeSuccess, "Dispositivo cadastrado com sucesso!")
}

func (h *RegistrationHandler) SensorForm(c *gin.Context) {
	dataloggers, err := h.devices.DataloggerOptions(c.Request.Context())
	if err != nil {
		h.formUnavailable(c, err)
		return
	}

	render(c, http.StatusOK, "form_sensor", "Novo sensor", gin.H{"Dataloggers": dataloggers})
}

func (h *RegistrationHandler) SaveSensor(c *gin.Context) {
	var req registration.CreateSensorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.saveFailed(c, sensorFormPath, "Erro ao cadastrar sensor: ", appErrors.Validation(utils.ValidationMessage(err), err))
		return
	}

	if _, err := h.service.CreateSensor(c.Request.Context(), &req); err != nil {
		h.saveFailed(c, sensorFormPath, "Erro ao cadastrar sensor: ", err)
		return
	}

	redirectWithNotice(c, registrationIndex, NoticeSuccess, "Sensor cadastrado com sucesso!")
}

func (h *RegistrationHandler) FeederConfigForm(c *gin.Context) {
	feeders, err := h.devices.FeederOptions(c.Request.Context())
	if err != nil {
		h.formUnavailable(c, err)
		return
	}

	render(c, http.StatusOK, "form_config_alimentador", "Configuração de alimentador", gin.H{"Feeders": feeders})
}

func (h *RegistrationHandler) SaveFeederConfig(c *gin.Context) {
	var req registration.FeederConfigRequest
	if err := c.ShouldBind(&req); err != nil {
		h.saveFailed(c, feederConfigFormPath, "Erro ao salvar configuração: ", appErrors.Validation(utils.ValidationMessage(err), err))
		return
	}
	// An unchecked checkbox is not submitted at all.
	_, req.Active = c.GetPostForm("ativa")

	if _, err := h.service.UpsertFeederConfig(c.Request.Context(), &req); err != nil {
		h.saveFailed(c, feederConfigFormPath, "Erro ao salvar configuração: ", err)
		return
	}

	redirectWithNotice(c, registrationIndex, NoticeSuccess, "Configuração do alimentador salva com sucesso!")
}

func (h *RegistrationHandler) LimitForm(c *gin.Context) {
	locations, err := h.service.LocationOptions(c.Request.Context())
	if err != nil {
		h.formUnavailable(c, err)
		return
	}

	render(c, http.StatusOK, "form_limites", "Limites de temperatura", gin.H{"Locations": locations})
}

func (h *RegistrationHandler) SaveLimit(c *gin.Context) {
	var req registration.TemperatureLimitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.saveFailed(c, limitFormPath, "Erro ao salvar limites: ", appErrors.Validation(utils.ValidationMessage(err), err))
		return
	}

	if _, err := h.service.UpsertTemperatureLimit(c.Request.Context(), &req); err != nil {
		h.saveFailed(c, limitFormPath, "Erro ao salvar limites: ", err)
		return
	}

	redirectWithNotice(c, registrationIndex, NoticeSuccess, "Limites de temperatura salvos com sucesso!")
}

// saveFailed sends the operator back to the form with the reason.
func (h *RegistrationHandler) saveFailed(c *gin.Context, form, prefix string, err error) {
	log := logger.WithRequestID(middleware.GetRequestID(c))
	if appErrors.IsValidation(err) {
		log.Warn("Registration rejected", zap.String("form", form), zap.Error(err))
	} else {
		log.Error("Registration failed", zap.String("form", form), zap.Error(err))
	}
	redirectWithNotice(c, form, NoticeError, MsgConnectionOr(prefix, err))
}

// formUnavailable is used when a form cannot load its select options.
func (h *RegistrationHandler) formUnavailable(c *gin.Context, err error) {
	logger.WithRequestID(middleware.GetRequestID(c)).Error("Failed to load form options", zap.Error(err))
	redirectWithNotice(c, registrationIndex, NoticeError, MsgConnectionOr("Erro ao carregar formulário: ", err))
}
