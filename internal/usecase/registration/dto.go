package registration

import (
	"time"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	domainFeeder "github.com/Augusto140/Englife-server/internal/domain/feeder"
	domainLocation "github.com/Augusto140/Englife-server/internal/domain/location"
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	domainThreshold "github.com/Augusto140/Englife-server/internal/domain/threshold"
)

type CreateLocationRequest struct {
	Name        string `form:"nome" validate:"required,max=100"`
	Description string `form:"descricao" validate:"required,max=500"`
	Type        string `form:"tipo" validate:"required,max=50"`
}

type CreateSensorRequest struct {
	DataloggerID string `form:"datalogger_id" validate:"required,number"`
	Name         string `form:"nome" validate:"required,max=100"`
	Type         string `form:"tipo" validate:"required,max=50"`
	Unit         string `form:"unidade" validate:"required,max=20"`
	Position     string `form:"posicao" validate:"required,max=50"`
	Address      string `form:"endereco" validate:"omitempty,max=100"`
}

// FeederConfigRequest is bound from the feeder schedule form. Active is not
// bound: the handler sets it from the presence of the checkbox.
type FeederConfigRequest struct {
	FeederID    string `form:"alimentador_id" validate:"required,number"`
	StartTime   string `form:"horario_inicio" validate:"omitempty,time_of_day"`
	EndTime     string `form:"horario_fim" validate:"omitempty,time_of_day"`
	Interval    string `form:"intervalo" validate:"omitempty,number"`
	DailyWeight string `form:"peso_diario" validate:"omitempty,decimal"`
	Portions    string `form:"porcoes" validate:"omitempty,number"`
	Active      bool   `form:"-"`
}

type TemperatureLimitRequest struct {
	LocationID string `form:"localizacao_id" validate:"required,number"`
	SensorType string `form:"tipo_sensor" validate:"required,max=50"`
	Maximum    string `form:"maximo" validate:"required,decimal"`
	Minimum    string `form:"minimo" validate:"required,decimal"`
}

type LocationOption struct {
	ID   uint
	Name string
}

type FeederConfigResponse struct {
	ID          uint
	FeederID    uint
	StartTime   string
	EndTime     string
	Interval    *int
	DailyWeight *float64
	Portions    *int
	Active      bool
	UpdatedAt   time.Time
}

// AllRegistrations backs the consolidated listing page.
type AllRegistrations struct {
	Locations     []*domainLocation.Location
	Devices       []*domainDevice.Listing
	Sensors       []*domainSensor.Listing
	FeederConfigs []*domainFeeder.ConfigListing
	Limits        []*domainThreshold.Listing
}

func ToFeederConfigResponse(c *domainFeeder.Config) *FeederConfigResponse {
	return &FeederConfigResponse{
		ID:          c.ID,
		FeederID:    c.FeederID,
		StartTime:   FormatTimeOfDay(c.StartTime),
		EndTime:     FormatTimeOfDay(c.EndTime),
		Interval:    c.Interval,
		DailyWeight: c.DailyWeight,
		Portions:    c.Portions,
		Active:      c.Active,
		UpdatedAt:   c.UpdatedAt,
	}
}
