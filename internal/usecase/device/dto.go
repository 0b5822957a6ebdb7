package device

import (
	"time"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
)

// CreateDeviceRequest is bound from the device registration form. Optional
// fields arrive as strings and are empty when the operator left them blank.
type CreateDeviceRequest struct {
	Name        string `form:"nome" validate:"required,max=100"`
	Description string `form:"descricao" validate:"max=500"`
	MacAddress  string `form:"mac_address" validate:"required,mac"`
	IPAddress   string `form:"ip_address" validate:"omitempty,ip"`
	Type        string `form:"tipo" validate:"required,max=50"`
	Model       string `form:"modelo" validate:"omitempty,max=100"`
	LocationID  string `form:"localizacao_id" validate:"omitempty,number"`
}

type DeviceResponse struct {
	ID                uint
	Name              string
	Type              domainDevice.Type
	TypeLabel         string
	MacAddress        string
	IPAddress         *string
	Online            bool
	LastCommunication *time.Time
	LocationName      *string
}

type FeederResponse struct {
	ID              uint
	DeviceName      string
	LocationName    *string
	Capacity        float64
	AverageFlowRate float64
	MotorOn         bool
	Online          bool
	ConfigActive    *bool
	DailyWeight     *float64
}

type DataloggerResponse struct {
	ID                uint
	DeviceName        string
	LocationName      *string
	SensorCount       int
	ReadingInterval   int
	Online            bool
	LastCommunication *time.Time
}

// OptionResponse is one entry of a feeder or datalogger select box.
type OptionResponse struct {
	ID           uint
	DeviceName   string
	LocationName *string
}

func ToDeviceResponse(d *domainDevice.Listing) DeviceResponse {
	return DeviceResponse{
		ID:                d.ID,
		Name:              d.Name,
		Type:              d.Type,
		TypeLabel:         d.Type.Label(),
		MacAddress:        d.MacAddress,
		IPAddress:         d.IPAddress,
		Online:            d.Online,
		LastCommunication: d.LastCommunication,
		LocationName:      d.LocationName,
	}
}

func ToFeederResponse(f *domainDevice.FeederListing) FeederResponse {
	return FeederResponse{
		ID:              f.ID,
		DeviceName:      f.DeviceName,
		LocationName:    f.LocationName,
		Capacity:        f.Capacity,
		AverageFlowRate: f.AverageFlowRate,
		MotorOn:         f.MotorOn,
		Online:          f.Online,
		ConfigActive:    f.ConfigActive,
		DailyWeight:     f.DailyWeight,
	}
}

func ToDataloggerResponse(d *domainDevice.DataloggerListing) DataloggerResponse {
	return DataloggerResponse{
		ID:                d.ID,
		DeviceName:        d.DeviceName,
		LocationName:      d.LocationName,
		SensorCount:       d.SensorCount,
		ReadingInterval:   d.ReadingInterval,
		Online:            d.Online,
		LastCommunication: d.LastCommunication,
	}
}

func ToOptionResponses(opts []*domainDevice.Option) []OptionResponse {
	out := make([]OptionResponse, len(opts))
	for i, o := range opts {
		out[i] = OptionResponse{ID: o.ID, DeviceName: o.DeviceName, LocationName: o.LocationName}
	}
	return out
}
