package dashboard

import (
	domainAlert "github.com/Augusto140/Englife-server/internal/domain/alert"
	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
)

type OverviewStats struct {
	TotalDevices     int64
	TotalFeeders     int64
	TotalDataloggers int64
	OnlineDevices    int64
	TotalLocations   int64
}

type OverviewResponse struct {
	Stats          OverviewStats
	RecentReadings []*domainSensor.Reading
	ActiveAlerts   []*domainAlert.Alert
}

// LiveStatsResponse is polled by the dashboard every few seconds.
type LiveStatsResponse struct {
	OnlineDevices      int64   `json:"dispositivos_online"`
	TotalDevices       int64   `json:"total_dispositivos"`
	AverageTemperature float64 `json:"temperatura_media"`
	ActiveAlerts       int64   `json:"alertas_ativos"`
}

func toOverviewStats(s *domainDevice.Statistics, locations int64) OverviewStats {
	return OverviewStats{
		TotalDevices:     s.TotalDevices,
		TotalFeeders:     s.TotalFeeders,
		TotalDataloggers: s.TotalDataloggers,
		OnlineDevices:    s.OnlineDevices,
		TotalLocations:   locations,
	}
}
