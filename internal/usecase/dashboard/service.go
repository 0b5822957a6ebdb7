package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/Augusto140/Englife-server/internal/config"
	domainAlert "github.com/Augusto140/Englife-server/internal/domain/alert"
	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	domainLocation "github.com/Augusto140/Englife-server/internal/domain/location"
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	"github.com/Augusto140/Englife-server/internal/logger"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"

	"go.uber.org/zap"
)

// Service assembles the dashboard page and the live stats endpoint.
type Service struct {
	deviceRepo   domainDevice.Repository
	locationRepo domainLocation.Repository
	sensorRepo   domainSensor.Repository
	alertRepo    domainAlert.Repository
	query        config.QueryConfig
	now          func() time.Time
}

func NewService(
	deviceRepo domainDevice.Repository,
	locationRepo domainLocation.Repository,
	sensorRepo domainSensor.Repository,
	alertRepo domainAlert.Repository,
	query config.QueryConfig,
) *Service {
	return &Service{
		deviceRepo:   deviceRepo,
		locationRepo: locationRepo,
		sensorRepo:   sensorRepo,
		alertRepo:    alertRepo,
		query:        query,
		now:          time.Now,
	}
}

func (s *Service) Overview(ctx context.Context) (*OverviewResponse, error) {
	stats, err := s.overviewStats(ctx)
	if err != nil {
		return nil, err
	}

	readings, err := s.sensorRepo.Readings(ctx, &domainSensor.ReadingFilter{
		Since: s.now().Add(-s.query.RecentReadingsWindow).UTC(),
		Limit: s.query.RecentReadingsLimit,
	})
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	alerts, err := s.alertRepo.ListActive(ctx, s.query.ActiveAlertsLimit)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	return &OverviewResponse{
		Stats:          stats,
		RecentReadings: readings,
		ActiveAlerts:   alerts,
	}, nil
}

func (s *Service) overviewStats(ctx context.Context) (OverviewStats, error) {
	deviceStats, err := s.deviceRepo.GetStatistics(ctx)
	if err != nil {
		return OverviewStats{}, appErrors.QueryFailed(err)
	}
	locations, err := s.locationRepo.Count(ctx)
	if err != nil {
		return OverviewStats{}, appErrors.QueryFailed(err)
	}
	return toOverviewStats(deviceStats, locations), nil
}

// LiveStats reports the average of the readings inside the live window as 0
// when there are none.
func (s *Service) LiveStats(ctx context.Context) (*LiveStatsResponse, error) {
	deviceStats, err := s.deviceRepo.GetStatistics(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	avg, err := s.sensorRepo.AverageSince(ctx, s.now().Add(-s.query.LiveStatsWindow).UTC())
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	alerts, err := s.alertRepo.CountActive(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	var average float64
	if avg != nil {
		average = math.Round(*avg*100) / 100
	}

	logger.Debug("Live stats computed",
		zap.Int64("online", deviceStats.OnlineDevices),
		zap.Float64("average", average),
	)

	return &LiveStatsResponse{
		OnlineDevices:      deviceStats.OnlineDevices,
		TotalDevices:       deviceStats.TotalDevices,
		AverageTemperature: average,
		ActiveAlerts:       alerts,
	}, nil
}
