package reading

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Augusto140/Englife-server/internal/config"
	domainLocation "github.com/Augusto140/Englife-server/internal/domain/location"
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	"github.com/Augusto140/Englife-server/internal/logger"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"

	"go.uber.org/zap"
)

// MaxWindowHours bounds the readings window to ten years so the window start
// never overflows time.Duration.
const MaxWindowHours = 24 * 365 * 10

type Service struct {
	sensorRepo   domainSensor.Repository
	locationRepo domainLocation.Repository
	query        config.QueryConfig
	now          func() time.Time
}

func NewService(sensorRepo domainSensor.Repository, locationRepo domainLocation.Repository, query config.QueryConfig) *Service {
	return &Service{
		sensorRepo:   sensorRepo,
		locationRepo: locationRepo,
		query:        query,
		now:          time.Now,
	}
}

// GetReadings returns the newest readings inside the window, capped, together
// with the values offered by the filter selects.
func (s *Service) GetReadings(ctx context.Context, req *ReadingsRequest) (*ReadingsResponse, error) {
	filters := s.applyDefaults(req)

	readings, err := s.filteredReadings(ctx, filters)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.Names(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	positions, err := s.sensorRepo.Positions(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	return &ReadingsResponse{
		Readings:  readings,
		Locations: locations,
		Positions: positions,
		Filters:   filters,
	}, nil
}

// ExportReadings renders the same rows GetReadings would show as an xlsx workbook.
func (s *Service) ExportReadings(ctx context.Context, req *ReadingsRequest) ([]byte, error) {
	filters := s.applyDefaults(req)

	readings, err := s.filteredReadings(ctx, filters)
	if err != nil {
		return nil, err
	}

	data, err := GenerateReadingsWorkbook(readings)
	if err != nil {
		logger.Ctx(ctx).Error("Failed to build readings workbook", zap.Error(err))
		return nil, appErrors.QueryFailed(err)
	}

	logger.Ctx(ctx).Info("Readings exported",
		zap.Int("rows", len(readings)),
		zap.String("location", filters.Location),
		zap.String("position", filters.Position),
		zap.Int("hours", filters.Hours),
	)
	return data, nil
}

// GetChartData loads every reading of the chart window in ascending order and
// groups it for the two charts.
func (s *Service) GetChartData(ctx context.Context) (*ChartData, error) {
	readings, err := s.sensorRepo.Readings(ctx, &domainSensor.ReadingFilter{
		Since:     s.now().Add(-s.query.ChartWindow).UTC(),
		Ascending: true,
	})
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	return BuildChartData(readings), nil
}

func (s *Service) filteredReadings(ctx context.Context, f AppliedFilters) ([]*domainSensor.Reading, error) {
	readings, err := s.sensorRepo.Readings(ctx, &domainSensor.ReadingFilter{
		Since:    s.now().Add(-time.Duration(f.Hours) * time.Hour).UTC(),
		Location: f.Location,
		Position: f.Position,
		Limit:    s.query.ReadingsRowCap,
	})
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	return readings, nil
}

func (s *Service) applyDefaults(req *ReadingsRequest) AppliedFilters {
	hours := s.query.DefaultReadingsWindowHours
	if hours <= 0 {
		hours = 24
	}
	h, err := strconv.Atoi(strings.TrimSpace(req.Hours))
	if errors.Is(err, strconv.ErrRange) && h > 0 {
		err = nil
	}
	if err == nil && h > 0 {
		hours = min(h, MaxWindowHours)
	}

	return AppliedFilters{
		Location: utils.SanitizeString(req.Location),
		Position: utils.SanitizeString(req.Position),
		Hours:    hours,
	}
}
