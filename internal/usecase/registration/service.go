package registration

import (
	"context"
	"errors"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	domainFeeder "github.com/Augusto140/Englife-server/internal/domain/feeder"
	domainLocation "github.com/Augusto140/Englife-server/internal/domain/location"
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	domainThreshold "github.com/Augusto140/Englife-server/internal/domain/threshold"
	"github.com/Augusto140/Englife-server/internal/logger"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"

	"go.uber.org/zap"
)

// Service implements the registration forms other than devices and the
// consolidated listing.
type Service struct {
	locationRepo  domainLocation.Repository
	deviceRepo    domainDevice.Repository
	sensorRepo    domainSensor.Repository
	feederRepo    domainFeeder.Repository
	thresholdRepo domainThreshold.Repository
}

func NewService(
	locationRepo domainLocation.Repository,
	deviceRepo domainDevice.Repository,
	sensorRepo domainSensor.Repository,
	feederRepo domainFeeder.Repository,
	thresholdRepo domainThreshold.Repository,
) *Service {
	return &Service{
		locationRepo:  locationRepo,
		deviceRepo:    deviceRepo,
		sensorRepo:    sensorRepo,
		feederRepo:    feederRepo,
		thresholdRepo: thresholdRepo,
	}
}

func (s *Service) CreateLocation(ctx context.Context, req *CreateLocationRequest) (uint, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Description = utils.SanitizeText(req.Description)
	req.Type = utils.SanitizeString(req.Type)
	if err := utils.ValidateStruct(req); err != nil {
		return 0, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	location := &domainLocation.Location{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		if errors.Is(err, domainLocation.ErrLocationAlreadyExists) {
			return 0, appErrors.WriteFailed("Já existe uma localização com este nome", nil)
		}
		logger.Ctx(ctx).Error("Failed to create location", zap.String("name", req.Name), zap.Error(err))
		return 0, appErrors.Wrap(appErrors.CodeWriteFailed, "falha ao gravar", err)
	}

	logger.Ctx(ctx).Info("Location created",
		zap.Uint("location_id", location.ID),
		zap.String("name", location.Name),
	)
	return location.ID, nil
}

func (s *Service) CreateSensor(ctx context.Context, req *CreateSensorRequest) (uint, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Type = utils.SanitizeString(req.Type)
	req.Unit = utils.SanitizeString(req.Unit)
	req.Position = utils.SanitizeString(req.Position)
	req.DataloggerID = utils.SanitizeString(req.DataloggerID)
	if err := utils.ValidateStruct(req); err != nil {
		return 0, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	dataloggerID, err := parseID("datalogger_id", req.DataloggerID)
	if err != nil {
		return 0, err
	}

	sensor := &domainSensor.Sensor{
		DataloggerID: dataloggerID,
		Name:         req.Name,
		Type:         req.Type,
		Unit:         req.Unit,
		Position:     req.Position,
		Address:      utils.OptionalString(req.Address),
	}
	if err := s.sensorRepo.Create(ctx, sensor); err != nil {
		if errors.Is(err, domainSensor.ErrDataloggerNotFound) {
			return 0, appErrors.WriteFailed("Datalogger não encontrado", nil)
		}
		logger.Ctx(ctx).Error("Failed to create sensor", zap.Uint("datalogger_id", dataloggerID), zap.Error(err))
		return 0, appErrors.Wrap(appErrors.CodeWriteFailed, "falha ao gravar", err)
	}

	logger.Ctx(ctx).Info("Sensor created",
		zap.Uint("sensor_id", sensor.ID),
		zap.Uint("datalogger_id", dataloggerID),
		zap.String("position", sensor.Position),
	)
	return sensor.ID, nil
}

// UpsertFeederConfig creates the feeder's schedule or replaces every field of
// the existing one.
func (s *Service) UpsertFeederConfig(ctx context.Context, req *FeederConfigRequest) (*FeederConfigResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	cfg, err := toFeederConfig(req)
	if err != nil {
		return nil, err
	}

	if err := s.feederRepo.UpsertConfig(ctx, cfg); err != nil {
		if errors.Is(err, domainFeeder.ErrFeederNotFound) {
			return nil, appErrors.WriteFailed("Alimentador não encontrado", nil)
		}
		logger.Ctx(ctx).Error("Failed to save feeder config", zap.Uint("feeder_id", cfg.FeederID), zap.Error(err))
		return nil, appErrors.Wrap(appErrors.CodeWriteFailed, "falha ao gravar", err)
	}

	logger.Ctx(ctx).Info("Feeder config saved",
		zap.Uint("feeder_id", cfg.FeederID),
		zap.Bool("active", cfg.Active),
	)
	return ToFeederConfigResponse(cfg), nil
}

func toFeederConfig(req *FeederConfigRequest) (*domainFeeder.Config, error) {
	feederID, err := parseID("alimentador_id", req.FeederID)
	if err != nil {
		return nil, err
	}
	start, err := ParseTimeOfDay("horario_inicio", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay("horario_fim", req.EndTime)
	if err != nil {
		return nil, err
	}
	interval, err := parseOptionalInt("intervalo", req.Interval)
	if err != nil {
		return nil, err
	}
	weight, err := parseOptionalDecimal("peso_diario", req.DailyWeight)
	if err != nil {
		return nil, err
	}
	portions, err := parseOptionalInt("porcoes", req.Portions)
	if err != nil {
		return nil, err
	}

	return &domainFeeder.Config{
		FeederID:    feederID,
		StartTime:   start,
		EndTime:     end,
		Interval:    interval,
		DailyWeight: weight,
		Portions:    portions,
		Active:      req.Active,
	}, nil
}

func (s *Service) UpsertTemperatureLimit(ctx context.Context, req *TemperatureLimitRequest) (*domainThreshold.TemperatureLimit, error) {
	req.SensorType = utils.SanitizeString(req.SensorType)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	locationID, err := parseID("localizacao_id", req.LocationID)
	if err != nil {
		return nil, err
	}
	maximum, err := parseDecimal("maximo", req.Maximum)
	if err != nil {
		return nil, err
	}
	minimum, err := parseDecimal("minimo", req.Minimum)
	if err != nil {
		return nil, err
	}
	if minimum > maximum {
		return nil, appErrors.Validation("Temperatura mínima maior que a máxima", appErrors.ErrInvalidInput)
	}

	limit := &domainThreshold.TemperatureLimit{
		LocationID: locationID,
		SensorType: req.SensorType,
		Maximum:    maximum,
		Minimum:    minimum,
	}
	if err := s.thresholdRepo.Upsert(ctx, limit); err != nil {
		if errors.Is(err, domainThreshold.ErrLocationNotFound) {
			return nil, appErrors.WriteFailed("Localização não encontrada", nil)
		}
		logger.Ctx(ctx).Error("Failed to save temperature limit", zap.Uint("location_id", locationID), zap.Error(err))
		return nil, appErrors.Wrap(appErrors.CodeWriteFailed, "falha ao gravar", err)
	}

	logger.Ctx(ctx).Info("Temperature limit saved",
		zap.Uint("location_id", locationID),
		zap.String("sensor_type", limit.SensorType),
		zap.Float64("maximum", maximum),
		zap.Float64("minimum", minimum),
	)
	return limit, nil
}

func (s *Service) ListAll(ctx context.Context) (*AllRegistrations, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	sensors, err := s.sensorRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	configs, err := s.feederRepo.ListConfigs(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	limits, err := s.thresholdRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	return &AllRegistrations{
		Locations:     locations,
		Devices:       devices,
		Sensors:       sensors,
		FeederConfigs: configs,
		Limits:        limits,
	}, nil
}

func (s *Service) LocationOptions(ctx context.Context) ([]LocationOption, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	out := make([]LocationOption, len(locations))
	for i, l := range locations {
		out[i] = LocationOption{ID: l.ID, Name: l.Name}
	}
	return out, nil
}
