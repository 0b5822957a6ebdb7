package device

import (
	"context"
	"errors"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	"github.com/Augusto140/Englife-server/internal/logger"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"

	"go.uber.org/zap"
)

// Service implements device use cases
type Service struct {
	deviceRepo domainDevice.Repository
}

// NewService creates a new device service
func NewService(deviceRepo domainDevice.Repository) *Service {
	return &Service{deviceRepo: deviceRepo}
}

// CreateDevice registers a device. Feeders and dataloggers get their
// specialization rows in the same transaction. Returns the new device id.
func (s *Service) CreateDevice(ctx context.Context, req *CreateDeviceRequest) (uint, error) {
	normalizeCreateRequest(req)
	if err := utils.ValidateStruct(req); err != nil {
		return 0, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	locationID, err := ParseOptionalID("localizacao_id", req.LocationID)
	if err != nil {
		return 0, err
	}

	device := toDeviceEntity(req, locationID)
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		switch {
		case errors.Is(err, domainDevice.ErrDeviceAlreadyExists):
			return 0, appErrors.WriteFailed("Endereço MAC já cadastrado", nil)
		case errors.Is(err, domainDevice.ErrLocationNotFound):
			return 0, appErrors.WriteFailed("Localização não encontrada", nil)
		}
		logger.Ctx(ctx).Error("Failed to create device",
			zap.String("mac_address", device.MacAddress),
			zap.Error(err),
		)
		return 0, appErrors.Wrap(appErrors.CodeWriteFailed, "falha ao gravar", err)
	}

	logger.Ctx(ctx).Info("Device created",
		zap.Uint("device_id", device.ID),
		zap.String("mac_address", device.MacAddress),
		zap.String("type", string(device.Type)),
		zap.String("event", "device_created"),
	)

	return device.ID, nil
}

func (s *Service) ListDevices(ctx context.Context) ([]DeviceResponse, error) {
	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	out := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		out[i] = ToDeviceResponse(d)
	}
	return out, nil
}

// ListFeeders includes feeders that have no config yet; their config fields are nil.
func (s *Service) ListFeeders(ctx context.Context) ([]FeederResponse, error) {
	feeders, err := s.deviceRepo.ListFeeders(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	out := make([]FeederResponse, len(feeders))
	for i, f := range feeders {
		out[i] = ToFeederResponse(f)
	}
	return out, nil
}

func (s *Service) ListDataloggers(ctx context.Context) ([]DataloggerResponse, error) {
	dataloggers, err := s.deviceRepo.ListDataloggers(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}

	out := make([]DataloggerResponse, len(dataloggers))
	for i, d := range dataloggers {
		out[i] = ToDataloggerResponse(d)
	}
	return out, nil
}

func (s *Service) FeederOptions(ctx context.Context) ([]OptionResponse, error) {
	opts, err := s.deviceRepo.FeederOptions(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	return ToOptionResponses(opts), nil
}

func (s *Service) DataloggerOptions(ctx context.Context) ([]OptionResponse, error) {
	opts, err := s.deviceRepo.DataloggerOptions(ctx)
	if err != nil {
		return nil, appErrors.QueryFailed(err)
	}
	return ToOptionResponses(opts), nil
}
