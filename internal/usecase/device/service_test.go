package device_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Augusto140/Englife-server/internal/infrastructure/database/dbtest"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"
	"github.com/Augusto140/Englife-server/internal/usecase/device"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDevice_FeederEndToEnd(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))
	ctx := context.Background()
	loc := dbtest.SeedLocation(t, db, "Galpão 1")

	id, err := svc.CreateDevice(ctx, &device.CreateDeviceRequest{
		Name:       "  Alimentador 01 ",
		MacAddress: "aa-bb-cc-dd-ee-01",
		Type:       "feeder",
		LocationID: fmt.Sprint(loc),
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	var stored models.DeviceModel
	require.NoError(t, db.DB.First(&stored, id).Error)
	assert.Equal(t, "Alimentador 01", stored.Name)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", stored.MacAddress)
	assert.Nil(t, stored.IPAddress)
	assert.Nil(t, stored.Model)

	feeders, err := svc.ListFeeders(ctx)
	require.NoError(t, err)
	require.Len(t, feeders, 1)
	assert.Equal(t, "Alimentador 01", feeders[0].DeviceName)
	require.NotNil(t, feeders[0].LocationName)
	assert.Equal(t, "Galpão 1", *feeders[0].LocationName)
	require.NotNil(t, feeders[0].ConfigActive)
	assert.False(t, *feeders[0].ConfigActive)

	devices, err := svc.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Alimentador", devices[0].TypeLabel)

	opts, err := svc.FeederOptions(ctx)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Alimentador 01", opts[0].DeviceName)
}

func TestCreateDevice_Datalogger(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))
	ctx := context.Background()

	_, err := svc.CreateDevice(ctx, &device.CreateDeviceRequest{
		Name:       "DL-1",
		MacAddress: "AA:BB:CC:DD:EE:02",
		IPAddress:  "192.168.0.20",
		Type:       "Datalogger",
		Model:      "ESP32",
	})
	require.NoError(t, err)

	dataloggers, err := svc.ListDataloggers(ctx)
	require.NoError(t, err)
	require.Len(t, dataloggers, 1)
	assert.Equal(t, 60, dataloggers[0].ReadingInterval)
	assert.Nil(t, dataloggers[0].LocationName)

	opts, err := svc.DataloggerOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestCreateDevice_ValidationErrors(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))

	tests := []struct {
		name string
		req  device.CreateDeviceRequest
	}{
		{"missing name", device.CreateDeviceRequest{MacAddress: "AA:BB:CC:DD:EE:01", Type: "feeder"}},
		{"bad mac", device.CreateDeviceRequest{Name: "F", MacAddress: "not-a-mac", Type: "feeder"}},
		{"bad ip", device.CreateDeviceRequest{Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", IPAddress: "999.1.1.1", Type: "feeder"}},
		{"missing type", device.CreateDeviceRequest{Name: "F", MacAddress: "AA:BB:CC:DD:EE:01"}},
		{"bad location", device.CreateDeviceRequest{Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", Type: "feeder", LocationID: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.CreateDevice(context.Background(), &req)
			require.Error(t, err)
			assert.True(t, appErrors.IsValidation(err), "got %v", err)
		})
	}

	var devices int64
	db.DB.Model(&models.DeviceModel{}).Count(&devices)
	assert.Zero(t, devices)
}

func TestCreateDevice_DuplicateMACIsWriteFailure(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))
	ctx := context.Background()

	req := func() *device.CreateDeviceRequest {
		return &device.CreateDeviceRequest{Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", Type: "feeder"}
	}
	_, err := svc.CreateDevice(ctx, req())
	require.NoError(t, err)

	_, err = svc.CreateDevice(ctx, req())
	require.Error(t, err)
	assert.True(t, appErrors.IsWriteFailure(err))
	assert.Equal(t, "Endereço MAC já cadastrado", appErrors.MessageOf(err))
}

func TestCreateDevice_UnknownLocation(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))

	_, err := svc.CreateDevice(context.Background(), &device.CreateDeviceRequest{
		Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", Type: "feeder", LocationID: "77",
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsWriteFailure(err))

	var devices int64
	db.DB.Model(&models.DeviceModel{}).Count(&devices)
	assert.Zero(t, devices)
}

func TestListDevices_Unavailable(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))
	require.NoError(t, db.Close())

	_, err := svc.ListDevices(context.Background())
	assert.True(t, appErrors.IsUnavailable(err))
}

func TestCreateDevice_PortugueseFeederLabel(t *testing.T) {
	db := dbtest.NewSQLite(t)
	svc := device.NewService(postgres.NewDeviceRepository(db))

	_, err := svc.CreateDevice(context.Background(), &device.CreateDeviceRequest{
		Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", Type: "Alimentador",
	})
	require.NoError(t, err)

	var feeders int64
	db.DB.Model(&models.FeederModel{}).Count(&feeders)
	assert.Equal(t, int64(1), feeders)
}
