package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/dbtest"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeeder(name, mac string, locationID *uint) *domainDevice.Device {
	return &domainDevice.Device{
		Name:        name,
		Description: "feeder",
		MacAddress:  mac,
		Type:        domainDevice.TypeFeeder,
		LocationID:  locationID,
	}
}

func TestDeviceRepository_CreateFeederCreatesSpecializationRows(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)
	ctx := context.Background()
	locID := dbtest.SeedLocation(t, db, "Barn A")

	d := newFeeder("Feeder-1", "AA:BB:CC:DD:EE:01", &locID)
	require.NoError(t, repo.Create(ctx, d))
	require.NotZero(t, d.ID)

	var feeder models.FeederModel
	require.NoError(t, db.DB.Where("device_id = ?", d.ID).First(&feeder).Error)
	assert.Zero(t, feeder.Capacity)
	assert.Zero(t, feeder.AverageFlowRate)

	var cfg models.FeederConfigModel
	require.NoError(t, db.DB.Where("feeder_id = ?", feeder.ID).First(&cfg).Error)
	assert.False(t, cfg.Active)
	assert.Nil(t, cfg.StartTime)

	var cal models.FeederCalibrationModel
	require.NoError(t, db.DB.Where("feeder_id = ?", feeder.ID).First(&cal).Error)
	assert.JSONEq(t, "{}", string(cal.Parameters))

	var dataloggers int64
	require.NoError(t, db.DB.Model(&models.DataloggerModel{}).Count(&dataloggers).Error)
	assert.Zero(t, dataloggers)
}

func TestDeviceRepository_CreateDatalogger(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)

	d := &domainDevice.Device{Name: "DL-1", MacAddress: "AA:BB:CC:DD:EE:02", Type: domainDevice.TypeDatalogger}
	require.NoError(t, repo.Create(context.Background(), d))

	var dl models.DataloggerModel
	require.NoError(t, db.DB.Where("device_id = ?", d.ID).First(&dl).Error)
	assert.Equal(t, 0, dl.SensorCount)
	assert.Equal(t, 60, dl.ReadingInterval)

	var feeders int64
	require.NoError(t, db.DB.Model(&models.FeederModel{}).Count(&feeders).Error)
	assert.Zero(t, feeders)
}

func TestDeviceRepository_CreateOtherTypeHasNoSpecialization(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)

	d := &domainDevice.Device{Name: "Gateway", MacAddress: "AA:BB:CC:DD:EE:03", Type: "gateway"}
	require.NoError(t, repo.Create(context.Background(), d))

	var feeders, dataloggers int64
	db.DB.Model(&models.FeederModel{}).Count(&feeders)
	db.DB.Model(&models.DataloggerModel{}).Count(&dataloggers)
	assert.Zero(t, feeders)
	assert.Zero(t, dataloggers)
}

func TestDeviceRepository_DuplicateMAC(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newFeeder("Feeder-1", "AA:BB:CC:DD:EE:01", nil)))
	err := repo.Create(ctx, newFeeder("Feeder-2", "AA:BB:CC:DD:EE:01", nil))

	assert.ErrorIs(t, err, domainDevice.ErrDeviceAlreadyExists)

	var devices int64
	db.DB.Model(&models.DeviceModel{}).Count(&devices)
	assert.Equal(t, int64(1), devices)
}

func TestDeviceRepository_FeederFailureRollsBackDevice(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)

	err := db.DB.Callback().Create().Before("gorm:create").Register("test:fail_feeder_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "feeders" {
			_ = tx.AddError(errors.New("simulated feeder insert failure"))
		}
	})
	require.NoError(t, err)

	err = repo.Create(context.Background(), newFeeder("Feeder-1", "AA:BB:CC:DD:EE:01", nil))
	require.Error(t, err)

	var devices, configs, calibrations int64
	db.DB.Model(&models.DeviceModel{}).Count(&devices)
	db.DB.Model(&models.FeederConfigModel{}).Count(&configs)
	db.DB.Model(&models.FeederCalibrationModel{}).Count(&calibrations)
	assert.Zero(t, devices)
	assert.Zero(t, configs)
	assert.Zero(t, calibrations)
}

func TestDeviceRepository_ListFeedersOuterJoins(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)
	ctx := context.Background()
	locID := dbtest.SeedLocation(t, db, "Barn A")

	require.NoError(t, repo.Create(ctx, newFeeder("Feeder-A", "AA:BB:CC:DD:EE:01", &locID)))

	// A feeder whose config row was never created, without a location.
	orphan := &models.DeviceModel{Name: "Feeder-B", MacAddress: "AA:BB:CC:DD:EE:09", Type: "feeder", CreatedAt: time.Now()}
	require.NoError(t, db.DB.Create(orphan).Error)
	require.NoError(t, db.DB.Create(&models.FeederModel{DeviceID: orphan.ID}).Error)

	feeders, err := repo.ListFeeders(ctx)
	require.NoError(t, err)
	require.Len(t, feeders, 2)

	assert.Equal(t, "Feeder-A", feeders[0].DeviceName)
	require.NotNil(t, feeders[0].LocationName)
	assert.Equal(t, "Barn A", *feeders[0].LocationName)
	require.NotNil(t, feeders[0].ConfigActive)
	assert.False(t, *feeders[0].ConfigActive)

	assert.Equal(t, "Feeder-B", feeders[1].DeviceName)
	assert.Nil(t, feeders[1].LocationName)
	assert.Nil(t, feeders[1].ConfigActive)
	assert.Nil(t, feeders[1].DailyWeight)
}

func TestDeviceRepository_ListOrderingAndOptions(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)
	ctx := context.Background()
	locID := dbtest.SeedLocation(t, db, "Barn A")

	require.NoError(t, repo.Create(ctx, newFeeder("Zeta", "AA:BB:CC:DD:EE:01", &locID)))
	require.NoError(t, repo.Create(ctx, &domainDevice.Device{Name: "Alpha", MacAddress: "AA:BB:CC:DD:EE:02", Type: domainDevice.TypeDatalogger}))
	require.NoError(t, repo.Create(ctx, newFeeder("Beta", "AA:BB:CC:DD:EE:03", nil)))

	devices, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 3)
	// type, then name: datalogger < feeder
	assert.Equal(t, "Alpha", devices[0].Name)
	assert.Equal(t, "Beta", devices[1].Name)
	assert.Equal(t, "Zeta", devices[2].Name)
	assert.Nil(t, devices[1].LocationName)
	require.NotNil(t, devices[2].LocationName)
	assert.Equal(t, "Barn A", *devices[2].LocationName)

	feederOpts, err := repo.FeederOptions(ctx)
	require.NoError(t, err)
	require.Len(t, feederOpts, 2)
	assert.Equal(t, "Beta", feederOpts[0].DeviceName)

	dlOpts, err := repo.DataloggerOptions(ctx)
	require.NoError(t, err)
	require.Len(t, dlOpts, 1)
	assert.Equal(t, "Alpha", dlOpts[0].DeviceName)

	dataloggers, err := repo.ListDataloggers(ctx)
	require.NoError(t, err)
	require.Len(t, dataloggers, 1)
	assert.Equal(t, 60, dataloggers[0].ReadingInterval)
}

func TestDeviceRepository_GetStatistics(t *testing.T) {
	db := dbtest.NewSQLite(t)
	repo := postgres.NewDeviceRepository(db)
	ctx := context.Background()

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, domainDevice.Statistics{}, *stats)

	require.NoError(t, repo.Create(ctx, newFeeder("F1", "AA:BB:CC:DD:EE:01", nil)))
	require.NoError(t, repo.Create(ctx, newFeeder("F2", "AA:BB:CC:DD:EE:02", nil)))
	require.NoError(t, repo.Create(ctx, &domainDevice.Device{Name: "DL", MacAddress: "AA:BB:CC:DD:EE:03", Type: domainDevice.TypeDatalogger}))
	require.NoError(t, db.DB.Model(&models.DeviceModel{}).Where("name = ?", "F1").Update("online", true).Error)

	stats, err = repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalDevices)
	assert.Equal(t, int64(2), stats.TotalFeeders)
	assert.Equal(t, int64(1), stats.TotalDataloggers)
	assert.Equal(t, int64(1), stats.OnlineDevices)
}
