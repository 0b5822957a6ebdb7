package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeviceRepository implements domain.Device.Repository interface
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	d.CreatedAt = time.Now()
	dbModel := toDeviceModel(d)

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbModel).Error; err != nil {
			return err
		}

		switch d.Type {
		case domainDevice.TypeFeeder:
			return createFeederRows(tx, dbModel.ID)
		case domainDevice.TypeDatalogger:
			return tx.Create(&models.DataloggerModel{
				DeviceID:        dbModel.ID,
				SensorCount:     0,
				ReadingInterval: 60,
			}).Error
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return domainDevice.ErrDeviceAlreadyExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return domainDevice.ErrLocationNotFound
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	d.ID = dbModel.ID
	return nil
}

// createFeederRows inserts the feeder, its inactive config and its default
// calibration, in that order.
func createFeederRows(tx *gorm.DB, deviceID uint) error {
	feeder := &models.FeederModel{DeviceID: deviceID, Capacity: 0, AverageFlowRate: 0}
	if err := tx.Create(feeder).Error; err != nil {
		return err
	}

	if err := tx.Create(&models.FeederConfigModel{
		FeederID:  feeder.ID,
		Active:    false,
		UpdatedAt: time.Now(),
	}).Error; err != nil {
		return err
	}

	return tx.Create(&models.FeederCalibrationModel{
		FeederID:   feeder.ID,
		Parameters: datatypes.JSON("{}"),
	}).Error
}

func (r *DeviceRepository) List(ctx context.Context) ([]*domainDevice.Listing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []deviceRow
	err = conn.Table("devices").
		Select(`devices.id, devices.name, devices.type, devices.mac_address, devices.ip_address,
			devices.online, devices.last_communication, locations.name AS location_name`).
		Joins("LEFT JOIN locations ON devices.location_id = locations.id").
		Order("devices.type, devices.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := make([]*domainDevice.Listing, len(rows))
	for i, row := range rows {
		devices[i] = &domainDevice.Listing{
			ID:                row.ID,
			Name:              row.Name,
			Type:              domainDevice.Type(row.Type),
			MacAddress:        row.MacAddress,
			IPAddress:         row.IPAddress,
			Online:            row.Online,
			LastCommunication: row.LastCommunication,
			LocationName:      row.LocationName,
		}
	}
	return devices, nil
}

func (r *DeviceRepository) ListFeeders(ctx context.Context) ([]*domainDevice.FeederListing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	// Feeders without a location or a config row are still listed.
	var rows []feederRow
	err = conn.Table("feeders").
		Select(`feeders.id, devices.name AS device_name, locations.name AS location_name,
			feeders.capacity, feeders.average_flow_rate, feeders.motor_on, devices.online,
			feeder_configs.active AS config_active, feeder_configs.daily_weight`).
		Joins("JOIN devices ON feeders.device_id = devices.id").
		Joins("LEFT JOIN locations ON devices.location_id = locations.id").
		Joins("LEFT JOIN feeder_configs ON feeder_configs.feeder_id = feeders.id").
		Order("devices.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feeders: %w", err)
	}

	feeders := make([]*domainDevice.FeederListing, len(rows))
	for i, row := range rows {
		feeders[i] = &domainDevice.FeederListing{
			ID:              row.ID,
			DeviceName:      row.DeviceName,
			LocationName:    row.LocationName,
			Capacity:        row.Capacity,
			AverageFlowRate: row.AverageFlowRate,
			MotorOn:         row.MotorOn,
			Online:          row.Online,
			ConfigActive:    row.ConfigActive,
			DailyWeight:     row.DailyWeight,
		}
	}
	return feeders, nil
}

func (r *DeviceRepository) ListDataloggers(ctx context.Context) ([]*domainDevice.DataloggerListing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []dataloggerRow
	err = conn.Table("dataloggers").
		Select(`dataloggers.id, devices.name AS device_name, locations.name AS location_name,
			dataloggers.sensor_count, dataloggers.reading_interval, devices.online, devices.last_communication`).
		Joins("JOIN devices ON dataloggers.device_id = devices.id").
		Joins("LEFT JOIN locations ON devices.location_id = locations.id").
		Order("devices.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dataloggers: %w", err)
	}

	dataloggers := make([]*domainDevice.DataloggerListing, len(rows))
	for i, row := range rows {
		dataloggers[i] = &domainDevice.DataloggerListing{
			ID:                row.ID,
			DeviceName:        row.DeviceName,
			LocationName:      row.LocationName,
			SensorCount:       row.SensorCount,
			ReadingInterval:   row.ReadingInterval,
			Online:            row.Online,
			LastCommunication: row.LastCommunication,
		}
	}
	return dataloggers, nil
}

func (r *DeviceRepository) FeederOptions(ctx context.Context) ([]*domainDevice.Option, error) {
	return r.options(ctx, "feeders")
}

func (r *DeviceRepository) DataloggerOptions(ctx context.Context) ([]*domainDevice.Option, error) {
	return r.options(ctx, "dataloggers")
}

// options lists the rows of a specialization table with their device and
// location names, for form select boxes.
func (r *DeviceRepository) options(ctx context.Context, table string) ([]*domainDevice.Option, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []optionRow
	err = conn.Table(table).
		Select(table + ".id, devices.name AS device_name, locations.name AS location_name").
		Joins("JOIN devices ON " + table + ".device_id = devices.id").
		Joins("LEFT JOIN locations ON devices.location_id = locations.id").
		Order("devices.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s options: %w", table, err)
	}

	options := make([]*domainDevice.Option, len(rows))
	for i, row := range rows {
		options[i] = &domainDevice.Option{
			ID:           row.ID,
			DeviceName:   row.DeviceName,
			LocationName: row.LocationName,
		}
	}
	return options, nil
}

func (r *DeviceRepository) GetStatistics(ctx context.Context) (*domainDevice.Statistics, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domainDevice.Statistics{}
	counts := []struct {
		target *int64
		query  string
		args   []interface{}
	}{
		{&stats.TotalDevices, "", nil},
		{&stats.TotalFeeders, "type = ?", []interface{}{string(domainDevice.TypeFeeder)}},
		{&stats.TotalDataloggers, "type = ?", []interface{}{string(domainDevice.TypeDatalogger)}},
		{&stats.OnlineDevices, "online = ?", []interface{}{true}},
	}

	for _, c := range counts {
		q := conn.Model(&models.DeviceModel{})
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.target).Error; err != nil {
			return nil, fmt.Errorf("failed to count devices: %w", err)
		}
	}

	return stats, nil
}

type deviceRow struct {
	ID                uint
	Name              string
	Type              string
	MacAddress        string
	IPAddress         *string
	Online            bool
	LastCommunication *time.Time
	LocationName      *string
}

type feederRow struct {
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

type dataloggerRow struct {
	ID                uint
	DeviceName        string
	LocationName      *string
	SensorCount       int
	ReadingInterval   int
	Online            bool
	LastCommunication *time.Time
}

type optionRow struct {
	ID           uint
	DeviceName   string
	LocationName *string
}

// Helper functions to convert between domain entities and database models

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		MacAddress:        d.MacAddress,
		IPAddress:         d.IPAddress,
		Type:              string(d.Type),
		Model:             d.Model,
		Online:            d.Online,
		LastCommunication: d.LastCommunication,
		LocationID:        d.LocationID,
		CreatedAt:         d.CreatedAt,
	}
}
