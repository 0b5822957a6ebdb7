package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

type SensorRepository struct {
	db *DB
}

func NewSensorRepository(db *DB) domainSensor.Repository {
	return &SensorRepository{db: db}
}

func (r *SensorRepository) Create(ctx context.Context, s *domainSensor.Sensor) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	dbModel := &models.SensorModel{
		DataloggerID: s.DataloggerID,
		Name:         s.Name,
		Type:         s.Type,
		Unit:         s.Unit,
		Position:     s.Position,
		Address:      s.Address,
	}
	if err := conn.Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domainSensor.ErrDataloggerNotFound
		}
		return fmt.Errorf("failed to create sensor: %w", err)
	}

	s.ID = dbModel.ID
	return nil
}

func (r *SensorRepository) List(ctx context.Context) ([]*domainSensor.Listing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []sensorRow
	err = conn.Table("sensors").
		Select("sensors.id, sensors.name, sensors.type, sensors.position, devices.name AS datalogger_name").
		Joins("JOIN dataloggers ON sensors.datalogger_id = dataloggers.id").
		Joins("JOIN devices ON dataloggers.device_id = devices.id").
		Order("devices.name, sensors.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}

	sensors := make([]*domainSensor.Listing, len(rows))
	for i, row := range rows {
		sensors[i] = &domainSensor.Listing{
			ID:             row.ID,
			Name:           row.Name,
			Type:           row.Type,
			Position:       row.Position,
			DataloggerName: row.DataloggerName,
		}
	}
	return sensors, nil
}

func (r *SensorRepository) Positions(ctx context.Context) ([]string, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	positions := []string{}
	if err := conn.Model(&models.SensorModel{}).Distinct().Order("position").Pluck("position", &positions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sensor positions: %w", err)
	}
	return positions, nil
}

// Readings joins reading, sensor, datalogger, device and location. The time
// window is always applied; location and position only when set.
func (r *SensorRepository) Readings(ctx context.Context, filter *domainSensor.ReadingFilter) ([]*domainSensor.Reading, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	q := conn.Table("sensor_readings").
		Select(`locations.name AS location, sensors.position AS position, sensor_readings.value AS value,
			sensor_readings.timestamp AS timestamp, devices.name AS datalogger`).
		Joins("JOIN sensors ON sensor_readings.sensor_id = sensors.id").
		Joins("JOIN dataloggers ON sensors.datalogger_id = dataloggers.id").
		Joins("JOIN devices ON dataloggers.device_id = devices.id").
		Joins("JOIN locations ON devices.location_id = locations.id").
		Where("sensor_readings.timestamp >= ?", filter.Since)

	if filter.Location != "" {
		q = q.Where("locations.name = ?", filter.Location)
	}
	if filter.Position != "" {
		q = q.Where("sensors.position = ?", filter.Position)
	}

	if filter.Ascending {
		q = q.Order("sensor_readings.timestamp ASC")
	} else {
		q = q.Order("sensor_readings.timestamp DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []readingRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	readings := make([]*domainSensor.Reading, len(rows))
	for i, row := range rows {
		readings[i] = &domainSensor.Reading{
			Location:   row.Location,
			Position:   row.Position,
			Value:      row.Value,
			Timestamp:  row.Timestamp,
			Datalogger: row.Datalogger,
		}
	}
	return readings, nil
}

func (r *SensorRepository) AverageSince(ctx context.Context, since time.Time) (*float64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	err = conn.Model(&models.SensorReadingModel{}).
		Select("AVG(value)").
		Where("timestamp >= ?", since).
		Row().Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average readings: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

type sensorRow struct {
	ID             uint
	Name           string
	Type           string
	Position       string
	DataloggerName string
}

type readingRow struct {
	Location   string
	Position   string
	Value      float64
	Timestamp  time.Time
	Datalogger string
}
