package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainThreshold "github.com/Augusto140/Englife-server/internal/domain/threshold"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThresholdRepository struct {
	db *DB
}

func NewThresholdRepository(db *DB) domainThreshold.Repository {
	return &ThresholdRepository{db: db}
}

// Upsert relies on the unique index over (location_id, sensor_type); the
// insert and the update are one statement.
func (r *ThresholdRepository) Upsert(ctx context.Context, l *domainThreshold.TemperatureLimit) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	l.UpdatedAt = time.Now()
	dbModel := &models.TemperatureLimitModel{
		LocationID: l.LocationID,
		SensorType: l.SensorType,
		Maximum:    l.Maximum,
		Minimum:    l.Minimum,
		UpdatedAt:  l.UpdatedAt,
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.LocationModel{}).Where("id = ?", l.LocationID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domainThreshold.ErrLocationNotFound
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location_id"}, {Name: "sensor_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"maximum", "minimum", "updated_at"}),
		}).Create(dbModel).Error
		if err != nil {
			return err
		}

		var stored models.TemperatureLimitModel
		if err := tx.Where("location_id = ? AND sensor_type = ?", l.LocationID, l.SensorType).First(&stored).Error; err != nil {
			return err
		}
		*l = *toLimitEntity(&stored)
		return nil
	})
	if err != nil {
		if errors.Is(err, domainThreshold.ErrLocationNotFound) {
			return err
		}
		return fmt.Errorf("failed to upsert temperature limit: %w", err)
	}
	return nil
}

func (r *ThresholdRepository) Get(ctx context.Context, locationID uint, sensorType string) (*domainThreshold.TemperatureLimit, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var dbModel models.TemperatureLimitModel
	err = conn.Where("location_id = ? AND sensor_type = ?", locationID, sensorType).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainThreshold.ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get temperature limit: %w", err)
	}
	return toLimitEntity(&dbModel), nil
}

func (r *ThresholdRepository) List(ctx context.Context) ([]*domainThreshold.Listing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []limitRow
	err = conn.Table("temperature_limits").
		Select(`temperature_limits.id, locations.name AS location_name, temperature_limits.sensor_type,
			temperature_limits.maximum, temperature_limits.minimum`).
		Joins("JOIN locations ON temperature_limits.location_id = locations.id").
		Order("locations.name, temperature_limits.sensor_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list temperature limits: %w", err)
	}

	limits := make([]*domainThreshold.Listing, len(rows))
	for i, row := range rows {
		limits[i] = &domainThreshold.Listing{
			ID:           row.ID,
			LocationName: row.LocationName,
			SensorType:   row.SensorType,
			Maximum:      row.Maximum,
			Minimum:      row.Minimum,
		}
	}
	return limits, nil
}

type limitRow struct {
	ID           uint
	LocationName string
	SensorType   string
	Maximum      float64
	Minimum      float64
}

func toLimitEntity(m *models.TemperatureLimitModel) *domainThreshold.TemperatureLimit {
	return &domainThreshold.TemperatureLimit{
		ID:         m.ID,
		LocationID: m.LocationID,
		SensorType: m.SensorType,
		Maximum:    m.Maximum,
		Minimum:    m.Minimum,
		UpdatedAt:  m.UpdatedAt,
	}
}
