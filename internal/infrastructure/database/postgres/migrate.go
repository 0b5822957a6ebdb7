package postgres

import (
	"context"
	"fmt"

	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"
	"github.com/Augusto140/Englife-server/internal/logger"
)

// AllModels lists every table of the schema in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&models.LocationModel{},
		&models.DeviceModel{},
		&models.FeederModel{},
		&models.FeederConfigModel{},
		&models.FeederCalibrationModel{},
		&models.DataloggerModel{},
		&models.SensorModel{},
		&models.SensorReadingModel{},
		&models.AlertModel{},
		&models.TemperatureLimitModel{},
	}
}

// Migrate creates or updates the schema, including the unique indexes the
// upserts rely on.
func (d *DB) Migrate(ctx context.Context) error {
	tx, err := d.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := tx.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("Database schema migrated")
	return nil
}
