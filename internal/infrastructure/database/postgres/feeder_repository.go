package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainFeeder "github.com/Augusto140/Englife-server/internal/domain/feeder"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeederRepository struct {
	db *DB
}

func NewFeederRepository(db *DB) domainFeeder.Repository {
	return &FeederRepository{db: db}
}

// UpsertConfig writes the config in a single INSERT ... ON CONFLICT statement
// so concurrent saves for the same feeder cannot create a second row.
func (r *FeederRepository) UpsertConfig(ctx context.Context, cfg *domainFeeder.Config) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	cfg.UpdatedAt = time.Now()
	dbModel := toFeederConfigModel(cfg)

	err = conn.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.FeederModel{}).Where("id = ?", cfg.FeederID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domainFeeder.ErrFeederNotFound
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "feeder_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_time", "end_time", "interval_minutes", "daily_weight", "portions", "active", "updated_at",
			}),
		}).Create(dbModel).Error
		if err != nil {
			return err
		}

		var stored models.FeederConfigModel
		if err := tx.Where("feeder_id = ?", cfg.FeederID).First(&stored).Error; err != nil {
			return err
		}
		*cfg = *toFeederConfigEntity(&stored)
		return nil
	})
	if err != nil {
		if errors.Is(err, domainFeeder.ErrFeederNotFound) {
			return err
		}
		return fmt.Errorf("failed to upsert feeder config: %w", err)
	}
	return nil
}

func (r *FeederRepository) GetConfig(ctx context.Context, feederID uint) (*domainFeeder.Config, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var dbModel models.FeederConfigModel
	err = conn.Where("feeder_id = ?", feederID).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainFeeder.ErrFeederNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feeder config: %w", err)
	}
	return toFeederConfigEntity(&dbModel), nil
}

func (r *FeederRepository) ListConfigs(ctx context.Context) ([]*domainFeeder.ConfigListing, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var rows []feederConfigRow
	err = conn.Table("feeder_configs").
		Select(`feeder_configs.id, devices.name AS device_name, feeder_configs.start_time,
			feeder_configs.end_time, feeder_configs.daily_weight, feeder_configs.active`).
		Joins("JOIN feeders ON feeder_configs.feeder_id = feeders.id").
		Joins("JOIN devices ON feeders.device_id = devices.id").
		Order("devices.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feeder configs: %w", err)
	}

	configs := make([]*domainFeeder.ConfigListing, len(rows))
	for i, row := range rows {
		configs[i] = &domainFeeder.ConfigListing{
			ID:          row.ID,
			DeviceName:  row.DeviceName,
			StartTime:   fromTimeOfDay(row.StartTime),
			EndTime:     fromTimeOfDay(row.EndTime),
			DailyWeight: row.DailyWeight,
			Active:      row.Active,
		}
	}
	return configs, nil
}

type feederConfigRow struct {
	ID          uint
	DeviceName  string
	StartTime   *datatypes.Time
	EndTime     *datatypes.Time
	DailyWeight *float64
	Active      bool
}

func toFeederConfigModel(c *domainFeeder.Config) *models.FeederConfigModel {
	return &models.FeederConfigModel{
		FeederID:    c.FeederID,
		StartTime:   toTimeOfDay(c.StartTime),
		EndTime:     toTimeOfDay(c.EndTime),
		Interval:    c.Interval,
		DailyWeight: c.DailyWeight,
		Portions:    c.Portions,
		Active:      c.Active,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toFeederConfigEntity(m *models.FeederConfigModel) *domainFeeder.Config {
	return &domainFeeder.Config{
		ID:          m.ID,
		FeederID:    m.FeederID,
		StartTime:   fromTimeOfDay(m.StartTime),
		EndTime:     fromTimeOfDay(m.EndTime),
		Interval:    m.Interval,
		DailyWeight: m.DailyWeight,
		Portions:    m.Portions,
		Active:      m.Active,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTimeOfDay(d *time.Duration) *datatypes.Time {
	if d == nil {
		return nil
	}
	t := datatypes.Time(*d)
	return &t
}

func fromTimeOfDay(t *datatypes.Time) *time.Duration {
	if t == nil {
		return nil
	}
	d := time.Duration(*t)
	return &d
}
