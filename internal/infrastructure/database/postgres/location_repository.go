package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainLocation "github.com/Augusto140/Englife-server/internal/domain/location"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) domainLocation.Repository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *domainLocation.Location) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	dbModel := &models.LocationModel{
		Name:        l.Name,
		Description: l.Description,
		Type:        l.Type,
		CreatedAt:   time.Now(),
	}
	if err := conn.Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainLocation.ErrLocationAlreadyExists
		}
		return fmt.Errorf("failed to create location: %w", err)
	}

	l.ID = dbModel.ID
	l.CreatedAt = dbModel.CreatedAt
	return nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*domainLocation.Location, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var dbModels []models.LocationModel
	if err := conn.Order("name").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]*domainLocation.Location, len(dbModels))
	for i, m := range dbModels {
		locations[i] = &domainLocation.Location{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Type:        m.Type,
			CreatedAt:   m.CreatedAt,
		}
	}
	return locations, nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := conn.Model(&models.LocationModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return total, nil
}

func (r *LocationRepository) Names(ctx context.Context) ([]string, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	names := []string{}
	if err := conn.Model(&models.LocationModel{}).Distinct().Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list location names: %w", err)
	}
	return names, nil
}
