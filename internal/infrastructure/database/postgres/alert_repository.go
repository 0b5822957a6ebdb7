package postgres

import (
	"context"
	"fmt"

	domainAlert "github.com/Augusto140/Englife-server/internal/domain/alert"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"
)

type AlertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) domainAlert.Repository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) ListActive(ctx context.Context, limit int) ([]*domainAlert.Alert, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var dbModels []models.AlertModel
	q := conn.Where("resolved = ?", false).Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	alerts := make([]*domainAlert.Alert, len(dbModels))
	for i, m := range dbModels {
		alerts[i] = &domainAlert.Alert{
			ID:        m.ID,
			Type:      m.Type,
			Message:   m.Message,
			Severity:  m.Severity,
			Timestamp: m.Timestamp,
			Resolved:  m.Resolved,
		}
	}
	return alerts, nil
}

func (r *AlertRepository) CountActive(ctx context.Context) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := conn.Model(&models.AlertModel{}).Where("resolved = ?", false).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count active alerts: %w", err)
	}
	return total, nil
}
