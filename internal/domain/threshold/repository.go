package threshold

import "context"

type Repository interface {
	// Upsert inserts or updates the limit keyed by (LocationID, SensorType).
	Upsert(ctx context.Context, limit *TemperatureLimit) error
	Get(ctx context.Context, locationID uint, sensorType string) (*TemperatureLimit, error)
	List(ctx context.Context) ([]*Listing, error)
}
