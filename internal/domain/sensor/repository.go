package sensor

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, sensor *Sensor) error
	List(ctx context.Context) ([]*Listing, error)
	Positions(ctx context.Context) ([]string, error)
	Readings(ctx context.Context, filter *ReadingFilter) ([]*Reading, error)
	// AverageSince returns nil when there are no readings in the window.
	AverageSince(ctx context.Context, since time.Time) (*float64, error)
}
