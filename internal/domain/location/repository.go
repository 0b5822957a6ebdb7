package location

import "context"

// Repository defines the interface for location repository operations
type Repository interface {
	Create(ctx context.Context, location *Location) error
	List(ctx context.Context) ([]*Location, error)
	Count(ctx context.Context) (int64, error)
	Names(ctx context.Context) ([]string, error)
}
