package device

import "context"

// Repository defines the interface for device repository operations
type Repository interface {
	// Create inserts the device and, for feeders and dataloggers, their
	// specialization rows in one transaction.
	Create(ctx context.Context, device *Device) error
	List(ctx context.Context) ([]*Listing, error)
	ListFeeders(ctx context.Context) ([]*FeederListing, error)
	ListDataloggers(ctx context.Context) ([]*DataloggerListing, error)
	FeederOptions(ctx context.Context) ([]*Option, error)
	DataloggerOptions(ctx context.Context) ([]*Option, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}
