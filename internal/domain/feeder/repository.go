package feeder

import "context"

type Repository interface {
	// UpsertConfig inserts or updates the config keyed by FeederID and fills
	// in the stored row.
	UpsertConfig(ctx context.Context, config *Config) error
	GetConfig(ctx context.Context, feederID uint) (*Config, error)
	ListConfigs(ctx context.Context) ([]*ConfigListing, error)
}
