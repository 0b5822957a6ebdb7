package alert

import "context"

type Repository interface {
	// ListActive returns unresolved alerts, newest first, capped at limit.
	ListActive(ctx context.Context, limit int) ([]*Alert, error)
	CountActive(ctx context.Context) (int64, error)
}
