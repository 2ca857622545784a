package utils

import (
	"context"
	"time"
)

// DefaultDBTimeout bounds a single Postgres round trip. Repository queries
// are all point lookups or small scans, so anything slower is a stuck
// connection rather than a slow query.
const DefaultDBTimeout = 5 * time.Second

// WithDBTimeout derives a context for one repository call.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
