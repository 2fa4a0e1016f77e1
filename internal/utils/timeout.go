package utils

import (
	"context"
	"time"
)

const DefaultFetchTimeout = 10 * time.Second

// WithFetchTimeout bounds an upstream call. A non-positive d uses DefaultFetchTimeout.
func WithFetchTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultFetchTimeout
	}

	return context.WithTimeout(ctx, d)
}
