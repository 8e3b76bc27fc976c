package port

import (
	"context"
	"io"
	"time"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// Presign returns a time-limited signed GET URL for the given key.
	Presign(ctx context.Context, key string, expires time.Duration) (string, error)
}
