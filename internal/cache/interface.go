package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serialisable values under string keys with a time to live.
// Get reports false without an error when the key is absent or expired.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// SessionKeyPrefix namespaces browsing sessions, e.g. "session:<uuid>".
const SessionKeyPrefix = "session"

// SessionKey returns the storage key of one browsing session.
func SessionKey(sessionID string) string {
	return Key(SessionKeyPrefix, sessionID)
}
