package cache

import (
	"context"
	"time"
)

// NameCache stores resolved display names keyed by entity kind and id.
// Both operations are best-effort: a cache failure must never surface to the
// caller, who can always fall back to the repository or a placeholder.
type NameCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, name string, ttl time.Duration)
}
