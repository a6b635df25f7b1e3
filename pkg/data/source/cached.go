package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/vischart/pkg/cache"
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/observability"
)

type cachedResolver struct {
	next   Resolver
	cache  cache.Cache
	keyer  cache.Keyer
	source string
	ttl    time.Duration
}

// Cached stores rows resolved by r under [cache.Keyer.DataKey] with source
// as the key namespace. Errors are never cached. A nil cache returns r.
func Cached(r Resolver, c cache.Cache, keyer cache.Keyer, source string, ttl time.Duration) Resolver {
	if c == nil {
		return r
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &cachedResolver{next: r, cache: c, keyer: keyer, source: source, ttl: ttl}
}

func (r *cachedResolver) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	key := r.keyer.DataKey(r.source, name)
	if b, ok, _ := r.cache.Get(ctx, key); ok {
		var rows []data.Row
		if json.Unmarshal(b, &rows) == nil {
			observability.Cache().OnCacheHit(ctx, "data")
			return rows, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "data")

	rows, err := r.next.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(rows); err == nil {
		if r.cache.Set(ctx, key, b, r.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "data", len(b))
		}
	}
	return rows, nil
}
