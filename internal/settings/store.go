package settings

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the persistent flat settings map.
type Store interface {
	GetAll(ctx context.Context) (map[string]string, error)
}

const snapshotCacheKey = "bot_settings"

// CachedStore caches settings snapshots for a short TTL so the hot request
// path does not hit the database on every query. Admin-side updates call
// Invalidate to make changes visible immediately.
type CachedStore struct {
	store Store
	cache *gocache.Cache
}

func NewCachedStore(store Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedStore{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Load returns the current settings snapshot. On store failure an empty
// snapshot is returned together with the error; every typed accessor on an
// empty snapshot yields its documented default, so callers may log the
// error and continue.
func (c *CachedStore) Load(ctx context.Context) (Values, error) {
	if cached, ok := c.cache.Get(snapshotCacheKey); ok {
		return cached.(Values), nil
	}

	raw, err := c.store.GetAll(ctx)
	if err != nil {
		return Values{}, fmt.Errorf("load settings: %w", err)
	}

	values := Values(raw)
	c.cache.SetDefault(snapshotCacheKey, values)
	return values, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedStore) Invalidate() {
	c.cache.Delete(snapshotCacheKey)
}
