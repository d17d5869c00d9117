package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/commercelab/microshop/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Cache-aside helpers shared by the services. Every cache failure degrades to
// a miss: the record store stays authoritative and keeps answering even with
// the backend gone.

func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadListWithSingleflight coalesces concurrent cache-miss loads of a
// collection key so a stampede hits the record store once, then caches and
// returns the snapshot.
func loadListWithSingleflight[T any](cache ports.Cache, ctx context.Context, key string, ttl time.Duration, loader func() ([]T, error)) ([]T, error) {
	if v, ok := cacheGet[[]T](cache, ctx, key); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		if v, ok := cacheGet[[]T](cache, ctx, key); ok {
			return *v, nil
		}
		all, err := loader()
		if err != nil {
			return nil, err
		}
		cacheSetSilently(cache, ctx, key, all, ttl)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group
