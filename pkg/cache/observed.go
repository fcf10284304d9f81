package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/stackchart/pkg/observability"
)

// Observed reports hits, misses and writes of c to the registered cache
// hooks.
func Observed(c Cache) Cache { return &observed{Cache: c} }

type observed struct{ Cache }

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// keyType returns "data" or "artifact" for keys from the DefaultKeyer,
// scoped or not.
func keyType(key string) string {
	for _, t := range []string{"artifact", "data"} {
		if strings.HasPrefix(key, t+":") || strings.Contains(key, ":"+t+":") {
			return t
		}
	}
	return "other"
}
