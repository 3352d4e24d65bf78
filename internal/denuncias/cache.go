package denuncias

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"dataforall/internal/platform/metrics"
)

const datasetKey = "denuncias"

// CachedSource keeps the last successful dataset for ttl. Concurrent misses
// share one upstream call. Errors are never cached.
type CachedSource struct {
	next    Source
	cache   *cache.Cache
	group   singleflight.Group
	metrics *metrics.Metrics
}

// NewCachedSource wraps next. A non-positive ttl returns next unchanged so
// every search reaches the upstream.
func NewCachedSource(next Source, ttl time.Duration, m *metrics.Metrics) Source {
	if ttl <= 0 {
		return next
	}
	return &CachedSource{
		next:    next,
		cache:   cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

func (s *CachedSource) Fetch(ctx context.Context) (*Dataset, error) {
	if v, ok := s.cache.Get(datasetKey); ok {
		if s.metrics != nil {
			s.metrics.DatasetCacheHits.Inc()
		}
		return v.(*Dataset), nil
	}

	// The shared call outlives any single caller's cancellation.
	ch := s.group.DoChan(datasetKey, func() (any, error) {
		ds, err := s.next.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.cache.SetDefault(datasetKey, ds)
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

// Invalidate drops the cached dataset.
func (s *CachedSource) Invalidate() {
	s.cache.Delete(datasetKey)
}
