package rickmorty

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"rmselect/internal/debug"
)

// CachedSource serves pages from a Cache when possible and otherwise from its
// upstream Source, storing what it fetched. Concurrent requests for the same
// term and page share one upstream call.
type CachedSource struct {
	upstream Source
	cache    *Cache
	group    singleflight.Group
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource wraps upstream. A nil cache only deduplicates requests.
func NewCachedSource(upstream Source, cache *Cache) *CachedSource {
	return &CachedSource{upstream: upstream, cache: cache}
}

// FetchPage implements Source. Cache failures are logged and otherwise
// ignored; only upstream failures are returned.
func (s *CachedSource) FetchPage(ctx context.Context, name string, page int) (Page, error) {
	if s.cache != nil {
		p, ok, err := s.cache.Get(ctx, name, page)
		switch {
		case err != nil:
			debug.Logf("cache read %q page %d: %v", name, page, err)
		case ok:
			debug.Logf("cache hit %q page %d", name, page)
			return p, nil
		}
	}

	key := normalizeTerm(name) + "\x00" + strconv.Itoa(page)
	v, err, shared := s.group.Do(key, func() (any, error) {
		p, err := s.upstream.FetchPage(ctx, name, page)
		if err != nil {
			return Page{}, err
		}
		if s.cache != nil {
			if err := s.cache.Put(ctx, name, page, p); err != nil {
				debug.Logf("cache write %q page %d: %v", name, page, err)
			}
		}
		return p, nil
	})
	if err != nil {
		return Page{}, err
	}
	if shared {
		debug.Logf("shared fetch %q page %d", name, page)
	}
	return v.(Page), nil
}
