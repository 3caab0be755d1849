package fetch

import (
	"context"
	"time"

	"github.com/jonathan/company-research/internal/cache"
)

// DefaultPageCacheTTL is how long a fetched page is reused.
const DefaultPageCacheTTL = 10 * time.Minute

// CachedFetcher wraps URL fetching with an in-memory page cache.
// Only successful responses are cached.
type CachedFetcher struct {
	pages   *cache.TTLCache[string, *Result]
	options *Options
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool // Whether this result came from cache
}

// NewCachedFetcher creates a new cached fetcher. A nil options uses DefaultOptions.
func NewCachedFetcher(ttl time.Duration, options *Options) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultPageCacheTTL
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &CachedFetcher{
		pages:   cache.New[string, *Result](ttl),
		options: options,
	}
}

// Fetch retrieves a URL, using the cache if available and fresh.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if result, ok := f.pages.Get(urlStr); ok {
		return &CachedResult{Result: result, FromCache: true}, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	f.pages.Set(urlStr, result)
	return &CachedResult{Result: result}, nil
}

// InvalidateCache drops a cached page, forcing a re-fetch on next request.
func (f *CachedFetcher) InvalidateCache(urlStr string) {
	f.pages.Delete(urlStr)
}
