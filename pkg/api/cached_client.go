package api

import (
	"context"
	"strings"
	"time"

	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/storage"
)

type cachedMetrics struct {
	source  Source
	metrics KeywordMetrics
}

// CachedMetricsClient serves repeated keywords from an LRU cache and only
// forwards misses. Keywords the upstream has no data for are not cached.
type CachedMetricsClient struct {
	next  MetricsClient
	cache *storage.MemoryCache
	log   *logger.Logger
}

func NewCachedMetricsClient(next MetricsClient, size int, ttl time.Duration) *CachedMetricsClient {
	return &CachedMetricsClient{
		next:  next,
		cache: storage.NewMemoryCacheWithTTL(size, ttl),
		log:   logger.GetLogger().Component("metrics_cache"),
	}
}

// SetLogger replaces the component logger
func (c *CachedMetricsClient) SetLogger(l *logger.Logger) {
	c.log = l.Component("metrics_cache")
}

// Lookup answers from cache where possible. The response source is the
// weakest source among the entries served.
func (c *CachedMetricsClient) Lookup(ctx context.Context, keywords []string, country string) (*MetricsResponse, error) {
	keywords = uniqueKeywords(keywords)
	resp := newMetricsResponse(SourceLive, len(keywords))
	var misses []string

	for _, k := range keywords {
		v, ok := c.cache.Get(cacheKey(country, k))
		if !ok {
			misses = append(misses, k)
			continue
		}
		entry := v.(cachedMetrics)
		resp.put(entry.metrics)
		resp.Source = weaker(resp.Source, entry.source)
	}

	if len(misses) > 0 {
		fresh, err := c.next.Lookup(ctx, misses, country)
		if err != nil {
			return nil, err
		}
		for _, m := range fresh.Keywords {
			resp.put(m)
			c.cache.Set(cacheKey(country, m.Keyword), cachedMetrics{source: fresh.Source, metrics: m})
		}
		resp.Source = weaker(resp.Source, fresh.Source)
		resp.Message = fresh.Message
	}

	c.log.WithFields(map[string]interface{}{
		"requested": len(keywords),
		"cached":    len(keywords) - len(misses),
	}).Debug("Metrics cache lookup")
	return resp, nil
}

func (c *CachedMetricsClient) Stats() storage.CacheStats {
	return c.cache.Stats()
}

func (c *CachedMetricsClient) Close() {
	c.cache.Close()
}

func cacheKey(country, keyword string) string {
	return strings.ToUpper(country) + "|" + metricsKey(keyword)
}

var sourceRank = map[Source]int{SourceLive: 2, SourceEstimated: 1, SourceLocal: 0}

func weaker(a, b Source) Source {
	if sourceRank[b] < sourceRank[a] {
		return b
	}
	return a
}
