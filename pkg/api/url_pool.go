package api

import (
	"strings"
	"sync/atomic"
)

// URLPool spreads metrics lookups round-robin over several endpoints
type URLPool struct {
	urls    []string
	current int64
}

// NewURLPool creates a URL pool from comma-separated URLs
func NewURLPool(urlString string) *URLPool {
	if urlString == "" {
		return &URLPool{urls: []string{}}
	}

	rawURLs := strings.Split(urlString, ",")
	urls := make([]string, 0, len(rawURLs))
	for _, u := range rawURLs {
		if cleaned := strings.TrimRight(strings.TrimSpace(u), "/"); cleaned != "" {
			urls = append(urls, cleaned)
		}
	}

	return &URLPool{
		urls:    urls,
		current: -1,
	}
}

// Next returns the next endpoint. Safe for concurrent use.
func (p *URLPool) Next() string {
	if len(p.urls) == 0 {
		return ""
	}
	if len(p.urls) == 1 {
		return p.urls[0]
	}

	next := atomic.AddInt64(&p.current, 1)
	// ((n % m) + m) % m stays positive after the counter wraps
	n := int64(len(p.urls))
	return p.urls[((next%n)+n)%n]
}

// URLs returns a copy of the configured endpoints
func (p *URLPool) URLs() []string {
	result := make([]string, len(p.urls))
	copy(result, p.urls)
	return result
}

func (p *URLPool) Size() int {
	return len(p.urls)
}

func (p *URLPool) IsEmpty() bool {
	return len(p.urls) == 0
}
