package bootstrap

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"campaignkit-go/internal/config"
	"campaignkit-go/internal/service"
	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/catalog"
	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/pipeline"
	"campaignkit-go/pkg/storage"
)

// Kit is everything a front end needs to serve requests.
type Kit struct {
	Generator  *pipeline.Generator
	Serializer *export.Serializer
	Exports    *storage.BlobStore
	Service    *service.Service
	Metrics    api.MetricsClient

	closers []func()
	stats   map[string]service.StatsFunc
}

func (k *Kit) statsLater(name string, fn service.StatsFunc) {
	if k.stats == nil {
		k.stats = make(map[string]service.StatsFunc)
	}
	k.stats[name] = fn
}

// Close releases connection pools and cache sweepers, newest first.
func (k *Kit) Close() {
	for i := len(k.closers) - 1; i >= 0; i-- {
		k.closers[i]()
	}
	k.closers = nil
}

// Builder assembles a Kit from configuration, collecting every
// validation problem before failing.
type Builder struct {
	cfg        *config.Config
	catalog    *catalog.Catalog
	registerer prometheus.Registerer
	log        *logger.Logger
	errors     []error
}

func NewBuilder() *Builder {
	return &Builder{
		cfg:     config.Default(),
		catalog: catalog.Default(),
		log:     logger.GetLogger(),
	}
}

func (b *Builder) WithConfig(cfg *config.Config) *Builder {
	if cfg == nil {
		b.errors = append(b.errors, fmt.Errorf("config cannot be nil"))
		return b
	}
	if err := cfg.Validate(); err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	b.cfg = cfg
	return b
}

// WithMetricsAPI enables the live metrics collaborator. Endpoints may be a
// comma-separated list for round-robin.
func (b *Builder) WithMetricsAPI(endpoints, apiKey string) *Builder {
	if strings.TrimSpace(endpoints) == "" {
		b.errors = append(b.errors, fmt.Errorf("metrics API endpoint cannot be empty"))
		return b
	}
	for i, raw := range strings.Split(endpoints, ",") {
		clean := strings.TrimSpace(raw)
		if clean == "" {
			continue
		}
		if u, err := url.Parse(clean); err != nil || u.Host == "" {
			b.errors = append(b.errors, fmt.Errorf("invalid metrics API URL #%d (%s)", i+1, clean))
			return b
		}
	}
	b.cfg.MetricsAPI.Enabled = true
	b.cfg.MetricsAPI.Endpoints = endpoints
	b.cfg.MetricsAPI.APIKey = apiKey
	return b
}

func (b *Builder) WithCatalog(c *catalog.Catalog) *Builder {
	if c == nil {
		b.errors = append(b.errors, fmt.Errorf("catalog cannot be nil"))
		return b
	}
	b.catalog = c
	return b
}

// WithRegisterer registers pipeline collectors on reg; nil leaves them
// unregistered.
func (b *Builder) WithRegisterer(reg prometheus.Registerer) *Builder {
	b.registerer = reg
	return b
}

func (b *Builder) WithLogger(l *logger.Logger) *Builder {
	if l != nil {
		b.log = l
	}
	return b
}

func (b *Builder) Validate() error {
	if len(b.errors) == 0 {
		return nil
	}
	var messages []string
	for _, err := range b.errors {
		messages = append(messages, err.Error())
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(messages, "; "))
}

func (b *Builder) Build() (*Kit, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	cfg := b.cfg
	kit := &Kit{}

	kit.Metrics = b.metricsClient(kit)
	detector := b.detector(kit)

	opts := pipeline.Options{
		Catalog:        b.catalog,
		Keywords:       cfg.Keywords.ValidatorConfig,
		Expander:       cfg.Keywords.ExpanderOptions(),
		Structure:      cfg.Structure,
		Metrics:        kit.Metrics,
		MetricsTimeout: cfg.MetricsAPI.Timeout,
		Detector:       detector,
		Registerer:     b.registerer,
		Logger:         b.log,
	}
	if cfg.Keywords.Seed > 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Keywords.Seed))
	}
	kit.Generator = pipeline.NewGenerator(opts)

	kit.Serializer = export.NewSerializer(cfg.Export.Options())
	kit.Serializer.SetLogger(b.log)
	kit.Exports = storage.NewBlobStore(cfg.Server.ExportCacheSize, cfg.Server.ExportTTL)
	kit.closers = append(kit.closers, kit.Exports.Close)

	kit.Service = service.New(kit.Generator, kit.Serializer, kit.Exports)
	kit.Service.SetLogger(b.log)
	for name, fn := range kit.stats {
		kit.Service.Register(name, fn)
	}

	b.log.WithFields(map[string]interface{}{
		"metrics_api":  cfg.MetricsAPI.Enabled,
		"estimate":     cfg.MetricsAPI.EstimateOffline,
		"detector":     cfg.Detector.Enabled,
		"fetch_pages":  cfg.Detector.FetchPages,
		"export":       cfg.Export.Schema,
		"min_keywords": cfg.Keywords.MinKeywords,
		"max_keywords": cfg.Keywords.MaxKeywords,
	}).Info("Campaign kit assembled")
	return kit, nil
}

// metricsClient chains live lookups, heuristic fallback and a cache.
func (b *Builder) metricsClient(kit *Kit) api.MetricsClient {
	mc := b.cfg.MetricsAPI
	estimator := api.NewEstimator(b.cfg.Keywords.CPC())

	var chain api.MetricsClient
	switch {
	case mc.Enabled:
		clientCfg := mc.ClientConfig
		clientCfg.DefaultCPC = b.cfg.Keywords.CPC()
		live := api.NewHTTPMetricsClient(clientCfg)
		live.SetLogger(b.log)
		kit.closers = append(kit.closers, live.Close)

		fallback := api.NewFallbackClient(live, estimator)
		fallback.SetLogger(b.log)
		chain = fallback
		kit.statsLater("metrics_api", func() interface{} { return live.Stats() })
	case mc.EstimateOffline:
		chain = estimator
	default:
		return nil
	}

	cached := api.NewCachedMetricsClient(chain, mc.CacheSize, mc.CacheTTL)
	cached.SetLogger(b.log)
	kit.closers = append(kit.closers, cached.Close)
	kit.statsLater("metrics_cache", func() interface{} { return cached.Stats() })
	return cached
}

func (b *Builder) detector(kit *Kit) api.IntentDetector {
	dc := b.cfg.Detector
	if !dc.Enabled {
		return nil
	}
	var detector api.IntentDetector = api.NewKeywordDetector(b.catalog)
	if dc.FetchPages {
		conn := api.DefaultConnectionConfig()
		if dc.Timeout > 0 {
			conn.ReadTimeout = dc.Timeout
			conn.RequestTimeout = dc.Timeout
		}
		fetcher := api.NewPageFetcher(conn)
		fetcher.SetLogger(b.log)
		kit.closers = append(kit.closers, fetcher.Close)
		detector = api.NewPageDetector(fetcher, detector)
	}
	return detector
}
