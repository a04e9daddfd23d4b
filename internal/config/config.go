package config

import (
	"time"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/structure"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Keywords   KeywordsConfig   `mapstructure:"keywords"`
	Structure  structure.Config `mapstructure:"structure"`
	Export     ExportConfig     `mapstructure:"export"`
	MetricsAPI MetricsAPIConfig `mapstructure:"metrics_api"`
	Detector   DetectorConfig   `mapstructure:"detector"`
	Logger     logger.Config    `mapstructure:"logger"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"`
	// Exports are kept in memory for download by id.
	ExportCacheSize int           `mapstructure:"export_cache_size"`
	ExportTTL       time.Duration `mapstructure:"export_ttl"`
}

type KeywordsConfig struct {
	keyword.ValidatorConfig `mapstructure:",squash"`
	DefaultCPC              string `mapstructure:"default_cpc"`
	Workers                 int    `mapstructure:"workers"`
	// Seed > 0 shuffles the keyword order deterministically.
	Seed int64 `mapstructure:"seed"`
}

type ExportConfig struct {
	Schema     string `mapstructure:"schema"`
	DateLayout string `mapstructure:"date_layout"`
	BOM        bool   `mapstructure:"bom"`
}

type MetricsAPIConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	api.ClientConfig `mapstructure:",squash"`
	Timeout          time.Duration `mapstructure:"timeout"`
	CacheSize        int           `mapstructure:"cache_size"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	// EstimateOffline serves heuristic estimates when the API is disabled.
	EstimateOffline bool `mapstructure:"estimate_offline"`
}

type DetectorConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// FetchPages downloads the final URL when a request has no page signals.
	FetchPages bool          `mapstructure:"fetch_pages"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// CPC parses the configured default bid, falling back to the built-in one.
func (k KeywordsConfig) CPC() decimal.Decimal {
	d, err := decimal.NewFromString(k.DefaultCPC)
	if err != nil || !d.IsPositive() {
		return keyword.DefaultCPC
	}
	return d
}

func (k KeywordsConfig) ExpanderOptions() keyword.ExpanderOptions {
	return keyword.ExpanderOptions{
		DefaultCPC:    k.CPC(),
		DefaultVolume: keyword.VolumeMedium,
		Workers:       k.Workers,
	}
}

func (e ExportConfig) Options() export.Options {
	return export.Options{
		Schema:     export.SchemaByName(e.Schema),
		DateLayout: e.DateLayout,
		BOM:        e.BOM,
	}
}
