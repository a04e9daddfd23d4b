package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/structure"
)

const EnvPrefix = "CAMPAIGNKIT"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath over the built-in defaults. An empty path loads
// defaults and CAMPAIGNKIT_* environment overrides only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)
	config, err := m.read()
	if err != nil {
		return nil, err
	}
	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.viper.ConfigFileUsed() != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	setDefaults(m.viper)
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.export_cache_size", 100)
	v.SetDefault("server.export_ttl", time.Hour)

	v.SetDefault("keywords.min_keywords", keyword.DefaultMinKeywords)
	v.SetDefault("keywords.max_keywords", keyword.DefaultMaxKeywords)
	v.SetDefault("keywords.max_attempts", keyword.DefaultMaxAttempts)
	v.SetDefault("keywords.filler_passes", keyword.DefaultFillerPasses)
	v.SetDefault("keywords.negative_keywords", []string{})
	v.SetDefault("keywords.match_types", []string{
		string(keyword.Broad), string(keyword.Phrase), string(keyword.Exact),
	})
	v.SetDefault("keywords.default_cpc", keyword.DefaultCPC.StringFixed(2))
	v.SetDefault("keywords.workers", 0)
	v.SetDefault("keywords.seed", 0)

	v.SetDefault("structure.skag_cap", structure.DefaultSKAGCap)
	v.SetDefault("structure.theme_group_cap", structure.DefaultThemeGroupCap)
	v.SetDefault("structure.theme_keyword_cap", structure.DefaultThemeKeywordCap)
	v.SetDefault("structure.slice_count", structure.DefaultSliceCount)
	v.SetDefault("structure.name_limit", structure.DefaultNameLimit)

	v.SetDefault("export.schema", export.Standard.Name)
	v.SetDefault("export.date_layout", export.DefaultDateLayout)
	v.SetDefault("export.bom", true)

	client := api.DefaultClientConfig()
	v.SetDefault("metrics_api.enabled", false)
	v.SetDefault("metrics_api.endpoints", "")
	v.SetDefault("metrics_api.api_key", "")
	v.SetDefault("metrics_api.batch_size", client.BatchSize)
	v.SetDefault("metrics_api.max_retries", client.MaxRetries)
	v.SetDefault("metrics_api.retry_delay", client.RetryDelay)
	v.SetDefault("metrics_api.breaker_failures", client.BreakerFailures)
	v.SetDefault("metrics_api.breaker_reset", client.BreakerReset)
	v.SetDefault("metrics_api.max_concurrent", client.MaxConcurrent)
	v.SetDefault("metrics_api.acquire_timeout", client.AcquireTimeout)
	v.SetDefault("metrics_api.connection.max_conns_per_host", client.Connection.MaxConnsPerHost)
	v.SetDefault("metrics_api.connection.max_idle_conn_duration", client.Connection.MaxIdleConnDuration)
	v.SetDefault("metrics_api.connection.dial_timeout", client.Connection.DialTimeout)
	v.SetDefault("metrics_api.connection.read_timeout", client.Connection.ReadTimeout)
	v.SetDefault("metrics_api.connection.write_timeout", client.Connection.WriteTimeout)
	v.SetDefault("metrics_api.connection.request_timeout", client.Connection.RequestTimeout)
	v.SetDefault("metrics_api.timeout", 5*time.Second)
	v.SetDefault("metrics_api.cache_size", 5000)
	v.SetDefault("metrics_api.cache_ttl", 24*time.Hour)
	v.SetDefault("metrics_api.estimate_offline", false)

	v.SetDefault("detector.enabled", true)
	v.SetDefault("detector.fetch_pages", false)
	v.SetDefault("detector.timeout", 5*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", time.RFC3339)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	kw := c.Keywords
	if kw.MinKeywords < 0 || kw.MaxKeywords <= 0 {
		return fmt.Errorf("keyword bounds must be positive")
	}
	if kw.MinKeywords > kw.MaxKeywords {
		return fmt.Errorf("min_keywords %d exceeds max_keywords %d", kw.MinKeywords, kw.MaxKeywords)
	}
	if kw.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive")
	}
	// normalized in place so "exact" and "Exact" both work
	for i, mt := range kw.MatchTypes {
		parsed, ok := keyword.ParseMatchType(string(mt))
		if !ok || parsed.IsNegative() {
			return fmt.Errorf("unknown match type %q", mt)
		}
		c.Keywords.MatchTypes[i] = parsed
	}

	if c.Export.Schema != export.Standard.Name && c.Export.Schema != export.Extended.Name {
		return fmt.Errorf("unknown export schema %q", c.Export.Schema)
	}

	if c.MetricsAPI.Enabled {
		if strings.TrimSpace(c.MetricsAPI.Endpoints) == "" {
			return fmt.Errorf("metrics_api.endpoints cannot be empty when enabled")
		}
		if c.MetricsAPI.BatchSize <= 0 {
			return fmt.Errorf("metrics_api.batch_size must be positive")
		}
	}

	return nil
}
