package api

import (
	"context"
	"net"
	"time"

	"github.com/valyala/fasthttp"
)

// ConnectionConfig holds configuration for HTTP connections
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host" mapstructure:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration" mapstructure:"max_idle_conn_duration"`
	DialTimeout         time.Duration `json:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout         time.Duration `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout" mapstructure:"write_timeout"`
	RequestTimeout      time.Duration `json:"request_timeout" mapstructure:"request_timeout"`
}

// DefaultConnectionConfig suits the handful of lookups one wizard run makes
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     32,
		MaxIdleConnDuration: 90 * time.Second,
		DialTimeout:         5 * time.Second,
		ReadTimeout:         15 * time.Second,
		WriteTimeout:        10 * time.Second,
		RequestTimeout:      15 * time.Second,
	}
}

// HighThroughputConnectionConfig is for the service fronting many wizards
func HighThroughputConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     200,
		MaxIdleConnDuration: 120 * time.Second,
		DialTimeout:         5 * time.Second,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        5 * time.Second,
		RequestTimeout:      10 * time.Second,
	}
}

// ConnectionManager owns the pooled fasthttp client shared by lookups
type ConnectionManager struct {
	config ConnectionConfig
	client *fasthttp.Client
}

func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	defaults := DefaultConnectionConfig()
	if config.MaxConnsPerHost <= 0 {
		config.MaxConnsPerHost = defaults.MaxConnsPerHost
	}
	if config.DialTimeout <= 0 {
		config.DialTimeout = defaults.DialTimeout
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaults.RequestTimeout
	}

	dialer := &fasthttp.TCPDialer{Concurrency: config.MaxConnsPerHost}
	dialTimeout := config.DialTimeout
	client := &fasthttp.Client{
		Name:                "campaignkit-go/1.0",
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
		Dial: func(addr string) (net.Conn, error) {
			return dialer.DialTimeout(addr, dialTimeout)
		},
	}

	return &ConnectionManager{config: config, client: client}
}

func (cm *ConnectionManager) GetFastHTTPClient() *fasthttp.Client {
	return cm.client
}

func (cm *ConnectionManager) Config() ConnectionConfig {
	return cm.config
}

// Timeout returns the per-request timeout bounded by the context deadline.
func (cm *ConnectionManager) Timeout(ctx context.Context) time.Duration {
	timeout := cm.config.RequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

func (cm *ConnectionManager) Close() {
	cm.client.CloseIdleConnections()
}
