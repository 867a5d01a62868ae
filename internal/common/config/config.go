// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Zepto         ZeptoConfig        `mapstructure:"zepto"`
	Geocoder      GeocoderConfig     `mapstructure:"geocoder"`
	Proxy         ProxyConfig        `mapstructure:"proxy"`
	Batch         BatchConfig        `mapstructure:"batch"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	// Tags stamped onto every emitted product record.
	Platform string `mapstructure:"platform"`
	BrandTag string `mapstructure:"brand_tag"`
}

// ZeptoConfig holds endpoints and retry budgets for the upstream platform.
type ZeptoConfig struct {
	APIBaseURL  string `mapstructure:"api_base_url"`  // catalog/layout/eta host
	MapsBaseURL string `mapstructure:"maps_base_url"` // place autocomplete/details host
	PDPBaseURL  string `mapstructure:"pdp_base_url"`  // canonical product page host
	AppVersion  string `mapstructure:"app_version"`

	Timeout        int `mapstructure:"timeout"`         // milliseconds, per call
	RetryDelay     int `mapstructure:"retry_delay"`     // seconds, linear backoff base
	StoreAttempts  int `mapstructure:"store_attempts"`  // store resolver budget
	ETAAttempts    int `mapstructure:"eta_attempts"`    // eta resolver budget, tuned higher
	CataloguePause int `mapstructure:"catalogue_pause"` // seconds before the catalog call
}

func (z ZeptoConfig) CallTimeout() time.Duration {
	return time.Duration(z.Timeout) * time.Millisecond
}

func (z ZeptoConfig) BackoffBase() time.Duration {
	return time.Duration(z.RetryDelay) * time.Second
}

// GeocoderConfig holds settings for the Nominatim locality lookup.
type GeocoderConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Country   string `mapstructure:"country"`
	UserAgent string `mapstructure:"user_agent"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// ProxyConfig holds the optional forward proxy applied to all outbound calls.
// When URL is empty, calls go direct with relaxed certificate validation.
type ProxyConfig struct {
	URL                string `mapstructure:"url"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// BatchConfig holds fan-out settings for the batch runner.
type BatchConfig struct {
	ChunkSize      int `mapstructure:"chunk_size"`
	Workers        int `mapstructure:"workers"`
	TaskRetries    int `mapstructure:"task_retries"`     // whole-item attempts on top of resolver retries
	TaskRetryDelay int `mapstructure:"task_retry_delay"` // seconds between item attempts
}

// CacheConfig controls the redis resolution cache (pincode -> store).
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // seconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NotificationConfig holds settings for the batch-summary notification.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the prometheus listener settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
