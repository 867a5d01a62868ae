// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like ZEPTO_API_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations (tests run from package dirs)
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "zepto-scraper"
	}
	if cfg.App.Platform == "" {
		cfg.App.Platform = "zepto"
	}
	if cfg.App.BrandTag == "" {
		cfg.App.BrandTag = "origami"
	}

	if cfg.Zepto.APIBaseURL == "" {
		cfg.Zepto.APIBaseURL = "https://api.zepto.co.in"
	}
	if cfg.Zepto.MapsBaseURL == "" {
		cfg.Zepto.MapsBaseURL = "https://api.zeptonow.com"
	}
	if cfg.Zepto.PDPBaseURL == "" {
		cfg.Zepto.PDPBaseURL = "https://www.zeptonow.com"
	}
	if cfg.Zepto.AppVersion == "" {
		cfg.Zepto.AppVersion = "24.7.1"
	}
	if cfg.Zepto.Timeout == 0 {
		cfg.Zepto.Timeout = 15000
	}
	if cfg.Zepto.RetryDelay == 0 {
		cfg.Zepto.RetryDelay = 10
	}
	if cfg.Zepto.StoreAttempts == 0 {
		cfg.Zepto.StoreAttempts = 3
	}
	if cfg.Zepto.ETAAttempts == 0 {
		cfg.Zepto.ETAAttempts = 5
	}
	if cfg.Zepto.CataloguePause == 0 {
		cfg.Zepto.CataloguePause = cfg.Zepto.RetryDelay
	}

	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.Country == "" {
		cfg.Geocoder.Country = "India"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "pincode_to_city_app_v1"
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 10000
	}

	if cfg.Batch.ChunkSize == 0 {
		cfg.Batch.ChunkSize = 1000
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = 8
	}
	if cfg.Batch.TaskRetries == 0 {
		cfg.Batch.TaskRetries = 3
	}
	if cfg.Batch.TaskRetryDelay == 0 {
		cfg.Batch.TaskRetryDelay = 10
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 1800
	}

	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "product-records"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Zepto.APIBaseURL == "" || cfg.Zepto.MapsBaseURL == "" {
		return fmt.Errorf("zepto base URLs must not be empty")
	}
	if cfg.Batch.ChunkSize < 1 {
		return fmt.Errorf("batch chunk_size must be positive, got %d", cfg.Batch.ChunkSize)
	}
	if cfg.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be positive, got %d", cfg.Batch.Workers)
	}
	if cfg.Database.Postgres.Enabled && cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres sink enabled but no host configured")
	}
	if cfg.Notifications.SNS.Enabled && cfg.Notifications.SNS.TopicARN == "" {
		return fmt.Errorf("sns notifications enabled but no topic_arn configured")
	}
	return nil
}
