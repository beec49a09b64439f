// Package config loads application configuration from a YAML file with
// environment-variable overrides. Precedence, lowest to highest: built-in
// defaults, config file, environment, CLI flags (applied by the CLI layer).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terracart/terracart/internal/impact/score"
)

// Environment variables recognized by ApplyEnv.
const (
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "TERRACART_LOG_LEVEL"

	// EnvDatabaseDSN overrides the purchase-history Postgres DSN.
	EnvDatabaseDSN = "TERRACART_DATABASE_DSN"

	// EnvRedisAddr overrides the Redis cache address.
	EnvRedisAddr = "TERRACART_REDIS_ADDR"

	// EnvKafkaBrokers overrides the Kafka broker list (comma-separated).
	EnvKafkaBrokers = "TERRACART_KAFKA_BROKERS"

	// EnvCacheTTLSeconds overrides the report cache TTL.
	EnvCacheTTLSeconds = "TERRACART_CACHE_TTL_SECONDS"

	// EnvBadgeCatalog overrides the badge catalog file path.
	EnvBadgeCatalog = "TERRACART_BADGE_CATALOG"
)

// Default timeouts and TTLs.
const (
	// DefaultCacheTTLSeconds is the default report cache TTL (15 minutes).
	DefaultCacheTTLSeconds = 900

	// DefaultHistoryTimeoutSeconds bounds the purchase-history collaborator
	// call. Expiry surfaces as impact.ErrDataUnavailable.
	DefaultHistoryTimeoutSeconds = 5
)

// Cache backend names.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BadgesConfig locates the badge catalog. An empty path selects the
// built-in default catalog.
type BadgesConfig struct {
	CatalogPath string `yaml:"catalog_path"`
}

// CacheConfig controls the report cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Backend    string `yaml:"backend"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisDB    int    `yaml:"redis_db"`
}

// DatabaseConfig locates the purchase-history Postgres instance.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// KafkaConfig locates the order-event stream that drives cache
// invalidation.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// HistoryConfig bounds the collaborator round-trip.
type HistoryConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Config is the root configuration document.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Scoring  score.Weights  `yaml:"scoring"`
	Badges   BadgesConfig   `yaml:"badges"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	History  HistoryConfig  `yaml:"history"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Scoring: score.DefaultWeights(),
		Cache: CacheConfig{
			Enabled:    true,
			Backend:    CacheBackendMemory,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Kafka: KafkaConfig{
			Topic:   "orders",
			GroupID: "terracart-impact",
		},
		History: HistoryConfig{TimeoutSeconds: DefaultHistoryTimeoutSeconds},
	}
}

// Load reads a YAML config file over the defaults and then applies
// environment overrides. An empty path skips the file and still applies the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays recognized environment variables onto the config.
// Unparseable numeric values are ignored in favor of the existing setting.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvKafkaBrokers); v != "" {
		c.Kafka.Brokers = splitBrokers(v)
	}
	if v := os.Getenv(EnvBadgeCatalog); v != "" {
		c.Badges.CatalogPath = v
	}
	if v := os.Getenv(EnvCacheTTLSeconds); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			c.Cache.TTLSeconds = ttl
		}
	}
}

// Validate rejects configurations that cannot be acted on.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q",
			CacheBackendMemory, CacheBackendRedis, c.Cache.Backend)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	if c.History.TimeoutSeconds <= 0 {
		return fmt.Errorf("history.timeout_seconds must be positive, got %d", c.History.TimeoutSeconds)
	}
	return nil
}

// splitBrokers parses a comma-separated broker list, trimming whitespace
// and dropping empty entries.
func splitBrokers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
