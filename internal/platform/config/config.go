package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogFormat       string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Analysis tunes the analysis service around the engine.
type Analysis struct {
	RegistryPath     string
	CacheTTL         time.Duration
	BatchLimit       int
	BatchConcurrency int
	AlertThreshold   float64
	HistoryLimit     int
}

// RedisConfig configures the optional Redis assessment cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional analysis history database.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// KafkaConfig configures the optional high-risk alert publisher.
type KafkaConfig struct {
	Brokers     []string
	Topic       string
	CreateTopic bool
}

// Security holds the admin token and per-client rate limit.
type Security struct {
	AdminToken         string
	RateLimitPerMinute int
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Analysis Analysis
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Security Security
}

// DefaultAlertTopic receives high-risk assessments.
const DefaultAlertTopic = "url.assessments.high_risk"

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func FromEnv() (Config, error) {
	_ = godotenv.Load() // silently ignore if .env is missing in prod

	var p parser
	cfg := Config{
		Server: Server{
			Addr:            p.str("PHISHSHIELD_ADDR", ":8080"),
			LogFormat:       strings.ToLower(p.str("LOG_FORMAT", "json")),
			LogLevel:        strings.ToLower(p.str("LOG_LEVEL", "info")),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Analysis: Analysis{
			RegistryPath:     p.str("REGISTRY_PATH", ""),
			CacheTTL:         p.duration("CACHE_TTL", 10*time.Minute),
			BatchLimit:       p.integer("BATCH_LIMIT", 50),
			BatchConcurrency: p.integer("BATCH_CONCURRENCY", 8),
			AlertThreshold:   p.float("ALERT_THRESHOLD", 0.7),
			HistoryLimit:     p.integer("HISTORY_LIMIT", 1000),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL:      p.str("DATABASE_URL", ""),
			MaxConns: int32(p.integer("DATABASE_MAX_CONNS", 10)), //nolint:gosec // bounded by validation below
		},
		Kafka: KafkaConfig{
			Brokers:     p.list("KAFKA_BROKERS"),
			Topic:       p.str("KAFKA_TOPIC", DefaultAlertTopic),
			CreateTopic: p.boolean("KAFKA_CREATE_TOPIC", false),
		},
		Security: Security{
			AdminToken:         p.str("ADMIN_TOKEN", ""),
			RateLimitPerMinute: p.integer("RATE_LIMIT_PER_MINUTE", 60),
		},
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that cannot be expressed by parsing alone.
func (c Config) Validate() error {
	switch {
	case c.Analysis.BatchLimit < 1:
		return fmt.Errorf("BATCH_LIMIT must be at least 1")
	case c.Analysis.BatchConcurrency < 1:
		return fmt.Errorf("BATCH_CONCURRENCY must be at least 1")
	case c.Analysis.AlertThreshold < 0 || c.Analysis.AlertThreshold > 1:
		return fmt.Errorf("ALERT_THRESHOLD must be within [0, 1]")
	case c.Analysis.HistoryLimit < 1:
		return fmt.Errorf("HISTORY_LIMIT must be at least 1")
	case c.Analysis.CacheTTL < 0:
		return fmt.Errorf("CACHE_TTL must not be negative")
	case c.Security.RateLimitPerMinute < 0:
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	case c.Postgres.MaxConns < 1 || c.Postgres.MaxConns > 1000:
		return fmt.Errorf("DATABASE_MAX_CONNS must be within [1, 1000]")
	}
	switch c.Server.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Server.LogFormat)
	}
	return nil
}

// parser reads typed values and keeps the first error it meets.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) float(key string, def float64) float64 {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) boolean(key string, def bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return v
}

func (p *parser) list(key string) []string {
	raw := p.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
}
