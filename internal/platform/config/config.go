package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	AdminToken    string
	AdminAddress  string
	TxTimeout     time.Duration

	Controller Controller
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Outbox     OutboxConfig
}

// Controller holds registration pricing and commit-reveal timing.
type Controller struct {
	MinCommitmentAge time.Duration
	MaxCommitmentAge time.Duration
	PricePerSecond   *big.Int
}

// DatabaseConfig selects postgres when URL is set, the in-memory store otherwise.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig enables the shared metadata cache when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig enables the Kafka event publisher when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var p parser
	cfg := Server{
		Addr:          p.str("BICNS_ADDR", ":8080"),
		LogLevel:      p.str("BICNS_LOG_LEVEL", "info"),
		JWTSigningKey: p.str("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     p.str("JWT_ISSUER", "bicns"),
		JWTAudience:   p.str("JWT_AUDIENCE", "bicns-api"),
		AdminToken:    p.str("ADMIN_TOKEN", ""),
		AdminAddress:  p.str("BICNS_ADMIN_ADDRESS", "0x000000000000000000000000000000000000ad01"),
		TxTimeout:     p.duration("TX_TIMEOUT", 5*time.Second),
		Controller: Controller{
			MinCommitmentAge: p.duration("BICNS_MIN_COMMITMENT_AGE", 10*time.Minute),
			MaxCommitmentAge: p.duration("BICNS_MAX_COMMITMENT_AGE", 24*time.Hour),
			PricePerSecond:   p.bigInt("BICNS_PRICE_PER_SECOND", big.NewInt(1)),
		},
		Database: DatabaseConfig{
			URL:          p.str("DATABASE_URL", ""),
			MaxOpenConns: p.int("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: p.int("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     p.duration("REDIS_CACHE_TTL", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: p.list("KAFKA_BROKERS"),
			Topic:   p.str("KAFKA_TOPIC", "bicns.events"),
		},
		Outbox: OutboxConfig{
			PollInterval: p.duration("OUTBOX_POLL_INTERVAL", time.Second),
			BatchSize:    p.int("OUTBOX_BATCH_SIZE", 100),
		},
	}
	if p.err != nil {
		return Server{}, p.err
	}
	if cfg.Controller.MaxCommitmentAge <= cfg.Controller.MinCommitmentAge {
		return Server{}, fmt.Errorf("BICNS_MAX_COMMITMENT_AGE must exceed BICNS_MIN_COMMITMENT_AGE")
	}
	if cfg.Outbox.BatchSize <= 0 {
		return Server{}, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive")
	}
	return cfg, nil
}

// parser keeps the first malformed variable it sees.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (p *parser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) bigInt(key string, def *big.Int) *big.Int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		p.fail(key, fmt.Errorf("%q is not a non-negative integer", raw))
		return def
	}
	return v
}

func (p *parser) list(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
