package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Gateway  GatewayConfig
	Product  ServiceConfig
	Order    ServiceConfig
	User     ServiceConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Broker   BrokerConfig
	Log      LogConfig
	Timeouts TimeoutConfig
}

// ServiceConfig addresses one domain service.
type ServiceConfig struct {
	Host string
	Port string
}

func (s ServiceConfig) Addr() string { return fmt.Sprintf("%s:%s", s.Host, s.Port) }

func (s ServiceConfig) URL() string { return "http://" + s.Addr() }

type GatewayConfig struct {
	Host string
	Port string
}

func (g GatewayConfig) Addr() string { return fmt.Sprintf("%s:%s", g.Host, g.Port) }

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type CacheConfig struct {
	// TTL bounds how stale any cached snapshot may be. Required.
	TTL       time.Duration
	KeyPrefix string
}

type BrokerConfig struct {
	URL string
	// PublishTimeout bounds how long a request handler waits for broker
	// acknowledgment before failing with a retryable error.
	PublishTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type TimeoutConfig struct {
	ServerRead  time.Duration
	ServerWrite time.Duration
	ServerIdle  time.Duration
}

// Load reads configuration from the environment (and .env if present).
// Missing or malformed required values return a descriptive error so the
// process fails before accepting traffic.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Gateway: GatewayConfig{
			Host: getEnv("GATEWAY_HOST", "0.0.0.0"),
			Port: getEnv("GATEWAY_PORT", "3000"),
		},
		Product: ServiceConfig{
			Host: getEnv("PRODUCT_SERVICE_HOST", "localhost"),
			Port: getEnv("PRODUCT_SERVICE_PORT", "3001"),
		},
		Order: ServiceConfig{
			Host: getEnv("ORDER_SERVICE_HOST", "localhost"),
			Port: getEnv("ORDER_SERVICE_PORT", "3002"),
		},
		User: ServiceConfig{
			Host: getEnv("USER_SERVICE_HOST", "localhost"),
			Port: getEnv("USER_SERVICE_PORT", "3003"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Cache: CacheConfig{
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", ""),
		},
		Broker: BrokerConfig{
			URL:            getEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			PublishTimeout: getDurationEnv("PUBLISH_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Timeouts: TimeoutConfig{
			ServerRead:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			ServerWrite: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ServerIdle:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
	}

	ttl, err := requiredSecondsEnv("CACHE_TTL")
	if err != nil {
		return nil, err
	}
	cfg.Cache.TTL = ttl

	if err := validateBrokerURL(cfg.Broker.URL); err != nil {
		return nil, err
	}
	if cfg.Broker.PublishTimeout <= 0 {
		return nil, fmt.Errorf("PUBLISH_TIMEOUT must be positive, got %s", cfg.Broker.PublishTimeout)
	}

	return cfg, nil
}

func validateBrokerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("RABBITMQ_URL %q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return fmt.Errorf("RABBITMQ_URL %q must use the amqp or amqps scheme", raw)
	}
	return nil
}

// requiredSecondsEnv parses a required whole-seconds value, matching the
// source system's CACHE_TTL convention.
func requiredSecondsEnv(key string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, fmt.Errorf("required environment variable %s is not set", key)
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of seconds, got %q", key, raw)
	}
	if secs <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, secs)
	}
	return time.Duration(secs) * time.Second, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
