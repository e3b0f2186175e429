package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "workboard.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	path := DefaultConfigFile
	if p := os.Getenv("WORKBOARD_CONFIG"); p != "" {
		path = p
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator supplied
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "WORKBOARD_PORT")
	setString(&cfg.Server.CORSOrigin, "WORKBOARD_CORS_ORIGIN")
	setDuration(&cfg.Server.RequestTimeout, "WORKBOARD_REQUEST_TIMEOUT")
	setInt64(&cfg.Server.MaxBodyBytes, "WORKBOARD_MAX_BODY_BYTES")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "WORKBOARD_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "WORKBOARD_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "WORKBOARD_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "WORKBOARD_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "WORKBOARD_PG_HEALTH_CHECK")

	// Auth
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "WORKBOARD_JWT_ISSUER")
	setDuration(&cfg.Auth.TokenExpiry, "WORKBOARD_TOKEN_EXPIRY")
	setInt(&cfg.Auth.BcryptCost, "WORKBOARD_BCRYPT_COST")
	setString(&cfg.Auth.SuperAdminEmail, "WORKBOARD_SUPER_ADMIN_EMAIL")
	setString(&cfg.Auth.SuperAdminPassword, "WORKBOARD_SUPER_ADMIN_PASSWORD")

	setString(&cfg.Logging.Level, "WORKBOARD_LOG_LEVEL")
	setString(&cfg.Logging.Service, "WORKBOARD_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "WORKBOARD_LOG_ASYNC")

	setFloat64(&cfg.Rate.RequestsPerSecond, "WORKBOARD_RATE_RPS")
	setInt(&cfg.Rate.Burst, "WORKBOARD_RATE_BURST")
	setDuration(&cfg.Rate.CleanupInterval, "WORKBOARD_RATE_CLEANUP_INTERVAL")
	setDuration(&cfg.Rate.MaxIdleTime, "WORKBOARD_RATE_MAX_IDLE_TIME")

	setInt(&cfg.Breaker.MaxFailures, "WORKBOARD_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "WORKBOARD_BREAKER_TIMEOUT")

	// Cache
	setInt64(&cfg.Cache.L1MaxSizeMB, "WORKBOARD_CACHE_L1_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "WORKBOARD_CACHE_TTL")
	setDuration(&cfg.Cache.IdempotencyTTL, "WORKBOARD_IDEMPOTENCY_TTL")
	setString(&cfg.Cache.SharedBucket, "WORKBOARD_CACHE_SHARED_BUCKET")

	setString(&cfg.NATS.URL, "NATS_URL")

	// OpenTelemetry
	setString(&cfg.OTEL.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setBool(&cfg.OTEL.Insecure, "WORKBOARD_OTEL_INSECURE")
	setFloat64(&cfg.OTEL.SampleRatio, "WORKBOARD_OTEL_SAMPLE_RATIO")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters")
	}
	if cfg.Auth.TokenExpiry <= 0 {
		return errors.New("auth.token_expiry must be positive")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost must be between 4 and 31")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Rate.RequestsPerSecond <= 0 {
		return errors.New("rate.requests_per_second must be positive")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return errors.New("otel.sample_ratio must be between 0 and 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
