package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Snowflake SnowflakeConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	SwaggerSpecPath string
}

type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type SnowflakeConfig struct {
	DatacenterID int64
	WorkerID     int64
}

var ErrMissingTokenSecret = errors.New("TOKEN_SECRET is required")

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (K8s uses ConfigMaps/Secrets)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("NOTES_API_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			SwaggerSpecPath: getEnv("SWAGGER_SPEC_PATH", "api/openapi.yaml"),
		},
		Database: DatabaseConfig{
			PrimaryDSN:      getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs:     splitNonEmpty(getEnv("DB_REPLICA1_DSN", ""), getEnv("DB_REPLICA2_DSN", "")),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("TOKEN_SECRET", ""),
			TokenTTL:    time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
			BcryptCost:  getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Snowflake: SnowflakeConfig{
			DatacenterID: int64(getEnvAsInt("SNOWFLAKE_DATACENTER_ID", 1)),
			WorkerID:     int64(getEnvAsInt("SNOWFLAKE_WORKER_ID", 1)),
		},
	}

	if cfg.Auth.TokenSecret == "" {
		return nil, ErrMissingTokenSecret
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitNonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
