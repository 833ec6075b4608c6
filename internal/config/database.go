package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"socialfeed-backend/internal/infrastructure/database"
)

// strictEnv giống getEnvInt/getEnvDuration nhưng giữ lại lỗi parse đầu tiên
// thay vì âm thầm dùng default: cấu hình database sai thì không nên khởi động.
type strictEnv struct {
	err error
}

func (s *strictEnv) int(key, fallback string) int {
	v, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (s *strictEnv) duration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

// LoadDatabaseConfig đọc DB_* environment variables và trả về DBConfig cho pgxpool
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &strictEnv{}

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.int("DB_PORT", "5432"),
		Username: getEnv("DB_USER", "socialfeed"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   getEnv("DB_NAME", "socialfeed_dev"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", "25")),
		MinConns:          int32(env.int("DB_MIN_CONNECTIONS", "5")),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", "5m"),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", "1m"),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", "1m"),

		MaxRetries:     env.int("DB_MAX_RETRIES", "5"),
		RetryDelay:     env.duration("DB_RETRY_DELAY", "1s"),
		ConnectTimeout: env.duration("DB_CONNECT_TIMEOUT", "10s"),

		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
	}
	if env.err != nil {
		return nil, env.err
	}

	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}
