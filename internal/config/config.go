package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sefazor/taskflow-client/pkg/payment"
)

type BackendConfig struct {
	URL            string
	RequestTimeout time.Duration
}

type PaymentConfig struct {
	PollMaxRetries int
	PollInterval   time.Duration
}

type Config struct {
	Env      string
	LogLevel string

	ListenAddr string

	SessionDBPath     string
	HeartbeatInterval time.Duration

	Backend BackendConfig
	Payment PaymentConfig
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Env = getEnvOrDefault("FRONTEND_ENV", "production")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", ":3000")

	cfg.SessionDBPath = getEnvOrDefault("SESSION_DB_PATH", defaultSessionDBPath())
	cfg.HeartbeatInterval = getEnvAsDuration("SSE_HEARTBEAT_INTERVAL", 1*time.Second)

	cfg.Backend.URL = strings.TrimRight(getEnvOrDefault("BACKEND_URL", "http://localhost:8001"), "/")
	cfg.Backend.RequestTimeout = getEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 10*time.Second)

	cfg.Payment.PollMaxRetries = getEnvAsInt("PAYMENT_POLL_MAX_RETRIES", payment.DefaultMaxRetries)
	cfg.Payment.PollInterval = getEnvAsDuration("PAYMENT_POLL_INTERVAL", payment.DefaultPollInterval)

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) PollConfig() payment.PollConfig {
	return payment.PollConfig{
		MaxRetries: c.Payment.PollMaxRetries,
		Interval:   c.Payment.PollInterval,
	}
}

func defaultSessionDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "taskflow-session.db"
	}
	return filepath.Join(dir, "taskflow", "session.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnvOrDefault(key, strconv.Itoa(defaultValue))
	if value, err := strconv.Atoi(valueStr); err == nil && value >= 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnvOrDefault(key, defaultValue.String())
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
