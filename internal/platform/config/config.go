// Package config loads runtime configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by USER_STORE.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Notifier kinds accepted by NOTIFIER.
const (
	NotifierLog     = "log"
	NotifierWebhook = "webhook"
)

// Config holds the server configuration.
type Config struct {
	Port    string
	GinMode string

	UserStore string // file | sqlite | postgres | redis
	DataFile  string // JSON collection path for the file store

	DBDSN         string // full DSN; overrides the DB_* parts when set
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string
	RunMigrations bool

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisPrefix   string

	Notifier         string // log | webhook
	NotifyWebhookURL string
	NotifyTimeout    time.Duration

	CORSOrigins []string
	LogLevel    string
	SentryDSN   string
	Environment string
}

// Load reads .env (if present) and then the process environment.
// godotenv never overrides variables that are already set.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment with defaults applied.
func FromEnv() *Config {
	return &Config{
		Port:    getEnv("PORT", "3001"),
		GinMode: getEnv("GIN_MODE", "release"),

		UserStore: strings.ToLower(getEnv("USER_STORE", StoreFile)),
		DataFile:  getEnv("DATA_FILE", "./data/users.json"),

		DBDSN:         getEnv("DB_DSN", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "booking"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/booking.db"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisPrefix:   getEnv("REDIS_PREFIX", "booking"),

		Notifier:         strings.ToLower(getEnv("NOTIFIER", NotifierLog)),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		NotifyTimeout:    getEnvDuration("NOTIFY_TIMEOUT", 5*time.Second),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
