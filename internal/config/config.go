package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Catalog       CatalogConfig
	Server        ServerConfig
	Logging       LoggingConfig
	AI            AIConfig
	Redis         RedisConfig
	Clock         ClockConfig
	Notifications NotificationConfig
}

// CatalogConfig holds the PostgreSQL room catalog configuration.
// The catalog is optional; without a DSN or host the seed rooms are served.
type CatalogConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Migrate            bool // apply embedded migrations before loading
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// AIConfig holds the remote text-completion configuration
type AIConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	MaxTokens   int
	Timeout     int // seconds
	RateLimit   float64
	Burst       int
	Enabled     bool
}

// RedisConfig holds the suggestion cache configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      int // seconds
	Enabled  bool
}

// ClockConfig controls how the reference time/day is derived from wall time
type ClockConfig struct {
	Timezone  string
	OpenHour  int
	CloseHour int
}

// NotificationConfig holds event notification polling configuration
type NotificationConfig struct {
	IntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Catalog: CatalogConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "campusspot"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 5),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			Migrate:            getEnvAsBool("PG_MIGRATE", false),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		AI: AIConfig{
			APIKey:      getEnv("AI_API_KEY", getEnv("OPENAI_API_KEY", "")),
			APIBase:     getEnv("AI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:   getEnv("AI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 512),
			Timeout:     getEnvAsInt("AI_TIMEOUT_SECONDS", 5),
			RateLimit:   getEnvAsFloat("AI_RATE_LIMIT", 3),
			Burst:       getEnvAsInt("AI_BURST", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsInt("REDIS_TTL_SECONDS", 3600),
		},
		Clock: ClockConfig{
			Timezone:  getEnv("CLOCK_TIMEZONE", "Local"),
			OpenHour:  getEnvAsInt("CLOCK_OPEN_HOUR", 8),
			CloseHour: getEnvAsInt("CLOCK_CLOSE_HOUR", 18),
		},
		Notifications: NotificationConfig{
			IntervalSeconds: getEnvAsInt("NOTIFY_INTERVAL_SECONDS", 10),
		},
	}

	cfg.AI.Enabled = cfg.AI.APIKey != ""
	cfg.Redis.Enabled = cfg.Redis.Addr != ""

	if cfg.Clock.OpenHour < 0 || cfg.Clock.CloseHour > 23 || cfg.Clock.OpenHour > cfg.Clock.CloseHour {
		return nil, fmt.Errorf("invalid operating window %d-%d", cfg.Clock.OpenHour, cfg.Clock.CloseHour)
	}
	if cfg.AI.Timeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive, got %d", cfg.AI.Timeout)
	}

	return cfg, nil
}

// CatalogEnabled reports whether a PostgreSQL catalog is configured
func (c *Config) CatalogEnabled() bool {
	return c.Catalog.DSN != "" || c.Catalog.Host != ""
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.Catalog.DSN != "" {
		return c.Catalog.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Catalog.Host,
		c.Catalog.Port,
		c.Catalog.User,
		c.Catalog.Password,
		c.Catalog.Database,
		c.Catalog.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
