package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port      string
	Env       string
	APIPrefix string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	SigningKey        string
	ExpirationMinutes int
}

// BrokerConfig holds task broker configuration
type BrokerConfig struct {
	RedisURL    string
	Concurrency int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Broker      BrokerConfig
	Log         LogConfig
	Metrics     MetricsConfig
	CORSOrigins []string
}

// Load reads configuration from environment variables. SECRET_KEY and
// POSTGRES_URL have no usable defaults, so a missing value is an error.
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			URL:             getEnv("POSTGRES_URL", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			Env:       getEnv("APP_ENV", "development"),
			APIPrefix: getEnv("API_PREFIX", "/api"),
		},
		JWT: JWTConfig{
			SigningKey:        getEnv("SECRET_KEY", ""),
			ExpirationMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
		},
		Broker: BrokerConfig{
			RedisURL:    getEnv("REDIS_URL", ""),
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 10),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
		CORSOrigins: getEnvAsList("CORS_ORIGINS"),
	}

	if config.JWT.SigningKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if config.DB.URL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required")
	}

	return config, nil
}

// LogFields returns the configuration as zap logger fields
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("api_prefix", c.Server.APIPrefix),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get comma-separated environment variables as a list
func getEnvAsList(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Helper function to get environment variables as GORM log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch getEnv(key, "") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
