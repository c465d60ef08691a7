package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds settings for the notification sink's Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// AuthConfig selects the ownership policy for the whole process.
// RequireOwnership=false is a debug-only open mode; production deployments
// keep the default of true.
type AuthConfig struct {
	RequireOwnership bool
}

// HTTPConfig holds request handling settings.
type HTTPConfig struct {
	RequestTimeout  time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Auth     AuthConfig
	HTTP     HTTPConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_NOTIFICATIONS_ENABLED", true),
		},
		Auth: AuthConfig{
			RequireOwnership: getEnvBool("AUTH_REQUIRE_OWNERSHIP", true),
		},
		HTTP: HTTPConfig{
			RequestTimeout:  time.Duration(getEnvInt("HTTP_REQUEST_TIMEOUT_SEC", 15)) * time.Second,
			DefaultPageSize: getEnvInt("HTTP_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getEnvInt("HTTP_MAX_PAGE_SIZE", 100),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
