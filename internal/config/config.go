package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultWeatherBaseURL is the OpenWeatherMap data API root.
const DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherConfig holds settings for the upstream weather provider.
type WeatherConfig struct {
	APIKey     string
	BaseURL    string
	TimeoutSec int
}

// Timeout returns the outbound request timeout. Zero means no timeout.
func (w WeatherConfig) Timeout() time.Duration {
	if w.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(w.TimeoutSec) * time.Second
}

// DatabaseConfig holds PostgreSQL settings for the lookup journal.
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

// Enabled reports whether the journal database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// MinIOConfig holds object storage settings for the payload archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether the payload archive is configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables once at startup.
type AppConfig struct {
	Port     string
	TimeZone string
	LogLevel string
	Weather  WeatherConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// The API key is read as-is; an empty key is not an error here.
func Load() *AppConfig {
	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		TimeZone: getEnv("APP_TZ", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Weather: WeatherConfig{
			APIKey:     getEnv("WEATHER_API_KEY", ""),
			BaseURL:    getEnv("WEATHER_API_BASE_URL", DefaultWeatherBaseURL),
			TimeoutSec: getEnvInt("WEATHER_API_TIMEOUT_SEC", 0),
		},
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
	}
}

// Location resolves TimeZone, falling back to UTC when it cannot be loaded.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
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
