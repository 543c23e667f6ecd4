package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Auth        AuthConfig
	Upload      UploadConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	User            string
	Password        string
	Host            string
	Port            int
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Notification API the consumer forwards events to.
	NotificationURL    string
	NotificationAPIKey string
}

type AuthConfig struct {
	// InternalAPIKey guards internal endpoints (social-login assertions).
	InternalAPIKey string
	// ResetTokenSecret signs short-lived password-reset tokens.
	ResetTokenSecret     string
	ResetTokenExpiration time.Duration
	// TokenCacheTTL bounds how long a token->user resolution may be served
	// from redis before hitting the store again.
	TokenCacheTTL time.Duration
}

type UploadConfig struct {
	Dir       string
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Load reads configuration from the environment, with .env as a convenience
// for local development. Missing values fall back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getInt("DB_PORT", 3306),
			Name:            getEnv("DB_NAME", "accounts"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:               getEnv("RABBITMQ_HOST", "localhost"),
			Port:               getInt("RABBITMQ_PORT", 5672),
			User:               getEnv("RABBITMQ_USER", "guest"),
			Password:           getEnv("RABBITMQ_PASSWORD", "guest"),
			NotificationURL:    getEnv("NOTIFICATION_API_URL", "http://localhost:9090/internal/notifications"),
			NotificationAPIKey: getEnv("NOTIFICATION_API_KEY", ""),
		},
		Auth: AuthConfig{
			InternalAPIKey:       getEnv("INTERNAL_API_KEY", ""),
			ResetTokenSecret:     getEnv("RESET_TOKEN_SECRET", "dev-only-secret"),
			ResetTokenExpiration: getDuration("RESET_TOKEN_EXPIRATION", time.Hour),
			TokenCacheTTL:        getDuration("TOKEN_CACHE_TTL", 5*time.Minute),
		},
		Upload: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes:  getInt64("UPLOAD_MAX_BYTES", 10<<20),
			MaxWidth:  getInt("UPLOAD_MAX_WIDTH", 1280),
			MaxHeight: getInt("UPLOAD_MAX_HEIGHT", 1280),
			Quality:   getInt("UPLOAD_JPEG_QUALITY", 85),
		},
	}
}

// GetDSN builds the MySQL DSN. parseTime is required for time.Time scans.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
