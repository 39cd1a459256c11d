package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Valhalla Config
	ValhallaURL         string        `env:"VALHALLA_URL" envDefault:"https://valhalla1.openstreetmap.de"`
	ValhallaTimeout     time.Duration `env:"VALHALLA_TIMEOUT" envDefault:"10s"`
	ValhallaMinInterval time.Duration `env:"VALHALLA_MIN_INTERVAL" envDefault:"1100ms"`

	// Routing Config
	DefaultBufferKm   float64 `env:"DEFAULT_BUFFER_KM" envDefault:"2"`
	HazardMaxAgeHours int     `env:"HAZARD_MAX_AGE_HOURS" envDefault:"24"`

	// Storage Config: при заданном DATABASE_URL используется PostgreSQL,
	// иначе при заданном REDIS_ADDR - Redis, иначе in-memory хранилище
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Cleanup Config: 0 отключает фоновую очистку старых инцидентов
	CleanupMaxAgeHours int           `env:"CLEANUP_MAX_AGE_HOURS" envDefault:"0"`
	CleanupInterval    time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
}

// HazardMaxAge возвращает окно свежести препятствий как Duration
func (c *Config) HazardMaxAge() time.Duration {
	return time.Duration(c.HazardMaxAgeHours) * time.Hour
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ValhallaURL:         getEnv("VALHALLA_URL", "https://valhalla1.openstreetmap.de"),
		ValhallaTimeout:     getEnvAsDuration("VALHALLA_TIMEOUT", 10*time.Second),
		ValhallaMinInterval: getEnvAsDuration("VALHALLA_MIN_INTERVAL", 1100*time.Millisecond),
		DefaultBufferKm:     getEnvAsFloat("DEFAULT_BUFFER_KM", 2),
		HazardMaxAgeHours:   getEnvAsInt("HAZARD_MAX_AGE_HOURS", 24),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:      getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:   getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:    getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		CleanupMaxAgeHours:  getEnvAsInt("CLEANUP_MAX_AGE_HOURS", 0),
		CleanupInterval:     getEnvAsDuration("CLEANUP_INTERVAL", time.Hour),
	}

	if cfg.HazardMaxAgeHours <= 0 {
		return nil, fmt.Errorf("HAZARD_MAX_AGE_HOURS must be positive")
	}
	if cfg.DefaultBufferKm <= 0 {
		return nil, fmt.Errorf("DEFAULT_BUFFER_KM must be positive")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
