package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port            int
	MaxAmountCents  int64
	MaxMonths       int
	MaxRate         float64
	MaxGrowthRate   float64
	MaxHorizonYears int
	MaxDebts        int
	MaxOptions      int
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
	LogFormat       string
	RedisAddr       string
	CacheTTL        time.Duration
	CacheMaxEntries int
	CORSOrigins     []string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxAmountCents:  getEnvInt64("MAX_AMOUNT_CENTS", 10_000_000_000),
		MaxMonths:       getEnvInt("MAX_MONTHS", 360),
		MaxRate:         getEnvFloat("MAX_RATE", 0.5),
		MaxGrowthRate:   getEnvFloat("MAX_GROWTH_RATE", 0.3),
		MaxHorizonYears: getEnvInt("MAX_HORIZON_YEARS", 50),
		MaxDebts:        getEnvInt("MAX_DEBTS", 20),
		MaxOptions:      getEnvInt("MAX_OPTIONS", 10),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "mcp-debt-planner"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:       getEnvString("LOG_FORMAT", "text"),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 10000),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
