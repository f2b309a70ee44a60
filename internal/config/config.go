package config

import (
	"os"
	"strconv"
	"time"

	"llamacrm-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	PostgresDSN string
	RedisAddr   string
	RedisPass   string

	// JWT
	JWT jwt.Config

	// Dashboard operator
	OperatorName         string
	OperatorPasswordHash string

	// Gemini enrichment
	GeminiAPIKey string
	GeminiModel  string

	// Report cache
	ReportCacheTTL time.Duration
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   "llama-crm",
			Audience: "llama-crm-dashboard",
			TTL:      24 * time.Hour,
		},

		OperatorName:         getEnv("DASHBOARD_OPERATOR", "operador"),
		OperatorPasswordHash: getEnv("DASHBOARD_PASSWORD_HASH", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL_SECONDS", 30) * time.Second,
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
