// File: /config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	DatabaseDriver string
	DatabaseURL    string
	Seed           bool

	SeedAdminEmail    string
	SeedAdminPassword string

	JWTSecret string
	JWTTTL    time.Duration

	RateLimitPerMinute    int
	RateLimitBurst        int
	ComparisonConcurrency int

	// Email Configuration
	EmailEnabled bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	TaxReminderInterval   time.Duration
	TaxReminderWindowDays int
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseDriver: getEnv("DB_DRIVER", "mysql"),
		DatabaseURL:    getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/fleetexpense?charset=utf8mb4&parseTime=True&loc=Local"),
		Seed:           getEnvBool("SEED", false),

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTTTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),

		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 10),
		ComparisonConcurrency: getEnvInt("COMPARISON_CONCURRENCY", 4),

		// Email settings
		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 2525),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@fleetexpense.local"),
		FromName:     getEnv("FROM_NAME", "Fleet Expense"),

		TaxReminderInterval:   getEnvDuration("TAX_REMINDER_INTERVAL", 24*time.Hour),
		TaxReminderWindowDays: getEnvInt("TAX_REMINDER_WINDOW_DAYS", 14),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
