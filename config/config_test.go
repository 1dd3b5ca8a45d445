// File: /config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("SEED", "")
	t.Setenv("SEED_ADMIN_EMAIL", "")
	t.Setenv("SEED_ADMIN_PASSWORD", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 14, cfg.TaxReminderWindowDays)
	assert.False(t, cfg.Seed)
	assert.Empty(t, cfg.SeedAdminEmail)
	assert.Empty(t, cfg.SeedAdminPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("TAX_REMINDER_INTERVAL", "90m")
	t.Setenv("SEED", "true")
	t.Setenv("SEED_ADMIN_EMAIL", "root@example.com")
	t.Setenv("SEED_ADMIN_PASSWORD", "Seed-Pass-1")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.True(t, cfg.EmailEnabled)
	assert.Equal(t, 90*time.Minute, cfg.TaxReminderInterval)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "root@example.com", cfg.SeedAdminEmail)
	assert.Equal(t, "Seed-Pass-1", cfg.SeedAdminPassword)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg := Load()

	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}
