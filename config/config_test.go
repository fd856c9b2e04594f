package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDefaults(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("EDU_TEST_UNSET_KEY", "fallback"))
	assert.Equal(t, 10, getEnvInt("EDU_TEST_UNSET_KEY", 10))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("ORDER_AUDIT_SCHEDULE", "@hourly")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "sqlite", AppConfig.DBDriver)
	assert.Equal(t, 25, AppConfig.DBMaxConns)
	assert.Equal(t, "@hourly", AppConfig.OrderAuditSchedule)
}

func TestEmptyAuditScheduleDisablesAudit(t *testing.T) {
	t.Setenv("ORDER_AUDIT_SCHEDULE", "")
	LoadConfig()
	assert.Empty(t, AppConfig.OrderAuditSchedule)
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	assert.Equal(t, 10, getEnvInt("DB_MAX_CONNS", 10))
}
