package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CMC_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://pro-api.coinmarketcap.com", cfg.CMC.BaseURL)
	assert.Equal(t, "USD", cfg.CMC.Convert)
	assert.Equal(t, 1000.0, cfg.Advisor.DefaultBudget)
	assert.Equal(t, 10, cfg.Advisor.DefaultTopN)
	assert.Equal(t, 50, cfg.Advisor.UniverseSize)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ADVISOR_DEFAULT_BUDGET", "2500.5")
	t.Setenv("ADVISOR_UNIVERSE_SIZE", "100")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 2500.5, cfg.Advisor.DefaultBudget)
	assert.Equal(t, 100, cfg.Advisor.UniverseSize)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 20, cfg.Database.MaxConns)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("CMC_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CMC_API_KEY")
}

func TestLoad_InvalidEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV")
}

func TestLoad_InvalidBudget(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADVISOR_DEFAULT_BUDGET", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADVISOR_DEFAULT_BUDGET")
}

func TestGetEnvHelpers_BadValuesFallBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	t.Setenv("SOME_FLOAT", "nope")
	t.Setenv("SOME_BOOL", "maybe")
	t.Setenv("SOME_DUR", "forever")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.Equal(t, 1.5, getEnvAsFloat("SOME_FLOAT", 1.5))
	assert.Equal(t, true, getEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, getEnvAsDuration("SOME_DUR", "1h"), getEnvAsDuration("UNSET_DUR", "1h"))
}
