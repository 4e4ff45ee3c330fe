package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PG_URL", "postgres://localhost:5432/investments")
	t.Setenv("MARKET_DATA_API", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("QUOTE_TTL_MINUTES", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.QuoteTTL)
	assert.Equal(t, "test-key", cfg.MarketAPIKey)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("PG_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	setRequired(t)
	t.Setenv("MARKET_DATA_API", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadQuoteTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("QUOTE_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.QuoteTTL)

	t.Setenv("QUOTE_TTL_MINUTES", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("QUOTE_TTL_MINUTES", "soon")
	_, err = Load()
	assert.Error(t, err)
}
