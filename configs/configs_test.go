package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL", "OUTPUT_DIR", "EXCHANGE", "SYMBOLS",
		"SCRAPE_RETRIES", "SCRAPE_BACKOFF_BASE", "KAFKA_BROKER", "SERVER_PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := AppLoad()
	assert.Equal(t, "NSE", cfg.Exchange)
	assert.Equal(t, []string{"NIFTY", "BANKNIFTY"}, cfg.Symbols)
	assert.Equal(t, 3, cfg.Scrape.Retries)
	assert.Equal(t, 2, cfg.Scrape.BackoffBase)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestAppLoadOverridesAndListTrimming(t *testing.T) {
	t.Setenv("SYMBOLS", " NIFTY , FINNIFTY ,")
	t.Setenv("SCRAPE_RETRIES", "5")
	t.Setenv("SCRAPE_BACKOFF_BASE", "not-a-number")

	cfg := AppLoad()
	assert.Equal(t, []string{"NIFTY", "FINNIFTY"}, cfg.Symbols)
	assert.Equal(t, 5, cfg.Scrape.Retries)
	assert.Equal(t, 2, cfg.Scrape.BackoffBase)
}
