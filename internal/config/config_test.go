package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5175, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "", cfg.Words.DictionaryFile)
	assert.Equal(t, 2000, cfg.Words.BatchSize)
	assert.Equal(t, 1600*time.Millisecond, cfg.Game.RevealDelay)
	assert.Equal(t, "", cfg.Store.SQLiteDSN)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORDS_BATCH_SIZE", "50")
	t.Setenv("GAME_REVEAL_DELAY", "250ms")
	t.Setenv("STORE_SQLITE_DSN", "./data/rounds.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Words.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.RevealDelay)
	assert.Equal(t, "./data/rounds.db", cfg.Store.SQLiteDSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}
