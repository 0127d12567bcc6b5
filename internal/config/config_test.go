package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/export"
	"github.com/lox/liarsodds/internal/probability"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liarsodds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	info, err := cfg.DeckInfo()
	require.NoError(t, err)
	assert.Equal(t, deck.LiarsPoker(), info)
	assert.Equal(t, probability.Digits(4), cfg.EnginePrecision())
	assert.Equal(t, export.Range{Min: 1, Max: 23}, cfg.DrawRange())
	assert.Equal(t, "probability_data.json", cfg.Export.Output)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

deck {
  size           = 52
  cards_per_rank = 4
  cards_per_suit = 13
}

precision {
  digits = 6
}

export {
  output = "table.yaml"
  format = "yaml"
  pretty = true
  workers = 2
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 52, cfg.Deck.Size)
	assert.Equal(t, 13, cfg.Deck.CardsPerSuit)
	assert.Equal(t, probability.Digits(6), cfg.EnginePrecision())
	assert.Equal(t, "table.yaml", cfg.Export.Output)
	assert.True(t, cfg.Export.Pretty)
	assert.Equal(t, 2, cfg.Export.Workers)
	assert.Equal(t, export.Range{Min: 1, Max: 51}, cfg.DrawRange())

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, 52, engine.Deck().Size)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
precision {
  exact = true
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24, cfg.Deck.Size)
	assert.Equal(t, probability.Exact(), cfg.EnginePrecision())
}

func TestLoadInvalidHCL(t *testing.T) {
	path := writeConfig(t, `deck {`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LIARSODDS_LOG_LEVEL", "warn")
	t.Setenv("LIARSODDS_DIGITS", "exact")
	t.Setenv("LIARSODDS_OUTPUT", "out.yaml")
	t.Setenv("LIARSODDS_FORMAT", "yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, probability.Exact(), cfg.EnginePrecision())
	assert.Equal(t, "out.yaml", cfg.Export.Output)
	assert.Equal(t, "yaml", cfg.Export.Format)
}

func TestInvalidDigitsOverride(t *testing.T) {
	t.Setenv("LIARSODDS_DIGITS", "lots")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "deck size", mutate: func(c *Config) { c.Deck.Size = -1 }},
		{name: "rank larger than deck", mutate: func(c *Config) { c.Deck.CardsPerRank = 30 }},
		{name: "negative digits", mutate: func(c *Config) { c.Precision.Digits = -2 }},
		{name: "format", mutate: func(c *Config) { c.Export.Format = "xml" }},
		{name: "draw range", mutate: func(c *Config) { c.Export.MaxDraw = 25 }},
		{name: "workers", mutate: func(c *Config) { c.Export.Workers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSetDeckSize(t *testing.T) {
	t.Run("defaults follow the deck", func(t *testing.T) {
		cfg := Default()
		cfg.SetDeckSize(52)
		assert.Equal(t, export.Range{Min: 1, Max: 51}, cfg.DrawRange())

		cfg.SetDeckSize(20)
		assert.Equal(t, export.Range{Min: 1, Max: 19}, cfg.DrawRange())
	})

	t.Run("file without max_draw follows the deck", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
deck {
  size = 52
}
`))
		require.NoError(t, err)
		assert.Equal(t, 51, cfg.Export.MaxDraw)

		cfg.SetDeckSize(40)
		assert.Equal(t, 39, cfg.Export.MaxDraw)
	})

	t.Run("explicit max_draw is kept", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
export {
  max_draw = 10
}
`))
		require.NoError(t, err)

		cfg.SetDeckSize(52)
		assert.Equal(t, 10, cfg.Export.MaxDraw)

		cfg.SetDeckSize(8)
		assert.Equal(t, 7, cfg.Export.MaxDraw, "clamped to the deck")
		require.NoError(t, cfg.Validate())
	})
}
