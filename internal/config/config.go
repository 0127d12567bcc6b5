// Package config loads liarsodds settings from an HCL file, then applies
// LIARSODDS_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/export"
	"github.com/lox/liarsodds/internal/probability"
)

// Config represents the complete configuration
type Config struct {
	LogLevel  string           `hcl:"log_level,optional"`
	Deck      *DeckSettings    `hcl:"deck,block"`
	Precision *PrecisionConfig `hcl:"precision,block"`
	Export    *ExportSettings  `hcl:"export,block"`

	// maxDrawSet records an explicit max_draw, which a deck size change keeps.
	maxDrawSet bool
}

// DeckSettings describes the deck shape
type DeckSettings struct {
	Size         int `hcl:"size,optional"`
	CardsPerRank int `hcl:"cards_per_rank,optional"`
	CardsPerSuit int `hcl:"cards_per_suit,optional"`
}

// PrecisionConfig selects rounding. Exact wins over Digits.
type PrecisionConfig struct {
	Digits int  `hcl:"digits,optional"`
	Exact  bool `hcl:"exact,optional"`
}

// ExportSettings controls the bulk table export
type ExportSettings struct {
	Output  string `hcl:"output,optional"`
	Format  string `hcl:"format,optional"`
	Pretty  bool   `hcl:"pretty,optional"`
	MinDraw int    `hcl:"min_draw,optional"`
	MaxDraw int    `hcl:"max_draw,optional"`
	Workers int    `hcl:"workers,optional"`
}

// Overrides holds values read from the environment. Empty fields are ignored.
type Overrides struct {
	LogLevel string `env:"LOG_LEVEL"`
	Digits   string `env:"DIGITS"`
	Output   string `env:"OUTPUT"`
	Format   string `env:"FORMAT"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LIARSODDS_"

// Default returns the default configuration: the 24-card liar's poker deck,
// probabilities rounded to four digits and a compact JSON export.
func Default() *Config {
	info := deck.LiarsPoker()
	return &Config{
		LogLevel: "info",
		Deck: &DeckSettings{
			Size:         info.Size,
			CardsPerRank: info.CardsPerRank,
			CardsPerSuit: info.CardsPerSuit,
		},
		Precision: &PrecisionConfig{Digits: 4},
		Export: &ExportSettings{
			Output:  "probability_data.json",
			Format:  string(export.FormatJSON),
			MinDraw: 1,
			MaxDraw: info.Size - 1,
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist, and
// then applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.maxDrawSet = cfg.Export != nil && cfg.Export.MaxDraw != 0
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	if c.Deck == nil {
		c.Deck = defaults.Deck
	}
	if c.Deck.Size == 0 {
		c.Deck.Size = defaults.Deck.Size
	}
	if c.Deck.CardsPerRank == 0 {
		c.Deck.CardsPerRank = defaults.Deck.CardsPerRank
	}
	if c.Deck.CardsPerSuit == 0 {
		c.Deck.CardsPerSuit = defaults.Deck.CardsPerSuit
	}

	// A file without a precision block keeps the default rounding; an empty
	// block means zero digits.
	if c.Precision == nil {
		c.Precision = defaults.Precision
	}

	if c.Export == nil {
		c.Export = &ExportSettings{}
	}
	if c.Export.Output == "" {
		c.Export.Output = defaults.Export.Output
	}
	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Export.MinDraw == 0 {
		c.Export.MinDraw = 1
	}
	if c.Export.MaxDraw == 0 {
		c.Export.MaxDraw = c.Deck.Size - 1
	}
}

// Apply copies every non-empty override into the configuration. Digits may
// be "exact" or a non-negative integer.
func (c *Config) Apply(o Overrides) error {
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Digits != "" {
		if err := c.SetDigits(o.Digits); err != nil {
			return err
		}
	}
	if o.Output != "" {
		c.Export.Output = o.Output
	}
	if o.Format != "" {
		c.Export.Format = o.Format
	}
	return nil
}

// SetDeckSize changes the deck size. The export draw range follows it up to
// size-1 unless max_draw was set explicitly, and is always clamped to the deck.
func (c *Config) SetDeckSize(size int) {
	c.Deck.Size = size
	if !c.maxDrawSet || c.Export.MaxDraw > size {
		c.Export.MaxDraw = size - 1
	}
}

// SetDigits parses "exact" or a digit count into the precision settings.
func (c *Config) SetDigits(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "exact") {
		c.Precision = &PrecisionConfig{Exact: true}
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid digits %q: must be \"exact\" or an integer", s)
	}
	c.Precision = &PrecisionConfig{Digits: n}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	info, err := c.DeckInfo()
	if err != nil {
		return err
	}

	if !c.Precision.Exact && c.Precision.Digits < 0 {
		return fmt.Errorf("precision digits cannot be negative: %d", c.Precision.Digits)
	}

	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return err
	}
	if err := c.DrawRange().Validate(info); err != nil {
		return err
	}
	if c.Export.Workers < 0 {
		return fmt.Errorf("export workers cannot be negative: %d", c.Export.Workers)
	}

	return nil
}

// DeckInfo converts the deck settings into a validated descriptor.
func (c *Config) DeckInfo() (deck.Info, error) {
	return deck.NewInfo(c.Deck.Size, c.Deck.CardsPerRank, c.Deck.CardsPerSuit)
}

// EnginePrecision converts the precision settings for the engine.
func (c *Config) EnginePrecision() probability.Precision {
	if c.Precision.Exact {
		return probability.Exact()
	}
	return probability.Digits(c.Precision.Digits)
}

// DrawRange returns the export draw range.
func (c *Config) DrawRange() export.Range {
	return export.Range{Min: c.Export.MinDraw, Max: c.Export.MaxDraw}
}

// Engine builds a probability engine from the configuration.
func (c *Config) Engine() (*probability.Engine, error) {
	info, err := c.DeckInfo()
	if err != nil {
		return nil, err
	}
	return probability.NewEngine(info, c.EnginePrecision())
}
