package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsodds/internal/config"
	"github.com/lox/liarsodds/internal/probability"
)

// Globals are the flags shared by every command. Flags win over the config
// file and the environment.
type Globals struct {
	Config       string `kong:"default='liarsodds.hcl',help='Path to HCL config file'"`
	LogLevel     string `kong:"help='Log level (debug, info, warn, error)'"`
	Digits       string `kong:"help='Round to this many decimal digits, or exact'"`
	Exact        bool   `kong:"help='Report unrounded probabilities'"`
	DeckSize     int    `kong:"help='Number of cards in the deck'"`
	CardsPerRank int    `kong:"help='Cards of each rank in the deck'"`
	CardsPerSuit int    `kong:"help='Cards of each suit in the deck'"`
}

// load reads the config file and environment, then applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Digits != "" {
		if err := cfg.SetDigits(g.Digits); err != nil {
			return nil, err
		}
	}
	if g.Exact {
		cfg.Precision = &config.PrecisionConfig{Exact: true}
	}
	if g.DeckSize > 0 {
		cfg.SetDeckSize(g.DeckSize)
	}
	if g.CardsPerRank > 0 {
		cfg.Deck.CardsPerRank = g.CardsPerRank
	}
	if g.CardsPerSuit > 0 {
		cfg.Deck.CardsPerSuit = g.CardsPerSuit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and engine every
// command needs.
func (g *Globals) setup(w io.Writer) (*config.Config, *log.Logger, *probability.Engine, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(w, cfg.LogLevel)
	engine, err := cfg.Engine()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("Loaded configuration",
		"config", g.Config,
		"deck", engine.Deck().Size,
		"cards_per_rank", engine.Deck().CardsPerRank,
		"cards_per_suit", engine.Deck().CardsPerSuit,
		"precision", engine.Precision())
	return cfg, logger, engine, nil
}

// newLogger creates a console logger at the named level.
func newLogger(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
