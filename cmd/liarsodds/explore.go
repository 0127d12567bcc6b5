package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/liarsodds/internal/tui"
)

// ExploreCmd starts the interactive explorer
type ExploreCmd struct {
	Cards   int    `kong:"default='5',help='Cards on the table to start with'"`
	LogFile string `kong:"default='liarsodds-explore.log',help='Debug log file (the terminal is taken by the UI)'"`
}

func (c *ExploreCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := newLogger(logFile, cfg.LogLevel)
	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	logger.Info("Starting explorer", "deck", engine.Deck().Size, "cards", c.Cards)

	model := tui.NewModel(engine, logger, c.Cards)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("explorer failed: %w", err)
	}
	return nil
}
