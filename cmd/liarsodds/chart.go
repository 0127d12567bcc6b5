package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/liarsodds/internal/chart"
)

// ChartCmd renders every hand's curve over the configured draw range
type ChartCmd struct {
	NoColor bool `kong:"help='Disable colored output'"`
}

func (c *ChartCmd) Run(g *Globals) error {
	return c.run(g, os.Stdout, os.Stderr)
}

func (c *ChartCmd) run(g *Globals, out, errOut io.Writer) error {
	cfg, logger, engine, err := g.setup(errOut)
	if err != nil {
		return err
	}

	curves, err := chart.Curves(engine, cfg.DrawRange())
	if err != nil {
		return err
	}
	logger.Debug("Computed curves", "hands", len(curves), "precision", engine.Precision())

	info := engine.Deck()
	return chart.Render(out, curves, chart.Options{
		Title:   fmt.Sprintf("Hand probabilities, %d-card deck (%s)", info.Size, engine.Precision()),
		NoColor: c.NoColor,
	})
}
