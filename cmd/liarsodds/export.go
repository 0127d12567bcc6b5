package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/liarsodds/internal/config"
	"github.com/lox/liarsodds/internal/export"
	"github.com/lox/liarsodds/internal/probability"
)

// ExportCmd writes the bulk probability table
type ExportCmd struct {
	Output  string `kong:"help='Output file, - for stdout'"`
	Format  string `kong:"help='Output format (json or yaml)'"`
	Pretty  bool   `kong:"help='Indent the output'"`
	Workers int    `kong:"help='Series computed in parallel (0 = one per CPU)'"`
}

func (c *ExportCmd) Run(g *Globals) error {
	cfg, logger, engine, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(logger)
	defer cancel()
	return c.run(ctx, cfg, logger, engine, os.Stdout, quartz.NewReal())
}

func (c *ExportCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, engine *probability.Engine, out io.Writer, clock quartz.Clock) error {
	settings := *cfg.Export
	if c.Output != "" {
		settings.Output = c.Output
	}
	if c.Format != "" {
		settings.Format = c.Format
	}
	if c.Pretty {
		settings.Pretty = true
	}
	if c.Workers > 0 {
		settings.Workers = c.Workers
	}

	format, err := export.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(engine, logger, clock)
	exporter.Workers = settings.Workers

	table, err := exporter.Build(ctx, cfg.DrawRange())
	if err != nil {
		return err
	}

	if settings.Output == "-" {
		return export.Encode(out, table, format, settings.Pretty)
	}
	if err := export.WriteFile(settings.Output, table, format, settings.Pretty); err != nil {
		return err
	}
	logger.Info("Wrote probability table", "path", settings.Output, "format", format)
	return nil
}
