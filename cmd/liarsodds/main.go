package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Prob    ProbCmd          `cmd:"" help:"Probability of raw rank, suit or unique-card requirements"`
	Hand    HandCmd          `cmd:"" help:"Probability of a liar's poker hand or call"`
	Chart   ChartCmd         `cmd:"" help:"Chart every hand across the number of cards on the table"`
	Export  ExportCmd        `cmd:"" help:"Write the full probability table as JSON or YAML"`
	Explore ExploreCmd       `cmd:"" help:"Explore hand probabilities interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("liarsodds"),
		kong.Description("Exact hand probabilities for liar's poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
