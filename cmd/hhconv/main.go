package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to HCL configuration file" default:"hhconv.hcl" type:"path"`
	Debug    bool   `help:"Enable debug logging"`
	JSONLogs bool   `name:"json-logs" help:"Write logs as JSON instead of console output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Parse   ParseCmd         `cmd:"" help:"Convert hand histories and optionally export them as PHH"`
	Summary SummaryCmd       `cmd:"" help:"Convert tournament summaries"`
	Stats   StatsCmd         `cmd:"" help:"Report per-player statistics over hand histories"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hhconv"),
		kong.Description("Poker hand history and tournament summary converter"),
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
