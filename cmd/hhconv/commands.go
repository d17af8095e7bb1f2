package main

import (
	"fmt"
	"os"

	"github.com/lox/hhconv/cmd/hhconv/shared"
	"github.com/lox/hhconv/internal/config"
	"github.com/lox/hhconv/internal/stats"
)

// ParseCmd converts a hand history file.
type ParseCmd struct {
	File     string `arg:"" name:"file" help:"Hand history file, or - for stdin"`
	Format   string `short:"f" help:"Site format name (detected when empty)"`
	Failures bool   `help:"List every skipped record"`
	Hands    bool   `help:"List every converted hand"`
	PHH      string `name:"phh" help:"Write converted hands to this PHH session file" type:"path"`
}

func (cmd *ParseCmd) Run(g *Globals) error {
	a, err := g.setup()
	if err != nil {
		return err
	}
	data, err := readInput(cmd.File)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(a.logger)
	defer cancel()

	report, err := a.runner.ParseHands(ctx, data, cmd.Format)
	if report != nil {
		s := newStyles(os.Stdout)
		renderBatch(os.Stdout, s, report, cmd.Failures)
		if cmd.Hands {
			renderHands(os.Stdout, s, report.Hands)
		}
	}
	if err != nil {
		return err
	}

	path := cmd.PHH
	if path == "" && a.cfg.Export.Format == config.ExportPHH {
		path = a.cfg.ExportPath(report.Format, report.ID)
	}
	if path == "" {
		return nil
	}
	_, err = exportHands(path, report.Hands, a.logger)
	return err
}

// SummaryCmd converts a tournament summary file.
type SummaryCmd struct {
	File     string `arg:"" name:"file" help:"Tournament summary file, or - for stdin"`
	Format   string `short:"f" help:"Site format name (detected when empty)"`
	Failures bool   `help:"List every skipped record"`
	Results  bool   `help:"List the finishing positions of every tournament"`
}

func (cmd *SummaryCmd) Run(g *Globals) error {
	a, err := g.setup()
	if err != nil {
		return err
	}
	data, err := readInput(cmd.File)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(a.logger)
	defer cancel()

	report, err := a.runner.ParseSummaries(ctx, data, cmd.Format)
	if report != nil {
		s := newStyles(os.Stdout)
		renderBatch(os.Stdout, s, report, cmd.Failures)
		renderSummaries(os.Stdout, s, report.Summaries, cmd.Results)
	}
	return err
}

// StatsCmd aggregates per-player statistics over a hand history file.
type StatsCmd struct {
	File     string `arg:"" name:"file" help:"Hand history file, or - for stdin"`
	Format   string `short:"f" help:"Site format name (detected when empty)"`
	Player   string `short:"p" help:"Only report this player"`
	MinHands int    `name:"min-hands" help:"Hide players with fewer hands" default:"1"`
}

func (cmd *StatsCmd) Run(g *Globals) error {
	a, err := g.setup()
	if err != nil {
		return err
	}
	data, err := readInput(cmd.File)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(a.logger)
	defer cancel()

	report, err := a.runner.ParseHands(ctx, data, cmd.Format)
	if err != nil {
		return err
	}

	agg := stats.NewAggregate()
	for _, h := range report.Hands {
		if h.Cancelled {
			continue
		}
		agg.Add(stats.New(h))
	}
	if cmd.Player != "" {
		if _, ok := agg.Player(cmd.Player); !ok {
			return fmt.Errorf("player %q not found in %d hands", cmd.Player, agg.Hands)
		}
	}

	for _, t := range agg.Players() {
		if err := t.Validate(); err != nil {
			a.logger.Warn().Err(err).Str("player", t.Name).Msg("inconsistent totals")
		}
	}

	s := newStyles(os.Stdout)
	renderBatch(os.Stdout, s, report, false)
	renderStats(os.Stdout, s, agg, cmd.Player, cmd.MinHands)
	return nil
}
