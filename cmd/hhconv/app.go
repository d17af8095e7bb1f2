package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lox/hhconv/cmd/hhconv/shared"
	"github.com/lox/hhconv/internal/batch"
	"github.com/lox/hhconv/internal/config"
	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/phh"
	"github.com/lox/hhconv/internal/site"
)

// app is the state every command starts from.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	runner *batch.Runner
}

func (g *Globals) setup() (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}

	level := shared.Level(cfg.Parser.LogLevel, g.Debug)
	var logger zerolog.Logger
	if g.JSONLogs {
		logger = shared.SetupStructuredLogger(os.Stderr, level)
	} else {
		logger = shared.SetupLogger(os.Stderr, level)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		runner: newRunner(cfg, logger),
	}, nil
}

func newRunner(cfg *config.Config, logger zerolog.Logger) *batch.Runner {
	return batch.New(batch.Config{
		Registry: registry(cfg),
		Workers:  cfg.Parser.Workers,
		Options: site.Options{
			InlineTourneyResults: cfg.Parser.InlineTourneyResults,
		},
		ExcerptLen: cfg.Parser.ExcerptLen,
		Codepages:  cfg.Codepages(),
		Logger:     logger,
	})
}

// registry holds the built-in formats the configuration leaves enabled.
func registry(cfg *config.Config) *site.Registry {
	all := batch.DefaultRegistry()
	r := site.NewRegistry()
	for _, f := range all.HandFormats() {
		if cfg.FormatEnabled(f.Name()) {
			r.RegisterHand(f)
		}
	}
	for _, f := range all.SummaryFormats() {
		if cfg.FormatEnabled(f.Name()) {
			r.RegisterSummary(f)
		}
	}
	return r
}

// readInput reads a whole file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filepath.Clean(path))
}

// exportHands writes every convertible hand to one PHH session file. Hands
// PHH cannot express are logged and skipped.
func exportHands(path string, hands []*hand.Hand, logger zerolog.Logger) (int, error) {
	out := make([]*phh.HandHistory, 0, len(hands))
	for _, h := range hands {
		if h.Cancelled {
			continue
		}
		hh, err := phh.FromHand(h)
		if err != nil {
			logger.Warn().Err(err).Str("hand", h.ID).Msg("hand not exported")
			continue
		}
		out = append(out, hh)
	}
	if len(out) == 0 {
		logger.Warn().Str("path", path).Msg("no hands to export")
		return 0, nil
	}
	if err := phh.WriteSession(path, out); err != nil {
		return 0, err
	}
	logger.Info().Str("path", path).Int("hands", len(out)).Msg("exported PHH session")
	return len(out), nil
}
