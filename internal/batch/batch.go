// Package batch runs a site format over every record of a document.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/site"
	"github.com/lox/hhconv/internal/site/fulltilt"
	"github.com/lox/hhconv/internal/site/pokerstars"
	"github.com/lox/hhconv/internal/split"
)

const (
	defaultWorkers    = 4
	defaultExcerptLen = 200
	detectLen         = 4096
)

// ErrUnknownFormat is returned when no registered format recognizes a
// document.
var ErrUnknownFormat = errors.New("batch: no format recognizes the document")

// DefaultRegistry returns a registry holding every built-in format.
func DefaultRegistry() *site.Registry {
	r := site.NewRegistry()
	r.RegisterHand(pokerstars.New())
	r.RegisterSummary(fulltilt.New())
	return r
}

// Config controls a Runner.
type Config struct {
	Registry *site.Registry
	// Workers bounds the number of records converted at once.
	Workers int
	Options site.Options
	// ExcerptLen is the number of characters of a failing record kept on its
	// Failure.
	ExcerptLen int
	// Codepages overrides a format's codepage list, keyed by format name.
	Codepages map[string][]string
	Logger    zerolog.Logger
	Clock     quartz.Clock
}

// Failure describes one record that produced no result.
type Failure struct {
	Index   int
	Kind    string
	Excerpt string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("record %d: %s: %v", f.Index, f.Kind, f.Err)
}

// Report is the outcome of one document.
type Report struct {
	ID       string
	Format   string
	Codepage string
	Records  int

	// Hands and Summaries hold successful results in record order.
	Hands     []*hand.Hand
	Summaries []*hand.TourneySummary
	Failures  []Failure

	StartedAt time.Time
	Elapsed   time.Duration
}

// Cancelled counts the cancelled hands kept in the report.
func (r *Report) Cancelled() int {
	n := 0
	for _, h := range r.Hands {
		if h.Cancelled {
			n++
		}
	}
	return n
}

// Runner converts documents record by record.
type Runner struct {
	cfg Config
}

// New returns a runner, filling in defaults for unset fields.
func New(cfg Config) *Runner {
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.ExcerptLen <= 0 {
		cfg.ExcerptLen = defaultExcerptLen
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Runner{cfg: cfg}
}

// ParseHands converts every hand record in data. An empty format name
// detects the format from the document.
func (r *Runner) ParseHands(ctx context.Context, data []byte, format string) (*Report, error) {
	f, err := r.handFormat(data, format)
	if err != nil {
		return nil, err
	}

	report, records, err := r.start(data, f)
	if err != nil {
		return nil, err
	}
	hands := make([]*hand.Hand, len(records))
	err = r.run(ctx, report, records, func(logger zerolog.Logger, i int, text string) error {
		h, err := site.Convert(f, text, r.cfg.Options)
		if h != nil {
			hands[i] = h
		}
		if h != nil && h.Cancelled {
			logger.Warn().Str("hand", h.ID).Msg("hand cancelled, keeping header")
			return nil
		}
		if err == nil {
			logger.Debug().Str("hand", h.ID).Int("actions", countActions(h)).Msg("hand converted")
		}
		return err
	})
	for _, h := range hands {
		if h != nil {
			report.Hands = append(report.Hands, h)
		}
	}
	return r.finish(report, err)
}

// ParseSummaries converts every tournament summary in data.
func (r *Runner) ParseSummaries(ctx context.Context, data []byte, format string) (*Report, error) {
	f, err := r.summaryFormat(data, format)
	if err != nil {
		return nil, err
	}

	report, records, err := r.start(data, f)
	if err != nil {
		return nil, err
	}
	summaries := make([]*hand.TourneySummary, len(records))
	err = r.run(ctx, report, records, func(logger zerolog.Logger, i int, text string) error {
		s, err := f.ParseSummary(text)
		if err != nil {
			return err
		}
		summaries[i] = s
		logger.Debug().Str("tourney", s.ID).Int("results", len(s.Results)).Msg("summary converted")
		return nil
	})
	for _, s := range summaries {
		if s != nil {
			report.Summaries = append(report.Summaries, s)
		}
	}
	return r.finish(report, err)
}

func (r *Runner) start(data []byte, f site.Format) (*Report, []string, error) {
	records, codepage, err := split.Document(data, r.codepages(f), f.Splitter())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	report := &Report{
		ID:        uuid.NewString()[:8],
		Format:    f.Name(),
		Codepage:  codepage,
		Records:   len(records),
		StartedAt: r.cfg.Clock.Now(),
	}
	return report, records, nil
}

// run converts records on a bounded group of workers. The context is only
// consulted between records.
func (r *Runner) run(ctx context.Context, report *Report, records []string, convert func(zerolog.Logger, int, string) error) error {
	logger := r.cfg.Logger.With().
		Str("batch", report.ID).
		Str("format", report.Format).
		Logger()
	logger.Info().Int("records", len(records)).Str("codepage", report.Codepage).Msg("batch started")

	failures := make([]*Failure, len(records))
	var g errgroup.Group
	g.SetLimit(r.cfg.Workers)

	for i, text := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recLogger := logger.With().Int("record", i).Logger()
			if err := convert(recLogger, i, text); err != nil {
				failures[i] = &Failure{
					Index:   i,
					Kind:    parseerr.Kind(err),
					Excerpt: parseerr.Excerpt(text, r.cfg.ExcerptLen),
					Err:     err,
				}
				recLogger.Warn().Err(err).Str("kind", failures[i].Kind).Msg("record skipped")
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	for _, f := range failures {
		if f != nil {
			report.Failures = append(report.Failures, *f)
		}
	}
	if err != nil {
		logger.Error().Err(err).Msg("batch interrupted")
	}
	return err
}

func (r *Runner) finish(report *Report, err error) (*Report, error) {
	report.Elapsed = r.cfg.Clock.Since(report.StartedAt)
	r.cfg.Logger.Info().
		Str("batch", report.ID).
		Int("hands", len(report.Hands)).
		Int("summaries", len(report.Summaries)).
		Int("failures", len(report.Failures)).
		Dur("elapsed", report.Elapsed).
		Msg("batch finished")
	return report, err
}

func (r *Runner) codepages(f site.Format) []string {
	for name, cps := range r.cfg.Codepages {
		if strings.EqualFold(name, f.Name()) && len(cps) > 0 {
			return cps
		}
	}
	return f.Codepages()
}

func (r *Runner) handFormat(data []byte, name string) (site.HandFormat, error) {
	if name != "" {
		f, ok := r.cfg.Registry.Hand(name)
		if !ok {
			return nil, fmt.Errorf("batch: unknown hand format %q", name)
		}
		return f, nil
	}
	for _, f := range r.cfg.Registry.HandFormats() {
		if r.detect(data, f) {
			return f, nil
		}
	}
	return nil, ErrUnknownFormat
}

func (r *Runner) summaryFormat(data []byte, name string) (site.SummaryFormat, error) {
	if name != "" {
		f, ok := r.cfg.Registry.Summary(name)
		if !ok {
			return nil, fmt.Errorf("batch: unknown summary format %q", name)
		}
		return f, nil
	}
	for _, f := range r.cfg.Registry.SummaryFormats() {
		if r.detect(data, f) {
			return f, nil
		}
	}
	return nil, ErrUnknownFormat
}

func (r *Runner) detect(data []byte, f site.Format) bool {
	text, _, err := split.Decode(data, r.codepages(f))
	if err != nil {
		return false
	}
	if len(text) > detectLen {
		text = text[:detectLen]
	}
	return f.Detect(text)
}

func countActions(h *hand.Hand) int {
	n := 0
	for _, actions := range h.Actions {
		n += len(actions)
	}
	return n
}
