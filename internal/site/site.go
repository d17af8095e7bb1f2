// Package site defines the contract every producer format implements and the
// fixed order in which a record is converted.
package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/split"
	"github.com/lox/hhconv/internal/streets"
	"github.com/lox/hhconv/internal/tables"
)

// Format is what hand and summary formats have in common.
type Format interface {
	Name() string
	// Codepages lists the encodings to try, in order.
	Codepages() []string
	Splitter() split.Splitter
	// Detect reports whether the head of a decoded document belongs to the
	// format.
	Detect(head string) bool
}

// HandFormat converts hand-history records of one producer.
type HandFormat interface {
	Format

	DetermineGameType(h *hand.Hand, text string) error
	ReadHandInfo(h *hand.Hand, text string) error
	ReadButton(h *hand.Hand, text string) error
	ReadPlayerStacks(h *hand.Hand, text string) error
	MarkStreets(h *hand.Hand, text string) error
	ReadCommunityCards(h *hand.Hand, street streets.Street) error
	ReadAntes(h *hand.Hand, text string) error
	ReadBringIn(h *hand.Hand, text string) error
	ReadBlinds(h *hand.Hand, text string) error
	ReadHeroCards(h *hand.Hand) error
	ReadAction(h *hand.Hand, street streets.Street) error
	ReadShowdownActions(h *hand.Hand, text string) error
	ReadCollectPot(h *hand.Hand, text string) error
	ReadShownCards(h *hand.Hand, text string) error
}

// TourneyResultReader is implemented by formats whose hand records can carry
// tournament finishing positions inline.
type TourneyResultReader interface {
	ReadTourneyResults(h *hand.Hand, text string) error
}

// SummaryFormat converts tournament summary documents of one producer.
type SummaryFormat interface {
	Format

	ParseSummary(text string) (*hand.TourneySummary, error)
}

// Options tunes a conversion.
type Options struct {
	// InlineTourneyResults enables TourneyResultReader for formats that
	// implement it.
	InlineTourneyResults bool
}

// Convert runs every extraction step of format over one record, in order.
//
// A record without a game descriptor returns a ParseError and no hand. A
// cancelled record returns the header-only hand, marked cancelled, together
// with a PartialHandError. Any other error drops the record.
func Convert(format HandFormat, text string, opts Options) (*hand.Hand, error) {
	h := hand.New(format.Name())

	if err := format.DetermineGameType(h, text); err != nil {
		return nil, err
	}
	if err := format.ReadHandInfo(h, text); err != nil {
		var partial *parseerr.PartialHandError
		if errors.As(err, &partial) {
			h.Cancelled = true
			return h, err
		}
		return nil, err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"button", func() error { return format.ReadButton(h, text) }},
		{"stacks", func() error { return format.ReadPlayerStacks(h, text) }},
		{"streets", func() error { return format.MarkStreets(h, text) }},
		{"community cards", func() error {
			for _, street := range h.PresentStreets() {
				if err := format.ReadCommunityCards(h, street); err != nil {
					return err
				}
			}
			return nil
		}},
		{"antes", func() error { return format.ReadAntes(h, text) }},
		{"bring-in", func() error {
			if h.Game.Base != tables.BaseStud {
				return nil
			}
			return format.ReadBringIn(h, text)
		}},
		{"blinds", func() error {
			if h.Game.Base == tables.BaseStud {
				return nil
			}
			return format.ReadBlinds(h, text)
		}},
		{"hero cards", func() error { return format.ReadHeroCards(h) }},
		{"actions", func() error {
			for _, street := range h.PresentStreets() {
				if err := format.ReadAction(h, street); err != nil {
					return err
				}
			}
			return nil
		}},
		{"showdown", func() error { return format.ReadShowdownActions(h, text) }},
		{"collect pot", func() error { return format.ReadCollectPot(h, text) }},
		{"shown cards", func() error { return format.ReadShownCards(h, text) }},
		{"tourney results", func() error {
			reader, ok := format.(TourneyResultReader)
			if !ok || !opts.InlineTourneyResults {
				return nil
			}
			return reader.ReadTourneyResults(h, text)
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return nil, fmt.Errorf("hand %s: %s: %w", h.ID, step.name, err)
		}
	}
	return h, nil
}

// Registry holds the known formats in registration order.
type Registry struct {
	hands     []HandFormat
	summaries []SummaryFormat
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterHand adds a hand format.
func (r *Registry) RegisterHand(f HandFormat) {
	r.hands = append(r.hands, f)
}

// RegisterSummary adds a summary format.
func (r *Registry) RegisterSummary(f SummaryFormat) {
	r.summaries = append(r.summaries, f)
}

// HandFormats returns the registered hand formats.
func (r *Registry) HandFormats() []HandFormat {
	return append([]HandFormat(nil), r.hands...)
}

// SummaryFormats returns the registered summary formats.
func (r *Registry) SummaryFormats() []SummaryFormat {
	return append([]SummaryFormat(nil), r.summaries...)
}

// Hand looks a hand format up by name, ignoring case.
func (r *Registry) Hand(name string) (HandFormat, bool) {
	for _, f := range r.hands {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// Summary looks a summary format up by name, ignoring case.
func (r *Registry) Summary(name string) (SummaryFormat, bool) {
	for _, f := range r.summaries {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// DetectHand returns the first hand format claiming head.
func (r *Registry) DetectHand(head string) (HandFormat, bool) {
	for _, f := range r.hands {
		if f.Detect(head) {
			return f, true
		}
	}
	return nil, false
}

// DetectSummary returns the first summary format claiming head.
func (r *Registry) DetectSummary(head string) (SummaryFormat, bool) {
	for _, f := range r.summaries {
		if f.Detect(head) {
			return f, true
		}
	}
	return nil, false
}
