// Package streets partitions one record's text into its named sections.
//
// Each game family has a fixed, ordered list of sections. Segmentation walks
// that list strictly forward: the current section runs until the marker of
// the next section, and a missing marker ends the walk with the current
// section extending to the end of the record. Later sections are then simply
// absent, which means "not dealt" rather than an error.
package streets

import (
	"regexp"
	"strings"
)

// Street names a section of a record.
type Street string

// Community-board streets.
const (
	BlindsAntes Street = "BLINDSANTES"
	Preflop     Street = "PREFLOP"
	Flop        Street = "FLOP"
	Turn        Street = "TURN"
	River       Street = "RIVER"
)

// Stud streets.
const (
	Antes   Street = "ANTES"
	Third   Street = "THIRD"
	Fourth  Street = "FOURTH"
	Fifth   Street = "FIFTH"
	Sixth   Street = "SIXTH"
	Seventh Street = "SEVENTH"
)

// Draw streets.
const (
	Predeal   Street = "PREDEAL"
	Deal      Street = "DEAL"
	DrawOne   Street = "DRAWONE"
	DrawTwo   Street = "DRAWTWO"
	DrawThree Street = "DRAWTHREE"
)

// Section is one state of a family. A nil Marker marks the implicit initial
// section, which covers the text before the first marker.
type Section struct {
	Street Street
	Marker *regexp.Regexp
}

// Family is an ordered section sequence for one game family.
type Family struct {
	Name     string
	Sections []Section
	// PostStreet collects blinds and antes posted before the first betting round.
	PostStreet Street
	// BringInStreet is where a bring-in is recorded; empty when the family has none.
	BringInStreet Street
}

// Segment is the text of one matched section. Start and End are byte offsets
// into the segmented text.
type Segment struct {
	Street Street
	Text   string
	Start  int
	End    int
}

// Markers holds the site-specific regexps that open each non-initial section.
type Markers map[Street]*regexp.Regexp

// HoldFamily is PREFLOP → FLOP → TURN → RIVER. Blinds are posted before the
// preflop marker and are not part of any section.
func HoldFamily(m Markers) Family {
	return Family{
		Name: "hold",
		Sections: []Section{
			{Preflop, m[Preflop]},
			{Flop, m[Flop]},
			{Turn, m[Turn]},
			{River, m[River]},
		},
		PostStreet: BlindsAntes,
	}
}

// StudFamily is ANTES → THIRD → FOURTH → FIFTH → SIXTH → SEVENTH.
func StudFamily(m Markers) Family {
	return Family{
		Name: "stud",
		Sections: []Section{
			{Antes, nil},
			{Third, m[Third]},
			{Fourth, m[Fourth]},
			{Fifth, m[Fifth]},
			{Sixth, m[Sixth]},
			{Seventh, m[Seventh]},
		},
		PostStreet:    Antes,
		BringInStreet: Third,
	}
}

// SingleDrawFamily is PREDEAL → DEAL → DRAWONE.
func SingleDrawFamily(m Markers) Family {
	return Family{
		Name: "draw",
		Sections: []Section{
			{Predeal, nil},
			{Deal, m[Deal]},
			{DrawOne, m[DrawOne]},
		},
		PostStreet: Predeal,
	}
}

// TripleDrawFamily is PREDEAL → DEAL → DRAWONE → DRAWTWO → DRAWTHREE.
func TripleDrawFamily(m Markers) Family {
	return Family{
		Name: "draw",
		Sections: []Section{
			{Predeal, nil},
			{Deal, m[Deal]},
			{DrawOne, m[DrawOne]},
			{DrawTwo, m[DrawTwo]},
			{DrawThree, m[DrawThree]},
		},
		PostStreet: Predeal,
	}
}

// Streets lists the family's section names in order.
func (f Family) Streets() []Street {
	out := make([]Street, len(f.Sections))
	for i, s := range f.Sections {
		out[i] = s.Street
	}
	return out
}

// Has reports whether street belongs to the family.
func (f Family) Has(street Street) bool {
	for _, s := range f.Sections {
		if s.Street == street {
			return true
		}
	}
	return false
}

// Segment splits text into the family's sections.
func (f Family) Segment(text string) []Segment {
	var (
		segments []Segment
		current  = -1
		start    int
		pos      int
	)

	if len(f.Sections) > 0 && f.Sections[0].Marker == nil {
		current = 0
	}

	for next := current + 1; next < len(f.Sections); next++ {
		marker := f.Sections[next].Marker
		if marker == nil {
			break
		}
		loc := marker.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		if current >= 0 {
			segments = append(segments, Segment{
				Street: f.Sections[current].Street,
				Text:   text[start : pos+loc[0]],
				Start:  start,
				End:    pos + loc[0],
			})
		}
		current = next
		start = pos + loc[1]
		pos = start
	}

	if current >= 0 {
		segments = append(segments, Segment{
			Street: f.Sections[current].Street,
			Text:   text[start:],
			Start:  start,
			End:    len(text),
		})
	}
	return segments
}

// ToMap indexes segments by street.
func ToMap(segments []Segment) map[Street]string {
	out := make(map[Street]string, len(segments))
	for _, s := range segments {
		out[s.Street] = s.Text
	}
	return out
}

var (
	drawMarker     = "*** DRAW ***"
	drawMarkerLine = regexp.MustCompile(`(?m)^\*\*\* DRAW \*\*\*[ \t]*$`)
	firstDrawLine  = regexp.MustCompile(`(?m)^.+(?: stands pat|: discards).*$`)
)

// InsertDrawMarker adds a "*** DRAW ***" line before the first discard or
// stand-pat line. Single-draw exports print no marker between the deal and
// the draw. Text that already carries the marker is returned unchanged.
func InsertDrawMarker(text string) string {
	if drawMarkerLine.MatchString(text) {
		return text
	}
	loc := firstDrawLine.FindStringIndex(text)
	if loc == nil {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(drawMarker) + 1)
	b.WriteString(text[:loc[0]])
	b.WriteString(drawMarker)
	b.WriteByte('\n')
	b.WriteString(text[loc[0]:])
	return b.String()
}
