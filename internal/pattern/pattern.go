// Package pattern wraps regexp submatches in records that tell a group which
// did not participate apart from one that matched the empty string.
package pattern

import (
	"regexp"
	"strings"
)

// Match is one regexp match with named-group access.
type Match struct {
	re     *regexp.Regexp
	text   string
	offset []int
}

// Find returns the first match of re in text.
func Find(re *regexp.Regexp, text string) (Match, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return Match{re: re, text: text, offset: loc}, true
}

// FindAll returns every non-overlapping match of re in text, in textual order.
func FindAll(re *regexp.Regexp, text string) []Match {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Match, len(locs))
	for i, loc := range locs {
		out[i] = Match{re: re, text: text, offset: loc}
	}
	return out
}

// Get returns the text captured by the named group and whether the group
// took part in the match.
func (m Match) Get(name string) (string, bool) {
	if m.re == nil {
		return "", false
	}
	idx := m.re.SubexpIndex(name)
	if idx < 0 || 2*idx+1 >= len(m.offset) {
		return "", false
	}
	start, end := m.offset[2*idx], m.offset[2*idx+1]
	if start < 0 {
		return "", false
	}
	return m.text[start:end], true
}

// String returns the named group, or "" when it did not participate.
func (m Match) String(name string) string {
	v, _ := m.Get(name)
	return v
}

// Has reports whether the named group participated with a non-empty capture.
func (m Match) Has(name string) bool {
	v, ok := m.Get(name)
	return ok && v != ""
}

// Fields splits a space separated capture such as "Ah Kd 2c".
func (m Match) Fields(name string) []string {
	return strings.Fields(m.String(name))
}

// Span returns the byte offsets of the whole match.
func (m Match) Span() (int, int) {
	if len(m.offset) < 2 {
		return -1, -1
	}
	return m.offset[0], m.offset[1]
}
