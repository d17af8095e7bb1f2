package split

import (
	"errors"
	"regexp"
	"testing"

	"github.com/lox/hhconv/internal/parseerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		data      []byte
		codepages []string
		want      string
		wantCP    string
	}{
		{"plain utf-8", []byte("Seat 1: héro\r\n"), []string{UTF8, CP1252}, "Seat 1: héro\n", UTF8},
		{"utf-8 bom dropped", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), []string{UTF8}, "abc", UTF8},
		{"cp1252 fallback", []byte{'h', 0xE9, 'r', 'o', ' ', 0x80}, []string{UTF8, CP1252}, "héro €", CP1252},
		{"utf-16 with bom", []byte{0xFF, 0xFE, 'F', 0, 'T', 0, '\r', 0, '\n', 0, 'x', 0}, []string{UTF16, CP1252, UTF8}, "FT\nx", UTF16},
		{"utf-16 without bom falls through", []byte("FT"), []string{UTF16, UTF8}, "FT", UTF8},
		{"old mac line endings", []byte("a\rb"), []string{UTF8}, "a\nb", UTF8},
		{"alias names canonical codepage", []byte{'h', 0xE9}, []string{"UTF8", "Windows-1252"}, "hé", CP1252},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, cp, err := Decode(tt.data, tt.codepages)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCP, cp)
		})
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()
	for alias, want := range map[string]string{
		"utf-8": UTF8, "UTF8": UTF8,
		"cp1252": CP1252, "windows-1252": CP1252,
		"utf-16": UTF16, "Utf16": UTF16,
	} {
		got, ok := Canonical(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, want, got, alias)
	}
	_, ok := Canonical("latin9")
	assert.False(t, ok)
}

func TestDecodeFailsForWholeDocument(t *testing.T) {
	t.Parallel()
	_, _, err := Decode([]byte{'a', 0xFF, 0xFE, 0xFD}, []string{UTF8, UTF16})
	var encErr *parseerr.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, []string{UTF8, UTF16}, encErr.Tried)
	assert.Equal(t, parseerr.KindEncoding, parseerr.Kind(err))

	_, _, err = Decode([]byte("abc"), []string{"ebcdic"})
	assert.Error(t, err)
}

func TestRecordsSeparatorMode(t *testing.T) {
	t.Parallel()
	text := "\n\nhand one\nline two\n\nstill one\n\n\nhand two\n \n\t\n\n\nhand three\n\n\n"
	got := Records(text, Splitter{})
	assert.Equal(t, []string{
		"hand one\nline two\n\nstill one",
		"hand two",
		"hand three",
	}, got)

	assert.Empty(t, Records("\n\n\n   \n", Splitter{}))
}

func TestRecordsHeaderMode(t *testing.T) {
	t.Parallel()
	header := regexp.MustCompile(`(?m)^Summary #\d+`)
	text := "junk before\nSummary #1\nalice\n\n\n\nSummary #2\nbob\n"
	got := Records(text, Splitter{Header: header})
	assert.Equal(t, []string{"Summary #1\nalice", "Summary #2\nbob"}, got)

	assert.Equal(t, []string{"no header here"}, Records("no header here\n", Splitter{Header: header}))
}

func TestDocument(t *testing.T) {
	t.Parallel()
	recs, cp, err := Document([]byte("a\r\n\r\n\r\nb"), []string{UTF8}, Splitter{})
	require.NoError(t, err)
	assert.Equal(t, UTF8, cp)
	assert.Equal(t, []string{"a", "b"}, recs)
}
