// Package split decodes raw export documents and cuts them into single-record
// texts.
package split

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lox/hhconv/internal/parseerr"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Supported codepage names.
const (
	UTF8   = "utf-8"
	CP1252 = "cp1252"
	UTF16  = "utf-16"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	lineEndings   = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	blankLineRuns = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
)

// Decode tries each codepage in order and returns the text and canonical
// codepage name from the first that decodes cleanly. Line endings are normalised to "\n" and a leading
// byte order mark is dropped.
func Decode(data []byte, codepages []string) (string, string, error) {
	for _, cp := range codepages {
		text, ok := decode(data, cp)
		if !ok {
			continue
		}
		text = strings.TrimPrefix(text, "\ufeff")
		name, _ := Canonical(cp)
		return lineEndings.Replace(text), name, nil
	}
	return "", "", &parseerr.EncodingError{Tried: append([]string(nil), codepages...)}
}

// aliases maps every accepted codepage spelling to its canonical name.
var aliases = map[string]string{
	UTF8:           UTF8,
	"utf8":         UTF8,
	CP1252:         CP1252,
	"windows-1252": CP1252,
	UTF16:          UTF16,
	"utf16":        UTF16,
}

// Canonical returns the canonical name of a codepage, ignoring case, and
// whether it is supported.
func Canonical(codepage string) (string, bool) {
	name, ok := aliases[strings.ToLower(codepage)]
	return name, ok
}

func decode(data []byte, codepage string) (string, bool) {
	name, _ := Canonical(codepage)
	switch name {
	case UTF8:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	case CP1252:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	case UTF16:
		if len(data)%2 != 0 {
			return "", false
		}
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil || !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}
	return "", false
}

// Splitter decides where records start. A nil Header splits on runs of two
// or more blank lines; otherwise every Header match starts a new record.
type Splitter struct {
	Header *regexp.Regexp
}

// Records cuts text into trimmed, non-empty records in document order.
func Records(text string, s Splitter) []string {
	if s.Header != nil {
		return byHeader(text, s.Header)
	}
	var out []string
	for _, part := range blankLineRuns.Split(text, -1) {
		if rec := strings.TrimSpace(part); rec != "" {
			out = append(out, rec)
		}
	}
	return out
}

func byHeader(text string, header *regexp.Regexp) []string {
	locs := header.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if rec := strings.TrimSpace(text); rec != "" {
			return []string{rec}
		}
		return nil
	}
	var out []string
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if rec := strings.TrimSpace(text[loc[0]:end]); rec != "" {
			out = append(out, rec)
		}
	}
	return out
}

// Document decodes data and splits it into records.
func Document(data []byte, codepages []string, s Splitter) ([]string, string, error) {
	text, cp, err := Decode(data, codepages)
	if err != nil {
		return nil, "", err
	}
	return Records(text, s), cp, nil
}
