// Package parseerr defines the failure taxonomy shared by every parsing stage.
package parseerr

import (
	"errors"
	"fmt"
)

// Error kinds reported for failed records.
const (
	KindParse    = "parse"
	KindPartial  = "partial"
	KindEncoding = "encoding"
	KindLookup   = "lookup"
	KindOther    = "other"
)

// ParseError means a mandatory anchoring pattern did not match. The current
// record is dropped; the batch continues.
type ParseError struct {
	Op      string
	Message string
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.Excerpt != "" {
		msg += fmt.Sprintf(" (%q)", e.Excerpt)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// PartialHandError marks a record its producer flagged as cancelled. The hand
// is kept with whatever header fields were read before the marker was seen.
type PartialHandError struct {
	HandID string
}

func (e *PartialHandError) Error() string {
	return fmt.Sprintf("hand %q was cancelled", e.HandID)
}

// EncodingError means no candidate codepage decoded the document.
type EncodingError struct {
	Tried []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("no codepage decoded the document (tried %v)", e.Tried)
}

// LookupError means an extracted token has no translation table entry.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s entry for %q", e.Table, e.Key)
}

// NewParseError builds a ParseError carrying the leading excerpt of text.
func NewParseError(op, message, text string) *ParseError {
	return &ParseError{Op: op, Message: message, Excerpt: Excerpt(text, 200)}
}

// Excerpt returns at most n runes from the start of text.
func Excerpt(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// Kind classifies err into one of the taxonomy kinds.
func Kind(err error) string {
	var (
		parseErr    *ParseError
		partialErr  *PartialHandError
		encodingErr *EncodingError
		lookupErr   *LookupError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &partialErr):
		return KindPartial
	case errors.As(err, &encodingErr):
		return KindEncoding
	case errors.As(err, &lookupErr):
		return KindLookup
	case errors.As(err, &parseErr):
		return KindParse
	default:
		return KindOther
	}
}
