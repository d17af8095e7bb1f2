package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/hhconv/internal/fileutil"
	"github.com/lox/hhconv/internal/hand"
)

// Encode writes one hand history to w as a PHH TOML document.
func Encode(w io.Writer, hh *HandHistory) error {
	if hh == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hh)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hh *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hh); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSession writes hands as a PHH session, each hand under a numbered
// table starting at [1].
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hh := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hh); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteSession encodes hands and atomically writes them to path.
func WriteSession(path string, hands []*HandHistory) error {
	var buf bytes.Buffer
	if err := EncodeSession(&buf, hands); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// FormatAction converts one parsed action of player index p (0-based) to a
// PHH action string. Forced posts report false; they are carried by the
// antes and blinds fields instead.
func FormatAction(p int, a hand.Action) (string, bool) {
	player := fmt.Sprintf("p%d", p+1)
	switch a.Kind {
	case hand.ActionFold:
		return player + " f", true
	case hand.ActionCheck, hand.ActionCall:
		return player + " cc", true
	case hand.ActionBet, hand.ActionRaiseTo:
		if a.Amount <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, a.Amount), true
	case hand.ActionBringIn:
		return player + " pb", true
	case hand.ActionDiscard:
		return fmt.Sprintf("%s sd %s", player, JoinCards(a.Cards, a.Discards)), true
	case hand.ActionStandPat:
		return player + " sd", true
	case hand.ActionPostSmallBlind, hand.ActionPostBigBlind, hand.ActionPostBothBlinds,
		hand.ActionPostDeadSmallBlind, hand.ActionAnte:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, a.Kind, a.Amount), true
	}
}
