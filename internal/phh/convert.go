package phh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/tables"
)

// ErrUnsupportedVariant is returned for games PHH has no variant code for.
var ErrUnsupportedVariant = errors.New("phh: unsupported variant")

// PHH variant codes keyed by category and limit.
var variants = map[string]string{
	"holdem/" + tables.NoLimit:       "NT",
	"holdem/" + tables.FixedLimit:    "FT",
	"omahahi/" + tables.PotLimit:     "PO",
	"omahahilo/" + tables.FixedLimit: "FO/8",
	"studhi/" + tables.FixedLimit:    "F7S",
	"studhilo/" + tables.FixedLimit:  "F7S/8",
	"razz/" + tables.FixedLimit:      "FR",
	"27_1draw/" + tables.NoLimit:     "N2L1D",
	"27_3draw/" + tables.FixedLimit:  "F2L3D",
	"badugi/" + tables.FixedLimit:    "FB",
}

// Cards dealt to each player on the first round, by category.
var holeCount = map[string]int{
	"holdem":    2,
	"omahahi":   4,
	"omahahilo": 4,
	"studhi":    3,
	"studhilo":  3,
	"razz":      3,
	"27_1draw":  5,
	"27_3draw":  5,
	"fivedraw":  5,
	"badugi":    4,
}

// Variant returns the PHH variant code for a game.
func Variant(g hand.GameType) (string, error) {
	code, ok := variants[g.Category+"/"+g.Limit]
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrUnsupportedVariant, g.Category, g.Limit)
	}
	return code, nil
}

// FromHand converts a finalized hand. Sitting-out players who took no part
// are left out; the rest are ordered from the seat after the button.
func FromHand(h *hand.Hand) (*HandHistory, error) {
	if h.Cancelled {
		return nil, fmt.Errorf("phh: hand %s was cancelled", h.ID)
	}
	variant, err := Variant(h.Game)
	if err != nil {
		return nil, err
	}

	players := seatingOrder(h)
	index := make(map[string]int, len(players))
	n := len(players)
	hh := &HandHistory{
		Variant:         variant,
		Venue:           h.Site,
		Table:           h.Table,
		SeatCount:       h.MaxSeats,
		HandID:          h.ID,
		Currency:        h.Game.Currency,
		Seats:           make([]int, n),
		Players:         make([]string, n),
		Antes:           make([]int64, n),
		StartingStacks:  make([]int64, n),
		FinishingStacks: make([]int64, n),
		Winnings:        make([]int64, n),
	}
	for i, p := range players {
		index[p.Name] = i
		hh.Seats[i] = p.Seat
		hh.Players[i] = p.Name
		hh.StartingStacks[i] = p.Stack
		hh.Winnings[i] = h.Collections(p.Name)
		hh.FinishingStacks[i] = p.Stack + h.Net(p.Name)
	}

	if h.Tourney != nil {
		hh.Event = "Tournament #" + h.Tourney.ID
		hh.Level = h.Tourney.Level
	}
	if !h.StartTime.IsZero() {
		t := h.StartTime.UTC()
		hh.Timestamp = t
		hh.Time = t.Format("15:04:05")
		hh.TimeZone = "UTC"
		hh.Day, hh.Month, hh.Year = t.Day(), int(t.Month()), t.Year()
	}

	readForcedBets(h, hh, index)
	hh.Actions = actions(h, index)
	return hh, nil
}

func seatingOrder(h *hand.Hand) []hand.Player {
	var out []hand.Player
	for _, p := range h.Players {
		if p.SittingOut && !hasActed(h, p.Name) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	if h.Game.Base == tables.BaseStud || h.Button == 0 {
		return out
	}

	start := 0
	for i, p := range out {
		if p.Seat > h.Button {
			start = i
			break
		}
	}
	rotated := make([]hand.Player, 0, len(out))
	rotated = append(rotated, out[start:]...)
	return append(rotated, out[:start]...)
}

func hasActed(h *hand.Hand, name string) bool {
	for _, actions := range h.Actions {
		for _, a := range actions {
			if a.Player == name {
				return true
			}
		}
	}
	return false
}

// readForcedBets fills antes, blinds and bet sizes. Dead money is reported
// as an ante.
func readForcedBets(h *hand.Hand, hh *HandHistory, index map[string]int) {
	blinds := make([]int64, len(hh.Players))
	for _, s := range h.ActionStreets() {
		for _, a := range h.Actions[s] {
			i, ok := index[a.Player]
			if !ok {
				continue
			}
			switch {
			case a.Kind == hand.ActionBringIn:
				hh.BringIn = a.Amount
			case a.Kind.IsPost():
				hh.Antes[i] += a.Dead
				blinds[i] += a.Amount - a.Dead
			}
		}
	}
	if h.Game.Base != tables.BaseStud {
		hh.BlindsOrStraddles = blinds
	}

	if h.Game.Limit == tables.FixedLimit {
		hh.SmallBet = h.Game.Big
		hh.BigBet = 2 * h.Game.Big
		if h.Game.Base == tables.BaseStud && hh.BringIn == 0 {
			hh.BringIn = h.Game.Small
		}
		return
	}
	hh.MinBet = h.Game.Big
}

func actions(h *hand.Hand, index map[string]int) []string {
	var out []string
	first := h.FirstBettingRound()
	order := make([]string, len(index))
	for name, i := range index {
		order[i] = name
	}

	for _, street := range h.PresentStreets() {
		if board := h.Board[street]; len(board) > 0 {
			out = append(out, "d db "+JoinCards(board, 0))
		}

		// Discards come before the replacement cards are dealt.
		var draws, betting []hand.Action
		for _, a := range h.Actions[street] {
			if a.Kind == hand.ActionDiscard || a.Kind == hand.ActionStandPat {
				draws = append(draws, a)
			} else {
				betting = append(betting, a)
			}
		}
		out = appendActions(out, draws, index)

		for i, name := range order {
			hc, known := h.HoleCards[name][street]
			var cards []string
			switch {
			case known && street == first:
				cards = hc.All()
			case known:
				cards = hc.Open
			}
			if len(cards) > 0 || street == first {
				out = append(out, fmt.Sprintf("d dh p%d %s", i+1, JoinCards(cards, holeCount[h.Game.Category])))
			}
		}
		out = appendActions(out, betting, index)
	}

	for _, s := range h.Shown {
		i, ok := index[s.Player]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("p%d sm %s", i+1, JoinCards(s.Cards, holeCount[h.Game.Category])))
	}
	return out
}

func appendActions(out []string, actions []hand.Action, index map[string]int) []string {
	for _, a := range actions {
		i, ok := index[a.Player]
		if !ok {
			continue
		}
		if line, ok := FormatAction(i, a); ok {
			out = append(out, line)
		}
	}
	return out
}
