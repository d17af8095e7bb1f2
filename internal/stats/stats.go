// Package stats derives per-player statistics from finalized hands.
package stats

import (
	"sort"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/streets"
)

// Seat is one player's line in a hand.
type Seat struct {
	Seat       int
	Name       string
	Hero       bool
	SittingOut bool
	// Dealt is false for players who took no part in the hand.
	Dealt bool

	VPIP     bool // put money in voluntarily on the first betting round
	PFR      bool // bet or raised on the first betting round
	SawFlop  bool // still in when the second betting round was dealt
	Showdown bool

	Invested int64
	Won      int64
	Net      int64
	// NetBB is Net in big blinds, zero when the hand has no big blind.
	NetBB float64
	Cards []string
}

// View is a read-only per-seat view over one hand.
type View struct {
	HandID   string
	Currency string
	BigBlind int64

	seats  []Seat
	bySeat map[int]int
	byName map[string]int
}

// New builds the view for h. The hand must not be modified afterwards.
func New(h *hand.Hand) *View {
	v := &View{
		HandID:   h.ID,
		Currency: h.Game.Currency,
		BigBlind: h.Game.Big,
		bySeat:   make(map[int]int, len(h.Players)),
		byName:   make(map[string]int, len(h.Players)),
	}

	first := h.FirstBettingRound()
	second, hasSecond := nextStreet(h, first)
	inShowdown := showdownPlayers(h)

	for _, p := range h.Players {
		s := Seat{
			Seat:       p.Seat,
			Name:       p.Name,
			Hero:       p.Name == h.Hero,
			SittingOut: p.SittingOut,
			Dealt:      dealt(h, p.Name),
			Invested:   h.Invested(p.Name),
			Won:        h.Collections(p.Name),
			Net:        h.Net(p.Name),
			Cards:      h.Cards(p.Name),
		}
		for _, a := range h.ActionsBy(first, p.Name) {
			switch a.Kind {
			case hand.ActionCall:
				s.VPIP = true
			case hand.ActionBet, hand.ActionRaiseTo:
				s.VPIP = true
				s.PFR = true
			}
		}
		s.SawFlop = s.Dealt && hasSecond && !foldedBefore(h, p.Name, second)
		s.Showdown = inShowdown[p.Name]
		if v.BigBlind > 0 {
			s.NetBB = float64(s.Net) / float64(v.BigBlind)
		}

		v.bySeat[s.Seat] = len(v.seats)
		v.byName[s.Name] = len(v.seats)
		v.seats = append(v.seats, s)
	}
	return v
}

// Seats returns every seat ordered by seat number.
func (v *View) Seats() []Seat {
	out := append([]Seat(nil), v.seats...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// PlayerAtSeat returns the player sitting at seat.
func (v *View) PlayerAtSeat(seat int) (Seat, bool) {
	i, ok := v.bySeat[seat]
	if !ok {
		return Seat{}, false
	}
	return v.seats[i], true
}

// Player returns the named player's line.
func (v *View) Player(name string) (Seat, bool) {
	i, ok := v.byName[name]
	if !ok {
		return Seat{}, false
	}
	return v.seats[i], true
}

// HasCards reports whether any cards are known for the named player.
func (v *View) HasCards(name string) bool {
	s, ok := v.Player(name)
	return ok && len(s.Cards) > 0
}

func nextStreet(h *hand.Hand, after streets.Street) (streets.Street, bool) {
	order := h.Family.Streets()
	for i, s := range order {
		if s == after && i+1 < len(order) {
			next := order[i+1]
			return next, h.HasStreet(next)
		}
	}
	return "", false
}

func dealt(h *hand.Hand, name string) bool {
	if len(h.HoleCards[name]) > 0 {
		return true
	}
	for _, actions := range h.Actions {
		for _, a := range actions {
			if a.Player == name {
				return true
			}
		}
	}
	return false
}

// foldedBefore reports whether name folded on a street preceding until.
func foldedBefore(h *hand.Hand, name string, until streets.Street) bool {
	for _, s := range h.Family.Streets() {
		if s == until {
			return false
		}
		for _, a := range h.ActionsBy(s, name) {
			if a.Kind == hand.ActionFold {
				return true
			}
		}
	}
	return false
}

// showdownPlayers returns the players who showed or mucked at showdown, or
// failing that, the players still holding cards at the end when more than
// one remained.
func showdownPlayers(h *hand.Hand) map[string]bool {
	out := make(map[string]bool)
	for _, s := range h.Shown {
		out[s.Player] = true
	}
	if len(out) > 0 {
		return out
	}

	var live []string
	for _, p := range h.Players {
		if dealt(h, p.Name) && !foldedBefore(h, p.Name, "") {
			live = append(live, p.Name)
		}
	}
	if len(live) > 1 {
		for _, name := range live {
			out[name] = true
		}
	}
	return out
}
