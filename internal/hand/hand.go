// Package hand holds the canonical representation of one parsed poker hand and
// the add* operations extractors use to build it. A Hand is owned by a single
// parse; once Convert returns it is treated as immutable.
package hand

import (
	"fmt"
	"time"

	"github.com/lox/hhconv/internal/money"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/streets"
	"github.com/lox/hhconv/internal/tables"
)

// GameType describes the game being played.
type GameType struct {
	Base     string
	Category string
	Limit    string
	Currency string
	// Mix is the mixed-game rotation, empty for a single game.
	Mix   string
	Type  string // "ring" or "tour"
	Small int64
	Big   int64
	Cap   bool
}

// IsTourney reports whether the hand was played in a tournament.
func (g GameType) IsTourney() bool { return g.Type == "tour" }

// TourneyInfo links a hand to its tournament.
type TourneyInfo struct {
	ID            string
	Buyin         int64
	Fee           int64
	Bounty        int64
	BuyinCurrency string
	Level         string
	TableNumber   string
}

// Player is a seated player at hand start.
type Player struct {
	Seat  int
	Name  string
	Stack int64
	// SittingOut is set when the seat line says the player is out of the hand.
	SittingOut bool
}

// HoleCards are a player's cards on one street, split into cards only the
// owner sees and cards exposed to the table.
type HoleCards struct {
	Closed []string
	Open   []string
}

// All returns the closed cards followed by the open ones.
func (c HoleCards) All() []string {
	out := make([]string, 0, len(c.Closed)+len(c.Open))
	out = append(out, c.Closed...)
	return append(out, c.Open...)
}

// ShownCards records cards revealed or mucked at showdown.
type ShownCards struct {
	Player      string
	Cards       []string
	Shown       bool
	Mucked      bool
	Description string
}

// CollectedPot is one pot collection line.
type CollectedPot struct {
	Player string
	Amount int64
}

// Returned is an uncalled bet given back to its owner.
type Returned struct {
	Street streets.Street
	Player string
	Amount int64
}

// PlayerRank is a finishing position, either from a summary document or from
// inline tournament results inside a hand.
type PlayerRank struct {
	Rank      int
	Name      string
	Winnings  int64
	Currency  string
	Rebuys    int
	AddOns    int
	Knockouts int
}

// Hand is one parsed hand.
type Hand struct {
	Site      string
	ID        string
	Game      GameType
	Table     string
	MaxSeats  int
	Button    int
	StartTime time.Time
	Tourney   *TourneyInfo
	Cancelled bool
	Hero      string

	Players []Player
	Family  streets.Family
	// Streets maps every section that matched to its text. A missing key
	// means the street was not dealt.
	Streets   map[streets.Street]string
	Actions   map[streets.Street][]Action
	HoleCards map[string]map[streets.Street]HoleCards
	Board     map[streets.Street][]string
	Collected []CollectedPot
	Returned  []Returned
	Shown     []ShownCards
	Ranks     []PlayerRank

	liveSmallBlind bool
}

// New returns an empty hand for site.
func New(site string) *Hand {
	return &Hand{
		Site:      site,
		Streets:   make(map[streets.Street]string),
		Actions:   make(map[streets.Street][]Action),
		HoleCards: make(map[string]map[streets.Street]HoleCards),
		Board:     make(map[streets.Street][]string),
	}
}

// Amount converts a decimal string into minor units of the hand's currency.
func (h *Hand) Amount(value string) (int64, error) {
	return money.ToMinor(value, h.currency())
}

func (h *Hand) currency() string {
	if h.Game.Currency == "" {
		return tables.CurrencyTourney
	}
	return h.Game.Currency
}

// SetStreets stores the segmentation result for family.
func (h *Hand) SetStreets(family streets.Family, segments []streets.Segment) {
	h.Family = family
	h.Streets = streets.ToMap(segments)
}

// HasStreet reports whether street was found in the record.
func (h *Hand) HasStreet(street streets.Street) bool {
	_, ok := h.Streets[street]
	return ok
}

// PresentStreets returns the matched streets in family order.
func (h *Hand) PresentStreets() []streets.Street {
	var out []streets.Street
	for _, s := range h.Family.Streets() {
		if h.HasStreet(s) {
			out = append(out, s)
		}
	}
	return out
}

// AddPlayer seats a player with a starting stack.
func (h *Hand) AddPlayer(seat int, name, stack string, sittingOut bool) error {
	if seat < 1 {
		return fmt.Errorf("add player %q: invalid seat %d", name, seat)
	}
	for _, p := range h.Players {
		if p.Seat == seat {
			return fmt.Errorf("add player %q: seat %d already taken by %q", name, seat, p.Name)
		}
	}
	chips, err := h.Amount(stack)
	if err != nil {
		return fmt.Errorf("add player %q: %w", name, err)
	}
	h.Players = append(h.Players, Player{Seat: seat, Name: name, Stack: chips, SittingOut: sittingOut})
	return nil
}

// Player returns the named player.
func (h *Hand) Player(name string) (Player, bool) {
	for _, p := range h.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerAtSeat returns the player sitting in seat.
func (h *Hand) PlayerAtSeat(seat int) (Player, bool) {
	for _, p := range h.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return Player{}, false
}

func (h *Hand) requirePlayer(op, name string) error {
	if _, ok := h.Player(name); !ok {
		return parseerr.NewParseError(op, fmt.Sprintf("unknown player %q", name), h.ID)
	}
	return nil
}

// AddBoardCards records community cards dealt on street.
func (h *Hand) AddBoardCards(street streets.Street, cards []string) {
	if len(cards) == 0 {
		return
	}
	h.Board[street] = append(h.Board[street], cards...)
}

// BoardCards returns all community cards in street order.
func (h *Hand) BoardCards() []string {
	var out []string
	for _, s := range h.Family.Streets() {
		out = append(out, h.Board[s]...)
	}
	return out
}

// AddHoleCards records a player's cards on street. Cards for the same street
// accumulate.
func (h *Hand) AddHoleCards(street streets.Street, player string, closed, open []string) error {
	if err := h.requirePlayer("add hole cards", player); err != nil {
		return err
	}
	byStreet := h.HoleCards[player]
	if byStreet == nil {
		byStreet = make(map[streets.Street]HoleCards)
		h.HoleCards[player] = byStreet
	}
	cur := byStreet[street]
	cur.Closed = append(cur.Closed, closed...)
	cur.Open = append(cur.Open, open...)
	byStreet[street] = cur
	return nil
}

// Cards returns the most complete holding known for player: the cards held
// on the latest street that has any, or the shown cards when those are
// longer.
func (h *Hand) Cards(player string) []string {
	var best []string
	if byStreet := h.HoleCards[player]; byStreet != nil {
		for _, s := range h.Family.Streets() {
			if c, ok := byStreet[s]; ok {
				best = c.All()
			}
		}
	}
	for _, s := range h.Shown {
		if s.Player == player && len(s.Cards) > len(best) {
			best = s.Cards
		}
	}
	return best
}

// AddShownCards records a showdown reveal or muck. A second record for the
// same player fills in fields the first one lacked.
func (h *Hand) AddShownCards(player string, cards []string, shown, mucked bool, description string) error {
	if err := h.requirePlayer("add shown cards", player); err != nil {
		return err
	}
	for i := range h.Shown {
		s := &h.Shown[i]
		if s.Player != player {
			continue
		}
		if len(cards) > len(s.Cards) {
			s.Cards = cards
		}
		s.Shown = s.Shown || shown
		s.Mucked = s.Mucked || mucked
		if s.Description == "" {
			s.Description = description
		}
		return nil
	}
	h.Shown = append(h.Shown, ShownCards{
		Player:      player,
		Cards:       cards,
		Shown:       shown,
		Mucked:      mucked,
		Description: description,
	})
	return nil
}

// AddCollectPot records player collecting amount.
func (h *Hand) AddCollectPot(player, amount string) error {
	if err := h.requirePlayer("add collect pot", player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("collect pot for %q: %w", player, err)
	}
	h.Collected = append(h.Collected, CollectedPot{Player: player, Amount: v})
	return nil
}

// AddUncalledBet records an uncalled bet returned to player on street.
func (h *Hand) AddUncalledBet(street streets.Street, player, amount string) error {
	if err := h.requirePlayer("add uncalled bet", player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("uncalled bet for %q: %w", player, err)
	}
	h.Returned = append(h.Returned, Returned{Street: street, Player: player, Amount: v})
	return nil
}

// AddPlayerRank records an inline tournament finish.
func (h *Hand) AddPlayerRank(player string, rank int, winnings, currency string) error {
	r := PlayerRank{Rank: rank, Name: player, Currency: currency}
	if winnings != "" {
		v, err := money.ToMinor(winnings, currency)
		if err != nil {
			return fmt.Errorf("rank for %q: %w", player, err)
		}
		r.Winnings = v
	}
	h.Ranks = append(h.Ranks, r)
	return nil
}

// TotalCollected sums every collection line.
func (h *Hand) TotalCollected() int64 {
	var total int64
	for _, c := range h.Collected {
		total += c.Amount
	}
	return total
}

// Collections returns what player collected across all pots.
func (h *Hand) Collections(player string) int64 {
	var total int64
	for _, c := range h.Collected {
		if c.Player == player {
			total += c.Amount
		}
	}
	return total
}
