package hand

import (
	"fmt"

	"github.com/lox/hhconv/internal/streets"
)

// ActionKind enumerates the recorded action types.
type ActionKind string

const (
	ActionPostSmallBlind     ActionKind = "post-small-blind"
	ActionPostBigBlind       ActionKind = "post-big-blind"
	ActionPostBothBlinds     ActionKind = "post-both-blinds"
	ActionPostDeadSmallBlind ActionKind = "post-dead-small-blind"
	ActionAnte               ActionKind = "ante"
	ActionBringIn            ActionKind = "bring-in"
	ActionBet                ActionKind = "bet"
	ActionCall               ActionKind = "call"
	ActionRaiseTo            ActionKind = "raise-to"
	ActionCheck              ActionKind = "check"
	ActionFold               ActionKind = "fold"
	ActionDiscard            ActionKind = "discard"
	ActionStandPat           ActionKind = "stand-pat"
)

// IsPost reports whether the kind is a forced bet.
func (k ActionKind) IsPost() bool {
	switch k {
	case ActionPostSmallBlind, ActionPostBigBlind, ActionPostBothBlinds,
		ActionPostDeadSmallBlind, ActionAnte, ActionBringIn:
		return true
	}
	return false
}

// BlindKind selects which blind a post line is for.
type BlindKind int

const (
	SmallBlind BlindKind = iota
	BigBlind
	BothBlinds
)

// Action is one entry of a street's action list. Lists are kept in textual
// order, which is the order the actions happened in.
type Action struct {
	Street streets.Street
	Player string
	Kind   ActionKind
	// Amount is the chips put in by this action. For raise-to it is the
	// player's total commitment on the street after the raise.
	Amount int64
	// Increment is the raise size over the previous highest commitment.
	Increment int64
	// Dead is the part of Amount that does not count toward the player's
	// commitment in the betting round.
	Dead     int64
	AllIn    bool
	Discards int
	Cards    []string
}

func (h *Hand) appendAction(a Action) {
	h.Actions[a.Street] = append(h.Actions[a.Street], a)
}

// AddBlind records a blind post on the family's posting street. The first
// small blind in a hand is the live one; later small blinds are dead.
func (h *Hand) AddBlind(player string, kind BlindKind, amount string) error {
	if err := h.requirePlayer("add blind", player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("blind for %q: %w", player, err)
	}
	a := Action{Street: h.postStreet(), Player: player, Amount: v}
	switch kind {
	case SmallBlind:
		if h.liveSmallBlind {
			a.Kind = ActionPostDeadSmallBlind
			a.Dead = v
		} else {
			a.Kind = ActionPostSmallBlind
			h.liveSmallBlind = true
		}
	case BigBlind:
		a.Kind = ActionPostBigBlind
	case BothBlinds:
		a.Kind = ActionPostBothBlinds
		if h.Game.Big > 0 && v > h.Game.Big {
			a.Dead = v - h.Game.Big
		}
	default:
		return fmt.Errorf("blind for %q: unknown blind kind %d", player, kind)
	}
	h.appendAction(a)
	return nil
}

// AddAnte records an ante on the family's posting street.
func (h *Hand) AddAnte(player, amount string) error {
	if err := h.requirePlayer("add ante", player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("ante for %q: %w", player, err)
	}
	h.appendAction(Action{Street: h.postStreet(), Player: player, Kind: ActionAnte, Amount: v, Dead: v})
	return nil
}

// AddBringIn records the stud bring-in.
func (h *Hand) AddBringIn(player, amount string) error {
	if err := h.requirePlayer("add bring-in", player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("bring-in for %q: %w", player, err)
	}
	street := h.Family.BringInStreet
	if street == "" {
		street = streets.Third
	}
	h.appendAction(Action{Street: street, Player: player, Kind: ActionBringIn, Amount: v})
	return nil
}

// AddFold records a fold.
func (h *Hand) AddFold(street streets.Street, player string) error {
	if err := h.requirePlayer("add fold", player); err != nil {
		return err
	}
	h.appendAction(Action{Street: street, Player: player, Kind: ActionFold})
	return nil
}

// AddCheck records a check.
func (h *Hand) AddCheck(street streets.Street, player string) error {
	if err := h.requirePlayer("add check", player); err != nil {
		return err
	}
	h.appendAction(Action{Street: street, Player: player, Kind: ActionCheck})
	return nil
}

// AddCall records a call of amount.
func (h *Hand) AddCall(street streets.Street, player, amount string, allIn bool) error {
	return h.addWager(street, player, ActionCall, amount, allIn)
}

// AddBet records an opening bet of amount.
func (h *Hand) AddBet(street streets.Street, player, amount string, allIn bool) error {
	return h.addWager(street, player, ActionBet, amount, allIn)
}

func (h *Hand) addWager(street streets.Street, player string, kind ActionKind, amount string, allIn bool) error {
	if err := h.requirePlayer("add "+string(kind), player); err != nil {
		return err
	}
	v, err := h.Amount(amount)
	if err != nil {
		return fmt.Errorf("%s for %q: %w", kind, player, err)
	}
	h.appendAction(Action{Street: street, Player: player, Kind: kind, Amount: v, AllIn: allIn})
	return nil
}

// AddRaiseTo records a raise to a total commitment of to.
func (h *Hand) AddRaiseTo(street streets.Street, player, to string, allIn bool) error {
	if err := h.requirePlayer("add raise", player); err != nil {
		return err
	}
	total, err := h.Amount(to)
	if err != nil {
		return fmt.Errorf("raise for %q: %w", player, err)
	}
	h.appendAction(Action{
		Street:    street,
		Player:    player,
		Kind:      ActionRaiseTo,
		Amount:    total,
		Increment: total - h.highestCommitment(street),
		AllIn:     allIn,
	})
	return nil
}

// AddRaiseBy records a raise of by over the current highest commitment.
func (h *Hand) AddRaiseBy(street streets.Street, player, by string, allIn bool) error {
	if err := h.requirePlayer("add raise", player); err != nil {
		return err
	}
	inc, err := h.Amount(by)
	if err != nil {
		return fmt.Errorf("raise for %q: %w", player, err)
	}
	h.appendAction(Action{
		Street:    street,
		Player:    player,
		Kind:      ActionRaiseTo,
		Amount:    h.highestCommitment(street) + inc,
		Increment: inc,
		AllIn:     allIn,
	})
	return nil
}

// AddDiscard records a draw. cards may be empty when the discarded cards are
// hidden.
func (h *Hand) AddDiscard(street streets.Street, player string, count int, cards []string) error {
	if err := h.requirePlayer("add discard", player); err != nil {
		return err
	}
	h.appendAction(Action{Street: street, Player: player, Kind: ActionDiscard, Discards: count, Cards: cards})
	return nil
}

// AddStandPat records a player keeping their cards.
func (h *Hand) AddStandPat(street streets.Street, player string, cards []string) error {
	if err := h.requirePlayer("add stand pat", player); err != nil {
		return err
	}
	h.appendAction(Action{Street: street, Player: player, Kind: ActionStandPat, Cards: cards})
	return nil
}

func (h *Hand) postStreet() streets.Street {
	if h.Family.PostStreet == "" {
		return streets.BlindsAntes
	}
	return h.Family.PostStreet
}

// roundOf maps a street to the betting round its chips count toward. Live
// blinds posted before the first marker belong to the first betting round.
func (h *Hand) roundOf(street streets.Street) streets.Street {
	if street != h.postStreet() {
		return street
	}
	sections := h.Family.Sections
	switch {
	case len(sections) == 0:
		return street
	case sections[0].Street == street && len(sections) > 1:
		return sections[1].Street
	case sections[0].Street == street:
		return street
	default:
		return sections[0].Street
	}
}

// FirstBettingRound is the street whose betting the forced posts belong to:
// PREFLOP for hold'em, THIRD for stud and DEAL for draw games.
func (h *Hand) FirstBettingRound() streets.Street {
	return h.roundOf(h.postStreet())
}

// ActionStreets returns the forced-post street followed by the family's
// streets, without repeats.
func (h *Hand) ActionStreets() []streets.Street {
	order := append([]streets.Street{h.postStreet()}, h.Family.Streets()...)
	out := order[:0]
	seen := make(map[streets.Street]bool, len(order))
	for _, s := range order {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// commitments replays the actions counted toward round and returns each
// player's live commitment.
func (h *Hand) commitments(round streets.Street) map[string]int64 {
	out := make(map[string]int64)
	for _, s := range h.ActionStreets() {
		if h.roundOf(s) != round {
			continue
		}
		for _, a := range h.Actions[s] {
			switch a.Kind {
			case ActionRaiseTo:
				out[a.Player] = a.Amount
			default:
				out[a.Player] += a.Amount - a.Dead
			}
		}
	}
	return out
}

func (h *Hand) highestCommitment(street streets.Street) int64 {
	var highest int64
	for _, v := range h.commitments(h.roundOf(street)) {
		highest = max(highest, v)
	}
	return highest
}

// Invested returns the chips player put into the pot over the hand, net of
// uncalled bets returned.
func (h *Hand) Invested(player string) int64 {
	var total int64
	rounds := make(map[streets.Street]bool)
	for s, actions := range h.Actions {
		rounds[h.roundOf(s)] = true
		for _, a := range actions {
			if a.Player == player {
				total += a.Dead
			}
		}
	}
	for r := range rounds {
		total += h.commitments(r)[player]
	}
	for _, r := range h.Returned {
		if r.Player == player {
			total -= r.Amount
		}
	}
	return total
}

// Net returns player's winnings minus what they invested.
func (h *Hand) Net(player string) int64 {
	return h.Collections(player) - h.Invested(player)
}

// ActionsBy returns player's actions on street.
func (h *Hand) ActionsBy(street streets.Street, player string) []Action {
	var out []Action
	for _, a := range h.Actions[street] {
		if a.Player == player {
			out = append(out, a)
		}
	}
	return out
}
