package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Totals accumulates one player's results over many hands.
type Totals struct {
	Name     string
	Hands    int
	VPIP     int
	PFR      int
	SawFlop  int
	Showdown int

	// Net is the sum of minor-unit results, split by whether the hand went to
	// showdown. Hands in different currencies are summed as they are.
	Net            int64
	ShowdownNet    int64
	NonShowdownNet int64

	ShowdownWins    int
	NonShowdownWins int

	// Results holds the net result of every hand in big blinds.
	Results []float64
}

func (t *Totals) add(s Seat) {
	t.Hands++
	if s.VPIP {
		t.VPIP++
	}
	if s.PFR {
		t.PFR++
	}
	if s.SawFlop {
		t.SawFlop++
	}
	t.Net += s.Net
	t.Results = append(t.Results, s.NetBB)

	if s.Showdown {
		t.Showdown++
		t.ShowdownNet += s.Net
		if s.Net > 0 {
			t.ShowdownWins++
		}
		return
	}
	t.NonShowdownNet += s.Net
	if s.Net > 0 {
		t.NonShowdownWins++
	}
}

func (t *Totals) rate(n int) float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(n) / float64(t.Hands)
}

// VPIPRate is the share of hands with voluntary money put in.
func (t *Totals) VPIPRate() float64 { return t.rate(t.VPIP) }

// PFRRate is the share of hands raised on the first betting round.
func (t *Totals) PFRRate() float64 { return t.rate(t.PFR) }

// SawFlopRate is the share of hands that reached the second betting round.
func (t *Totals) SawFlopRate() float64 { return t.rate(t.SawFlop) }

// ShowdownRate is the share of hands that went to showdown.
func (t *Totals) ShowdownRate() float64 { return t.rate(t.Showdown) }

// NetBB is the total result in big blinds.
func (t *Totals) NetBB() float64 { return floats.Sum(t.Results) }

// Mean returns the mean result in big blinds per hand.
func (t *Totals) Mean() float64 {
	if len(t.Results) == 0 {
		return 0
	}
	return stat.Mean(t.Results, nil)
}

// Variance returns the sample variance of the per-hand results.
func (t *Totals) Variance() float64 {
	if len(t.Results) < 2 {
		return 0
	}
	return stat.Variance(t.Results, nil)
}

func (t *Totals) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean.
func (t *Totals) StdError() float64 {
	if len(t.Results) == 0 {
		return 0
	}
	return stat.StdErr(t.StdDev(), float64(len(t.Results)))
}

// ConfidenceInterval95 returns the two-sided 95% interval for the mean from
// Student's t distribution. With fewer than two hands the interval is the
// mean itself.
func (t *Totals) ConfidenceInterval95() (float64, float64) {
	mean := t.Mean()
	if len(t.Results) < 2 {
		return mean, mean
	}
	dist := distuv.StudentsT{Nu: float64(len(t.Results) - 1), Mu: 0, Sigma: 1}
	margin := dist.Quantile(0.975) * t.StdError()
	return mean - margin, mean + margin
}

// Validate checks the internal consistency of the totals.
func (t *Totals) Validate() error {
	if t.ShowdownNet+t.NonShowdownNet != t.Net {
		return fmt.Errorf("%s: showdown %d and non-showdown %d results do not add up to net %d",
			t.Name, t.ShowdownNet, t.NonShowdownNet, t.Net)
	}
	if len(t.Results) != t.Hands {
		return fmt.Errorf("%s: %d results recorded for %d hands", t.Name, len(t.Results), t.Hands)
	}
	if t.ShowdownWins+t.NonShowdownWins > t.Hands {
		return fmt.Errorf("%s: %d winning hands out of %d", t.Name, t.ShowdownWins+t.NonShowdownWins, t.Hands)
	}
	if t.VPIP > t.Hands || t.PFR > t.VPIP {
		return fmt.Errorf("%s: vpip %d / pfr %d inconsistent with %d hands", t.Name, t.VPIP, t.PFR, t.Hands)
	}
	return nil
}

// Aggregate accumulates views over many hands. Players who were not dealt
// in are not counted.
type Aggregate struct {
	Hands   int
	players map[string]*Totals
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{players: make(map[string]*Totals)}
}

// Add folds one hand's view into the totals.
func (a *Aggregate) Add(v *View) {
	a.Hands++
	for _, s := range v.seats {
		if !s.Dealt {
			continue
		}
		t, ok := a.players[s.Name]
		if !ok {
			t = &Totals{Name: s.Name}
			a.players[s.Name] = t
		}
		t.add(s)
	}
}

// Player returns the totals for name.
func (a *Aggregate) Player(name string) (*Totals, bool) {
	t, ok := a.players[name]
	return t, ok
}

// Players returns every player's totals, most hands first, then by name.
func (a *Aggregate) Players() []*Totals {
	out := make([]*Totals, 0, len(a.players))
	for _, t := range a.players {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hands != out[j].Hands {
			return out[i].Hands > out[j].Hands
		}
		return out[i].Name < out[j].Name
	})
	return out
}
