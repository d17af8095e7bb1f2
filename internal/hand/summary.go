package hand

import (
	"sort"
	"time"
)

// PlayerCounts are the per-player counters a summary reports in free-text
// sentences.
type PlayerCounts struct {
	Rebuys    int
	AddOns    int
	Knockouts int
}

// TourneySummary is one parsed tournament summary document.
type TourneySummary struct {
	Site      string
	ID        string
	Game      GameType
	StartTime time.Time

	Buyin         int64
	Fee           int64
	Bounty        int64
	BuyinCurrency string
	// Currency is the currency of prizes, which may differ from the buy-in's.
	Currency string
	// PrizePool is in whole currency units.
	PrizePool int64
	Entries   int

	RebuyCost     int64
	AddOnCost     int64
	StartingChips int64
	RebuyChips    int64
	AddOnChips    int64
	TotalRebuys   int
	TotalAddOns   int

	Counts  map[string]PlayerCounts
	Results []PlayerRank
}

// NewSummary returns an empty summary for site.
func NewSummary(site string) *TourneySummary {
	return &TourneySummary{Site: site, Counts: make(map[string]PlayerCounts)}
}

// AddRebuys sets the rebuy count sentence for player.
func (s *TourneySummary) AddRebuys(player string, n int) {
	c := s.Counts[player]
	c.Rebuys = n
	s.Counts[player] = c
}

// AddAddOns sets the add-on count sentence for player.
func (s *TourneySummary) AddAddOns(player string, n int) {
	c := s.Counts[player]
	c.AddOns = n
	s.Counts[player] = c
}

// AddKnockouts sets the knockout count sentence for player.
func (s *TourneySummary) AddKnockouts(player string, n int) {
	c := s.Counts[player]
	c.Knockouts = n
	s.Counts[player] = c
}

// AddPlayerResult records a finishing position, merged with any counts
// already collected for the player.
func (s *TourneySummary) AddPlayerResult(rank int, name string, winnings int64, currency string) {
	c := s.Counts[name]
	s.Results = append(s.Results, PlayerRank{
		Rank:      rank,
		Name:      name,
		Winnings:  winnings,
		Currency:  currency,
		Rebuys:    c.Rebuys,
		AddOns:    c.AddOns,
		Knockouts: c.Knockouts,
	})
}

// SortedResults returns the results ordered by rank.
func (s *TourneySummary) SortedResults() []PlayerRank {
	out := append([]PlayerRank(nil), s.Results...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// TotalWinnings sums the winnings of every result.
func (s *TourneySummary) TotalWinnings() int64 {
	var total int64
	for _, r := range s.Results {
		total += r.Winnings
	}
	return total
}
