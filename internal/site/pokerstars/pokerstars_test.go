package pokerstars

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/site"
	"github.com/lox/hhconv/internal/streets"
	"github.com/lox/hhconv/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const holdemHand = `PokerStars Game #27853322538: Hold'em No Limit ($1/$2 USD) - 2009/05/06 18:49:35 ET
Table 'Aase II' 6-max Seat #2 is the button
Seat 1: alice ($200 in chips)
Seat 2: bob ($150.50 in chips)
Seat 3: carol ($212 in chips)
Seat 4: dave ($80 in chips) is sitting out
carol: posts small blind $1
alice: posts big blind $2
*** HOLE CARDS ***
Dealt to alice [Ah Kd]
bob: raises $4 to $6
carol: folds
alice: calls $4
*** FLOP *** [2c 7h Ks]
alice: checks
bob: bets $10
alice: raises $20 to $30
bob: calls $20
*** TURN *** [2c 7h Ks] [9d]
alice: bets $50
bob: folds
Uncalled bet ($50) returned to alice
alice collected $71 from pot
alice: doesn't show hand
*** SUMMARY ***
Total pot $73 | Rake $2
Board [2c 7h Ks 9d]
Seat 1: alice (big blind) collected ($71)
Seat 2: bob (button) folded on the Turn
Seat 3: carol (small blind) folded before Flop
Seat 4: dave is sitting out`

const studHand = `PokerStars Game #35874004239: 7 Card Stud Limit ($0.04/$0.08 USD) - 2009/11/26 10:07:18 ET
Table 'Aludra III' 8-max
Seat 1: alice ($1.50 in chips)
Seat 2: bob ($2 in chips)
alice: posts the ante $0.01
bob: posts the ante $0.01
*** 3rd STREET ***
Dealt to alice [9s 3h 4c]
Dealt to bob [Kd]
bob: brings in for $0.02
alice: calls $0.02
*** 4th STREET ***
Dealt to alice [9s 3h 4c] [7d]
Dealt to bob [Kd] [2s]
bob: checks
alice: checks
*** SUMMARY ***
Total pot $0.06 | Rake $0
Seat 1: alice collected ($0.06)`

const drawHand = `PokerStars Game #41000000001: 5 Card Draw Pot Limit ($0.10/$0.25 USD) - 2010/01/01 12:00:00 ET
Table 'Draw' 6-max Seat #1 is the button
Seat 1: alice ($10 in chips)
Seat 2: bob ($10 in chips)
alice: posts small blind $0.10
bob: posts big blind $0.25
*** DEALING HANDS ***
Dealt to alice [2c 3d 4h 5s 7c]
alice: calls $0.15
bob: checks
alice: discards 1 card [7c]
Dealt to alice [2c 3d 4h 5s] [8d]
bob: stands pat
bob: checks
alice: checks
*** SHOW DOWN ***
bob: shows [Ah Kh Qh Jh 9h] (a flush, Ace high)
alice: mucks hand
bob collected $0.50 from pot
*** SUMMARY ***
Total pot $0.50 | Rake $0
Seat 1: alice (button) (small blind) mucked [2c 3d 4h 5s 8d]
Seat 2: bob (big blind) showed [Ah Kh Qh Jh 9h] and won ($0.50) with a flush, Ace high`

const tourneyHand = `PokerStars Game #27738502010: Tournament #160417133, $10+$5+$1 USD Hold'em No Limit - Level I (10/20) - 2009/05/05 9:45:00 ET
Table '160417133 3' 9-max Seat #8 is the button
Seat 1: alice (1500 in chips)
Seat 8: bob (1500 in chips)
alice: posts small blind 10
bob: posts big blind 20
*** HOLE CARDS ***
Dealt to bob [Qc Qd]
alice: raises 1480 to 1500 and is all-in
bob: calls 1480
*** FLOP *** [2c 7h Ks]
*** TURN *** [2c 7h Ks] [9d]
*** RIVER *** [2c 7h Ks 9d] [3s]
*** SHOW DOWN ***
alice: shows [Ah Kd] (a pair of Kings)
bob: shows [Qc Qd] (a pair of Queens)
alice collected 3000 from pot
alice wins the tournament and receives $150.00 - congratulations!
bob finished the tournament in 2nd place and received $80.00.
*** SUMMARY ***
Total pot 3000 | Rake 0
Board [2c 7h Ks 9d 3s]
Seat 1: alice (small blind) showed [Ah Kd] and won (3000) with a pair of Kings
Seat 8: bob (button) (big blind) showed [Qc Qd] and lost with a pair of Queens`

func convert(t *testing.T, text string) *hand.Hand {
	t.Helper()
	h, err := site.Convert(New(), text, site.Options{})
	require.NoError(t, err)
	require.NotNil(t, h)
	return h
}

func TestHoldemNoLimit(t *testing.T) {
	t.Parallel()
	h := convert(t, holdemHand)

	assert.Equal(t, "27853322538", h.ID)
	assert.Equal(t, tables.BaseHold, h.Game.Base)
	assert.Equal(t, "holdem", h.Game.Category)
	assert.Equal(t, tables.NoLimit, h.Game.Limit)
	assert.Equal(t, "USD", h.Game.Currency)
	assert.Equal(t, int64(100), h.Game.Small)
	assert.Equal(t, int64(200), h.Game.Big)
	assert.Equal(t, "Aase II", h.Table)
	assert.Equal(t, 6, h.MaxSeats)
	assert.Equal(t, 2, h.Button)
	assert.Nil(t, h.Tourney)
	assert.Equal(t, time.Date(2009, 5, 6, 22, 49, 35, 0, time.UTC), h.StartTime)

	require.Len(t, h.Players, 4)
	assert.Equal(t, int64(15050), h.Players[1].Stack)
	assert.True(t, h.Players[3].SittingOut)

	posts := h.Actions[streets.BlindsAntes]
	require.Len(t, posts, 2)
	var live, big int
	for _, a := range posts {
		switch a.Kind {
		case hand.ActionPostSmallBlind:
			live++
			assert.Equal(t, int64(100), a.Amount)
		case hand.ActionPostBigBlind:
			big++
			assert.Equal(t, int64(200), a.Amount)
		}
	}
	assert.Equal(t, 1, live)
	assert.Equal(t, 1, big)

	assert.Equal(t, []streets.Street{streets.Preflop, streets.Flop, streets.Turn}, h.PresentStreets())
	assert.Equal(t, []string{"2c", "7h", "Ks", "9d"}, h.BoardCards())
	assert.Equal(t, "alice", h.Hero)
	assert.Equal(t, []string{"Ah", "Kd"}, h.HoleCards["alice"][streets.Preflop].Closed)

	pre := h.Actions[streets.Preflop]
	require.Len(t, pre, 3)
	assert.Equal(t, hand.ActionRaiseTo, pre[0].Kind)
	assert.Equal(t, int64(600), pre[0].Amount)
	assert.Equal(t, int64(400), pre[0].Increment)
	assert.Equal(t, hand.ActionFold, pre[1].Kind)
	assert.Equal(t, hand.ActionCall, pre[2].Kind)

	flop := h.Actions[streets.Flop]
	require.Len(t, flop, 4)
	assert.Equal(t, int64(3000), flop[2].Amount)
	assert.Equal(t, int64(2000), flop[2].Increment)

	require.Len(t, h.Returned, 1)
	assert.Equal(t, streets.Turn, h.Returned[0].Street)

	require.Len(t, h.Collected, 1, "seat-qualified collection lines win over the bare form")
	assert.Equal(t, hand.CollectedPot{Player: "alice", Amount: 7100}, h.Collected[0])
	assert.Equal(t, int64(3500), h.Net("alice"))
	assert.Equal(t, int64(-3600), h.Net("bob"))
	assert.Equal(t, int64(-100), h.Net("carol"))
}

func postOrder(h *hand.Hand) []string {
	var out []string
	for _, a := range h.Actions[streets.BlindsAntes] {
		out = append(out, a.Player+":"+string(a.Kind))
	}
	return out
}

func TestSecondSmallBlindIsDead(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand,
		"alice: posts big blind $2\n",
		"alice: posts big blind $2\nbob: posts small blind $1\n", 1)
	h := convert(t, text)

	assert.Equal(t, []string{
		"carol:post-small-blind",
		"alice:post-big-blind",
		"bob:post-dead-small-blind",
	}, postOrder(h))
	assert.Equal(t, int64(100), h.Actions[streets.BlindsAntes][2].Dead)
}

func TestForcedPostsKeepTextualOrder(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand,
		"alice: posts big blind $2\n",
		"alice: posts big blind $2\ndave: posts small blind $1\nbob: posts small & big blinds $3\n", 1)
	h := convert(t, text)

	assert.Equal(t, []string{
		"carol:post-small-blind",
		"alice:post-big-blind",
		"dave:post-dead-small-blind",
		"bob:post-both-blinds",
	}, postOrder(h))
	assert.Equal(t, int64(100), h.Actions[streets.BlindsAntes][3].Dead)
}

func TestStudThirdStreetHero(t *testing.T) {
	t.Parallel()
	h := convert(t, studHand)

	assert.Equal(t, tables.BaseStud, h.Game.Base)
	assert.Equal(t, "studhi", h.Game.Category)
	assert.Equal(t, int64(2), h.Game.Small, "fixed-limit blinds come from the big bet table")
	assert.Equal(t, int64(4), h.Game.Big)
	assert.Equal(t, "alice", h.Hero)

	third := h.HoleCards["alice"][streets.Third]
	assert.Equal(t, []string{"9s", "3h"}, third.Closed)
	assert.Equal(t, []string{"4c"}, third.Open)

	bob := h.HoleCards["bob"][streets.Third]
	assert.Empty(t, bob.Closed)
	assert.Equal(t, []string{"Kd"}, bob.Open)

	fourth := h.HoleCards["alice"][streets.Fourth]
	assert.Equal(t, []string{"9s", "3h", "4c"}, fourth.Closed)
	assert.Equal(t, []string{"7d"}, fourth.Open)

	require.Len(t, h.Actions[streets.Antes], 2)
	assert.Equal(t, hand.ActionAnte, h.Actions[streets.Antes][0].Kind)
	third3 := h.Actions[streets.Third]
	require.Len(t, third3, 2)
	assert.Equal(t, hand.ActionBringIn, third3[0].Kind)
	assert.Equal(t, "bob", third3[0].Player)
	assert.Empty(t, h.Actions[streets.BlindsAntes])
}

func TestSingleDrawGetsSyntheticMarker(t *testing.T) {
	t.Parallel()
	h := convert(t, drawHand)

	assert.Equal(t, "fivedraw", h.Game.Category)
	assert.Equal(t, []streets.Street{streets.Predeal, streets.Deal, streets.DrawOne}, h.PresentStreets())
	require.Len(t, h.Actions[streets.Predeal], 2)

	deal := h.Actions[streets.Deal]
	require.Len(t, deal, 2)
	assert.Equal(t, hand.ActionCall, deal[0].Kind)

	draw := h.Actions[streets.DrawOne]
	require.Len(t, draw, 4)
	assert.Equal(t, hand.ActionDiscard, draw[0].Kind)
	assert.Equal(t, 1, draw[0].Discards)
	assert.Equal(t, []string{"7c"}, draw[0].Cards)
	assert.Equal(t, hand.ActionStandPat, draw[1].Kind)

	assert.Equal(t, "alice", h.Hero)
	assert.Equal(t, []string{"2c", "3d", "4h", "5s", "7c"}, h.HoleCards["alice"][streets.Deal].Closed)
	assert.Equal(t, []string{"8d"}, h.HoleCards["alice"][streets.DrawOne].Open)

	require.Len(t, h.Shown, 2)
	assert.Equal(t, "bob", h.Shown[0].Player)
	assert.True(t, h.Shown[0].Shown)
	assert.Equal(t, "a flush, Ace high", h.Shown[0].Description)
	assert.Equal(t, "alice", h.Shown[1].Player)
	assert.True(t, h.Shown[1].Mucked)

	require.Len(t, h.Collected, 1)
	assert.Equal(t, int64(50), h.Collected[0].Amount)
}

func TestTournamentHand(t *testing.T) {
	t.Parallel()
	h, err := site.Convert(New(), tourneyHand, site.Options{InlineTourneyResults: true})
	require.NoError(t, err)

	assert.True(t, h.Game.IsTourney())
	assert.Equal(t, tables.CurrencyTourney, h.Game.Currency)
	assert.Equal(t, int64(1000), h.Game.Small)
	require.NotNil(t, h.Tourney)
	assert.Equal(t, "160417133", h.Tourney.ID)
	assert.Equal(t, int64(1000), h.Tourney.Buyin)
	assert.Equal(t, int64(500), h.Tourney.Bounty)
	assert.Equal(t, int64(100), h.Tourney.Fee)
	assert.Equal(t, "USD", h.Tourney.BuyinCurrency)
	assert.Equal(t, "I", h.Tourney.Level)
	assert.Equal(t, "3", h.Table)
	assert.Equal(t, time.Date(2009, 5, 5, 13, 45, 0, 0, time.UTC), h.StartTime)

	raise := h.Actions[streets.Preflop][0]
	assert.True(t, raise.AllIn)
	assert.Equal(t, int64(150000), raise.Amount)

	assert.Equal(t, []string{"2c", "7h", "Ks", "9d", "3s"}, h.BoardCards())
	require.Len(t, h.Shown, 2)
	assert.Equal(t, "a pair of Kings", h.Shown[0].Description)

	require.Len(t, h.Ranks, 2)
	assert.Equal(t, hand.PlayerRank{Rank: 1, Name: "alice", Winnings: 15000, Currency: "USD"}, h.Ranks[0])
	assert.Equal(t, 2, h.Ranks[1].Rank)
}

func TestInlineResultsIgnoredByDefault(t *testing.T) {
	t.Parallel()
	h := convert(t, tourneyHand)
	assert.Empty(t, h.Ranks)
}

func TestBuyinVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		buyin string
		want  hand.TourneyInfo
	}{
		{"two part", "$3.19+$0.31 USD", hand.TourneyInfo{Buyin: 319, Fee: 31, BuyinCurrency: "USD"}},
		{"freeroll", "Freeroll", hand.TourneyInfo{BuyinCurrency: tables.CurrencyFree}},
		{"fpp", "100 FPP", hand.TourneyInfo{Buyin: 100, BuyinCurrency: tables.CurrencyStarsFPP}},
		{"play money", "100+10", hand.TourneyInfo{Buyin: 10000, Fee: 1000, BuyinCurrency: tables.CurrencyPlay}},
		{"zero buy-in", "$0+$0 USD", hand.TourneyInfo{BuyinCurrency: tables.CurrencyFree}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text := strings.Replace(tourneyHand, "$10+$5+$1 USD", tt.buyin, 1)
			h := convert(t, text)
			require.NotNil(t, h.Tourney)
			got := *h.Tourney
			got.ID, got.Level, got.TableNumber = "", "", ""
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingGameInfoIsParseError(t *testing.T) {
	t.Parallel()
	h, err := site.Convert(New(), "Table 'x' 6-max\nSeat 1: alice ($1 in chips)\n", site.Options{})
	assert.Nil(t, h)
	var parseErr *parseerr.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Excerpt, "Table 'x'")
}

func TestCancelledHandIsPartial(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand, "*** HOLE CARDS ***", "Hand cancelled\n*** HOLE CARDS ***", 1)
	h, err := site.Convert(New(), text, site.Options{})
	var partial *parseerr.PartialHandError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, "27853322538", partial.HandID)
	require.NotNil(t, h)
	assert.True(t, h.Cancelled)
	assert.Equal(t, "27853322538", h.ID)
	assert.Equal(t, "Aase II", h.Table)
	assert.Empty(t, h.Players)
	assert.Empty(t, h.Actions)
}

func TestUnknownFixedLimitBlinds(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand, "Hold'em No Limit ($1/$2 USD)", "Hold'em Limit ($0.07/$0.14 USD)", 1)
	h, err := site.Convert(New(), text, site.Options{})
	assert.Nil(t, h)
	var lookup *parseerr.LookupError
	require.True(t, errors.As(err, &lookup))
	assert.Equal(t, "0.14", lookup.Key)
}

func TestCollectPotFallsBackToBareForm(t *testing.T) {
	t.Parallel()
	idx := strings.Index(holdemHand, "*** SUMMARY ***")
	h := convert(t, holdemHand[:idx])
	require.Len(t, h.Collected, 1)
	assert.Equal(t, hand.CollectedPot{Player: "alice", Amount: 7100}, h.Collected[0])
}

func TestUnknownPlayerActionFails(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand, "carol: folds", "mallory: folds", 1)
	_, err := site.Convert(New(), text, site.Options{})
	assert.Equal(t, parseerr.KindParse, parseerr.Kind(err))
}

func TestPlayMoneyTable(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand, "'Aase II' 6-max ", "'Aase II' 6-max (Play Money) ", 1)
	h := convert(t, text)
	assert.Equal(t, tables.CurrencyPlay, h.Game.Currency)
}

func TestMixedGameAndZoomHeaders(t *testing.T) {
	t.Parallel()
	text := strings.Replace(holdemHand,
		"PokerStars Game #27853322538: Hold'em No Limit ($1/$2 USD) - 2009/05/06 18:49:35 ET",
		"PokerStars Zoom Hand #27853322538: HORSE (Hold'em Limit, $2/$4) - 2009/05/06 18:49:35 CET [2009/05/06 12:49:35 ET]", 1)
	h := convert(t, text)
	assert.Equal(t, "horse", h.Game.Mix)
	assert.Equal(t, tables.FixedLimit, h.Game.Limit)
	assert.Equal(t, int64(100), h.Game.Small)
	assert.Equal(t, int64(200), h.Game.Big)
	assert.Equal(t, time.Date(2009, 5, 6, 16, 49, 35, 0, time.UTC), h.StartTime, "the last (ET) date wins")
}

func TestDetect(t *testing.T) {
	t.Parallel()
	f := New()
	assert.True(t, f.Detect(holdemHand[:80]))
	assert.True(t, f.Detect("PokerStars Home Game #1: {Club} Hold'em"))
	assert.False(t, f.Detect("Full Tilt Poker Tournament Summary"))
}
