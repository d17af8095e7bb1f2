// Package fulltilt converts Full Tilt Poker tournament summaries.
package fulltilt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/money"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/pattern"
	"github.com/lox/hhconv/internal/site"
	"github.com/lox/hhconv/internal/split"
	"github.com/lox/hhconv/internal/tables"
)

// Name is the site name recorded on every summary.
const Name = "FullTilt"

// Only the head of a document is searched for the header block.
const headerLen = 2000

const (
	sym = `[$€£]`
	num = `[.,\d]+`
)

var (
	reSplit = regexp.MustCompile(`(?m)^Full Tilt Poker Tournament Summary`)

	reTourneyInfo = regexp.MustCompile(`(?s)` +
		`\((?P<TOURNO>[0-9]+)\)\s*(?: Match \d )?` +
		`(?P<GAME>Hold'em|Razz|RAZZ|7 Card Stud Hi/Lo|7 Card Stud|Stud H/L|Stud Hi|Omaha Hi/Lo|Omaha H/L|Omaha Hi|Omaha|Badugi|Triple Draw 2-7 Lowball|2-7 Triple Draw|5 Card Draw|7-Game Mixed|HORSE|10-Game Mixed)\s+` +
		`(?:(?P<LIMIT>No Limit|Limit|LIMIT|Pot Limit)\s+)?` +
		`(?:Buy-In: (?:(?P<FREEROLL>Freeroll)|` + sym + `?(?P<BUYIN>` + num + `)(?: FTP)?(?: \+ ` + sym + `?(?P<FEE>` + num + `)(?: FTP)?)?)\s+)?` +
		`(?:Knockout Bounty: ` + sym + `(?P<KOBOUNTY>` + num + `)\s+)?` +
		`(?:[^\n]{2,15} received \d+ Knockout Bounty Awards?\s+)*` +
		`(?:Add-On: ` + sym + `(?P<ADDON>` + num + `)\s+)?` +
		`(?:Rebuy: ` + sym + `(?P<REBUYAMT>` + num + `)\s+)?` +
		`(?:[^\n]{2,15} performed \d+ Add-Ons?\s+)*` +
		`(?:[^\n]{2,15} performed \d+ Rebuys?\s+)*` +
		`(?:Buy-In Chips: (?P<CHIPS>\d+)\s+)?` +
		`(?:Add-On Chips: (?P<ADDONCHIPS>\d+)\s+)?` +
		`(?:Rebuy Chips: (?P<REBUYCHIPS>\d+)\s+)?` +
		`(?P<ENTRIES>[0-9]+) Entries\s+` +
		`(?:Total Add-Ons: (?P<ADDONS>\d+)\s+)?` +
		`(?:Total Rebuys: (?P<REBUYS>\d+)\s+)?` +
		`(?:Total Prize Pool: ` + sym + `?(?P<PRIZEPOOL>` + num + `)(?: FTP)?\s+)?` +
		`(?:Top (?:\d+ )?finishers? receives? [^\n]+\s+)?` +
		`(?:Target Tournament [^\n]+\s+)?` +
		`Tournament started: ` +
		`(?:(?P<Y>\d{4})/(?P<M>\d{2})/(?P<D>\d+)\s+(?P<H>\d+):(?P<MIN>\d+):(?P<S>\d+) ?(?P<TZ>[A-Z]+)` +
		`|\w+, (?P<MONTH>\w+) (?P<DAY>\d+), (?P<YEAR>\d{4}) (?P<HOUR>\d+):(?P<MIN2>\d+))`)

	reKnockouts = regexp.MustCompile(`(?m)^(?P<NAME>[^\n]{2,15}) received (?P<N>\d+) Knockout Bounty Awards?`)
	reAddOns    = regexp.MustCompile(`(?m)^(?P<NAME>[^\n]{2,15}) performed (?P<N>\d+) Add-Ons?`)
	reRebuys    = regexp.MustCompile(`(?m)^(?P<NAME>[^\n]{2,15}) performed (?P<N>\d+) Rebuys?`)

	reCurrency = regexp.MustCompile(`(?P<CURRENCY>` + sym + `|FPP|FTP)`)
	rePlayer   = regexp.MustCompile(`(?m)^(?P<RANK>\d+): (?P<NAME>[^,\n]{2,15})(?:, (?P<CURRENCY>` + sym + `)(?P<WINNINGS>[.,\d]+))?(?:, (?P<TICKET>Step (?P<LEVEL>\d) Ticket))?`)
	reFinished = regexp.MustCompile(`(?P<NAME>[^,\n]{2,15}) finished in (?P<RANK>\d+)\S\S place`)
)

// Format implements site.SummaryFormat for Full Tilt Poker.
type Format struct{}

var _ site.SummaryFormat = (*Format)(nil)

// New returns the Full Tilt summary format.
func New() *Format { return &Format{} }

func (f *Format) Name() string { return Name }

// Codepages lists UTF-16 first since that is what the client writes.
func (f *Format) Codepages() []string {
	return []string{split.UTF16, split.UTF8, split.CP1252}
}

func (f *Format) Splitter() split.Splitter { return split.Splitter{Header: reSplit} }

func (f *Format) Detect(head string) bool { return reSplit.MatchString(head) }

// ParseSummary converts one summary document.
func (f *Format) ParseSummary(text string) (*hand.TourneySummary, error) {
	head := text
	if len(head) > headerLen {
		head = head[:headerLen]
	}
	m, ok := pattern.Find(reTourneyInfo, head)
	if !ok {
		return nil, parseerr.NewParseError("parse summary", "no tournament info found", text)
	}

	s := hand.NewSummary(Name)
	s.ID = m.String("TOURNO")

	game, ok := tables.GameFor(m.String("GAME"))
	if !ok {
		return nil, &parseerr.LookupError{Table: "game", Key: m.String("GAME")}
	}
	s.Game = hand.GameType{Base: game.Base, Category: game.Category, Limit: tables.MixedLimit, Type: "tour"}
	if name, ok := m.Get("LIMIT"); ok {
		limit, known := tables.Limit(name)
		if !known {
			return nil, &parseerr.LookupError{Table: "limit", Key: name}
		}
		s.Game.Limit = limit
	}

	if err := readAmounts(s, m); err != nil {
		return nil, err
	}

	start, err := startTime(m)
	if err != nil {
		return nil, err
	}
	s.StartTime = start

	if err := readCurrency(s, text, m.Has("FREEROLL")); err != nil {
		return nil, err
	}
	s.Game.Currency = s.Currency

	readCounts(s, head)
	if err := readPlayers(s, text); err != nil {
		return nil, err
	}
	return s, nil
}

func readAmounts(s *hand.TourneySummary, m pattern.Match) error {
	cents := []struct {
		group string
		dst   *int64
	}{
		{"BUYIN", &s.Buyin},
		{"FEE", &s.Fee},
		{"KOBOUNTY", &s.Bounty},
		{"REBUYAMT", &s.RebuyCost},
		{"ADDON", &s.AddOnCost},
	}
	for _, c := range cents {
		v, ok := m.Get(c.group)
		if !ok {
			continue
		}
		minor, err := money.ToMinorCents(v)
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(c.group), err)
		}
		*c.dst = minor
	}

	if v, ok := m.Get("PRIZEPOOL"); ok {
		pool, err := money.WholeUnits(v)
		if err != nil {
			return fmt.Errorf("prize pool: %w", err)
		}
		s.PrizePool = pool
	}

	counts := []struct {
		group string
		dst   *int
	}{
		{"ENTRIES", &s.Entries},
		{"ADDONS", &s.TotalAddOns},
		{"REBUYS", &s.TotalRebuys},
	}
	for _, c := range counts {
		if v, ok := m.Get(c.group); ok {
			*c.dst, _ = strconv.Atoi(v)
		}
	}

	chips := []struct {
		group string
		dst   *int64
	}{
		{"CHIPS", &s.StartingChips},
		{"ADDONCHIPS", &s.AddOnChips},
		{"REBUYCHIPS", &s.RebuyChips},
	}
	for _, c := range chips {
		if v, ok := m.Get(c.group); ok {
			*c.dst, _ = strconv.ParseInt(v, 10, 64)
		}
	}
	return nil
}

// startTime reads either "2010/08/03 17:40:33 ET", converted to UTC, or
// "Tuesday, August 3, 2010 17:40", taken as is.
func startTime(m pattern.Match) (time.Time, error) {
	if year, ok := m.Get("YEAR"); ok {
		value := fmt.Sprintf("%s/%s/%s %s:%s", year, m.String("MONTH"), m.String("DAY"), m.String("HOUR"), m.String("MIN2"))
		t, err := time.Parse("2006/January/2 15:04", value)
		if err != nil {
			return time.Time{}, parseerr.NewParseError("parse summary", "bad start time", value)
		}
		return t, nil
	}

	loc := time.UTC
	if tz, ok := m.Get("TZ"); ok {
		l, known := tables.Location(tz)
		if !known {
			return time.Time{}, &parseerr.LookupError{Table: "timezone", Key: tz}
		}
		loc = l
	}
	n := func(name string) int {
		v, _ := strconv.Atoi(m.String(name))
		return v
	}
	return time.Date(n("Y"), time.Month(n("M")), n("D"), n("H"), n("MIN"), n("S"), 0, loc).UTC(), nil
}

// readCurrency resolves the buy-in currency from the first currency token in
// the document. A zero buy-in is always free.
func readCurrency(s *hand.TourneySummary, text string, freeroll bool) error {
	if freeroll || s.Buyin == 0 {
		s.BuyinCurrency = tables.CurrencyFree
		s.Currency = s.BuyinCurrency
		return nil
	}
	m, ok := pattern.Find(reCurrency, text)
	if !ok {
		return parseerr.NewParseError("parse summary", "unable to locate currency", text)
	}
	code, err := money.CurrencyForSymbol(m.String("CURRENCY"))
	if err != nil {
		return err
	}
	if code == tables.CurrencyStarsFPP {
		code = tables.CurrencyTiltPoint
	}
	s.BuyinCurrency = code
	s.Currency = code
	return nil
}

func readCounts(s *hand.TourneySummary, head string) {
	for _, m := range pattern.FindAll(reKnockouts, head) {
		n, _ := strconv.Atoi(m.String("N"))
		s.AddKnockouts(m.String("NAME"), n)
	}
	for _, m := range pattern.FindAll(reAddOns, head) {
		n, _ := strconv.Atoi(m.String("N"))
		s.AddAddOns(m.String("NAME"), n)
	}
	for _, m := range pattern.FindAll(reRebuys, head) {
		n, _ := strconv.Atoi(m.String("N"))
		s.AddRebuys(m.String("NAME"), n)
	}
}

// readPlayers reads the ranked result lines, falling back to "finished in"
// sentences when the document has none.
func readPlayers(s *hand.TourneySummary, text string) error {
	players := pattern.FindAll(rePlayer, text)
	for _, m := range players {
		rank, _ := strconv.Atoi(m.String("RANK"))
		var winnings int64

		if amount, ok := m.Get("WINNINGS"); ok {
			code, err := money.CurrencyForSymbol(m.String("CURRENCY"))
			if err != nil {
				return err
			}
			s.Currency = code
			if winnings, err = money.ToMinorCents(amount); err != nil {
				return fmt.Errorf("winnings for %q: %w", m.String("NAME"), err)
			}
		}
		if level, ok := m.Get("LEVEL"); ok {
			prize, known := tables.StepTicketPrize(level)
			if !known {
				return &parseerr.LookupError{Table: "step ticket", Key: level}
			}
			winnings = prize
		}
		s.AddPlayerResult(rank, strings.TrimSpace(m.String("NAME")), winnings, s.Currency)
	}
	if len(players) > 0 {
		return nil
	}

	for _, m := range pattern.FindAll(reFinished, text) {
		rank, _ := strconv.Atoi(m.String("RANK"))
		s.AddPlayerResult(rank, strings.TrimSpace(m.String("NAME")), 0, s.Currency)
	}
	return nil
}
