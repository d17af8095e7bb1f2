// Package pokerstars converts PokerStars hand histories.
package pokerstars

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/money"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/pattern"
	"github.com/lox/hhconv/internal/site"
	"github.com/lox/hhconv/internal/split"
	"github.com/lox/hhconv/internal/streets"
	"github.com/lox/hhconv/internal/tables"
)

// Name is the site name recorded on every hand.
const Name = "PokerStars"

const defaultDateTime = "2000/01/01 00:00:00"

// Format implements site.HandFormat for PokerStars exports.
type Format struct{}

var (
	_ site.HandFormat          = (*Format)(nil)
	_ site.TourneyResultReader = (*Format)(nil)
)

// New returns the PokerStars format.
func New() *Format { return &Format{} }

func (f *Format) Name() string { return Name }
func (f *Format) Codepages() []string { return []string{split.UTF8, split.CP1252} }
func (f *Format) Splitter() split.Splitter { return split.Splitter{} }
func (f *Format) Detect(head string) bool { return reDetect.MatchString(head) }

// DetermineGameType reads the game descriptor from the header line.
func (f *Format) DetermineGameType(h *hand.Hand, text string) error {
	m, ok := pattern.Find(reGameInfo, text)
	if !ok {
		return parseerr.NewParseError("determine game type", "no game info found", text)
	}

	limit, ok := tables.Limit(m.String("LIMIT"))
	if !ok {
		return &parseerr.LookupError{Table: "limit", Key: m.String("LIMIT")}
	}
	game, ok := tables.GameFor(m.String("GAME"))
	if !ok {
		return &parseerr.LookupError{Table: "game", Key: m.String("GAME")}
	}
	currency, err := money.CurrencyForSymbol(m.String("CURRENCY"))
	if err != nil {
		return err
	}
	if iso := m.String("ISO"); iso != "" && iso != "FPP" {
		currency = iso
	}

	gt := hand.GameType{
		Base:     game.Base,
		Category: game.Category,
		Limit:    limit,
		Currency: currency,
		Type:     "ring",
		Cap:      m.Has("CAP"),
	}
	if mixed, ok := m.Get("MIXED"); ok {
		mix, known := tables.Mix(mixed)
		if !known {
			return &parseerr.LookupError{Table: "mix", Key: mixed}
		}
		gt.Mix = mix
	}
	if _, ok := m.Get("TOURNO"); ok {
		gt.Type = "tour"
	}

	sb, bb := m.String("SB"), m.String("BB")
	if gt.Limit == tables.FixedLimit && gt.Type == "ring" {
		blinds, known := tables.LimitBlinds(bb)
		if !known {
			return &parseerr.LookupError{Table: "limit blinds", Key: bb}
		}
		sb, bb = blinds.Small, blinds.Big
	}
	if gt.Small, err = money.ToMinor(sb, currency); err != nil {
		return fmt.Errorf("small blind: %w", err)
	}
	if gt.Big, err = money.ToMinor(bb, currency); err != nil {
		return fmt.Errorf("big blind: %w", err)
	}

	h.Game = gt
	return nil
}

// ReadHandInfo reads the hand id, table, start time and tournament linkage.
func (f *Format) ReadHandInfo(h *hand.Hand, text string) error {
	game, ok := pattern.Find(reGameInfo, text)
	if !ok {
		return parseerr.NewParseError("read hand info", "no game info found", text)
	}
	info, ok := pattern.Find(reHandInfo, text)
	if !ok {
		return parseerr.NewParseError("read hand info", "no table info found", text)
	}

	h.ID = game.String("HID")

	start, err := startTime(game.String("DATETIME"))
	if err != nil {
		return err
	}
	h.StartTime = start

	if tourno, ok := game.Get("TOURNO"); ok {
		t, err := readBuyin(game)
		if err != nil {
			return err
		}
		t.ID = tourno
		t.Level = game.String("LEVEL")
		h.Tourney = t
	}

	h.Table = info.String("TABLE")
	if h.Tourney != nil {
		if parts := strings.Split(h.Table, " "); len(parts) > 1 {
			h.Table = parts[1]
			h.Tourney.TableNumber = parts[1]
		}
	}
	if maxSeats := info.String("MAX"); maxSeats != "" {
		h.MaxSeats, _ = strconv.Atoi(maxSeats)
	}
	if button := info.String("BUTTON"); button != "" {
		h.Button, _ = strconv.Atoi(button)
	}
	if info.Has("PLAY") {
		h.Game.Currency = tables.CurrencyPlay
	}

	if reCancel.MatchString(text) {
		return &parseerr.PartialHandError{HandID: h.ID}
	}
	return nil
}

// startTime takes the last date in the header, which is always Eastern time,
// and converts it to UTC.
func startTime(header string) (time.Time, error) {
	et, ok := tables.Location("ET")
	if !ok {
		return time.Time{}, &parseerr.LookupError{Table: "timezone", Key: "ET"}
	}
	all := pattern.FindAll(reDateTime, header)
	if len(all) == 0 {
		t, err := time.ParseInLocation("2006/01/02 15:04:05", defaultDateTime, et)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	}
	m := all[len(all)-1]
	n := func(name string) int {
		v, _ := strconv.Atoi(m.String(name))
		return v
	}
	return time.Date(n("Y"), time.Month(n("M")), n("D"), n("H"), n("MIN"), n("S"), 0, et).UTC(), nil
}

// readBuyin decodes the tournament buy-in field. With three parts the second
// is the bounty and the third the fee.
func readBuyin(m pattern.Match) (*hand.TourneyInfo, error) {
	buyin := m.String("BUYIN")
	if strings.TrimSpace(buyin) == "Freeroll" {
		return &hand.TourneyInfo{BuyinCurrency: tables.CurrencyFree}, nil
	}
	currency, err := money.BuyinCurrency(buyin, m.String("TOUR_ISO"))
	if err != nil {
		return nil, err
	}
	amount, ok := m.Get("BIAMT")
	if !ok {
		return nil, parseerr.NewParseError("read buy-in", "no buy-in amount", buyin)
	}

	t := &hand.TourneyInfo{BuyinCurrency: currency}
	if currency == tables.CurrencyStarsFPP {
		if t.Buyin, err = money.WholeUnits(amount); err != nil {
			return nil, err
		}
		return t, nil
	}

	rake, bounty := m.String("BIRAKE"), m.String("BOUNTY")
	if bounty != "" {
		rake, bounty = bounty, rake
		if t.Bounty, err = money.ToMinor(bounty, currency); err != nil {
			return nil, fmt.Errorf("bounty: %w", err)
		}
	}
	if t.Buyin, err = money.ToMinor(amount, currency); err != nil {
		return nil, fmt.Errorf("buy-in: %w", err)
	}
	if rake != "" {
		if t.Fee, err = money.ToMinor(rake, currency); err != nil {
			return nil, fmt.Errorf("fee: %w", err)
		}
	}
	t.BuyinCurrency = money.ForceFree(t.Buyin, currency)
	return t, nil
}

// ReadButton reads the button seat. A missing button is not an error.
func (f *Format) ReadButton(h *hand.Hand, text string) error {
	if m, ok := pattern.Find(reButton, text); ok {
		h.Button, _ = strconv.Atoi(m.String("BUTTON"))
	}
	return nil
}

// ReadPlayerStacks seats every player with a stack line.
func (f *Format) ReadPlayerStacks(h *hand.Hand, text string) error {
	for _, m := range pattern.FindAll(rePlayerInfo, text) {
		seat, err := strconv.Atoi(m.String("SEAT"))
		if err != nil {
			return fmt.Errorf("seat %q: %w", m.String("SEAT"), err)
		}
		if err := h.AddPlayer(seat, m.String("PNAME"), m.String("CASH"), m.Has("OUT")); err != nil {
			return err
		}
	}
	return nil
}

// MarkStreets segments the record for the hand's game family.
func (f *Format) MarkStreets(h *hand.Hand, text string) error {
	var family streets.Family
	switch h.Game.Base {
	case tables.BaseHold:
		family = streets.HoldFamily(holdMarkers)
	case tables.BaseStud:
		family = streets.StudFamily(studMarkers)
	case tables.BaseDraw:
		if isSingleDraw(h.Game.Category) {
			text = streets.InsertDrawMarker(text)
			family = streets.SingleDrawFamily(singleDrawMarkers)
		} else {
			family = streets.TripleDrawFamily(tripleDrawMarkers)
		}
	default:
		return parseerr.NewParseError("mark streets", fmt.Sprintf("unsupported game base %q", h.Game.Base), text)
	}
	h.SetStreets(family, family.Segment(text))
	return nil
}

func isSingleDraw(category string) bool {
	return category == "27_1draw" || category == "fivedraw"
}

// ReadCommunityCards reads the cards dealt on a board street.
func (f *Format) ReadCommunityCards(h *hand.Hand, street streets.Street) error {
	switch street {
	case streets.Flop, streets.Turn, streets.River:
	default:
		return nil
	}
	m, ok := pattern.Find(reBoard, h.Streets[street])
	if !ok {
		return parseerr.NewParseError("read community cards", fmt.Sprintf("no board on %s", street), h.Streets[street])
	}
	h.AddBoardCards(street, m.Fields("CARDS"))
	return nil
}

// ReadAntes reads every ante post.
func (f *Format) ReadAntes(h *hand.Hand, text string) error {
	for _, m := range pattern.FindAll(reAntes, text) {
		if err := h.AddAnte(m.String("PNAME"), m.String("ANTE")); err != nil {
			return err
		}
	}
	return nil
}

// ReadBringIn reads the stud bring-in.
func (f *Format) ReadBringIn(h *hand.Hand, text string) error {
	m, ok := pattern.Find(reBringIn, text)
	if !ok {
		return nil
	}
	return h.AddBringIn(m.String("PNAME"), m.String("BRINGIN"))
}

// ReadBlinds reads small, big and combined blind posts in textual order. The
// first small blind in the text is the live one.
func (f *Format) ReadBlinds(h *hand.Hand, text string) error {
	type post struct {
		m     pattern.Match
		kind  hand.BlindKind
		group string
	}
	var posts []post
	for _, p := range blindPatterns {
		for _, m := range pattern.FindAll(p.re, text) {
			posts = append(posts, post{m: m, kind: p.kind, group: p.group})
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		a, _ := posts[i].m.Span()
		b, _ := posts[j].m.Span()
		return a < b
	})
	for _, p := range posts {
		if err := h.AddBlind(p.m.String("PNAME"), p.kind, p.m.String(p.group)); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeroCards reads "Dealt to" lines. Cards dealt before the first betting
// round identify the hero; so does a three card deal on third street.
func (f *Format) ReadHeroCards(h *hand.Hand) error {
	for _, street := range []streets.Street{streets.Preflop, streets.Deal} {
		text, ok := h.Streets[street]
		if !ok {
			continue
		}
		for _, m := range pattern.FindAll(reHeroCards, text) {
			h.Hero = m.String("PNAME")
			if err := h.AddHoleCards(street, h.Hero, m.Fields("NEWCARDS"), nil); err != nil {
				return err
			}
		}
	}

	for _, street := range h.PresentStreets() {
		if street == streets.Preflop || street == streets.Deal {
			continue
		}
		for _, m := range pattern.FindAll(reHeroCards, h.Streets[street]) {
			player := m.String("PNAME")
			newCards, oldCards := m.Fields("NEWCARDS"), m.Fields("OLDCARDS")
			var err error
			if street == streets.Third && len(newCards) == 3 {
				h.Hero = player
				err = h.AddHoleCards(street, player, newCards[:2], newCards[2:])
			} else {
				err = h.AddHoleCards(street, player, oldCards, newCards)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadAction reads the betting and drawing actions of one street, followed by
// any uncalled bet returned on it.
func (f *Format) ReadAction(h *hand.Hand, street streets.Street) error {
	text := h.Streets[street]
	for _, m := range pattern.FindAll(reAction, text) {
		if err := addAction(h, street, m); err != nil {
			return err
		}
	}
	for _, m := range pattern.FindAll(reUncalled, text) {
		if err := h.AddUncalledBet(street, m.String("PNAME"), m.String("AMT")); err != nil {
			return err
		}
	}
	return nil
}

func addAction(h *hand.Hand, street streets.Street, m pattern.Match) error {
	name := m.String("PNAME")
	allIn := m.Has("ALLIN")
	bet, hasBet := m.Get("BET")
	needBet := func() error {
		if !hasBet {
			return parseerr.NewParseError("read action", "missing amount", m.String("ATYPE"))
		}
		return nil
	}

	switch strings.TrimSpace(m.String("ATYPE")) {
	case "folds":
		return h.AddFold(street, name)
	case "checks":
		return h.AddCheck(street, name)
	case "calls":
		if err := needBet(); err != nil {
			return err
		}
		return h.AddCall(street, name, bet, allIn)
	case "bets":
		if err := needBet(); err != nil {
			return err
		}
		return h.AddBet(street, name, bet, allIn)
	case "raises":
		if to, ok := m.Get("BETTO"); ok {
			return h.AddRaiseTo(street, name, to, allIn)
		}
		if err := needBet(); err != nil {
			return err
		}
		return h.AddRaiseBy(street, name, bet, allIn)
	case "discards":
		count := 0
		if hasBet {
			count, _ = strconv.Atoi(bet)
		}
		return h.AddDiscard(street, name, count, m.Fields("CARDS"))
	case "stands pat":
		return h.AddStandPat(street, name, m.Fields("CARDS"))
	}
	return parseerr.NewParseError("read action", fmt.Sprintf("unknown action %q", m.String("ATYPE")), name)
}

// ReadShowdownActions reads "shows" lines.
func (f *Format) ReadShowdownActions(h *hand.Hand, text string) error {
	for _, m := range pattern.FindAll(reShowdownAction, text) {
		if err := h.AddShownCards(m.String("PNAME"), m.Fields("CARDS"), true, false, m.String("STRING")); err != nil {
			return err
		}
	}
	return nil
}

// ReadCollectPot reads pot collections from the summary seat lines, or from
// the bare collection lines when the summary has none.
func (f *Format) ReadCollectPot(h *hand.Hand, text string) error {
	matches := pattern.FindAll(reCollectPot, text)
	if len(matches) == 0 {
		matches = pattern.FindAll(reCollectPot2, text)
	}
	for _, m := range matches {
		if err := h.AddCollectPot(m.String("PNAME"), m.String("POT")); err != nil {
			return err
		}
	}
	return nil
}

// ReadShownCards reads the showed and mucked seat lines of the summary.
func (f *Format) ReadShownCards(h *hand.Hand, text string) error {
	for _, m := range pattern.FindAll(reShownCards, text) {
		showed := m.String("SHOWED")
		err := h.AddShownCards(m.String("PNAME"), m.Fields("CARDS"), showed == "showed", showed == "mucked", m.String("STRING"))
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadTourneyResults reads finishing positions printed inline in the hand.
func (f *Format) ReadTourneyResults(h *hand.Hand, text string) error {
	currency := h.Game.Currency
	if h.Tourney != nil && h.Tourney.BuyinCurrency != "" {
		currency = h.Tourney.BuyinCurrency
	}
	for _, m := range pattern.FindAll(reWinningRankOne, text) {
		if err := h.AddPlayerRank(m.String("PNAME"), 1, m.String("AMT"), currency); err != nil {
			return err
		}
	}
	for _, m := range pattern.FindAll(reWinningRankOther, text) {
		rank, _ := strconv.Atoi(m.String("RANK"))
		if err := h.AddPlayerRank(m.String("PNAME"), rank, m.String("AMT"), currency); err != nil {
			return err
		}
	}
	for _, m := range pattern.FindAll(reRankOther, text) {
		rank, _ := strconv.Atoi(m.String("RANK"))
		if err := h.AddPlayerRank(m.String("PNAME"), rank, "", currency); err != nil {
			return err
		}
	}
	return nil
}
