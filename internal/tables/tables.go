// Package tables holds the static translation tables used while parsing.
// Everything here is read-only after package initialisation and safe for
// concurrent use.
package tables

import (
	"time"
	_ "time/tzdata"
)

// Game families.
const (
	BaseHold  = "hold"
	BaseStud  = "stud"
	BaseDraw  = "draw"
	BaseMixed = "mixed"
)

// Limit types.
const (
	NoLimit    = "nl"
	PotLimit   = "pl"
	FixedLimit = "fl"
	MixedLimit = "mx"
)

// Currency codes used alongside ISO-4217 ones.
const (
	CurrencyTourney   = "T$"
	CurrencyPlay      = "play"
	CurrencyFree      = "FREE"
	CurrencyStarsFPP  = "PSFP"
	CurrencyTiltPoint = "FTFP"
)

// Game is the (base, category) pair a game name maps to.
type Game struct {
	Base     string
	Category string
}

// Blinds is a fixed-limit small/big blind pair, as decimal strings.
type Blinds struct {
	Small string
	Big   string
}

var limits = map[string]string{
	"No Limit":  NoLimit,
	"Pot Limit": PotLimit,
	"Limit":     FixedLimit,
	"LIMIT":     FixedLimit,
}

var games = map[string]Game{
	"Hold'em":                 {BaseHold, "holdem"},
	"Omaha":                   {BaseHold, "omahahi"},
	"Omaha Hi":                {BaseHold, "omahahi"},
	"Omaha Hi/Lo":             {BaseHold, "omahahilo"},
	"Omaha H/L":               {BaseHold, "omahahilo"},
	"Razz":                    {BaseStud, "razz"},
	"RAZZ":                    {BaseStud, "razz"},
	"7 Card Stud":             {BaseStud, "studhi"},
	"7 CARD STUD":             {BaseStud, "studhi"},
	"Stud Hi":                 {BaseStud, "studhi"},
	"7 Card Stud Hi/Lo":       {BaseStud, "studhilo"},
	"7 CARD STUD HI/LO":       {BaseStud, "studhilo"},
	"Stud H/L":                {BaseStud, "studhilo"},
	"Badugi":                  {BaseDraw, "badugi"},
	"Triple Draw 2-7 Lowball": {BaseDraw, "27_3draw"},
	"2-7 Triple Draw":         {BaseDraw, "27_3draw"},
	"Single Draw 2-7 Lowball": {BaseDraw, "27_1draw"},
	"5 Card Draw":             {BaseDraw, "fivedraw"},
	"7-Game Mixed":            {BaseMixed, "7game"},
	"10-Game Mixed":           {BaseMixed, "10game"},
	"HORSE":                   {BaseMixed, "horse"},
}

var mixes = map[string]string{
	"HORSE":           "horse",
	"8-Game":          "8game",
	"8-GAME":          "8game",
	"HOSE":            "hose",
	"Mixed PLH/PLO":   "plh_plo",
	"Mixed Omaha H/L": "plo_lo",
	"Mixed Hold'em":   "mholdem",
	"Triple Stud":     "3stud",
}

// Symbols are matched literally; the empty symbol is tournament chips.
var currencies = map[string]string{
	"€":   "EUR",
	"$":   "USD",
	"£":   "GBP",
	"":    CurrencyTourney,
	"FPP": CurrencyStarsFPP,
	"FTP": CurrencyTiltPoint,
}

// Ring-game fixed-limit blinds keyed by the big bet shown in the header.
var limitBlinds = map[string]Blinds{
	"0.04": {"0.01", "0.02"}, "0.08": {"0.02", "0.04"},
	"0.10": {"0.02", "0.05"}, "0.20": {"0.05", "0.10"},
	"0.40": {"0.10", "0.20"}, "0.50": {"0.10", "0.25"},
	"1.00": {"0.25", "0.50"}, "1": {"0.25", "0.50"},
	"2.00": {"0.50", "1.00"}, "2": {"0.50", "1.00"},
	"4.00": {"1.00", "2.00"}, "4": {"1.00", "2.00"},
	"6.00": {"1.00", "3.00"}, "6": {"1.00", "3.00"},
	"8.00": {"2.00", "4.00"}, "8": {"2.00", "4.00"},
	"10.00": {"2.00", "5.00"}, "10": {"2.00", "5.00"},
	"20.00": {"5.00", "10.00"}, "20": {"5.00", "10.00"},
	"30.00": {"10.00", "15.00"}, "30": {"10.00", "15.00"},
	"40.00": {"10.00", "20.00"}, "40": {"10.00", "20.00"},
	"60.00": {"15.00", "30.00"}, "60": {"15.00", "30.00"},
	"80.00": {"20.00", "40.00"}, "80": {"20.00", "40.00"},
	"100.00": {"25.00", "50.00"}, "100": {"25.00", "50.00"},
	"150.00": {"50.00", "75.00"}, "150": {"50.00", "75.00"},
	"200.00": {"50.00", "100.00"}, "200": {"50.00", "100.00"},
	"400.00": {"100.00", "200.00"}, "400": {"100.00", "200.00"},
	"800.00": {"200.00", "400.00"}, "800": {"200.00", "400.00"},
	"1000.00": {"250.00", "500.00"}, "1000": {"250.00", "500.00"},
	"2000.00": {"500.00", "1000.00"}, "2000": {"500.00", "1000.00"},
}

// Step ticket values in cents, by step level.
var stepTickets = map[string]int64{
	"1": 330,
	"2": 870,
	"3": 2600,
	"4": 7500,
	"5": 21600,
	"6": 64000,
	"7": 210000,
}

// Timezone abbreviations seen in headers, mapped to IANA locations.
var timezones = map[string]string{
	"ET":   "America/New_York",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"CT":   "America/Chicago",
	"MT":   "America/Denver",
	"PT":   "America/Los_Angeles",
	"UTC":  "UTC",
	"GMT":  "UTC",
	"WET":  "Europe/Lisbon",
	"BST":  "Europe/London",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"EET":  "Europe/Helsinki",
	"MSK":  "Europe/Moscow",
	"AET":  "Australia/Sydney",
	"NZT":  "Pacific/Auckland",
	"ART":  "America/Argentina/Buenos_Aires",
	"BRT":  "America/Sao_Paulo",
	"IST":  "Asia/Kolkata",
	"CCT":  "Asia/Shanghai",
	"JST":  "Asia/Tokyo",
}

// Limit translates a limit name such as "No Limit".
func Limit(name string) (string, bool) {
	v, ok := limits[name]
	return v, ok
}

// GameFor translates a game name such as "Hold'em".
func GameFor(name string) (Game, bool) {
	v, ok := games[name]
	return v, ok
}

// Mix translates a mixed-game tag such as "HORSE".
func Mix(name string) (string, bool) {
	v, ok := mixes[name]
	return v, ok
}

// Currency translates a currency symbol to a code.
func Currency(symbol string) (string, bool) {
	v, ok := currencies[symbol]
	return v, ok
}

// LimitBlinds returns the fixed-limit blinds for the given big bet.
func LimitBlinds(bigBet string) (Blinds, bool) {
	v, ok := limitBlinds[bigBet]
	return v, ok
}

// StepTicketPrize returns the value in cents of a step ticket.
func StepTicketPrize(level string) (int64, bool) {
	v, ok := stepTickets[level]
	return v, ok
}

// Location loads the time.Location for a timezone abbreviation.
func Location(abbrev string) (*time.Location, bool) {
	name, ok := timezones[abbrev]
	if !ok {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}
