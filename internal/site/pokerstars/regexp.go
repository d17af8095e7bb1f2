package pokerstars

import (
	"regexp"

	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/streets"
)

// Fragments shared by several patterns.
const (
	cur       = `(?:\$|€|£)?`
	legalISO  = `USD|EUR|GBP|CAD|FPP`
	player    = `(?P<PNAME>.+?)`
	positions = `(?:\(button\) |\(small blind\) |\(big blind\) |\(button\) \(small blind\) |\(button\) \(big blind\) )?`
)

var (
	reDetect = regexp.MustCompile(`PokerStars(?: Game| Hand| Home Game| Home Game Hand|Game| Zoom Hand) #\d+`)

	reGameInfo = regexp.MustCompile(`(?m)` +
		`PokerStars(?: Game| Hand| Home Game| Home Game Hand|Game| Zoom Hand) #(?P<HID>[0-9]+):\s+` +
		`(?:\{.*\}\s+)?` +
		`(?:Tournament #(?P<TOURNO>\d+), ` +
		`(?P<BUYIN>(?P<BIAMT>[$€£\d.]+)?\+?(?P<BIRAKE>[$€£\d.]+)?\+?(?P<BOUNTY>[$€£\d.]+)? ?(?P<TOUR_ISO>` + legalISO + `)?|Freeroll)\s+)?` +
		`(?P<MIXED>HORSE|8-Game|8-GAME|HOSE|Mixed Omaha H/L|Mixed Hold'em|Mixed PLH/PLO|Triple Stud)? ?\(?` +
		`(?P<GAME>Hold'em|Razz|RAZZ|7 Card Stud|7 CARD STUD|7 CARD STUD HI/LO|7 Card Stud Hi/Lo|Omaha|Omaha Hi/Lo|Badugi|Triple Draw 2-7 Lowball|Single Draw 2-7 Lowball|5 Card Draw) ` +
		`(?P<LIMIT>No Limit|Limit|LIMIT|Pot Limit)\)?,? ` +
		`(?:- )?` +
		`(?:Match.*)?` +
		`(?:Level (?P<LEVEL>[IVXLC]+) )?` +
		`\(?` +
		`(?P<CURRENCY>\$|€|£)?` +
		`(?P<SB>[.0-9]+)/` + cur + `(?P<BB>[.0-9]+)` +
		`(?P<CAP> - [$€£\d.]+ Cap - )?` +
		` ?(?P<ISO>` + legalISO + `)?` +
		`\)` +
		`(?: \[AAMS ID: [A-Z0-9]+\])?` +
		` - (?P<DATETIME>.*$)`)

	reHandInfo = regexp.MustCompile(`(?m)^Table '(?P<TABLE>[- #a-zA-Z\d'_.]+)' (?:(?P<MAX>\d+)-max ?)?(?P<PLAY>\(Play Money\) )?(?:Seat #(?P<BUTTON>\d+) is the button)?`)
	reDateTime = regexp.MustCompile(`(?P<Y>[0-9]{4})/(?P<M>[0-9]{2})/(?P<D>[0-9]{2})[- ]+(?P<H>[0-9]+):(?P<MIN>[0-9]+):(?P<S>[0-9]+)`)
	reButton   = regexp.MustCompile(`Seat #(?P<BUTTON>\d+) is the button`)
	reCancel   = regexp.MustCompile(`Hand cancelled`)
	reBoard    = regexp.MustCompile(`\[(?P<CARDS>.+)\]`)

	rePlayerInfo = regexp.MustCompile(`(?m)^Seat (?P<SEAT>[0-9]+): (?P<PNAME>.*) \(` + cur + `(?P<CASH>[.0-9]+) in chips\)(?P<OUT> is sitting out)?`)

	rePostSB    = regexp.MustCompile(`(?m)^` + player + `: posts small blind ` + cur + `(?P<SB>[.0-9]+)`)
	rePostBB    = regexp.MustCompile(`(?m)^` + player + `: posts big blind ` + cur + `(?P<BB>[.0-9]+)`)
	rePostBoth  = regexp.MustCompile(`(?m)^` + player + `: posts small & big blinds ` + cur + `(?P<SBBB>[.0-9]+)`)
	reAntes     = regexp.MustCompile(`(?m)^` + player + `: posts the ante ` + cur + `(?P<ANTE>[.0-9]+)`)
	reBringIn   = regexp.MustCompile(`(?m)^` + player + `: brings[- ]in(?: low|) for ` + cur + `(?P<BRINGIN>[.0-9]+)`)
	reHeroCards = regexp.MustCompile(`(?m)^Dealt to ` + player + `(?: \[(?P<OLDCARDS>.+?)\])?(?: \[(?P<NEWCARDS>.+?)\])`)

	reAction = regexp.MustCompile(`(?m)^` + player +
		`:(?P<ATYPE> bets| checks| raises| calls| folds| discards| stands pat)` +
		`(?: ` + cur + `(?P<BET>[.\d]+))?(?: to ` + cur + `(?P<BETTO>[.\d]+))?` +
		`[ \t]*(?P<ALLIN>and is all.in)?` +
		`(?:and has reached the [$€£\d.]+ cap)?` +
		`(?: on| cards?)?` +
		`(?: \[(?P<CARDS>.+?)\])?[ \t]*$`)
	reUncalled = regexp.MustCompile(`(?m)^Uncalled bet \(` + cur + `(?P<AMT>[.\d]+)\) returned to (?P<PNAME>.+?)[ \t]*$`)

	reShowdownAction = regexp.MustCompile(`(?m)^` + player + `: shows \[(?P<CARDS>[^\]]*)\](?: \((?P<STRING>.*)\))?`)
	reShownCards     = regexp.MustCompile(`(?m)^Seat (?P<SEAT>[0-9]+): ` + player + ` ` + positions +
		`(?P<SHOWED>showed|mucked) \[(?P<CARDS>[^\]]*)\](?: and (?:won|lost) (?:\([^)]*\) )?with (?P<STRING>.*))?`)
	reCollectPot = regexp.MustCompile(`(?m)^Seat (?P<SEAT>[0-9]+): ` + player + ` ` + positions +
		`(?:collected|showed \[.*\] and won) \(` + cur + `(?P<POT>[.\d]+)\)(?:, mucked| with.*|)`)
	reCollectPot2 = regexp.MustCompile(`(?m)^` + player + ` collected ` + cur + `(?P<POT>[.\d]+)`)

	reWinningRankOne   = regexp.MustCompile(`(?m)^` + player + ` wins the tournament and receives ` + cur + `(?P<AMT>[.0-9]+) - congratulations!$`)
	reWinningRankOther = regexp.MustCompile(`(?m)^` + player + ` finished the tournament in (?P<RANK>[0-9]+)(?:st|nd|rd|th) place and received ` + cur + `(?P<AMT>[.0-9]+)\.$`)
	reRankOther        = regexp.MustCompile(`(?m)^` + player + ` finished the tournament in (?P<RANK>[0-9]+)(?:st|nd|rd|th) place$`)
)

var (
	holdMarkers = streets.Markers{
		streets.Preflop: regexp.MustCompile(`\*\*\* HOLE CARDS \*\*\*`),
		streets.Flop:    regexp.MustCompile(`\*\*\* FLOP \*\*\*`),
		streets.Turn:    regexp.MustCompile(`\*\*\* TURN \*\*\* \[\S\S \S\S \S\S\] `),
		streets.River:   regexp.MustCompile(`\*\*\* RIVER \*\*\* \[\S\S \S\S \S\S \S\S\] `),
	}
	studMarkers = streets.Markers{
		streets.Third:   regexp.MustCompile(`\*\*\* 3rd STREET \*\*\*`),
		streets.Fourth:  regexp.MustCompile(`\*\*\* 4th STREET \*\*\*`),
		streets.Fifth:   regexp.MustCompile(`\*\*\* 5th STREET \*\*\*`),
		streets.Sixth:   regexp.MustCompile(`\*\*\* 6th STREET \*\*\*`),
		streets.Seventh: regexp.MustCompile(`\*\*\* RIVER \*\*\*`),
	}
	singleDrawMarkers = streets.Markers{
		streets.Deal:    regexp.MustCompile(`\*\*\* DEALING HANDS \*\*\*`),
		streets.DrawOne: regexp.MustCompile(`\*\*\* DRAW \*\*\*`),
	}
	tripleDrawMarkers = streets.Markers{
		streets.Deal:      regexp.MustCompile(`\*\*\* DEALING HANDS \*\*\*`),
		streets.DrawOne:   regexp.MustCompile(`\*\*\* FIRST DRAW \*\*\*`),
		streets.DrawTwo:   regexp.MustCompile(`\*\*\* SECOND DRAW \*\*\*`),
		streets.DrawThree: regexp.MustCompile(`\*\*\* THIRD DRAW \*\*\*`),
	}
)

// blindPatterns are the blind post lines, each with the group holding its
// amount.
var blindPatterns = []struct {
	re    *regexp.Regexp
	kind  hand.BlindKind
	group string
}{
	{rePostSB, hand.SmallBlind, "SB"},
	{rePostBB, hand.BigBlind, "BB"},
	{rePostBoth, hand.BothBlinds, "SBBB"},
}
