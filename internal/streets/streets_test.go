package streets

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marker(s string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(s))
}

var testHold = HoldFamily(Markers{
	Preflop: marker("*** HOLE CARDS ***"),
	Flop:    marker("*** FLOP ***"),
	Turn:    marker("*** TURN ***"),
	River:   marker("*** RIVER ***"),
})

var testStud = StudFamily(Markers{
	Third:   marker("*** 3rd STREET ***"),
	Fourth:  marker("*** 4th STREET ***"),
	Fifth:   marker("*** 5th STREET ***"),
	Sixth:   marker("*** 6th STREET ***"),
	Seventh: marker("*** RIVER ***"),
})

var testSingleDraw = SingleDrawFamily(Markers{
	Deal:    marker("*** DEALING HANDS ***"),
	DrawOne: marker("*** DRAW ***"),
})

const holdText = `Table 'x'
a: posts small blind 1
*** HOLE CARDS ***
a: raises 2 to 4
*** FLOP *** [Ah Kd 2c]
a: bets 4
*** TURN *** [Ah Kd 2c] [3s]
a: checks
`

func TestHoldSegmentation(t *testing.T) {
	t.Parallel()
	segs := testHold.Segment(holdText)
	require.Len(t, segs, 3)
	assert.Equal(t, Preflop, segs[0].Street)
	assert.Equal(t, "\na: raises 2 to 4\n", segs[0].Text)
	assert.Equal(t, Flop, segs[1].Street)
	assert.True(t, strings.HasPrefix(segs[1].Text, " [Ah Kd 2c]"))
	assert.Equal(t, Turn, segs[2].Street)
	assert.Contains(t, segs[2].Text, "a: checks")

	m := ToMap(segs)
	_, hasRiver := m[River]
	assert.False(t, hasRiver, "river was never dealt")
}

func TestHoldWithoutPreflopMarkerYieldsNothing(t *testing.T) {
	t.Parallel()
	assert.Empty(t, testHold.Segment("a: posts small blind 1\n"))
}

func TestStudInitialSectionTakesEverythingWithoutMarkers(t *testing.T) {
	t.Parallel()
	text := "a: posts the ante 1\nb: posts the ante 1\n"
	segs := testStud.Segment(text)
	require.Len(t, segs, 1)
	assert.Equal(t, Antes, segs[0].Street)
	assert.Equal(t, text, segs[0].Text)
}

func TestMarkersOnlyMoveForward(t *testing.T) {
	t.Parallel()
	// A fourth-street marker printed before third street must not be used.
	text := "ante\n*** 4th STREET ***\nearly\n*** 3rd STREET ***\nthird\n*** 4th STREET ***\nfourth\n"
	segs := testStud.Segment(text)
	require.Len(t, segs, 3)
	assert.Equal(t, []Street{Antes, Third, Fourth}, []Street{segs[0].Street, segs[1].Street, segs[2].Street})
	assert.Equal(t, "\nthird\n", segs[1].Text)
	assert.Equal(t, "\nfourth\n", segs[2].Text)
}

func TestSkippedMarkerEndsSegmentation(t *testing.T) {
	t.Parallel()
	text := "ante\n*** 3rd STREET ***\nthird\n*** 5th STREET ***\nfifth\n"
	segs := testStud.Segment(text)
	require.Len(t, segs, 2)
	assert.Equal(t, Third, segs[1].Street)
	assert.Contains(t, segs[1].Text, "fifth")
}

// Segments never overlap, appear in family order and only cover text outside
// the markers themselves.
func TestSegmentationIsOrderedAndNonOverlapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		family Family
		text   string
	}{
		{testHold, holdText},
		{testHold, holdText + "*** RIVER *** [Ah Kd 2c 3s] [4d]\na: bets 8\n"},
		{testStud, "ante\n*** 3rd STREET ***\nt\n*** 4th STREET ***\nf\n*** 5th STREET ***\nv\n*** 6th STREET ***\ns\n*** RIVER ***\nr\n"},
		{testSingleDraw, "pre\n*** DEALING HANDS ***\ndeal\n*** DRAW ***\ndraw\n"},
		{testSingleDraw, ""},
	}
	for _, tc := range cases {
		segs := tc.family.Segment(tc.text)
		order := map[Street]int{}
		for i, s := range tc.family.Streets() {
			order[s] = i
		}
		prevEnd, prevOrder := 0, -1
		covered := 0
		for _, seg := range segs {
			require.GreaterOrEqual(t, seg.Start, prevEnd)
			require.LessOrEqual(t, seg.Start, seg.End)
			require.Greater(t, order[seg.Street], prevOrder)
			require.Equal(t, tc.text[seg.Start:seg.End], seg.Text)
			prevEnd, prevOrder = seg.End, order[seg.Street]
			covered += seg.End - seg.Start
		}
		assert.LessOrEqual(t, covered, len(tc.text))
	}
}

func TestInsertDrawMarker(t *testing.T) {
	t.Parallel()
	text := "*** DEALING HANDS ***\nDealt to a [2c 3d 4h 5s 7c]\nb: calls 10\na: discards 1 card [7c]\nb: stands pat\n"
	got := InsertDrawMarker(text)
	assert.Equal(t, "*** DEALING HANDS ***\nDealt to a [2c 3d 4h 5s 7c]\nb: calls 10\n*** DRAW ***\na: discards 1 card [7c]\nb: stands pat\n", got)

	segs := testSingleDraw.Segment("pre\n" + got)
	require.Len(t, segs, 3)
	assert.Equal(t, DrawOne, segs[2].Street)
	assert.Contains(t, segs[2].Text, "a: discards")
	assert.NotContains(t, segs[1].Text, "discards")
}

func TestInsertDrawMarkerIsIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"a: calls 10\nb: stands pat\na: discards 2 cards\n",
		"a: calls 10\n",
		"*** DRAW ***\na: discards 1 card [7c]\n",
		"",
	}
	for _, in := range inputs {
		once := InsertDrawMarker(in)
		assert.Equal(t, once, InsertDrawMarker(once), in)
	}
	assert.Equal(t, "a: calls 10\n", InsertDrawMarker("a: calls 10\n"))
}

func TestFamilyHelpers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Street{Preflop, Flop, Turn, River}, testHold.Streets())
	assert.True(t, testStud.Has(Seventh))
	assert.False(t, testStud.Has(Flop))
	assert.Equal(t, Third, testStud.BringInStreet)
	assert.Equal(t, BlindsAntes, testHold.PostStreet)
}
