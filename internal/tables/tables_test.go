package tables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want Game
	}{
		{"Hold'em", Game{BaseHold, "holdem"}},
		{"Omaha Hi/Lo", Game{BaseHold, "omahahilo"}},
		{"RAZZ", Game{BaseStud, "razz"}},
		{"7 Card Stud", Game{BaseStud, "studhi"}},
		{"Single Draw 2-7 Lowball", Game{BaseDraw, "27_1draw"}},
		{"Triple Draw 2-7 Lowball", Game{BaseDraw, "27_3draw"}},
		{"HORSE", Game{BaseMixed, "horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GameFor(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := GameFor("Pineapple")
	assert.False(t, ok)
}

func TestLimitAndMix(t *testing.T) {
	t.Parallel()
	l, ok := Limit("No Limit")
	require.True(t, ok)
	assert.Equal(t, NoLimit, l)

	l, ok = Limit("LIMIT")
	require.True(t, ok)
	assert.Equal(t, FixedLimit, l)

	m, ok := Mix("8-Game")
	require.True(t, ok)
	assert.Equal(t, "8game", m)

	_, ok = Limit("Spread Limit")
	assert.False(t, ok)
}

func TestCurrency(t *testing.T) {
	t.Parallel()
	for symbol, want := range map[string]string{"$": "USD", "€": "EUR", "£": "GBP", "": CurrencyTourney, "FPP": CurrencyStarsFPP} {
		got, ok := Currency(symbol)
		require.True(t, ok, symbol)
		assert.Equal(t, want, got)
	}
	_, ok := Currency("¥")
	assert.False(t, ok)
}

func TestLimitBlinds(t *testing.T) {
	t.Parallel()
	b, ok := LimitBlinds("4.00")
	require.True(t, ok)
	assert.Equal(t, Blinds{"1.00", "2.00"}, b)

	b, ok = LimitBlinds("4")
	require.True(t, ok)
	assert.Equal(t, Blinds{"1.00", "2.00"}, b)

	_, ok = LimitBlinds("3.00")
	assert.False(t, ok)
}

func TestStepTicketPrize(t *testing.T) {
	t.Parallel()
	v, ok := StepTicketPrize("3")
	require.True(t, ok)
	assert.Equal(t, int64(2600), v)

	_, ok = StepTicketPrize("8")
	assert.False(t, ok)
}

func TestTimezonesResolve(t *testing.T) {
	t.Parallel()
	for abbrev, name := range timezones {
		_, err := time.LoadLocation(name)
		assert.NoError(t, err, abbrev)
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()
	loc, ok := Location("ET")
	require.True(t, ok)
	assert.Equal(t, "America/New_York", loc.String())

	_, ok = Location("XYZ")
	assert.False(t, ok)
}
