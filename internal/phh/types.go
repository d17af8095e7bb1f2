// Package phh exports parsed hands in the Poker Hand History (PHH) format.
package phh

import "time"

// HandHistory is a single hand in PHH form. Amounts are in the minor units of
// Currency.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Venue             string   `toml:"venue,omitempty"`
	Event             string   `toml:"event,omitempty"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitzero"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int64  `toml:"antes"`
	BlindsOrStraddles []int64  `toml:"blinds_or_straddles,omitempty"`
	BringIn           int64    `toml:"bring_in,omitzero"`
	SmallBet          int64    `toml:"small_bet,omitzero"`
	BigBet            int64    `toml:"big_bet,omitzero"`
	MinBet            int64    `toml:"min_bet,omitzero"`
	StartingStacks    []int64  `toml:"starting_stacks"`
	FinishingStacks   []int64  `toml:"finishing_stacks,omitempty"`
	Winnings          []int64  `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Level             string   `toml:"level,omitempty"`
	Currency          string   `toml:"currency,omitempty"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitzero"`
	Month             int      `toml:"month,omitzero"`
	Year              int      `toml:"year,omitzero"`

	Timestamp time.Time `toml:"-"`
}
