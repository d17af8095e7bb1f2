package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hhconv/internal/config"
	"github.com/lox/hhconv/internal/phh"
	"github.com/lox/hhconv/internal/stats"
)

const sessionHands = `PokerStars Game #2001: Hold'em No Limit ($0.50/$1 USD) - 2010/03/01 20:00:00 ET
Table 'Alpha' 6-max Seat #1 is the button
Seat 1: alice ($100 in chips)
Seat 2: bob ($100 in chips)
alice: posts small blind $0.50
bob: posts big blind $1
*** HOLE CARDS ***
Dealt to bob [Qs Qd]
alice: raises $2 to $3
bob: calls $2
*** FLOP *** [2c 7h Ks]
bob: checks
alice: checks
*** SUMMARY ***
Seat 2: bob collected ($6)



PokerStars Game #2002: this header is mangled



PokerStars Game #2003: Hold'em No Limit ($0.50/$1 USD) - 2010/03/01 20:01:00 ET
Table 'Alpha' 6-max Seat #2 is the button
Seat 1: alice ($97 in chips)
Seat 2: bob ($103 in chips)
bob: posts small blind $0.50
alice: posts big blind $1
*** HOLE CARDS ***
Dealt to bob [4c 9d]
bob: folds
Uncalled bet ($0.50) returned to alice
alice collected $1 from pot
*** SUMMARY ***
Seat 1: alice collected ($1)`

const tourneySummary = `Full Tilt Poker Tournament Summary $10 + $1 Sit & Go (123456789) Hold'em No Limit
Buy-In: $10 + $1
9 Entries
Total Prize Pool: $500
Tournament started: 2010/08/03 17:40:33 ET

1: alice, $250
2: bob, $150
3: carol, $100
4: dave`

func TestRegistryHonoursDisabledFormats(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	r := registry(cfg)
	assert.Len(t, r.HandFormats(), 1)
	assert.Len(t, r.SummaryFormats(), 1)

	off := false
	cfg.Formats = []config.FormatConfig{{Name: "fulltilt", Enabled: &off}}
	r = registry(cfg)
	assert.Len(t, r.HandFormats(), 1)
	assert.Empty(t, r.SummaryFormats())
}

func TestParseReportAndExport(t *testing.T) {
	t.Parallel()
	runner := newRunner(config.Default(), zerolog.Nop())
	report, err := runner.ParseHands(context.Background(), []byte(sessionHands), "")
	require.NoError(t, err)
	require.Len(t, report.Hands, 2)
	require.Len(t, report.Failures, 1)

	var out bytes.Buffer
	s := newStyles(&out)
	renderBatch(&out, s, report, true)
	renderHands(&out, s, report.Hands)

	text := out.String()
	assert.Contains(t, text, "PokerStars batch "+report.ID)
	assert.Contains(t, text, "records    3")
	assert.Contains(t, text, "converted  2")
	assert.Contains(t, text, "failed     1")
	assert.Contains(t, text, "record 1 parse")
	assert.Contains(t, text, "PokerStars Game #2002: this header is mangled")
	assert.Contains(t, text, "2001")
	assert.Contains(t, text, "$0.50/$1.00")

	path := filepath.Join(t.TempDir(), "out", "session.phhs")
	n, err := exportHands(path, report.Hands, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var decoded map[string]phh.HandHistory
	_, err = toml.DecodeFile(path, &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "2001", decoded["1"].HandID)
	assert.Equal(t, "NT", decoded["2"].Variant)
}

func TestExportSkipsWhenNothingConverts(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.phhs")
	n, err := exportHands(path, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, path)
}

func TestSummaryReport(t *testing.T) {
	t.Parallel()
	runner := newRunner(config.Default(), zerolog.Nop())
	report, err := runner.ParseSummaries(context.Background(), []byte(tourneySummary), "")
	require.NoError(t, err)
	require.Len(t, report.Summaries, 1)

	var out bytes.Buffer
	renderSummaries(&out, newStyles(&out), report.Summaries, true)

	text := out.String()
	assert.Contains(t, text, "123456789")
	assert.Contains(t, text, "$10.00+$1.00")
	assert.Contains(t, text, "500 USD")
	assert.Contains(t, text, "Tourney 123456789")
	lines := strings.Split(text, "\n")
	var ranks []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > 1 && (fields[1] == "alice" || fields[1] == "bob" || fields[1] == "dave") {
			ranks = append(ranks, fields[0]+" "+fields[1])
		}
	}
	assert.Equal(t, []string{"1 alice", "2 bob", "4 dave"}, ranks)
}

func TestStatsReport(t *testing.T) {
	t.Parallel()
	runner := newRunner(config.Default(), zerolog.Nop())
	report, err := runner.ParseHands(context.Background(), []byte(sessionHands), "PokerStars")
	require.NoError(t, err)

	agg := stats.NewAggregate()
	for _, h := range report.Hands {
		agg.Add(stats.New(h))
	}

	var out bytes.Buffer
	renderStats(&out, newStyles(&out), agg, "bob", 1)
	text := out.String()
	assert.Contains(t, text, "Players over 2 hands")
	assert.Contains(t, text, "bob")
	assert.NotContains(t, text, "alice")
}

func TestReadInput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hands.txt")
	require.NoError(t, os.WriteFile(path, []byte(sessionHands), 0o644))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, sessionHands, string(data))

	_, err = readInput(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
