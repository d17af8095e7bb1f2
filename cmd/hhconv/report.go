package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/hhconv/internal/batch"
	"github.com/lox/hhconv/internal/hand"
	"github.com/lox/hhconv/internal/money"
	"github.com/lox/hhconv/internal/stats"
)

type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

// newStyles binds the styles to w, so colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("9")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func renderBatch(w io.Writer, s styles, report *batch.Report, listFailures bool) {
	fmt.Fprintln(w, s.title.Render(fmt.Sprintf("%s batch %s", report.Format, report.ID)))
	fmt.Fprintf(w, "  codepage   %s\n", report.Codepage)
	fmt.Fprintf(w, "  records    %d\n", report.Records)
	fmt.Fprintf(w, "  converted  %s\n", s.ok.Render(fmt.Sprint(len(report.Hands)+len(report.Summaries))))
	if n := report.Cancelled(); n > 0 {
		fmt.Fprintf(w, "  cancelled  %s\n", s.warn.Render(fmt.Sprint(n)))
	}
	failed := s.ok
	if len(report.Failures) > 0 {
		failed = s.bad
	}
	fmt.Fprintf(w, "  failed     %s\n", failed.Render(fmt.Sprint(len(report.Failures))))
	fmt.Fprintf(w, "  elapsed    %s\n", report.Elapsed.Round(time.Millisecond))

	if !listFailures {
		return
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  record %d %s %v\n", f.Index, s.bad.Render(f.Kind), f.Err)
		first, _, _ := strings.Cut(f.Excerpt, "\n")
		fmt.Fprintf(w, "    %s\n", s.dim.Render(first))
	}
}

func renderHands(w io.Writer, s styles, hands []*hand.Hand) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.title.Render("Hands"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HAND\tGAME\tSTAKES\tTABLE\tPLAYERS\tSTARTED (UTC)")
	for _, h := range hands {
		id := h.ID
		if h.Cancelled {
			id += " (cancelled)"
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%d\t%s\n",
			id,
			h.Game.Limit, h.Game.Category,
			stakes(h.Game),
			h.Table,
			len(h.Players),
			h.StartTime.UTC().Format("2006-01-02 15:04:05"),
		)
	}
	tw.Flush()
}

func stakes(g hand.GameType) string {
	if g.IsTourney() {
		return fmt.Sprintf("%d/%d", g.Small, g.Big)
	}
	return money.Display(g.Small, g.Currency) + "/" + money.Display(g.Big, g.Currency)
}

func renderSummaries(w io.Writer, s styles, summaries []*hand.TourneySummary, results bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.title.Render("Tournaments"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOURNEY\tGAME\tBUY-IN\tENTRIES\tPRIZE POOL\tFINISHERS\tSTARTED (UTC)")
	for _, t := range summaries {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%d\t%d %s\t%d\t%s\n",
			t.ID,
			t.Game.Limit, t.Game.Category,
			buyin(t),
			t.Entries,
			t.PrizePool, t.Currency,
			len(t.Results),
			t.StartTime.UTC().Format("2006-01-02 15:04"),
		)
	}
	tw.Flush()

	if !results {
		return
	}
	for _, t := range summaries {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.title.Render("Tourney "+t.ID))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tPLAYER\tWINNINGS\tREBUYS\tADD-ONS\tKNOCKOUTS")
		for _, r := range t.SortedResults() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
				r.Rank, r.Name, money.Display(r.Winnings, r.Currency), r.Rebuys, r.AddOns, r.Knockouts)
		}
		tw.Flush()
	}
}

func buyin(t *hand.TourneySummary) string {
	out := money.Display(t.Buyin, t.BuyinCurrency) + "+" + money.Display(t.Fee, t.BuyinCurrency)
	if t.Bounty > 0 {
		out += "+" + money.Display(t.Bounty, t.BuyinCurrency)
	}
	return out
}

func renderStats(w io.Writer, s styles, agg *stats.Aggregate, player string, minHands int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.title.Render(fmt.Sprintf("Players over %d hands", agg.Hands)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tHANDS\tVPIP\tPFR\tFLOP\tSHOWDOWN\tNET BB\tBB/HAND\tCI 95")
	for _, t := range agg.Players() {
		if player != "" && t.Name != player {
			continue
		}
		if t.Hands < minHands {
			continue
		}
		lo, hi := t.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\t%+.1f\t%+.2f\t[%+.2f, %+.2f]\n",
			t.Name, t.Hands,
			t.VPIPRate()*100, t.PFRRate()*100, t.SawFlopRate()*100, t.ShowdownRate()*100,
			t.NetBB(), t.Mean(), lo, hi,
		)
	}
	tw.Flush()
}
