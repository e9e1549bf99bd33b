package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "═══════════════════════════════════════════════════════════")
	_, _ = bold.Fprintln(w, title)
	_, _ = bold.Fprintln(w, "═══════════════════════════════════════════════════════════")
	for _, desc := range descriptions {
		_, _ = fmt.Fprintln(w, desc)
	}
	_, _ = fmt.Fprintln(w)
}

func makeProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Multiplying"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// renderMetrics prints a snapshot as a two-column table sorted by name.
func renderMetrics(w io.Writer, snap map[string]int64) error {
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	printSectionHeader(w, "ENGINE METRICS")
	table := tablewriter.NewWriter(w)
	table.Header("Counter", "Value")
	for _, name := range names {
		_ = table.Append(name, formatNumber(int(snap[name])))
	}
	return table.Render()
}

// renderBench ranks successful runs by total time and prints them, followed
// by any failures.
func renderBench(w io.Writer, results []benchResult, cells int) error {
	var ok, failed []benchResult
	for _, r := range results {
		if r.Success {
			ok = append(ok, r)
		} else {
			failed = append(failed, r)
		}
	}

	if len(ok) > 0 {
		sort.Slice(ok, func(i, j int) bool { return ok[i].Total < ok[j].Total })
		for i := range ok {
			ok[i].Rank = i + 1
		}

		printSectionHeader(w, "THROUGHPUT BY ROUTING POLICY",
			fmt.Sprintf("  %s cells per product, results checked against the sequential loop", formatNumber(cells)))

		table := tablewriter.NewWriter(w)
		table.Header("Rank", "Routing", "Total", "Per Product", "Cells/sec", "vs Fastest")
		fastest := ok[0].Total
		for _, r := range ok {
			_ = table.Append(
				getRankIcon(r.Rank),
				r.Routing,
				r.Total.Round(time.Microsecond).String(),
				formatLatency(r.PerIter),
				formatNumber(int(r.CellsPS)),
				getVsFastestStr(r.Total, fastest, r.Rank),
			)
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = red.Fprintln(w, "Failed routing policies:")
		for _, r := range failed {
			_, _ = red.Fprintf(w, "  • %s: %s\n", r.Routing, r.ErrorMsg)
		}
		return fmt.Errorf("%d of %d routing policies failed", len(failed), len(results))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = green.Fprintf(w, "✅ All %d routing policies produced the correct product\n", len(results))
	return nil
}

func getRankIcon(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func getVsFastestStr(total, fastest time.Duration, rank int) string {
	if rank == 1 || fastest <= 0 {
		return "baseline"
	}
	ratio := float64(total) / float64(fastest)
	if ratio > 1.5 {
		return yellow.Sprintf("%.2fx", ratio)
	}
	return fmt.Sprintf("%.2fx", ratio)
}

// formatNumber formats an integer with comma separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			_, _ = result.WriteString(",")
		}
		_, _ = result.WriteRune(c)
	}
	return result.String()
}

// formatLatency formats a duration in the most appropriate unit.
func formatLatency(d time.Duration) string {
	ns := d.Nanoseconds()
	switch {
	case ns == 0:
		return "0"
	case ns < 1000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(ns)/1e3)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.2fs", float64(ns)/1e9)
	}
}
