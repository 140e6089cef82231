package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"gear-optimizer/internal/builds"
)

// FormatResult produces the text report of one build: weights, per-slot prefixes, the
// chosen configuration and the resulting stats.
func FormatResult(r *builds.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Build: %s (mode %s)\n", r.Build, r.Mode)
	fmt.Fprintf(&b, "Metric: %.2f  DPS: %s  HPS: %s\n", r.Metric, commaf(r.DPS), commaf(r.HPS))
	fmt.Fprintf(&b, "Might: %.2f  Swiftness: %.2f\n", r.Might, r.Swiftness)
	fmt.Fprintf(&b, "Evaluations: %s", humanize.Comma(int64(r.Evaluations)))
	if r.Tried > 0 {
		fmt.Fprintf(&b, " coarse, %s fine", humanize.Comma(int64(r.Tried)))
	}
	b.WriteString("\n")

	b.WriteString("\nConfig:\n")
	for _, f := range r.Config {
		fmt.Fprintf(&b, "  %-8s %s\n", f.Name, f.Value)
	}

	b.WriteString("\nWeights:\n")
	for _, w := range r.Weights {
		fmt.Fprintf(&b, "  %-16s %8.1f\n", w.Prefix, w.Weight)
	}

	if len(r.Slots) > 0 {
		b.WriteString("\nGear:\n")
		for _, s := range r.Slots {
			fmt.Fprintf(&b, "  %-12s %s\n", s.Slot, s.Prefix)
		}
	}
	if len(r.Infusions) > 0 {
		parts := make([]string, len(r.Infusions))
		for i, inf := range r.Infusions {
			parts[i] = fmt.Sprintf("%s x%d", inf.Stat, int(inf.Value))
		}
		fmt.Fprintf(&b, "Infusions: %s\n", strings.Join(parts, ", "))
	}

	b.WriteString("\nStats (gear / total):\n")
	for i, g := range r.GearStats {
		t := r.TotalStats[i]
		if g.Value == 0 && t.Value == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-16s %6s %6s\n", g.Stat, humanize.Comma(int64(g.Value)), humanize.Comma(int64(t.Value)))
	}
	return b.String()
}

func commaf(x float64) string {
	return humanize.CommafWithDigits(x, 0)
}

func printTable(w io.Writer, out BenchOutput) {
	fmt.Fprintf(w, "%-20s %12s %10s %8s\n", "Build", "Metric", "DPS", "Time")
	fmt.Fprintf(w, "%-20s %12s %10s %8s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 8))
	for _, r := range out.Runs {
		fmt.Fprintf(w, "%-20s %12.1f %10s %7.1fs\n", r.Result.Build, r.Result.Metric, commaf(r.Result.DPS), float64(r.TimeMs)/1000)
	}
	fmt.Fprintf(w, "%-20s %12s %10s %7.1fs\n", "TOTAL", "", "", float64(out.TotalMs)/1000)
}
