package visual

import (
	"fmt"
	"sort"
	"strings"
)

const (
	histogramBar   = 40
	histogramRule  = 50
	noMeasurements = "No measurement data available"
)

// RenderHistogram draws counts as a bar chart, one line per bitstring in
// lexicographic order, bars scaled to the largest count.
func RenderHistogram(counts map[string]int) string {
	total, peak := 0, 0
	for _, n := range counts {
		total += n
		if n > peak {
			peak = n
		}
	}
	if len(counts) == 0 || total <= 0 {
		return noMeasurements
	}

	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Strings(states)

	rule := strings.Repeat("=", histogramRule)
	lines := make([]string, 0, len(states)+4)
	lines = append(lines, "Measurement Results Histogram:", rule)
	for _, s := range states {
		n := counts[s]
		bar := 0
		if peak > 0 && n > 0 {
			bar = n * histogramBar / peak
		}
		pct := float64(n) / float64(total) * 100
		lines = append(lines, fmt.Sprintf("|%s⟩: %s%s %4d (%5.1f%%)",
			s, strings.Repeat("█", bar), strings.Repeat(" ", histogramBar-bar), n, pct))
	}
	lines = append(lines, rule, fmt.Sprintf("Total shots: %d", total))
	return strings.Join(lines, "\n")
}
