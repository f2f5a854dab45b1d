// Package insight computes statistics over a measurement histogram and
// turns recognizable outcome patterns into short natural-language insights.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Relative tolerance used by the pattern checks: a count matches an
// expected value e when |count - e| <= Tolerance*e.
const Tolerance = 0.1

// Report is the analysis of one histogram.
type Report struct {
	Type         string       `json:"type"`
	Summary      string       `json:"summary"`
	Statistics   Statistics   `json:"statistics"`
	Distribution Distribution `json:"distribution"`
	Insights     []string     `json:"insights"`
}

// Statistics over the non-zero outcomes.
type Statistics struct {
	TotalShots     int                `json:"total_shots"`
	UniqueOutcomes int                `json:"unique_outcomes"`
	Entropy        float64            `json:"entropy"`
	MostCommon     *Outcome           `json:"most_common,omitempty"`
	LeastCommon    *Outcome           `json:"least_common,omitempty"`
	Probabilities  map[string]float64 `json:"probabilities"`
}

// Outcome is one bitstring with its count and empirical probability.
type Outcome struct {
	State       string  `json:"state"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}

// histogram is the sorted, non-zero view of the input counts.
type histogram struct {
	states []string
	counts map[string]int
	total  int
}

func newHistogram(counts map[string]int, shots int) histogram {
	h := histogram{counts: make(map[string]int, len(counts))}
	sum := 0
	for s, n := range counts {
		if n > 0 {
			h.states = append(h.states, s)
			h.counts[s] = n
			sum += n
		}
	}
	sort.Strings(h.states)
	h.total = shots
	if h.total <= 0 {
		h.total = sum
	}
	return h
}

func (h histogram) p(state string) float64 {
	if h.total <= 0 {
		return 0
	}
	return float64(h.counts[state]) / float64(h.total)
}

// Analyze builds the Report for counts. shots is the task's shot total;
// when it is not positive the sum of counts is used instead.
func Analyze(counts map[string]int, shots int) Report {
	h := newHistogram(counts, shots)
	stats := statistics(h)
	return Report{
		Type:         "quantum_results",
		Summary:      summary(h, stats),
		Statistics:   stats,
		Distribution: classify(h),
		Insights:     insights(h),
	}
}

// Entropy is the Shannon entropy in bits of counts normalized by shots
// (or by the sum of counts when shots is not positive). Outcomes with zero
// probability are skipped, so log2 is never evaluated at zero.
func Entropy(counts map[string]int, shots int) float64 {
	return entropy(newHistogram(counts, shots))
}

func entropy(h histogram) float64 {
	e := 0.0
	for _, s := range h.states {
		if p := h.p(s); p > 0 {
			e -= p * math.Log2(p)
		}
	}
	// Rounding can leave -0 or a hair below zero for a single outcome.
	if e <= 0 {
		return 0
	}
	return e
}

func statistics(h histogram) Statistics {
	stats := Statistics{
		TotalShots:     h.total,
		UniqueOutcomes: len(h.states),
		Entropy:        entropy(h),
		Probabilities:  make(map[string]float64, len(h.states)),
	}
	for _, s := range h.states {
		stats.Probabilities[s] = h.p(s)
	}
	if len(h.states) == 0 {
		return stats
	}

	// states is sorted, so strict comparisons keep the lexicographically
	// smallest bitstring on ties.
	most, least := h.states[0], h.states[0]
	for _, s := range h.states[1:] {
		if h.counts[s] > h.counts[most] {
			most = s
		}
		if h.counts[s] < h.counts[least] {
			least = s
		}
	}
	stats.MostCommon = &Outcome{State: most, Count: h.counts[most], Probability: h.p(most)}
	stats.LeastCommon = &Outcome{State: least, Count: h.counts[least], Probability: h.p(least)}
	return stats
}

func summary(h histogram, stats Statistics) string {
	if len(h.states) == 0 {
		return fmt.Sprintf("No measurement results available over %d shots.", h.total)
	}
	return fmt.Sprintf("Measured %d unique %s over %d shots; most frequent |%s⟩ (%.1f%%).",
		stats.UniqueOutcomes, plural(stats.UniqueOutcomes, "outcome", "outcomes"), h.total,
		stats.MostCommon.State, stats.MostCommon.Probability*100)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func near(count int, expected float64) bool {
	return math.Abs(float64(count)-expected) <= Tolerance*expected
}

func complementary(a, b string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := 0; i < len(a); i++ {
		switch {
		case a[i] == '0' && b[i] == '1', a[i] == '1' && b[i] == '0':
		default:
			return false
		}
	}
	return true
}

func uniformBits(s string) bool {
	return strings.Trim(s, "0") == "" || strings.Trim(s, "1") == ""
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
