package insight

import "fmt"

const noData = "No measurement data available for analysis"

// insights appends, in fixed order, the entangled-pair, uniform
// superposition, and deterministic findings. The generic distribution
// summary is added only when none of those apply.
func insights(h histogram) []string {
	if len(h.states) == 0 {
		return []string{noData}
	}

	var out []string
	if s, ok := entangledPair(h); ok {
		out = append(out, s)
	}
	if s, ok := uniformSuperposition(h); ok {
		out = append(out, s)
	}
	if len(h.states) == 1 {
		out = append(out, fmt.Sprintf("Deterministic result: every shot measured |%s⟩, consistent with a classical basis state", h.states[0]))
	}
	if len(out) == 0 {
		out = append(out, generic(h))
	}
	return out
}

// entangledPair matches exactly two complementary multi-qubit outcomes with
// roughly equal counts.
func entangledPair(h histogram) (string, bool) {
	if len(h.states) != 2 {
		return "", false
	}
	a, b := h.states[0], h.states[1]
	if len(a) < 2 || !complementary(a, b) {
		return "", false
	}
	half := float64(h.total) / 2
	if !near(h.counts[a], half) || !near(h.counts[b], half) {
		return "", false
	}

	switch {
	case uniformBits(a) && len(a) == 2:
		return fmt.Sprintf("Results suggest quantum entanglement (Bell state pattern): |%s⟩ and |%s⟩ appear with equal probability and the qubits are perfectly correlated", a, b), true
	case uniformBits(a):
		return fmt.Sprintf("Results suggest GHZ-type entanglement: only |%s⟩ and |%s⟩ appear, so all %d qubits agree on every shot", a, b, len(a)), true
	default:
		return fmt.Sprintf("Results suggest anti-correlated entanglement (Bell state pattern): only the complementary outcomes |%s⟩ and |%s⟩ appear", a, b), true
	}
}

// uniformSuperposition matches 2^k outcomes with equal counts.
func uniformSuperposition(h histogram) (string, bool) {
	n := len(h.states)
	if n < 2 || !isPowerOfTwo(n) {
		return "", false
	}
	expected := float64(h.total) / float64(n)
	for _, s := range h.states {
		if !near(h.counts[s], expected) {
			return "", false
		}
	}
	return fmt.Sprintf("Results suggest a uniform quantum superposition across %d basis states (entropy %.3f bits)", n, entropy(h)), true
}

func generic(h histogram) string {
	stats := statistics(h)
	return fmt.Sprintf("Distribution spans %d outcomes with entropy %.3f bits; most frequent |%s⟩ at %.1f%%",
		stats.UniqueOutcomes, stats.Entropy, stats.MostCommon.State, stats.MostCommon.Probability*100)
}
