package insight

// Distribution classes.
const (
	PatternEmpty         = "empty"
	PatternDeterministic = "deterministic"
	PatternUniformBinary = "uniform_binary"
	PatternHighlyBiased  = "highly_biased"
	PatternMixed         = "mixed"
)

// Distribution describes the overall shape of the histogram.
type Distribution struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Type        string `json:"distribution_type"`
}

func classify(h histogram) Distribution {
	n := len(h.states)
	maxP := 0.0
	for _, s := range h.states {
		maxP = max(maxP, h.p(s))
	}

	d := Distribution{Type: shape(h)}
	switch {
	case n == 0:
		d.Pattern, d.Description = PatternEmpty, "No outcomes were measured"
	case n == 2 && within(h.p(h.states[0]), 0.5) && within(h.p(h.states[1]), 0.5):
		d.Pattern, d.Description = PatternUniformBinary, "Nearly equal probability between two outcomes (typical of Bell states)"
	case n == 1:
		d.Pattern, d.Description = PatternDeterministic, "Single outcome observed (deterministic result)"
	case maxP > 0.8:
		d.Pattern, d.Description = PatternHighlyBiased, "One outcome dominates (>80% probability)"
	default:
		d.Pattern, d.Description = PatternMixed, "Mixed probability distribution across multiple outcomes"
	}
	return d
}

// shape is a coarser label: deterministic, uniform_binary, uniform, peaked
// or mixed.
func shape(h histogram) string {
	n := len(h.states)
	switch n {
	case 0:
		return PatternEmpty
	case 1:
		return PatternDeterministic
	case 2:
		if within(h.p(h.states[0]), h.p(h.states[1])) {
			return PatternUniformBinary
		}
	}
	uniform := true
	maxP := 0.0
	for _, s := range h.states {
		p := h.p(s)
		maxP = max(maxP, p)
		if !within(p, 1/float64(n)) {
			uniform = false
		}
	}
	switch {
	case uniform:
		return "uniform"
	case maxP > 0.8:
		return "peaked"
	default:
		return PatternMixed
	}
}

func within(a, b float64) bool {
	d := a - b
	return d < 0.1 && d > -0.1
}
