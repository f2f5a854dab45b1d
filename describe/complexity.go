package describe

import "github.com/teranos/qntx-braket/circuit"

// Complexity classifies a circuit's size.
type Complexity struct {
	GateCount         int    `json:"gate_count"`
	QubitCount        int    `json:"qubit_count"`
	TwoQubitGateCount int    `json:"two_qubit_gate_count"`
	ComplexityLevel   string `json:"complexity_level"`
	Depth             int    `json:"depth"`
	Width             int    `json:"width"`
	EstimatedRuntime  string `json:"estimated_runtime"`
}

// Complexity levels. "high" is checked before "low".
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Assess computes the Complexity of c.
func Assess(c circuit.Circuit) Complexity {
	gates := len(c.Gates)
	multi := 0
	for _, g := range c.Gates {
		if len(g.Qubits) >= 2 {
			multi++
		}
	}
	return Complexity{
		GateCount:         gates,
		QubitCount:        c.NumQubits,
		TwoQubitGateCount: multi,
		ComplexityLevel:   level(gates, c.NumQubits),
		Depth:             Depth(c),
		Width:             c.NumQubits,
		EstimatedRuntime:  runtime(gates),
	}
}

func level(gates, qubits int) string {
	switch {
	case gates >= 15 || qubits >= 8:
		return LevelHigh
	case gates <= 3 && qubits <= 3:
		return LevelLow
	default:
		return LevelMedium
	}
}

func runtime(gates int) string {
	switch {
	case gates <= 10:
		return "fast"
	case gates <= 50:
		return "moderate"
	default:
		return "slow"
	}
}

// Depth is the number of layers when each gate is scheduled as early as
// the qubits it touches allow. Gates without qubits span every qubit when
// they are measurements or barriers and are otherwise not scheduled.
func Depth(c circuit.Circuit) int {
	layer := make(map[int]int)
	depth := 0
	for _, g := range c.Gates {
		qubits := g.Qubits
		if len(qubits) == 0 {
			switch g.Kind() {
			case circuit.KindMeasurement, circuit.KindDirective:
				qubits = make([]int, c.NumQubits)
				for i := range qubits {
					qubits[i] = i
				}
			default:
				continue
			}
			if len(qubits) == 0 {
				continue
			}
		}
		if g.Kind() == circuit.KindOneQubit {
			// Broadcast gates act on each qubit independently.
			for _, q := range qubits {
				layer[q]++
				depth = max(depth, layer[q])
			}
			continue
		}

		at := 0
		for _, q := range qubits {
			at = max(at, layer[q])
		}
		at++
		for _, q := range qubits {
			layer[q] = at
		}
		depth = max(depth, at)
	}
	return depth
}
