package describe

import (
	"fmt"
	"math"

	"github.com/teranos/qntx-braket/circuit"
)

// rule pairs a shape predicate with the text reported when it matches.
// Rules are evaluated in order and the first match wins.
type rule struct {
	pattern  Pattern
	match    func(c circuit.Circuit, ops []circuit.Gate) bool
	summary  func(c circuit.Circuit) string
	behavior func(c circuit.Circuit) string
}

var rules = []rule{
	{
		pattern: PatternGHZ,
		match:   isGHZ,
		summary: func(c circuit.Circuit) string {
			return fmt.Sprintf("GHZ state circuit creating multi-qubit entanglement across %d qubits", c.NumQubits)
		},
		behavior: func(c circuit.Circuit) string {
			return fmt.Sprintf("Creates a GHZ state on %d qubits: an entangled superposition of all-zeros and all-ones, so every qubit measures the same value", c.NumQubits)
		},
	},
	{
		pattern: PatternBell,
		match:   isBell,
		summary: func(circuit.Circuit) string {
			return "Bell pair circuit creating quantum entanglement between 2 qubits"
		},
		behavior: func(circuit.Circuit) string {
			return "Creates the Bell state (|00⟩ + |11⟩)/√2: an entangled pair whose measurements are perfectly correlated"
		},
	},
	{
		pattern: PatternSuperposition,
		match:   isUniformSuperposition,
		summary: func(c circuit.Circuit) string {
			return fmt.Sprintf("Superposition circuit applying Hadamard gates to all %d qubits in parallel", c.NumQubits)
		},
		behavior: func(c circuit.Circuit) string {
			return fmt.Sprintf("Creates an equal superposition of all %.0f computational basis states; qubits stay unentangled", math.Exp2(float64(c.NumQubits)))
		},
	},
	{
		pattern: PatternQFT,
		match:   isQFT,
		summary: func(c circuit.Circuit) string {
			return fmt.Sprintf("Quantum Fourier Transform circuit on %d qubits", c.NumQubits)
		},
		behavior: func(circuit.Circuit) string {
			return "Performs the quantum Fourier transform, mapping computational basis states to phase-encoded superpositions; a building block of period finding and Shor's algorithm"
		},
	},
}

var custom = rule{
	pattern: PatternCustom,
	summary: func(c circuit.Circuit) string {
		return fmt.Sprintf("Custom quantum circuit with %d gates on %d qubits", len(c.Gates), c.NumQubits)
	},
	behavior: func(circuit.Circuit) string {
		return "Custom quantum computation; the resulting state depends on the specific gate sequence"
	},
}

func match(c circuit.Circuit) rule {
	ops := operations(c)
	for _, r := range rules {
		if r.match(c, ops) {
			return r
		}
	}
	return custom
}

// operations drops measurements and barriers, which do not change the
// prepared state's shape.
func operations(c circuit.Circuit) []circuit.Gate {
	ops := make([]circuit.Gate, 0, len(c.Gates))
	for _, g := range c.Gates {
		switch g.Kind() {
		case circuit.KindMeasurement, circuit.KindDirective:
			continue
		}
		ops = append(ops, g)
	}
	return ops
}

// GHZ needs three or more qubits; two-qubit chains are Bell pairs.
func isGHZ(c circuit.Circuit, ops []circuit.Gate) bool {
	n := c.NumQubits
	if n < 3 || len(ops) != n {
		return false
	}
	if !sameGate(ops[0], circuit.H(0)) {
		return false
	}
	for i := 0; i < n-1; i++ {
		if !sameGate(ops[i+1], circuit.CX(i, i+1)) {
			return false
		}
	}
	return true
}

func isBell(c circuit.Circuit, ops []circuit.Gate) bool {
	return c.NumQubits == 2 && len(ops) == 2 &&
		sameGate(ops[0], circuit.H(0)) && sameGate(ops[1], circuit.CX(0, 1))
}

func isUniformSuperposition(c circuit.Circuit, ops []circuit.Gate) bool {
	if c.NumQubits <= 0 {
		return false
	}
	covered := make(map[int]bool, c.NumQubits)
	for _, g := range ops {
		if len(g.Qubits) >= 2 && g.Kind() != circuit.KindOneQubit {
			return false
		}
		if g.Canonical() == "h" {
			for _, q := range g.Qubits {
				covered[q] = true
			}
		}
	}
	for q := 0; q < c.NumQubits; q++ {
		if !covered[q] {
			return false
		}
	}
	return true
}

func isQFT(c circuit.Circuit, ops []circuit.Gate) bool {
	for _, g := range ops {
		if g.Canonical() == "qft" {
			return true
		}
	}
	if c.NumQubits <= 0 {
		return false
	}
	qubits := make([]int, c.NumQubits)
	for i := range qubits {
		qubits[i] = i
	}
	want := circuit.QFTGates(qubits)
	if len(ops) != len(want) {
		return false
	}
	for i := range want {
		if !sameGate(ops[i], want[i]) {
			return false
		}
	}
	return true
}

const angleTolerance = 1e-9

func sameGate(a, b circuit.Gate) bool {
	if a.Canonical() != b.Canonical() || len(a.Qubits) != len(b.Qubits) || len(a.Params) < len(b.Params) {
		return false
	}
	for i := range a.Qubits {
		if a.Qubits[i] != b.Qubits[i] {
			return false
		}
	}
	for i := range b.Params {
		if math.Abs(a.Params[i]-b.Params[i]) > angleTolerance {
			return false
		}
	}
	return true
}
