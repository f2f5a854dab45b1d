// Package describe produces a structured natural-language account of a
// circuit: which canonical shape it matches, what each gate does, and how
// complex it is.
package describe

import (
	"fmt"
	"strings"

	"github.com/teranos/qntx-braket/circuit"
)

// Pattern names the canonical circuit shape a circuit matched.
type Pattern string

const (
	PatternGHZ           Pattern = "ghz"
	PatternBell          Pattern = "bell_pair"
	PatternSuperposition Pattern = "superposition"
	PatternQFT           Pattern = "qft"
	PatternCustom        Pattern = "custom"
)

// Report is the description of one circuit.
type Report struct {
	Type             string     `json:"type"`
	Pattern          Pattern    `json:"pattern"`
	Summary          string     `json:"summary"`
	Details          Details    `json:"details"`
	GateSequence     []string   `json:"gate_sequence"`
	ExpectedBehavior string     `json:"expected_behavior"`
	Complexity       Complexity `json:"complexity"`
}

// Details is a structural inventory of the gate list.
type Details struct {
	TotalGates         int            `json:"total_gates"`
	GateTypes          []string       `json:"gate_types"`
	GateCounts         map[string]int `json:"gate_counts"`
	QubitsUsed         int            `json:"qubits_used"`
	HasMeasurements    bool           `json:"has_measurements"`
	HasEntanglingGates bool           `json:"has_entangling_gates"`
}

// Describe builds the Report for c. It accepts any circuit, including ones
// with unknown gates or out-of-range qubit indices.
func Describe(c circuit.Circuit) Report {
	r := match(c)
	return Report{
		Type:             "quantum_circuit",
		Pattern:          r.pattern,
		Summary:          r.summary(c),
		Details:          inventory(c),
		GateSequence:     GateSequence(c),
		ExpectedBehavior: r.behavior(c),
		Complexity:       Assess(c),
	}
}

func inventory(c circuit.Circuit) Details {
	d := Details{
		TotalGates: len(c.Gates),
		GateTypes:  []string{},
		GateCounts: map[string]int{},
		QubitsUsed: c.NumQubits,
	}
	for _, g := range c.Gates {
		name := g.Canonical()
		if _, seen := d.GateCounts[name]; !seen {
			d.GateTypes = append(d.GateTypes, name)
		}
		d.GateCounts[name]++

		switch g.Kind() {
		case circuit.KindMeasurement:
			d.HasMeasurements = true
		case circuit.KindTwoQubit, circuit.KindThreeQubit:
			if name != "swap" {
				d.HasEntanglingGates = true
			}
		}
	}
	return d
}

// GateSequence describes each gate in order, one entry per gate.
func GateSequence(c circuit.Circuit) []string {
	out := make([]string, len(c.Gates))
	for i, g := range c.Gates {
		out[i] = fmt.Sprintf("Step %d: %s", i+1, describeGate(g))
	}
	return out
}

func describeGate(g circuit.Gate) string {
	spec := g.Spec()
	q := func(i int) string {
		if i < len(g.Qubits) {
			return fmt.Sprint(g.Qubits[i])
		}
		return "?"
	}
	angle := func() string {
		if p, ok := g.Param(0); ok {
			return fmt.Sprintf("%.4f", p)
		}
		return "?"
	}

	switch spec.Name {
	case "h":
		return fmt.Sprintf("Apply Hadamard gate to %s (creates superposition)", qubitList(g.Qubits))
	case "x":
		return fmt.Sprintf("Apply Pauli-X gate to %s (bit flip)", qubitList(g.Qubits))
	case "y":
		return fmt.Sprintf("Apply Pauli-Y gate to %s (bit and phase flip)", qubitList(g.Qubits))
	case "z":
		return fmt.Sprintf("Apply Pauli-Z gate to %s (phase flip)", qubitList(g.Qubits))
	case "s":
		return fmt.Sprintf("Apply S gate to %s (quarter-turn phase)", qubitList(g.Qubits))
	case "t":
		return fmt.Sprintf("Apply T gate to %s (eighth-turn phase)", qubitList(g.Qubits))
	case "rx", "ry", "rz":
		return fmt.Sprintf("Apply %s rotation by %s rad to qubit %s", strings.ToUpper(spec.Name), angle(), q(0))
	case "cx":
		return fmt.Sprintf("Apply CNOT gate from qubit %s to qubit %s (creates entanglement)", q(0), q(1))
	case "cy":
		return fmt.Sprintf("Apply controlled-Y gate from qubit %s to qubit %s", q(0), q(1))
	case "cz":
		return fmt.Sprintf("Apply controlled-Z gate between qubit %s and qubit %s", q(0), q(1))
	case "cp":
		return fmt.Sprintf("Apply controlled-phase gate (angle %s rad) from qubit %s to qubit %s", angle(), q(0), q(1))
	case "swap":
		return fmt.Sprintf("Swap qubits %s and %s", q(0), q(1))
	case "ccx":
		return fmt.Sprintf("Apply Toffoli gate with controls %s, %s and target %s", q(0), q(1), q(2))
	case "cswap":
		return fmt.Sprintf("Apply controlled-swap gate with control %s exchanging qubits %s and %s", q(0), q(1), q(2))
	case "measure_all":
		return "Measure all qubits"
	case "measure":
		if len(g.Qubits) == 0 {
			return "Measure all qubits"
		}
		return "Measure " + qubitList(g.Qubits)
	case "barrier":
		if len(g.Qubits) == 0 {
			return "Barrier across all qubits"
		}
		return "Barrier across " + qubitList(g.Qubits)
	case "qft":
		return "Apply quantum Fourier transform to " + qubitList(g.Qubits)
	}
	return fmt.Sprintf("Apply %s gate to qubit(s) %v", strings.ToUpper(strings.TrimSpace(g.Name)), g.Qubits)
}

func qubitList(qs []int) string {
	switch len(qs) {
	case 0:
		return "no qubits"
	case 1:
		return fmt.Sprintf("qubit %d", qs[0])
	}
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = fmt.Sprint(q)
	}
	return "qubits " + strings.Join(parts, ", ")
}
