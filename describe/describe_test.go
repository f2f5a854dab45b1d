package describe

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/qntx-braket/circuit"
)

func TestDescribeBellPair(t *testing.T) {
	r := Describe(circuit.BellPair())
	assert.Equal(t, PatternBell, r.Pattern)
	assert.Contains(t, r.Summary, "Bell")
	assert.Contains(t, r.Summary, "entanglement")
	assert.Len(t, r.GateSequence, 3)
	assert.Contains(t, r.ExpectedBehavior, "entangled")
	assert.Equal(t, "quantum_circuit", r.Type)
}

func TestDescribeGHZ(t *testing.T) {
	c := circuit.New(3, circuit.H(0), circuit.CX(0, 1), circuit.CX(1, 2), circuit.MeasureAll())
	r := Describe(c)
	assert.Equal(t, PatternGHZ, r.Pattern)
	assert.Contains(t, r.Summary, "GHZ")
	assert.Contains(t, r.Summary, "entanglement")
	assert.Len(t, r.GateSequence, 4)
}

func TestRulePrecedence(t *testing.T) {
	ghz5, err := circuit.GHZ(5)
	require.NoError(t, err)
	qft3, err := circuit.QFT(3)
	require.NoError(t, err)

	tests := []struct {
		name    string
		circuit circuit.Circuit
		want    Pattern
	}{
		{"bell without measure", circuit.New(2, circuit.H(0), circuit.CX(0, 1)), PatternBell},
		{"bell via alias", circuit.New(2, circuit.H(0), circuit.Gate{Name: "CNOT", Qubits: []int{0, 1}}), PatternBell},
		{"bell on three qubits is not bell", circuit.New(3, circuit.H(0), circuit.CX(0, 1)), PatternCustom},
		{"ghz five", ghz5, PatternGHZ},
		{"broken chain", circuit.New(3, circuit.H(0), circuit.CX(0, 1), circuit.CX(0, 2)), PatternCustom},
		{"extra hadamard", circuit.New(3, circuit.H(0), circuit.H(0), circuit.CX(0, 1), circuit.CX(1, 2)), PatternCustom},
		{"superposition", circuit.New(3, circuit.H(0), circuit.H(1), circuit.H(2), circuit.MeasureAll()), PatternSuperposition},
		{"broadcast superposition", circuit.New(2, circuit.Gate{Name: "h", Qubits: []int{0, 1}}), PatternSuperposition},
		{"partial superposition", circuit.New(3, circuit.H(0), circuit.H(1)), PatternCustom},
		{"hadamards then cx", circuit.New(2, circuit.H(0), circuit.H(1), circuit.CX(0, 1)), PatternCustom},
		{"single qubit H is superposition", circuit.New(1, circuit.H(0), circuit.MeasureAll()), PatternSuperposition},
		{"qft decomposed", qft3, PatternQFT},
		{"qft composite", circuit.New(3, circuit.Gate{Name: "qft", Qubits: []int{0, 1, 2}}, circuit.MeasureAll()), PatternQFT},
		{"qft wrong angle", circuit.New(2, circuit.H(0), circuit.CP(math.Pi/3, 0, 1), circuit.H(1), circuit.Swap(0, 1)), PatternCustom},
		{"empty", circuit.New(2), PatternCustom},
		{"unknown gates", circuit.New(2, circuit.Gate{Name: "frob", Qubits: []int{9}}), PatternCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.circuit).Pattern)
		})
	}
}

func TestCustomSummaryNamesCounts(t *testing.T) {
	r := Describe(circuit.New(4, circuit.X(0), circuit.CX(0, 3)))
	assert.Equal(t, "Custom quantum circuit with 2 gates on 4 qubits", r.Summary)
}

func TestGateSequence(t *testing.T) {
	c := circuit.New(3,
		circuit.H(0),
		circuit.Rotation("y", 0.5, 1),
		circuit.CX(0, 1),
		circuit.CP(math.Pi/2, 1, 2),
		circuit.Swap(0, 2),
		circuit.Gate{Name: "toffoli", Qubits: []int{0, 1, 2}},
		circuit.Gate{Name: "measure", Qubits: []int{0, 2}},
		circuit.MeasureAll(),
		circuit.Gate{Name: "cx", Qubits: []int{0}},
		circuit.Gate{Name: "mystery", Qubits: []int{1}},
	)
	seq := GateSequence(c)
	require.Len(t, seq, 10)
	assert.Equal(t, "Step 1: Apply Hadamard gate to qubit 0 (creates superposition)", seq[0])
	assert.Equal(t, "Step 2: Apply RY rotation by 0.5000 rad to qubit 1", seq[1])
	assert.Equal(t, "Step 3: Apply CNOT gate from qubit 0 to qubit 1 (creates entanglement)", seq[2])
	assert.Equal(t, "Step 4: Apply controlled-phase gate (angle 1.5708 rad) from qubit 1 to qubit 2", seq[3])
	assert.Equal(t, "Step 5: Swap qubits 0 and 2", seq[4])
	assert.Equal(t, "Step 6: Apply Toffoli gate with controls 0, 1 and target 2", seq[5])
	assert.Equal(t, "Step 7: Measure qubits 0, 2", seq[6])
	assert.Equal(t, "Step 8: Measure all qubits", seq[7])
	assert.Equal(t, "Step 9: Apply CNOT gate from qubit 0 to qubit ? (creates entanglement)", seq[8])
	assert.Equal(t, "Step 10: Apply MYSTERY gate to qubit(s) [1]", seq[9])
}

func TestDetails(t *testing.T) {
	d := Describe(circuit.New(2, circuit.H(0), circuit.Gate{Name: "cnot", Qubits: []int{0, 1}}, circuit.H(1), circuit.MeasureAll())).Details
	assert.Equal(t, 4, d.TotalGates)
	assert.Equal(t, []string{"h", "cx", "measure_all"}, d.GateTypes)
	assert.Equal(t, map[string]int{"h": 2, "cx": 1, "measure_all": 1}, d.GateCounts)
	assert.True(t, d.HasMeasurements)
	assert.True(t, d.HasEntanglingGates)

	swapOnly := Describe(circuit.New(2, circuit.Swap(0, 1))).Details
	assert.False(t, swapOnly.HasEntanglingGates)
	assert.False(t, swapOnly.HasMeasurements)
}

func TestSuperpositionBehaviorCountsStates(t *testing.T) {
	r := Describe(circuit.New(3, circuit.Gate{Name: "h", Qubits: []int{0, 1, 2}}))
	assert.True(t, strings.Contains(r.ExpectedBehavior, "all 8 computational basis states"), r.ExpectedBehavior)
	assert.Contains(t, r.Summary, "parallel")
}
