package circuit

import "strings"

// Kind is the closed set of gate variants. Every gate name maps to exactly
// one Kind; names outside the vocabulary map to KindUnsupported.
type Kind int

const (
	KindUnsupported Kind = iota
	KindOneQubit         // h x y z s t, broadcast over every listed qubit
	KindRotation         // rx ry rz, one angle
	KindTwoQubit         // cx cy cz cp swap
	KindThreeQubit       // ccx cswap
	KindMeasurement      // measure, measure_all
	KindDirective        // barrier
	KindComposite        // qft, expanded on compilation
)

func (k Kind) String() string {
	switch k {
	case KindOneQubit:
		return "one_qubit"
	case KindRotation:
		return "rotation"
	case KindTwoQubit:
		return "two_qubit"
	case KindThreeQubit:
		return "three_qubit"
	case KindMeasurement:
		return "measurement"
	case KindDirective:
		return "directive"
	case KindComposite:
		return "composite"
	default:
		return "unsupported"
	}
}

// Spec describes one entry of the gate vocabulary.
type Spec struct {
	Name     string // canonical lower-case name
	Kind     Kind
	Arity    int // exact qubit count, 0 when variable
	Controls int // leading control qubits
	Params   int // required parameters
	QASM     string
}

var specs = map[string]Spec{
	"h":           {Name: "h", Kind: KindOneQubit, QASM: "h"},
	"x":           {Name: "x", Kind: KindOneQubit, QASM: "x"},
	"y":           {Name: "y", Kind: KindOneQubit, QASM: "y"},
	"z":           {Name: "z", Kind: KindOneQubit, QASM: "z"},
	"s":           {Name: "s", Kind: KindOneQubit, QASM: "s"},
	"t":           {Name: "t", Kind: KindOneQubit, QASM: "t"},
	"rx":          {Name: "rx", Kind: KindRotation, Arity: 1, Params: 1, QASM: "rx"},
	"ry":          {Name: "ry", Kind: KindRotation, Arity: 1, Params: 1, QASM: "ry"},
	"rz":          {Name: "rz", Kind: KindRotation, Arity: 1, Params: 1, QASM: "rz"},
	"cx":          {Name: "cx", Kind: KindTwoQubit, Arity: 2, Controls: 1, QASM: "cnot"},
	"cy":          {Name: "cy", Kind: KindTwoQubit, Arity: 2, Controls: 1, QASM: "cy"},
	"cz":          {Name: "cz", Kind: KindTwoQubit, Arity: 2, Controls: 1, QASM: "cz"},
	"cp":          {Name: "cp", Kind: KindTwoQubit, Arity: 2, Controls: 1, Params: 1, QASM: "cphaseshift"},
	"swap":        {Name: "swap", Kind: KindTwoQubit, Arity: 2, QASM: "swap"},
	"ccx":         {Name: "ccx", Kind: KindThreeQubit, Arity: 3, Controls: 2, QASM: "ccnot"},
	"cswap":       {Name: "cswap", Kind: KindThreeQubit, Arity: 3, Controls: 1, QASM: "cswap"},
	"measure":     {Name: "measure", Kind: KindMeasurement},
	"measure_all": {Name: "measure_all", Kind: KindMeasurement},
	"barrier":     {Name: "barrier", Kind: KindDirective},
	"qft":         {Name: "qft", Kind: KindComposite},
}

var aliases = map[string]string{
	"cnot":        "cx",
	"toffoli":     "ccx",
	"ccnot":       "ccx",
	"cphaseshift": "cp",
	"fredkin":     "cswap",
}

// Lookup resolves a gate name, case-insensitively and with aliases, to its
// Spec. The second return is false for names outside the vocabulary.
func Lookup(name string) (Spec, bool) {
	n := normalize(name)
	if canonical, ok := aliases[n]; ok {
		n = canonical
	}
	s, ok := specs[n]
	return s, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Gate is one operation in a circuit.
type Gate struct {
	Name   string    `json:"name"`
	Qubits []int     `json:"qubits,omitempty"`
	Params []float64 `json:"params,omitempty"`
}

// Spec returns the vocabulary entry for the gate, or an unsupported Spec
// carrying the normalized name.
func (g Gate) Spec() Spec {
	if s, ok := Lookup(g.Name); ok {
		return s
	}
	return Spec{Name: normalize(g.Name), Kind: KindUnsupported}
}

// Kind is shorthand for g.Spec().Kind.
func (g Gate) Kind() Kind {
	return g.Spec().Kind
}

// Canonical returns the canonical gate name ("cnot" -> "cx").
func (g Gate) Canonical() string {
	return g.Spec().Name
}

// IsMeasurement reports whether the gate is measure or measure_all.
func (g Gate) IsMeasurement() bool {
	return g.Kind() == KindMeasurement
}

// Param returns the i-th parameter and whether it is present.
func (g Gate) Param(i int) (float64, bool) {
	if i < 0 || i >= len(g.Params) {
		return 0, false
	}
	return g.Params[i], true
}

// clone returns a copy that shares no slices with g.
func (g Gate) clone() Gate {
	out := Gate{Name: g.Name}
	if g.Qubits != nil {
		out.Qubits = append([]int(nil), g.Qubits...)
	}
	if g.Params != nil {
		out.Params = append([]float64(nil), g.Params...)
	}
	return out
}

// Gate constructors used by the builders and tests.

func H(q int) Gate { return Gate{Name: "h", Qubits: []int{q}} }
func X(q int) Gate { return Gate{Name: "x", Qubits: []int{q}} }
func CX(control, target int) Gate { return Gate{Name: "cx", Qubits: []int{control, target}} }
func Swap(a, b int) Gate { return Gate{Name: "swap", Qubits: []int{a, b}} }
func MeasureAll() Gate { return Gate{Name: "measure_all"} }

func CP(theta float64, control, target int) Gate {
	return Gate{Name: "cp", Qubits: []int{control, target}, Params: []float64{theta}}
}

func Rotation(axis string, theta float64, q int) Gate {
	return Gate{Name: "r" + normalize(axis), Qubits: []int{q}, Params: []float64{theta}}
}
