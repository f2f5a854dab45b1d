package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/qntx-braket/errors"
)

// ToOpenQASM compiles a validated circuit to the OpenQASM 3 dialect
// accepted by Amazon Braket. Composite gates are expanded and barriers are
// dropped. A circuit without measurements is left unmeasured; Braket then
// measures every qubit.
func ToOpenQASM(c Circuit) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("OPENQASM 3.0;\n")
	fmt.Fprintf(&b, "bit[%d] b;\n", c.NumQubits)
	fmt.Fprintf(&b, "qubit[%d] q;\n", c.NumQubits)

	measured := make(map[int]bool, c.NumQubits)
	measuredAll := false

	var emit func(g Gate)
	emit = func(g Gate) {
		spec := g.Spec()
		switch spec.Kind {
		case KindOneQubit:
			for _, q := range g.Qubits {
				fmt.Fprintf(&b, "%s q[%d];\n", spec.QASM, q)
			}
		case KindRotation, KindTwoQubit, KindThreeQubit:
			b.WriteString(spec.QASM)
			if spec.Params > 0 {
				b.WriteString("(")
				for i := 0; i < spec.Params; i++ {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(strconv.FormatFloat(g.Params[i], 'g', -1, 64))
				}
				b.WriteString(")")
			}
			b.WriteString(" ")
			b.WriteString(operands(g.Qubits))
			b.WriteString(";\n")
		case KindComposite:
			for _, sub := range QFTGates(g.Qubits) {
				emit(sub)
			}
		case KindMeasurement:
			if spec.Name == "measure_all" || len(g.Qubits) == 0 {
				measuredAll = true
				return
			}
			for _, q := range g.Qubits {
				measured[q] = true
			}
		}
	}
	for _, g := range c.Gates {
		emit(g)
	}

	switch {
	case measuredAll || len(measured) == c.NumQubits:
		b.WriteString("b = measure q;\n")
	default:
		for q := 0; q < c.NumQubits; q++ {
			if measured[q] {
				fmt.Fprintf(&b, "b[%d] = measure q[%d];\n", q, q)
			}
		}
	}
	return b.String(), nil
}

func operands(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ", ")
}

// Program wraps a compiled OpenQASM source in the Braket action envelope
// sent as the CreateQuantumTask action.
type Program struct {
	Header programHeader `json:"braketSchemaHeader"`
	Source string        `json:"source"`
}

type programHeader struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewProgram returns the action envelope for source.
func NewProgram(source string) Program {
	return Program{
		Header: programHeader{Name: "braket.ir.openqasm.program", Version: "1"},
		Source: source,
	}
}

// CompileProgram validates, compiles, and wraps c. Errors are marked
// errors.ErrCircuitCreation.
func CompileProgram(c Circuit) (Program, error) {
	src, err := ToOpenQASM(c)
	if err != nil {
		return Program{}, errors.MarkCircuitCreation(err)
	}
	return NewProgram(src), nil
}
