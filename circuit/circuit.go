// Package circuit is the in-process model of a quantum circuit: the gate
// vocabulary, canonical circuit builders, validation, and OpenQASM 3
// compilation for Amazon Braket.
package circuit

import (
	"encoding/json"
	"math"

	"github.com/teranos/qntx-braket/errors"
)

// Circuit is an ordered gate list over NumQubits qubits. Values are treated
// as immutable once built; use Clone before modifying a shared circuit.
type Circuit struct {
	NumQubits int            `json:"num_qubits"`
	Gates     []Gate         `json:"gates"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// New returns a circuit over n qubits holding copies of gates.
func New(n int, gates ...Gate) Circuit {
	c := Circuit{NumQubits: n, Gates: make([]Gate, len(gates))}
	for i, g := range gates {
		c.Gates[i] = g.clone()
	}
	return c
}

// NumGates returns the length of the gate list.
func (c Circuit) NumGates() int {
	return len(c.Gates)
}

// Clone returns a deep copy.
func (c Circuit) Clone() Circuit {
	out := New(c.NumQubits, c.Gates...)
	if c.Metadata != nil {
		out.Metadata = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// HasMeasurement reports whether any gate is a measurement.
func (c Circuit) HasMeasurement() bool {
	for _, g := range c.Gates {
		if g.IsMeasurement() {
			return true
		}
	}
	return false
}

// Decode builds a Circuit from a tool argument: either a JSON object
// already decoded into a map, or a JSON string.
func Decode(raw any) (Circuit, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return Circuit{}, errors.NewInvalidRequestError("circuit is required")
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Circuit{}, errors.Wrap(errors.ErrInvalidRequest, err.Error())
		}
		data = b
	}

	var c Circuit
	if err := json.Unmarshal(data, &c); err != nil {
		return Circuit{}, errors.WithHint(
			errors.Wrap(errors.ErrInvalidRequest, "circuit is not valid JSON: "+err.Error()),
			`expected {"num_qubits": 2, "gates": [{"name": "h", "qubits": [0]}]}`)
	}
	return c, nil
}

// Validate checks the circuit is compilable: positive qubit count, known
// gates with the right arity, indices in range, and required parameters.
// The rendering and analysis packages never call this; they accept any
// circuit. Failures are marked errors.ErrCircuitCreation.
func (c Circuit) Validate() error {
	if c.NumQubits <= 0 {
		return errors.MarkCircuitCreation(errors.Newf("num_qubits must be positive, got %d", c.NumQubits))
	}
	for i, g := range c.Gates {
		if err := c.validateGate(g); err != nil {
			return errors.MarkCircuitCreation(errors.Wrapf(err, "gate %d (%s)", i, g.Name))
		}
	}
	return nil
}

func (c Circuit) validateGate(g Gate) error {
	spec, ok := Lookup(g.Name)
	if !ok {
		return errors.WithHint(
			errors.Newf("unsupported gate: %s", g.Name),
			"supported gates: h, x, y, z, s, t, rx, ry, rz, cx, cy, cz, cp, swap, ccx, cswap, qft, measure, measure_all, barrier")
	}

	switch spec.Kind {
	case KindOneQubit, KindComposite:
		if len(g.Qubits) == 0 {
			return errors.New("at least one qubit is required")
		}
	case KindRotation, KindTwoQubit, KindThreeQubit:
		if len(g.Qubits) != spec.Arity {
			return errors.Newf("expected %d qubits, got %d", spec.Arity, len(g.Qubits))
		}
	}

	seen := make(map[int]bool, len(g.Qubits))
	for _, q := range g.Qubits {
		if q < 0 || q >= c.NumQubits {
			return errors.Newf("qubit index %d out of range [0, %d)", q, c.NumQubits)
		}
		if seen[q] && spec.Kind != KindOneQubit {
			return errors.Newf("qubit %d listed twice", q)
		}
		seen[q] = true
	}

	if len(g.Params) < spec.Params {
		return errors.Newf("expected %d parameter(s), got %d", spec.Params, len(g.Params))
	}
	for _, p := range g.Params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return errors.Newf("parameter %v is not finite", p)
		}
	}
	return nil
}
