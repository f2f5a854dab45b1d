package circuit

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/qntx-braket/errors"
)

func TestToOpenQASMBell(t *testing.T) {
	src, err := ToOpenQASM(BellPair())
	require.NoError(t, err)
	assert.Equal(t, "OPENQASM 3.0;\nbit[2] b;\nqubit[2] q;\nh q[0];\ncnot q[0], q[1];\nb = measure q;\n", src)
}

func TestToOpenQASMGateForms(t *testing.T) {
	c := New(3,
		Gate{Name: "H", Qubits: []int{0, 1}},
		Rotation("z", 0.5, 2),
		CP(math.Pi/2, 0, 1),
		Gate{Name: "toffoli", Qubits: []int{0, 1, 2}},
		Gate{Name: "cswap", Qubits: []int{2, 0, 1}},
		Gate{Name: "barrier"},
		Gate{Name: "measure", Qubits: []int{0, 2}},
	)
	src, err := ToOpenQASM(c)
	require.NoError(t, err)

	assert.Contains(t, src, "h q[0];\nh q[1];\n")
	assert.Contains(t, src, "rz(0.5) q[2];\n")
	assert.Contains(t, src, "cphaseshift(1.5707963267948966) q[0], q[1];\n")
	assert.Contains(t, src, "ccnot q[0], q[1], q[2];\n")
	assert.Contains(t, src, "cswap q[2], q[0], q[1];\n")
	assert.NotContains(t, src, "barrier")
	assert.Contains(t, src, "b[0] = measure q[0];\nb[2] = measure q[2];\n")
	assert.NotContains(t, src, "b[1] = measure")
}

func TestToOpenQASMExpandsQFT(t *testing.T) {
	src, err := ToOpenQASM(New(2, Gate{Name: "qft", Qubits: []int{0, 1}}, MeasureAll()))
	require.NoError(t, err)
	assert.Contains(t, src, "h q[0];\ncphaseshift(1.5707963267948966) q[0], q[1];\nh q[1];\nswap q[0], q[1];\n")
}

func TestToOpenQASMUnmeasured(t *testing.T) {
	src, err := ToOpenQASM(New(1, X(0)))
	require.NoError(t, err)
	assert.NotContains(t, src, "measure")
}

func TestToOpenQASMRejectsInvalid(t *testing.T) {
	_, err := ToOpenQASM(New(1, Gate{Name: "u3", Qubits: []int{0}}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCircuitCreation))
}

func TestCompileProgram(t *testing.T) {
	p, err := CompileProgram(BellPair())
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	header := decoded["braketSchemaHeader"].(map[string]any)
	assert.Equal(t, "braket.ir.openqasm.program", header["name"])
	assert.Equal(t, "1", header["version"])
	assert.Contains(t, decoded["source"], "OPENQASM 3.0;")
}
