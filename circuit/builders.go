package circuit

import (
	"math"

	"github.com/teranos/qntx-braket/errors"
)

// BellPair returns H(0), CX(0,1), measure_all over two qubits.
func BellPair() Circuit {
	return New(2, H(0), CX(0, 1), MeasureAll())
}

// GHZ returns H(0) followed by the CX chain 0->1->...->n-1 and measure_all.
func GHZ(n int) (Circuit, error) {
	if n < 2 {
		return Circuit{}, errors.MarkCircuitCreation(
			errors.WithHint(errors.Newf("GHZ circuit needs at least 2 qubits, got %d", n), "a two-qubit GHZ state is the Bell pair"))
	}
	gates := make([]Gate, 0, n+1)
	gates = append(gates, H(0))
	for i := 0; i < n-1; i++ {
		gates = append(gates, CX(i, i+1))
	}
	gates = append(gates, MeasureAll())
	return Circuit{NumQubits: n, Gates: gates}, nil
}

// QFT returns the decomposed quantum Fourier transform over n qubits
// followed by measure_all.
func QFT(n int) (Circuit, error) {
	if n < 1 {
		return Circuit{}, errors.MarkCircuitCreation(errors.Newf("QFT circuit needs at least 1 qubit, got %d", n))
	}
	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
	}
	gates := append(QFTGates(qubits), MeasureAll())
	return Circuit{
		NumQubits: n,
		Gates:     gates,
		Metadata:  map[string]any{"description": "Quantum Fourier Transform"},
	}, nil
}

// QFTGates decomposes the transform over the given qubits: for each qubit
// i, H(i) then CP(pi/2^(j-i), i, j) for later qubits j, then swaps that
// reverse qubit order.
func QFTGates(qubits []int) []Gate {
	n := len(qubits)
	gates := make([]Gate, 0, n*(n+1)/2+n/2)
	for i := 0; i < n; i++ {
		gates = append(gates, H(qubits[i]))
		for j := i + 1; j < n; j++ {
			gates = append(gates, CP(math.Pi/math.Exp2(float64(j-i)), qubits[i], qubits[j]))
		}
	}
	for i := 0; i < n/2; i++ {
		gates = append(gates, Swap(qubits[i], qubits[n-i-1]))
	}
	return gates
}
