package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// MaxQubits bounds the register size so the amplitude slice stays addressable.
const MaxQubits = 24

/*
QuantumState holds the 2^n complex amplitudes of an n-qubit register.

Bit q of a basis index is qubit q, so qubit 0 is the least significant bit.
A fresh state puts all amplitude mass on basis state 0. Gates mutate the
vector in place; the state belongs to exactly one simulation run.
*/
type QuantumState struct {
	qubits int
	vector []complex128
}

// NewQuantumState creates the |0...0⟩ state of an n-qubit register.
func NewQuantumState(qubits int) (*QuantumState, error) {
	if qubits < 0 || qubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d (must be in [0, %d])", ErrInvalidQubitCount, qubits, MaxQubits)
	}

	vector := make([]complex128, 1<<qubits)
	vector[0] = 1

	return &QuantumState{
		qubits: qubits,
		vector: vector,
	}, nil
}

func (qs *QuantumState) Qubits() int {
	return qs.qubits
}

func (qs *QuantumState) Len() int {
	return len(qs.vector)
}

// Amplitude returns the amplitude of basis state i.
func (qs *QuantumState) Amplitude(i int) complex128 {
	return qs.vector[i]
}

// Amplitudes returns a copy of the amplitude vector.
func (qs *QuantumState) Amplitudes() []complex128 {
	out := make([]complex128, len(qs.vector))
	copy(out, qs.vector)
	return out
}

// Probabilities returns the squared modulus of every amplitude.
func (qs *QuantumState) Probabilities() []float64 {
	probs := make([]float64, len(qs.vector))
	for i, amplitude := range qs.vector {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob
	}
	return probs
}

// NormSquaredSum returns the total probability mass, which unitary evolution keeps at 1.
func (qs *QuantumState) NormSquaredSum() float64 {
	var total float64
	for _, amplitude := range qs.vector {
		total += real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
	}
	return total
}

// CheckNorm reports ErrNumericalDrift when the norm strays beyond tolerance.
func (qs *QuantumState) CheckNorm(tolerance float64) error {
	norm := qs.NormSquaredSum()
	if math.Abs(norm-1) > tolerance {
		return fmt.Errorf("%w: norm %.12f deviates from 1 by more than %g", ErrNumericalDrift, norm, tolerance)
	}
	return nil
}

// Renormalize rescales the vector to unit norm. A zero vector is left alone.
func (qs *QuantumState) Renormalize() {
	norm := math.Sqrt(qs.NormSquaredSum())
	if norm == 0 {
		return
	}

	scale := complex(1/norm, 0)
	for i := range qs.vector {
		qs.vector[i] *= scale
	}
}

// Clone returns an independent copy of the state.
func (qs *QuantumState) Clone() *QuantumState {
	return &QuantumState{
		qubits: qs.qubits,
		vector: qs.Amplitudes(),
	}
}

/*
ReducedDensity traces out every qubit except the given one and returns the
2x2 density matrix of what remains, indexed [row][column] over |0⟩, |1⟩.
*/
func (qs *QuantumState) ReducedDensity(qubit int) ([2][2]complex128, error) {
	var rho [2][2]complex128

	if err := qs.checkQubit(qubit); err != nil {
		return rho, err
	}

	bit := 1 << qubit
	for i, amplitude := range qs.vector {
		if i&bit != 0 {
			continue
		}
		a0 := amplitude
		a1 := qs.vector[i|bit]
		rho[0][0] += a0 * cmplx.Conj(a0)
		rho[0][1] += a0 * cmplx.Conj(a1)
		rho[1][0] += a1 * cmplx.Conj(a0)
		rho[1][1] += a1 * cmplx.Conj(a1)
	}

	return rho, nil
}

/*
Project fixes the given qubits to the given bit values (bit i of outcome is
the value of qubits[i]) and returns the renormalized post-measurement state
together with the probability of that outcome. The receiver is not modified.
A zero-probability outcome returns a nil state.
*/
func (qs *QuantumState) Project(qubits []int, outcome int) (*QuantumState, float64, error) {
	mask, want := 0, 0
	for i, qubit := range qubits {
		if err := qs.checkQubit(qubit); err != nil {
			return nil, 0, err
		}
		if mask&(1<<qubit) != 0 {
			return nil, 0, fmt.Errorf("%w: qubit %d repeated", ErrInvalidQubitIndex, qubit)
		}
		mask |= 1 << qubit
		if outcome&(1<<i) != 0 {
			want |= 1 << qubit
		}
	}

	projected := &QuantumState{
		qubits: qs.qubits,
		vector: make([]complex128, len(qs.vector)),
	}

	for i, amplitude := range qs.vector {
		if i&mask == want {
			projected.vector[i] = amplitude
		}
	}

	probability := projected.NormSquaredSum()
	if probability == 0 {
		return nil, 0, nil
	}

	projected.Renormalize()
	return projected, probability, nil
}

func (qs *QuantumState) checkQubit(qubit int) error {
	if qubit < 0 || qubit >= qs.qubits {
		return fmt.Errorf("%w: %d outside register of %d qubits", ErrInvalidQubitIndex, qubit, qs.qubits)
	}
	return nil
}
