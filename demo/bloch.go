package demo

import (
	"math"

	"github.com/theapemachine/qsim"
)

// BlochVector is the (x, y, z) point of a single-qubit state on or inside the Bloch sphere.
type BlochVector struct {
	X, Y, Z float64
}

// Length is 1 for a pure state and 0 for the maximally mixed state.
func (b BlochVector) Length() float64 {
	return math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
}

// Bloch converts a 2x2 density matrix into its Bloch vector.
func Bloch(rho [2][2]complex128) BlochVector {
	return BlochVector{
		X: 2 * real(rho[0][1]),
		Y: 2 * imag(rho[1][0]),
		Z: real(rho[0][0] - rho[1][1]),
	}
}

// QubitBloch holds one qubit's reduced state.
type QubitBloch struct {
	Qubit   int
	Density [2][2]complex128
	Vector  BlochVector
}

// BlochVectors reduces a circuit's final state to one Bloch vector per qubit.
func BlochVectors(sim *qsim.Simulator, circuit *qsim.Circuit) ([]QubitBloch, error) {
	state, err := sim.Statevector(circuit)
	if err != nil {
		return nil, err
	}

	out := make([]QubitBloch, state.Qubits())
	for q := range out {
		rho, err := state.ReducedDensity(q)
		if err != nil {
			return nil, err
		}
		out[q] = QubitBloch{Qubit: q, Density: rho, Vector: Bloch(rho)}
	}

	return out, nil
}

// BellBloch shows that each half of a Bell pair is maximally mixed.
func BellBloch(sim *qsim.Simulator) ([]QubitBloch, error) {
	circuit, err := BellCircuit()
	if err != nil {
		return nil, err
	}
	return BlochVectors(sim, circuit)
}
