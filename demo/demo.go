// Package demo holds the educational circuits: coin flips, Bell pairs,
// random numbers, dice, teleportation, BB84 and a toy Grover search.
package demo

import (
	"errors"

	"github.com/theapemachine/qsim"
)

var ErrInvalidArgument = errors.New("invalid argument")

// CoinFlip measures a single qubit after a Hadamard.
func CoinFlip(sim *qsim.Simulator, shots int, opts ...qsim.RunOption) (qsim.Counts, error) {
	circuit, err := qsim.NewBuilder(1).H(0).Measure(0).Build()
	if err != nil {
		return nil, err
	}
	return sim.Run(circuit, shots, opts...)
}

// BellCircuit prepares (|00⟩ + |11⟩)/√2.
func BellCircuit() (*qsim.Circuit, error) {
	return qsim.NewBuilder(2).H(0).CX(0, 1).Measure(0, 1).Build()
}

// BellState samples the Bell pair; only 00 and 11 ever appear.
func BellState(sim *qsim.Simulator, shots int, opts ...qsim.RunOption) (qsim.Counts, error) {
	circuit, err := BellCircuit()
	if err != nil {
		return nil, err
	}
	return sim.Run(circuit, shots, opts...)
}
