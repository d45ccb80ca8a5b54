package demo

import (
	"github.com/theapemachine/qsim"
)

/*
TeleportOutcome is what Bob holds after Alice measures her two qubits and
gets Outcome (bit 0 is qubit 0, bit 1 is qubit 1).
*/
type TeleportOutcome struct {
	Outcome     string
	Probability float64
	// Bob is Bob's reduced state before any correction.
	Bob [2][2]complex128
	// Corrected is Bob's state after X^m1 then Z^m0, which equals the input.
	Corrected [2][2]complex128
}

// Teleportation collects the input state and all four measurement branches.
type Teleportation struct {
	Input    [2][2]complex128
	Circuit  *qsim.Circuit
	Outcomes []TeleportOutcome
}

/*
Teleport moves α|0⟩ + β|1⟩ from qubit 0 to qubit 2. Qubits 1 and 2 share a
Bell pair; Alice entangles qubit 0 with her half and rotates into the Bell
basis. Instead of sampling, every branch of her measurement is projected out
of the state vector so the effect on Bob's qubit is visible exactly.
*/
func Teleport(sim *qsim.Simulator, alpha, beta complex128) (*Teleportation, error) {
	prepared, err := qsim.NewBuilder(1).Prepare(0, alpha, beta).Build()
	if err != nil {
		return nil, err
	}

	inputState, err := sim.Statevector(prepared)
	if err != nil {
		return nil, err
	}

	input, err := inputState.ReducedDensity(0)
	if err != nil {
		return nil, err
	}

	circuit, err := qsim.NewBuilder(3).
		Prepare(0, alpha, beta).
		H(1).CX(1, 2).
		CX(0, 1).H(0).
		Measure(0, 1).
		Build()
	if err != nil {
		return nil, err
	}

	state, err := sim.Statevector(circuit)
	if err != nil {
		return nil, err
	}

	result := &Teleportation{Input: input, Circuit: circuit}

	for outcome := 0; outcome < 4; outcome++ {
		branch := TeleportOutcome{Outcome: qsim.FormatBasis(outcome, 2)}

		projected, probability, err := state.Project([]int{0, 1}, outcome)
		if err != nil {
			return nil, err
		}
		if projected == nil {
			result.Outcomes = append(result.Outcomes, branch)
			continue
		}
		branch.Probability = probability

		if branch.Bob, err = projected.ReducedDensity(2); err != nil {
			return nil, err
		}

		if outcome&2 != 0 {
			if err := projected.Apply(qsim.PauliX(), 2); err != nil {
				return nil, err
			}
		}
		if outcome&1 != 0 {
			if err := projected.Apply(qsim.PauliZ(), 2); err != nil {
				return nil, err
			}
		}

		if branch.Corrected, err = projected.ReducedDensity(2); err != nil {
			return nil, err
		}

		result.Outcomes = append(result.Outcomes, branch)
	}

	return result, nil
}
