package demo

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/theapemachine/qsim"
)

// maxRerolls caps rejection sampling; the chance of hitting it is (1/4)^64.
const maxRerolls = 64

/*
RollDie puts three qubits into superposition, reads one shot as a number in
0..7 and rerolls anything above 5, so every face 1..6 is equally likely.
*/
func RollDie(sim *qsim.Simulator, rng *rand.Rand) (int, error) {
	circuit, err := qsim.NewBuilder(3).H(0).H(1).H(2).Measure(0, 1, 2).Build()
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < maxRerolls; attempt++ {
		counts, err := sim.Run(circuit, 1, runOptions(rng)...)
		if err != nil {
			return 0, err
		}

		basis, _ := counts.MostFrequent()
		value, err := strconv.ParseInt(basis, 2, 64)
		if err != nil {
			return 0, err
		}

		if value < 6 {
			return int(value) + 1, nil
		}
	}

	return 0, fmt.Errorf("die kept landing above six after %d rolls", maxRerolls)
}

// RollDice rolls n dice and tallies the faces.
func RollDice(sim *qsim.Simulator, n int, rng *rand.Rand) ([]int, map[int]int, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: dice count %d", ErrInvalidArgument, n)
	}

	rolls := make([]int, n)
	tally := make(map[int]int)

	for i := range rolls {
		face, err := RollDie(sim, rng)
		if err != nil {
			return nil, nil, err
		}
		rolls[i] = face
		tally[face]++
	}

	return rolls, tally, nil
}
