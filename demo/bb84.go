package demo

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/theapemachine/qsim"
)

// Basis 0 is the computational (Z) basis, 1 the Hadamard (X) basis.
const (
	BasisZ = 0
	BasisX = 1
)

// BB84Result records every stage of one key exchange.
type BB84Result struct {
	AliceBits       []int
	AliceBases      []int
	BobBases        []int
	BobResults      []int
	SiftedPositions []int
	SiftedAlice     []int
	SiftedBob       []int
	RevealedIndices []int
	RevealedAlice   []int
	RevealedBob     []int
	FinalAliceKey   []int
	FinalBobKey     []int
}

// ErrorRate is the fraction of revealed positions where Alice and Bob disagree.
func (r *BB84Result) ErrorRate() float64 {
	if len(r.RevealedIndices) == 0 {
		return 0
	}
	mismatches := 0
	for i := range r.RevealedAlice {
		if r.RevealedAlice[i] != r.RevealedBob[i] {
			mismatches++
		}
	}
	return float64(mismatches) / float64(len(r.RevealedIndices))
}

/*
BB84 runs the key distribution protocol over nBits single-qubit circuits.
Alice encodes a random bit in a random basis, Bob measures in his own random
basis, and they keep the positions where the bases agreed. A tenth of the
sifted bits (at least one) is revealed to estimate the error rate and
dropped from the final key. The classical choices and the per-qubit seeds
all come from rng, which must not be nil.
*/
func BB84(sim *qsim.Simulator, nBits int, rng *rand.Rand) (*BB84Result, error) {
	if nBits < 1 {
		return nil, fmt.Errorf("%w: need at least one bit, got %d", ErrInvalidArgument, nBits)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: bb84 needs a random source", ErrInvalidArgument)
	}

	res := &BB84Result{
		AliceBits:  make([]int, nBits),
		AliceBases: make([]int, nBits),
		BobBases:   make([]int, nBits),
		BobResults: make([]int, nBits),
	}

	for i := 0; i < nBits; i++ {
		res.AliceBits[i] = rng.IntN(2)
		res.AliceBases[i] = rng.IntN(2)
		res.BobBases[i] = rng.IntN(2)
	}

	for i := 0; i < nBits; i++ {
		builder := qsim.NewBuilder(1)
		if res.AliceBits[i] == 1 {
			builder.X(0)
		}
		if res.AliceBases[i] == BasisX {
			builder.H(0)
		}
		// Measuring in the X basis means rotating back before a Z measurement.
		if res.BobBases[i] == BasisX {
			builder.H(0)
		}

		circuit, err := builder.Measure(0).Build()
		if err != nil {
			return nil, err
		}

		counts, err := sim.Run(circuit, 1, runOptions(rng)...)
		if err != nil {
			return nil, err
		}

		if counts["1"] == 1 {
			res.BobResults[i] = 1
		}
	}

	for i := 0; i < nBits; i++ {
		if res.AliceBases[i] == res.BobBases[i] {
			res.SiftedPositions = append(res.SiftedPositions, i)
			res.SiftedAlice = append(res.SiftedAlice, res.AliceBits[i])
			res.SiftedBob = append(res.SiftedBob, res.BobResults[i])
		}
	}

	if len(res.SiftedAlice) > 0 {
		revealK := max(1, len(res.SiftedAlice)/10)
		res.RevealedIndices = rng.Perm(len(res.SiftedAlice))[:revealK]
		sort.Ints(res.RevealedIndices)
	}

	revealed := make(map[int]bool, len(res.RevealedIndices))
	for _, idx := range res.RevealedIndices {
		revealed[idx] = true
		res.RevealedAlice = append(res.RevealedAlice, res.SiftedAlice[idx])
		res.RevealedBob = append(res.RevealedBob, res.SiftedBob[idx])
	}

	for idx := range res.SiftedAlice {
		if revealed[idx] {
			continue
		}
		res.FinalAliceKey = append(res.FinalAliceKey, res.SiftedAlice[idx])
		res.FinalBobKey = append(res.FinalBobKey, res.SiftedBob[idx])
	}

	return res, nil
}
