package demo

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/theapemachine/qsim"
)

// MaxGroverQubits keeps the search space at 16 items or fewer.
const MaxGroverQubits = 4

// GroverResult is the outcome of one Grover search.
type GroverResult struct {
	Qubits     int
	Target     int
	Iterations int
	Counts     qsim.Counts
	Circuit    *qsim.Circuit
}

// Found reports whether the target was the most measured outcome.
func (g *GroverResult) Found() bool {
	basis, _ := g.Counts.MostFrequent()
	return basis == qsim.FormatBasis(g.Target, g.Qubits)
}

// GroverIterations is max(1, ⌊π/4·√N⌋) for N = 2^n.
func GroverIterations(n int) int {
	return max(1, int(math.Floor(math.Pi/4*math.Sqrt(float64(uint64(1)<<n)))))
}

// ClassicalAverageChecks is N/2, the expected guesses of a brute-force search.
func ClassicalAverageChecks(n int) float64 {
	return float64(uint64(1)<<n) / 2
}

/*
GroverCircuit starts from the uniform superposition and repeats the phase
oracle for target followed by the diffusion operator. The oracle wraps a
multi-controlled Z in X gates on the target's zero bits; the diffusion is
H, X, the same multi-controlled Z, X, H on every qubit.
*/
func GroverCircuit(n, target int) (*qsim.Circuit, int, error) {
	if n < 1 || n > MaxGroverQubits {
		return nil, 0, fmt.Errorf("%w: qubits must be between 1 and %d, got %d", ErrInvalidArgument, MaxGroverQubits, n)
	}
	if target < 0 || target >= 1<<n {
		return nil, 0, fmt.Errorf("%w: target %d outside search space of %d", ErrInvalidArgument, target, 1<<n)
	}

	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
	}

	builder := qsim.NewBuilder(n)
	for _, q := range qubits {
		builder.H(q)
	}

	iterations := GroverIterations(n)
	for r := 0; r < iterations; r++ {
		for _, q := range qubits {
			if target&(1<<q) == 0 {
				builder.X(q)
			}
		}
		builder.MCZ(qubits...)
		for _, q := range qubits {
			if target&(1<<q) == 0 {
				builder.X(q)
			}
		}

		for _, q := range qubits {
			builder.H(q).X(q)
		}
		builder.MCZ(qubits...)
		for _, q := range qubits {
			builder.X(q).H(q)
		}
	}

	circuit, err := builder.Measure(qubits...).Build()
	if err != nil {
		return nil, 0, err
	}
	return circuit, iterations, nil
}

// Grover searches for target among 2^n items.
func Grover(sim *qsim.Simulator, n, target, shots int, opts ...qsim.RunOption) (*GroverResult, error) {
	circuit, iterations, err := GroverCircuit(n, target)
	if err != nil {
		return nil, err
	}

	counts, err := sim.Run(circuit, shots, opts...)
	if err != nil {
		return nil, err
	}

	return &GroverResult{
		Qubits:     n,
		Target:     target,
		Iterations: iterations,
		Counts:     counts,
		Circuit:    circuit,
	}, nil
}

// Speedup puts the simulated search next to a brute-force average.
type Speedup struct {
	Qubits          int
	SearchSpace     int
	ClassicalChecks float64
	GroverCalls     int
}

func CompareClassical(n int) (*Speedup, error) {
	if n < 1 || n > MaxGroverQubits {
		return nil, fmt.Errorf("%w: qubits must be between 1 and %d, got %d", ErrInvalidArgument, MaxGroverQubits, n)
	}
	return &Speedup{
		Qubits:          n,
		SearchSpace:     1 << n,
		ClassicalChecks: ClassicalAverageChecks(n),
		GroverCalls:     GroverIterations(n),
	}, nil
}

// Comparison sets brute force against Grover for an n-bit search space.
type Comparison struct {
	Bits                int
	ClassicalChecks     *big.Float
	GroverOracleCalls   *big.Float
	ClassicalHumanized  string
	GroverHumanized     string
	ClassicalExactCount string
}

/*
Extrapolate compares the expected brute-force guesses 2^(bits-1) with the
ideal Grover oracle calls π/4·2^(bits/2) for key sizes far beyond what the
simulator can hold.
*/
func Extrapolate(bits int) (*Comparison, error) {
	if bits < 1 || bits > 1024 {
		return nil, fmt.Errorf("%w: key size %d", ErrInvalidArgument, bits)
	}

	classicalInt := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	classical := new(big.Float).SetInt(classicalInt)

	space := new(big.Float).SetMantExp(big.NewFloat(1), bits)
	sqrtN := new(big.Float).Sqrt(space)
	grover := new(big.Float).Mul(sqrtN, big.NewFloat(math.Pi/4))

	classicalF, _ := classical.Float64()
	groverF, _ := grover.Float64()

	return &Comparison{
		Bits:                bits,
		ClassicalChecks:     classical,
		GroverOracleCalls:   grover,
		ClassicalHumanized:  humanize.SIWithDigits(classicalF, 2, ""),
		GroverHumanized:     humanize.SIWithDigits(groverF, 2, ""),
		ClassicalExactCount: humanize.BigComma(classicalInt),
	}, nil
}
