package qsim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

/*
Sampler draws measurement outcomes from a state. It owns its generator, so
two samplers never share random state and a seeded sampler always replays
the same outcomes.
*/
type Sampler struct {
	rng *rand.Rand
}

// NewSampler wraps source. A nil source gets a freshly seeded PCG.
func NewSampler(source rand.Source) *Sampler {
	if source == nil {
		source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(source)}
}

// NewSeededSource returns a deterministic source for reproducible runs.
func NewSeededSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

type entropySource struct{}

func (entropySource) Uint64() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("qsim: reading system entropy: %v", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// NewEntropySource returns a source backed by the operating system's entropy pool.
func NewEntropySource() rand.Source {
	return entropySource{}
}

/*
Sample measures the given qubits shots times. Probabilities are marginalised
over the unmeasured qubits and each shot is an independent categorical draw.
The returned counts always sum to shots. An empty measured list measures
every qubit.
*/
func (s *Sampler) Sample(state *QuantumState, shots int, measured []int) (Counts, error) {
	if len(measured) == 0 {
		measured = allQubits(state.qubits)
	}

	outcomes, err := s.Draw(state, shots, measured)
	if err != nil {
		return nil, err
	}

	tally := make(map[int]int)
	for _, outcome := range outcomes {
		tally[outcome]++
	}

	counts := make(Counts, len(tally))
	for outcome, n := range tally {
		counts[FormatBasis(outcome, len(measured))] = n
	}

	return counts, nil
}

/*
Draw returns the individual shot outcomes in the order they were drawn, bit
i of each outcome being the value of measured[i].
*/
func (s *Sampler) Draw(state *QuantumState, shots int, measured []int) ([]int, error) {
	if shots < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	if len(measured) == 0 {
		measured = allQubits(state.qubits)
	}

	seen := 0
	for _, qubit := range measured {
		if err := state.checkQubit(qubit); err != nil {
			return nil, err
		}
		if seen&(1<<qubit) != 0 {
			return nil, fmt.Errorf("%w: qubit %d measured twice", ErrInvalidQubitIndex, qubit)
		}
		seen |= 1 << qubit
	}

	marginal := make([]float64, 1<<len(measured))
	for i, prob := range state.Probabilities() {
		marginal[outcomeIndex(i, measured)] += prob
	}

	cumulative := make([]float64, len(marginal))
	var total float64
	last := 0
	for i, prob := range marginal {
		total += prob
		cumulative[i] = total
		if prob > 0 {
			last = i
		}
	}

	outcomes := make([]int, shots)
	for shot := range outcomes {
		outcomes[shot] = pick(cumulative, last, s.rng.Float64()*total)
	}

	return outcomes, nil
}

/*
pick returns the first outcome whose cumulative probability exceeds r.
Strictly greater, so zero-probability outcomes are never selected. A draw
that lands on the total is clamped to last, the highest outcome with
non-zero probability.
*/
func pick(cumulative []float64, last int, r float64) int {
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
	if idx > last {
		return last
	}
	return idx
}

func outcomeIndex(basis int, measured []int) int {
	outcome := 0
	for i, qubit := range measured {
		if basis&(1<<qubit) != 0 {
			outcome |= 1 << i
		}
	}
	return outcome
}

func allQubits(n int) []int {
	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
	}
	return qubits
}

// FormatBasis renders an outcome as a bit string with bit 0 rightmost.
func FormatBasis(outcome, width int) string {
	var sb strings.Builder
	sb.Grow(width)
	for i := width - 1; i >= 0; i-- {
		if outcome&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
