package demo

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/theapemachine/qsim"
)

// DefaultShotsPerRun is how many single-qubit measurements one RNG run draws.
const DefaultShotsPerRun = 1024

/*
RandomBits measures a Hadamard-prepared qubit in runs of shotsPerRun shots
until n bits are collected, keeping the shots in the order they were drawn.
Each run takes its seed from rng, or runs unseeded when rng is nil.
*/
func RandomBits(sim *qsim.Simulator, n, shotsPerRun int, rng *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: bit count %d", ErrInvalidArgument, n)
	}
	if shotsPerRun <= 0 {
		shotsPerRun = DefaultShotsPerRun
	}

	circuit, err := qsim.NewBuilder(1).H(0).Measure(0).Build()
	if err != nil {
		return nil, err
	}

	bits := make([]int, 0, n)
	for len(bits) < n {
		memory, err := sim.Memory(circuit, min(shotsPerRun, n-len(bits)), runOptions(rng)...)
		if err != nil {
			return nil, err
		}

		for _, shot := range memory {
			if shot == "1" {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}

	return bits, nil
}

// runOptions seeds one run from rng. A nil rng leaves the run unseeded.
func runOptions(rng *rand.Rand) []qsim.RunOption {
	if rng == nil {
		return nil
	}
	return []qsim.RunOption{qsim.WithSeed(rng.Uint64())}
}

// BitsToBytes packs bits MSB first, zero-padding the last byte.
func BitsToBytes(bits []int) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit != 0 {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

func BitsToHex(bits []int) string {
	return hex.EncodeToString(BitsToBytes(bits))
}

// BitsToASCII shows printable bytes as characters and the rest as \xNN.
func BitsToASCII(bits []int) string {
	var sb strings.Builder
	for _, b := range BitsToBytes(bits) {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			fmt.Fprintf(&sb, "\\x%02x", b)
		}
	}
	return sb.String()
}

// BitString joins bits as "0101...".
func BitString(bits []int) string {
	var sb strings.Builder
	for _, bit := range bits {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
