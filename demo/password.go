package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/theapemachine/qsim"
)

// GeneratedPassword is one quantum-random password in three renderings.
type GeneratedPassword struct {
	Bits  []int
	Hex   string
	ASCII string
}

func (p *GeneratedPassword) String() string {
	return BitString(p.Bits)
}

// Password draws bitLen random bits from a measured superposition.
func Password(sim *qsim.Simulator, bitLen int, rng *rand.Rand) (*GeneratedPassword, error) {
	if bitLen < 1 {
		return nil, fmt.Errorf("%w: password length %d", ErrInvalidArgument, bitLen)
	}

	bits, err := RandomBits(sim, bitLen, DefaultShotsPerRun, rng)
	if err != nil {
		return nil, err
	}

	return &GeneratedPassword{
		Bits:  bits,
		Hex:   BitsToHex(bits),
		ASCII: BitsToASCII(bits),
	}, nil
}

/*
PasswordSearch runs Grover over the first nQubits bits of the password. The
prefix is read MSB first, so a successful search measures a basis string
equal to BitString(pw.Bits[:nQubits]).
*/
func PasswordSearch(sim *qsim.Simulator, pw *GeneratedPassword, nQubits, shots int, opts ...qsim.RunOption) (*GroverResult, error) {
	if pw == nil || nQubits > len(pw.Bits) {
		return nil, fmt.Errorf("%w: password shorter than %d bits", ErrInvalidArgument, nQubits)
	}
	if nQubits < 1 || nQubits > MaxGroverQubits {
		return nil, fmt.Errorf("%w: qubits must be between 1 and %d, got %d", ErrInvalidArgument, MaxGroverQubits, nQubits)
	}

	target := 0
	for _, bit := range pw.Bits[:nQubits] {
		target = target<<1 | bit&1
	}

	return Grover(sim, nQubits, target, shots, opts...)
}
