package qsim

import "fmt"

/*
Apply evolves the state by the gate acting on the given targets, identity on
every other qubit. For a gate of arity k the vector splits into groups of 2^k
basis indices that differ only in the target bits; each group is gathered,
multiplied by the gate matrix and scattered back. Targets are validated
before anything is touched, so a failed Apply leaves the state as it was.
*/
func (qs *QuantumState) Apply(gate Gate, targets ...int) error {
	if len(targets) != gate.arity {
		return fmt.Errorf("%w: %s acts on %d qubit(s), got %d target(s)", ErrArityMismatch, gate.name, gate.arity, len(targets))
	}

	mask := 0
	for _, target := range targets {
		if err := qs.checkQubit(target); err != nil {
			return err
		}
		if mask&(1<<target) != 0 {
			return fmt.Errorf("%w: qubit %d targeted twice by %s", ErrInvalidQubitIndex, target, gate.name)
		}
		mask |= 1 << target
	}

	if gate.diagonal() {
		for i := range qs.vector {
			if i&mask == mask {
				qs.vector[i] *= gate.phase
			}
		}
		return nil
	}

	// offsets[l] spreads local index l over the target bit positions.
	offsets := make([]int, gate.dim)
	for l := range offsets {
		for j, target := range targets {
			if l&(1<<j) != 0 {
				offsets[l] |= 1 << target
			}
		}
	}

	in := make([]complex128, gate.dim)
	for base := range qs.vector {
		if base&mask != 0 {
			continue
		}

		for l, offset := range offsets {
			in[l] = qs.vector[base|offset]
		}

		for r, offset := range offsets {
			var sum complex128
			row := gate.matrix[r*gate.dim : (r+1)*gate.dim]
			for c, amplitude := range in {
				if row[c] != 0 {
					sum += row[c] * amplitude
				}
			}
			qs.vector[base|offset] = sum
		}
	}

	return nil
}
