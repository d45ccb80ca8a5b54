package qsim

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"strings"
)

/*
Gate is an immutable unitary tagged with its arity. The matrix is stored
row-major with dimension 2^arity, and bit j of a row or column index refers
to the j-th target qubit given when the gate is applied. The engine only
cares about the arity, never about which named gate it is dealing with.

Controlled-phase gates carry no matrix. They are the identity except for
the all-ones entry, which is phase, so their arity can reach MaxQubits.
*/
type Gate struct {
	name   string
	params []float64
	arity  int
	dim    int
	matrix []complex128
	phase  complex128
}

// MaxGateArity bounds gates stored as a dense matrix (4^k entries).
const MaxGateArity = 8

// NewGate validates the shape of a square matrix and wraps it as a gate.
func NewGate(name string, matrix [][]complex128) (Gate, error) {
	dim := len(matrix)
	if dim < 2 || bits.OnesCount(uint(dim)) != 1 {
		return Gate{}, fmt.Errorf("%w: %s has dimension %d, want a power of two >= 2", ErrInvalidParams, name, dim)
	}
	if dim > 1<<MaxGateArity {
		return Gate{}, fmt.Errorf("%w: %s acts on %d qubits, dense gates are limited to %d", ErrInvalidParams, name, bits.TrailingZeros(uint(dim)), MaxGateArity)
	}

	flat := make([]complex128, 0, dim*dim)
	for r, row := range matrix {
		if len(row) != dim {
			return Gate{}, fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrInvalidParams, name, r, len(row), dim)
		}
		flat = append(flat, row...)
	}

	return Gate{
		name:   name,
		arity:  bits.TrailingZeros(uint(dim)),
		dim:    dim,
		matrix: flat,
	}, nil
}

func newGate(name string, params []float64, dim int, entries ...complex128) Gate {
	return Gate{
		name:   name,
		params: params,
		arity:  bits.TrailingZeros(uint(dim)),
		dim:    dim,
		matrix: entries,
	}
}

func (g Gate) Name() string {
	return g.name
}

func (g Gate) Arity() int {
	return g.arity
}

// Params returns the angles the gate was constructed with, if any.
func (g Gate) Params() []float64 {
	out := make([]float64, len(g.params))
	copy(out, g.params)
	return out
}

// At returns matrix element (row, col).
func (g Gate) At(row, col int) complex128 {
	if g.diagonal() {
		switch {
		case row != col:
			return 0
		case row == g.dim-1:
			return g.phase
		default:
			return 1
		}
	}
	return g.matrix[row*g.dim+col]
}

func (g Gate) diagonal() bool {
	return g.matrix == nil && g.dim > 0
}

// Matrix returns a copy of the gate matrix. Wide controlled-phase gates
// have no dense form and return an error.
func (g Gate) Matrix() ([][]complex128, error) {
	if g.arity > MaxGateArity {
		return nil, fmt.Errorf("%w: %s acts on %d qubits, dense gates are limited to %d", ErrInvalidParams, g.name, g.arity, MaxGateArity)
	}

	out := make([][]complex128, g.dim)
	for r := range out {
		out[r] = make([]complex128, g.dim)
		for c := range out[r] {
			out[r][c] = g.At(r, c)
		}
	}
	return out, nil
}

// Validate checks that U†U is the identity within tolerance.
func (g Gate) Validate(tolerance float64) error {
	if g.diagonal() {
		if math.Abs(cmplx.Abs(g.phase)-1) > tolerance {
			return fmt.Errorf("%w: %s phase %v is not on the unit circle", ErrNonUnitaryGate, g.name, g.phase)
		}
		return nil
	}

	for i := 0; i < g.dim; i++ {
		for j := 0; j < g.dim; j++ {
			var sum complex128
			for k := 0; k < g.dim; k++ {
				sum += cmplx.Conj(g.At(k, i)) * g.At(k, j)
			}

			want := complex(0, 0)
			if i == j {
				want = 1
			}

			if cmplx.Abs(sum-want) > tolerance {
				return fmt.Errorf("%w: %s (U†U)[%d][%d] = %v", ErrNonUnitaryGate, g.name, i, j, sum)
			}
		}
	}
	return nil
}

// String renders the gate the way the text description format spells it.
func (g Gate) String() string {
	if len(g.params) == 0 {
		return g.name
	}

	params := make([]string, len(g.params))
	for i, p := range g.params {
		params[i] = fmt.Sprintf("%g", p)
	}
	return fmt.Sprintf("%s(%s)", g.name, strings.Join(params, ","))
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Hadamard puts a basis state into an equal superposition.
//
//	H = 1/√2 * [1  1]
//	           [1 -1]
func Hadamard() Gate {
	return newGate("h", nil, 2,
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	)
}

func PauliX() Gate {
	return newGate("x", nil, 2,
		0, 1,
		1, 0,
	)
}

func PauliY() Gate {
	return newGate("y", nil, 2,
		0, -1i,
		1i, 0,
	)
}

func PauliZ() Gate {
	return newGate("z", nil, 2,
		1, 0,
		0, -1,
	)
}

// Phase applies e^{iθ} to |1⟩.
func Phase(theta float64) Gate {
	return newGate("p", []float64{theta}, 2,
		1, 0,
		0, cmplx.Exp(complex(0, theta)),
	)
}

func S() Gate {
	return newGate("s", nil, 2,
		1, 0,
		0, 1i,
	)
}

func T() Gate {
	return newGate("t", nil, 2,
		1, 0,
		0, cmplx.Exp(complex(0, math.Pi/4)),
	)
}

func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return newGate("rx", []float64{theta}, 2,
		c, s,
		s, c,
	)
}

func RY(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return newGate("ry", []float64{theta}, 2,
		c, -s,
		s, c,
	)
}

func RZ(theta float64) Gate {
	return newGate("rz", []float64{theta}, 2,
		cmplx.Exp(complex(0, -theta/2)), 0,
		0, cmplx.Exp(complex(0, theta/2)),
	)
}

// CNOT flips the second target when the first target (the control) is |1⟩.
func CNOT() Gate {
	return newGate("cx", nil, 4,
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	)
}

func CZ() Gate {
	return newGate("cz", nil, 4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	)
}

func Swap() Gate {
	return newGate("swap", nil, 4,
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	)
}

// MultiControlledZ flips the phase of the all-ones state of k qubits.
// k = 1 is Z and k = 2 is CZ.
func MultiControlledZ(k int) (Gate, error) {
	if k < 1 || k > MaxQubits {
		return Gate{}, fmt.Errorf("%w: mcz needs between 1 and %d qubits, got %d", ErrInvalidParams, MaxQubits, k)
	}

	return Gate{
		name:  "mcz",
		arity: k,
		dim:   1 << k,
		phase: -1,
	}, nil
}

/*
Prepare returns a single-qubit unitary that takes |0⟩ to α|0⟩ + β|1⟩, with
α and β normalized first. Both being zero is an error.
*/
func Prepare(alpha, beta complex128) (Gate, error) {
	norm := math.Sqrt(real(alpha*cmplx.Conj(alpha)) + real(beta*cmplx.Conj(beta)))
	if norm == 0 {
		return Gate{}, fmt.Errorf("%w: cannot prepare a zero state", ErrInvalidParams)
	}

	alpha /= complex(norm, 0)
	beta /= complex(norm, 0)

	return newGate("prepare", nil, 2,
		alpha, -cmplx.Conj(beta),
		beta, cmplx.Conj(alpha),
	), nil
}

type gateFactory struct {
	params int
	build  func(params []float64) (Gate, error)
}

func fixed(g func() Gate) gateFactory {
	return gateFactory{build: func([]float64) (Gate, error) { return g(), nil }}
}

func rotation(g func(float64) Gate) gateFactory {
	return gateFactory{params: 1, build: func(p []float64) (Gate, error) { return g(p[0]), nil }}
}

var gateRegistry = map[string]gateFactory{
	"h":    fixed(Hadamard),
	"x":    fixed(PauliX),
	"y":    fixed(PauliY),
	"z":    fixed(PauliZ),
	"s":    fixed(S),
	"t":    fixed(T),
	"cx":   fixed(CNOT),
	"cnot": fixed(CNOT),
	"cz":   fixed(CZ),
	"swap": fixed(Swap),
	"p":    rotation(Phase),
	"rx":   rotation(RX),
	"ry":   rotation(RY),
	"rz":   rotation(RZ),
}

/*
LookupGate resolves a gate by its text name. Multi-controlled Z takes its
arity from the number of targets, so it is resolved with arity supplied.
*/
func LookupGate(name string, params []float64, targets int) (Gate, error) {
	name = strings.ToLower(name)

	if name == "mcz" {
		if len(params) != 0 {
			return Gate{}, fmt.Errorf("%w: mcz takes no parameters", ErrInvalidParams)
		}
		return MultiControlledZ(targets)
	}

	factory, ok := gateRegistry[name]
	if !ok {
		return Gate{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	}

	if len(params) != factory.params {
		return Gate{}, fmt.Errorf("%w: %s takes %d parameter(s), got %d", ErrInvalidParams, name, factory.params, len(params))
	}

	return factory.build(params)
}
