package qsim

import (
	"fmt"
	"strings"
)

// Operation is one gate placed on specific qubits.
type Operation struct {
	Gate    Gate
	Targets []int
}

func (op Operation) String() string {
	targets := make([]string, len(op.Targets))
	for i, t := range op.Targets {
		targets[i] = fmt.Sprint(t)
	}
	return op.Gate.String() + " " + strings.Join(targets, " ")
}

/*
Circuit is a finalized, immutable sequence of operations followed by a
measurement of a set of qubits. Only a Builder creates one, and every
accessor hands out copies so callers cannot reach the internals.
*/
type Circuit struct {
	qubits   int
	ops      []Operation
	measured []int
}

func (c *Circuit) Qubits() int {
	return c.qubits
}

func (c *Circuit) Len() int {
	return len(c.ops)
}

func (c *Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	for i, op := range c.ops {
		out[i] = Operation{Gate: op.Gate, Targets: append([]int(nil), op.Targets...)}
	}
	return out
}

// Measured returns the qubits read out, classical bit i being the i-th entry.
func (c *Circuit) Measured() []int {
	return append([]int(nil), c.measured...)
}

// String renders the circuit in the text description format ParseCircuit reads.
// Prepare gates have no text form and print as "prepare".
func (c *Circuit) String() string {
	lines := make([]string, 0, len(c.ops)+1)
	for _, op := range c.ops {
		lines = append(lines, op.String())
	}

	measured := make([]string, len(c.measured))
	for i, q := range c.measured {
		measured[i] = fmt.Sprint(q)
	}
	lines = append(lines, "measure "+strings.Join(measured, " "))

	return strings.Join(lines, "\n")
}

/*
Builder assembles a Circuit. It starts in the building state where appends
are allowed; Build moves it to the finalized state for good. Any append or
second Build after that records ErrCircuitFinalized. Qubit bounds are left
to gate application time.
*/
type Builder struct {
	qubits    int
	ops       []Operation
	measured  []int
	finalized bool
	err       error
}

func NewBuilder(qubits int) *Builder {
	return &Builder{qubits: qubits}
}

// Apply appends gate acting on targets.
func (b *Builder) Apply(gate Gate, targets ...int) *Builder {
	if b.checkOpen() {
		b.ops = append(b.ops, Operation{
			Gate:    gate,
			Targets: append([]int(nil), targets...),
		})
	}
	return b
}

// Err returns the first error the builder recorded.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) H(q int) *Builder { return b.Apply(Hadamard(), q) }
func (b *Builder) X(q int) *Builder { return b.Apply(PauliX(), q) }
func (b *Builder) Y(q int) *Builder { return b.Apply(PauliY(), q) }
func (b *Builder) Z(q int) *Builder { return b.Apply(PauliZ(), q) }
func (b *Builder) S(q int) *Builder { return b.Apply(S(), q) }
func (b *Builder) T(q int) *Builder { return b.Apply(T(), q) }

func (b *Builder) RX(theta float64, q int) *Builder { return b.Apply(RX(theta), q) }
func (b *Builder) RY(theta float64, q int) *Builder { return b.Apply(RY(theta), q) }
func (b *Builder) RZ(theta float64, q int) *Builder { return b.Apply(RZ(theta), q) }

func (b *Builder) CX(control, target int) *Builder { return b.Apply(CNOT(), control, target) }
func (b *Builder) CZ(a, c int) *Builder            { return b.Apply(CZ(), a, c) }
func (b *Builder) Swap(a, c int) *Builder          { return b.Apply(Swap(), a, c) }

// MCZ flips the phase when every listed qubit is |1⟩.
func (b *Builder) MCZ(qubits ...int) *Builder {
	gate, err := MultiControlledZ(len(qubits))
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Apply(gate, qubits...)
}

// Prepare loads α|0⟩ + β|1⟩ into a qubit that is still |0⟩.
func (b *Builder) Prepare(q int, alpha, beta complex128) *Builder {
	gate, err := Prepare(alpha, beta)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Apply(gate, q)
}

// Measure declares the qubits to read out. Without a call every qubit is measured.
func (b *Builder) Measure(qubits ...int) *Builder {
	if b.checkOpen() {
		b.measured = append(b.measured, qubits...)
	}
	return b
}

// Build finalizes the circuit.
func (b *Builder) Build() (*Circuit, error) {
	if b.finalized {
		b.fail(ErrCircuitFinalized)
		return nil, b.err
	}
	b.finalized = true

	if b.err != nil {
		return nil, b.err
	}

	if b.qubits < 0 || b.qubits > MaxQubits {
		b.err = fmt.Errorf("%w: %d", ErrInvalidQubitCount, b.qubits)
		return nil, b.err
	}

	measured := b.measured
	if len(measured) == 0 {
		measured = allQubits(b.qubits)
	}

	return &Circuit{
		qubits:   b.qubits,
		ops:      b.ops,
		measured: append([]int(nil), measured...),
	}, nil
}

func (b *Builder) checkOpen() bool {
	if b.finalized {
		b.fail(ErrCircuitFinalized)
		return false
	}
	return true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
