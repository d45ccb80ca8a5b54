package qsim

import (
	"math"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStandardGates(t *testing.T) {
	Convey("Given the built-in gates", t, func() {
		mcz, _ := MultiControlledZ(3)
		prep, _ := Prepare(0.6, 0.8i)

		gates := []Gate{
			Hadamard(), PauliX(), PauliY(), PauliZ(), S(), T(),
			Phase(0.3), RX(1.1), RY(-0.4), RZ(math.Pi),
			CNOT(), CZ(), Swap(), mcz, prep,
		}

		Convey("Every one of them should be unitary", func() {
			for _, gate := range gates {
				So(gate.Validate(1e-9), ShouldBeNil)
			}
		})

		Convey("Arity should follow the matrix dimension", func() {
			So(Hadamard().Arity(), ShouldEqual, 1)
			So(CNOT().Arity(), ShouldEqual, 2)
			So(mcz.Arity(), ShouldEqual, 3)
		})
	})
}

func TestNewGate(t *testing.T) {
	Convey("Given a custom matrix", t, func() {
		Convey("When it is not unitary", func() {
			gate, err := NewGate("shear", [][]complex128{{1, 1}, {0, 1}})

			Convey("It should build but fail validation", func() {
				So(err, ShouldBeNil)
				So(gate.Validate(1e-6), ShouldWrap, ErrNonUnitaryGate)
			})
		})

		Convey("When it is not a power of two", func() {
			_, err := NewGate("odd", [][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

			Convey("It should be rejected", func() {
				So(err, ShouldWrap, ErrInvalidParams)
			})
		})

		Convey("When a row is short", func() {
			_, err := NewGate("ragged", [][]complex128{{1, 0}, {0}})

			Convey("It should be rejected", func() {
				So(err, ShouldWrap, ErrInvalidParams)
			})
		})

		Convey("Matrix should hand out a copy", func() {
			gate, _ := NewGate("x", [][]complex128{{0, 1}, {1, 0}})
			m, err := gate.Matrix()
			So(err, ShouldBeNil)
			m[0][0] = 5
			So(gate.At(0, 0), ShouldEqual, complex(0, 0))
		})

		Convey("When it is wider than the dense limit", func() {
			dim := 1 << (MaxGateArity + 1)
			matrix := make([][]complex128, dim)
			for r := range matrix {
				matrix[r] = make([]complex128, dim)
				matrix[r][r] = 1
			}
			_, err := NewGate("wide", matrix)

			Convey("It should be rejected", func() {
				So(err, ShouldWrap, ErrInvalidParams)
			})
		})
	})
}

func TestMultiControlledZ(t *testing.T) {
	Convey("Given a multi-controlled Z", t, func() {
		Convey("A small one should expand to the expected matrix", func() {
			mcz, err := MultiControlledZ(2)
			So(err, ShouldBeNil)
			m, err := mcz.Matrix()
			So(err, ShouldBeNil)
			So(m, ShouldResemble, CZ().mustMatrix())
		})

		Convey("One spanning the whole register should be cheap to build and apply", func() {
			mcz, err := MultiControlledZ(MaxQubits)
			So(err, ShouldBeNil)
			So(mcz.Arity(), ShouldEqual, MaxQubits)
			So(mcz.Validate(1e-9), ShouldBeNil)

			_, err = mcz.Matrix()
			So(err, ShouldWrap, ErrInvalidParams)
		})

		Convey("A wide one from a text description should run", func() {
			targets := make([]string, 20)
			for i := range targets {
				targets[i] = strconv.Itoa(i)
			}
			text := "x " + strings.Join(targets, "; x ") + "; mcz " + strings.Join(targets, " ")

			circuit, err := ParseCircuit(20, text)
			So(err, ShouldBeNil)

			state, err := newTestSimulator(nil).Statevector(circuit)
			So(err, ShouldBeNil)
			So(state.Amplitude(1<<20-1), ShouldEqual, complex(-1, 0))
		})

		Convey("Arity outside the register bounds should be rejected", func() {
			_, err := MultiControlledZ(0)
			So(err, ShouldWrap, ErrInvalidParams)

			_, err = MultiControlledZ(MaxQubits + 1)
			So(err, ShouldWrap, ErrInvalidParams)
		})
	})
}

func (g Gate) mustMatrix() [][]complex128 {
	m, err := g.Matrix()
	if err != nil {
		panic(err)
	}
	return m
}

func TestPrepare(t *testing.T) {
	Convey("Given amplitudes that are not normalized", t, func() {
		gate, err := Prepare(3, 4)

		Convey("The first column should be the normalized state", func() {
			So(err, ShouldBeNil)
			So(real(gate.At(0, 0)), ShouldAlmostEqual, 0.6, 1e-12)
			So(real(gate.At(1, 0)), ShouldAlmostEqual, 0.8, 1e-12)
		})
	})

	Convey("Given the zero vector", t, func() {
		_, err := Prepare(0, 0)

		Convey("It should be rejected", func() {
			So(err, ShouldWrap, ErrInvalidParams)
		})
	})
}

func TestLookupGate(t *testing.T) {
	Convey("Given gate names from a text description", t, func() {
		Convey("Rotations should carry their angle", func() {
			gate, err := LookupGate("RZ", []float64{0.5}, 1)
			So(err, ShouldBeNil)
			So(gate.String(), ShouldEqual, "rz(0.5)")
			So(gate.Params(), ShouldResemble, []float64{0.5})
		})

		Convey("cnot should be an alias of cx", func() {
			gate, err := LookupGate("cnot", nil, 2)
			So(err, ShouldBeNil)
			So(gate.Name(), ShouldEqual, "cx")
		})

		Convey("mcz should take its arity from the targets", func() {
			gate, err := LookupGate("mcz", nil, 4)
			So(err, ShouldBeNil)
			So(gate.Arity(), ShouldEqual, 4)
		})

		Convey("Unknown names and wrong parameter counts should fail", func() {
			_, err := LookupGate("toffoli", nil, 3)
			So(err, ShouldWrap, ErrUnknownGate)

			_, err = LookupGate("rx", nil, 1)
			So(err, ShouldWrap, ErrInvalidParams)

			_, err = LookupGate("h", []float64{1}, 1)
			So(err, ShouldWrap, ErrInvalidParams)
		})
	})
}
