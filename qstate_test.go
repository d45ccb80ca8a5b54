package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func bellState() *QuantumState {
	state, _ := NewQuantumState(2)
	_ = state.Apply(Hadamard(), 0)
	_ = state.Apply(CNOT(), 0, 1)
	return state
}

func TestNewQuantumState(t *testing.T) {
	Convey("Given a register size", t, func() {
		Convey("When it is within bounds", func() {
			state, err := NewQuantumState(3)

			Convey("It should start in the all-zero basis state", func() {
				So(err, ShouldBeNil)
				So(state.Qubits(), ShouldEqual, 3)
				So(state.Len(), ShouldEqual, 8)
				So(state.Amplitude(0), ShouldEqual, complex(1, 0))
				So(state.NormSquaredSum(), ShouldEqual, 1.0)
			})
		})

		Convey("When it is negative or too large", func() {
			_, errNegative := NewQuantumState(-1)
			_, errLarge := NewQuantumState(MaxQubits + 1)

			Convey("It should be rejected", func() {
				So(errNegative, ShouldWrap, ErrInvalidQubitCount)
				So(errLarge, ShouldWrap, ErrInvalidQubitCount)
			})
		})
	})
}

func TestNormChecks(t *testing.T) {
	Convey("Given a state whose norm has drifted", t, func() {
		state, _ := NewQuantumState(1)
		state.vector[0] = 2

		Convey("CheckNorm should report the drift", func() {
			So(state.CheckNorm(1e-6), ShouldWrap, ErrNumericalDrift)
		})

		Convey("Renormalize should bring it back to unit norm", func() {
			state.Renormalize()
			So(state.CheckNorm(1e-12), ShouldBeNil)
			So(real(state.Amplitude(0)), ShouldAlmostEqual, 1.0, 1e-12)
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a cloned state", t, func() {
		state, _ := NewQuantumState(1)
		clone := state.Clone()

		Convey("Mutating the clone should leave the original alone", func() {
			So(clone.Apply(PauliX(), 0), ShouldBeNil)
			So(state.Amplitude(0), ShouldEqual, complex(1, 0))
			So(clone.Amplitude(1), ShouldEqual, complex(1, 0))
		})
	})
}

func TestReducedDensity(t *testing.T) {
	Convey("Given a product state |0⟩", t, func() {
		state, _ := NewQuantumState(1)
		rho, err := state.ReducedDensity(0)

		Convey("It should be the pure projector onto |0⟩", func() {
			So(err, ShouldBeNil)
			So(real(rho[0][0]), ShouldAlmostEqual, 1.0, 1e-12)
			So(real(rho[1][1]), ShouldAlmostEqual, 0.0, 1e-12)
		})
	})

	Convey("Given a Bell pair", t, func() {
		state := bellState()

		Convey("Each half should be maximally mixed", func() {
			for q := 0; q < 2; q++ {
				rho, err := state.ReducedDensity(q)
				So(err, ShouldBeNil)
				So(real(rho[0][0]), ShouldAlmostEqual, 0.5, 1e-12)
				So(real(rho[1][1]), ShouldAlmostEqual, 0.5, 1e-12)
				So(real(rho[0][1]), ShouldAlmostEqual, 0.0, 1e-12)
				So(imag(rho[0][1]), ShouldAlmostEqual, 0.0, 1e-12)
			}
		})

		Convey("An out of range qubit should be rejected", func() {
			_, err := state.ReducedDensity(2)
			So(err, ShouldWrap, ErrInvalidQubitIndex)
		})
	})
}

func TestProject(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		state := bellState()

		Convey("When projecting qubit 0 onto 1", func() {
			projected, probability, err := state.Project([]int{0}, 1)

			Convey("It should collapse the partner as well", func() {
				So(err, ShouldBeNil)
				So(probability, ShouldAlmostEqual, 0.5, 1e-12)
				So(real(projected.Amplitude(3)), ShouldAlmostEqual, 1.0, 1e-12)
				So(projected.CheckNorm(1e-12), ShouldBeNil)
			})

			Convey("It should not touch the original", func() {
				So(real(state.Amplitude(0)), ShouldAlmostEqual, 1/1.4142135623730951, 1e-12)
			})
		})

		Convey("When projecting onto an impossible outcome", func() {
			projected, probability, err := state.Project([]int{0, 1}, 1)

			Convey("It should return no state", func() {
				So(err, ShouldBeNil)
				So(projected, ShouldBeNil)
				So(probability, ShouldEqual, 0.0)
			})
		})

		Convey("When a qubit is repeated", func() {
			_, _, err := state.Project([]int{1, 1}, 0)

			Convey("It should be rejected", func() {
				So(err, ShouldWrap, ErrInvalidQubitIndex)
			})
		})
	})
}
