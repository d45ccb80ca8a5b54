package demo

import (
	"math"
	"math/big"
	"testing"

	"github.com/dustin/go-humanize"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qsim"
)

func TestGroverIterations(t *testing.T) {
	Convey("Given search spaces of one to four qubits", t, func() {
		Convey("The iteration count should be max(1, ⌊π/4·√N⌋)", func() {
			So(GroverIterations(1), ShouldEqual, 1)
			So(GroverIterations(2), ShouldEqual, 1)
			So(GroverIterations(3), ShouldEqual, 2)
			So(GroverIterations(4), ShouldEqual, 3)
		})
	})
}

func TestGrover(t *testing.T) {
	Convey("Given two to four qubits", t, func() {
		sim := newTestSimulator()

		Convey("Every target should be the most frequent outcome", func() {
			for n := 2; n <= MaxGroverQubits; n++ {
				for target := 0; target < 1<<n; target++ {
					res, err := Grover(sim, n, target, 512, qsim.WithSeed(uint64(n*100+target)))
					So(err, ShouldBeNil)
					So(res.Found(), ShouldBeTrue)
					So(res.Counts.Total(), ShouldEqual, 512)
					So(res.Counts.Probability(qsim.FormatBasis(target, n)), ShouldBeGreaterThan, 0.85)
				}
			}
		})
	})

	Convey("Given a single qubit", t, func() {
		res, err := Grover(newTestSimulator(), 1, 1, 1000, qsim.WithSeed(3))

		Convey("One iteration should leave an even split", func() {
			So(err, ShouldBeNil)
			So(res.Iterations, ShouldEqual, 1)
			So(res.Counts.Probability("1"), ShouldBeBetween, 0.4, 0.6)
		})
	})

	Convey("Given arguments outside the search space", t, func() {
		sim := newTestSimulator()
		_, errLow := Grover(sim, 0, 0, 10)
		_, errHigh := Grover(sim, MaxGroverQubits+1, 0, 10)
		_, errTarget := Grover(sim, 2, 4, 10)
		_, errNegative := Grover(sim, 2, -1, 10)

		Convey("They should be rejected", func() {
			So(errLow, ShouldWrap, ErrInvalidArgument)
			So(errHigh, ShouldWrap, ErrInvalidArgument)
			So(errTarget, ShouldWrap, ErrInvalidArgument)
			So(errNegative, ShouldWrap, ErrInvalidArgument)
		})
	})
}

func TestCompareClassical(t *testing.T) {
	Convey("Given a three-qubit search", t, func() {
		speedup, err := CompareClassical(3)

		Convey("It should set N/2 guesses against the Grover iterations", func() {
			So(err, ShouldBeNil)
			So(speedup.SearchSpace, ShouldEqual, 8)
			So(speedup.ClassicalChecks, ShouldEqual, 4.0)
			So(speedup.GroverCalls, ShouldEqual, 2)
		})
	})
}

func TestExtrapolate(t *testing.T) {
	Convey("Given a 128-bit key", t, func() {
		cmp, err := Extrapolate(128)
		So(err, ShouldBeNil)

		expected := new(big.Int).Lsh(big.NewInt(1), 127)

		Convey("Brute force should need 2^127 guesses on average", func() {
			So(cmp.ClassicalChecks.Cmp(new(big.Float).SetInt(expected)), ShouldEqual, 0)
			So(cmp.ClassicalExactCount, ShouldEqual, humanize.BigComma(expected))
		})

		Convey("Grover should need about π/4·2^64 oracle calls", func() {
			calls, _ := cmp.GroverOracleCalls.Float64()
			So(calls/(math.Pi/4*math.Pow(2, 64)), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Both figures should have a humanized form", func() {
			So(cmp.ClassicalHumanized, ShouldNotBeEmpty)
			So(cmp.GroverHumanized, ShouldNotBeEmpty)
		})
	})

	Convey("Given a key size of zero", t, func() {
		_, err := Extrapolate(0)

		Convey("It should be rejected", func() {
			So(err, ShouldWrap, ErrInvalidArgument)
		})
	})
}

func TestPassword(t *testing.T) {
	Convey("Given a 64-bit password", t, func() {
		pw, err := Password(newTestSimulator(), 64, seededRand(23))

		Convey("It should come in every rendering", func() {
			So(err, ShouldBeNil)
			So(len(pw.Bits), ShouldEqual, 64)
			So(len(pw.Hex), ShouldEqual, 16)
			So(pw.String(), ShouldEqual, BitString(pw.Bits))
			So(pw.ASCII, ShouldNotBeEmpty)
		})
	})

	Convey("Given a known password prefix", t, func() {
		pw := &GeneratedPassword{Bits: []int{1, 0, 1, 1, 0, 0, 1, 0}}
		res, err := PasswordSearch(newTestSimulator(), pw, 4, 512, qsim.WithSeed(4))

		Convey("Grover should recover the prefix", func() {
			So(err, ShouldBeNil)
			So(res.Target, ShouldEqual, 11)
			So(res.Found(), ShouldBeTrue)
			basis, _ := res.Counts.MostFrequent()
			So(basis, ShouldEqual, "1011")
		})
	})

	Convey("Given a prefix longer than the password", t, func() {
		pw := &GeneratedPassword{Bits: []int{1, 0}}
		_, err := PasswordSearch(newTestSimulator(), pw, 3, 10)

		Convey("It should be rejected", func() {
			So(err, ShouldWrap, ErrInvalidArgument)
		})
	})

	Convey("Given a zero-length password", t, func() {
		_, err := Password(newTestSimulator(), 0, nil)

		Convey("It should be rejected", func() {
			So(err, ShouldWrap, ErrInvalidArgument)
		})
	})
}
