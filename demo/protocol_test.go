package demo

import (
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTeleport(t *testing.T) {
	Convey("Given an arbitrary input state", t, func() {
		alpha, beta := complex(0.6, 0), complex(0, 0.8)
		result, err := Teleport(newTestSimulator(), alpha, beta)
		So(err, ShouldBeNil)

		Convey("Alice should see each of her four outcomes a quarter of the time", func() {
			So(len(result.Outcomes), ShouldEqual, 4)
			for _, branch := range result.Outcomes {
				So(branch.Probability, ShouldAlmostEqual, 0.25, 1e-9)
			}
		})

		Convey("Bob's corrected qubit should match the input", func() {
			for _, branch := range result.Outcomes {
				for r := 0; r < 2; r++ {
					for c := 0; c < 2; c++ {
						So(cmplx.Abs(branch.Corrected[r][c]-result.Input[r][c]), ShouldBeLessThan, 1e-9)
					}
				}
			}
		})

		Convey("Without correction only the 00 branch should already match", func() {
			So(result.Outcomes[0].Outcome, ShouldEqual, "00")
			So(cmplx.Abs(result.Outcomes[0].Bob[0][1]-result.Input[0][1]), ShouldBeLessThan, 1e-9)
			So(cmplx.Abs(result.Outcomes[1].Bob[0][1]-result.Input[0][1]), ShouldBeGreaterThan, 1e-3)
		})
	})

	Convey("Given the zero vector", t, func() {
		_, err := Teleport(newTestSimulator(), 0, 0)

		Convey("It should be rejected", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBB84(t *testing.T) {
	Convey("Given a key exchange without an eavesdropper", t, func() {
		res, err := BB84(newTestSimulator(), 64, seededRand(17))
		So(err, ShouldBeNil)

		Convey("Sifting should keep exactly the matching bases", func() {
			So(len(res.SiftedPositions), ShouldBeGreaterThan, 0)
			for _, pos := range res.SiftedPositions {
				So(res.AliceBases[pos], ShouldEqual, res.BobBases[pos])
			}
		})

		Convey("Alice and Bob should agree on every sifted bit", func() {
			So(res.SiftedBob, ShouldResemble, res.SiftedAlice)
			So(res.ErrorRate(), ShouldEqual, 0.0)
		})

		Convey("A tenth of the sifted bits should be revealed and dropped", func() {
			So(len(res.RevealedIndices), ShouldEqual, max(1, len(res.SiftedAlice)/10))
			So(len(res.FinalAliceKey)+len(res.RevealedIndices), ShouldEqual, len(res.SiftedAlice))
			So(res.FinalBobKey, ShouldResemble, res.FinalAliceKey)
		})

		Convey("It should be reproducible from the seed", func() {
			again, _ := BB84(newTestSimulator(), 64, seededRand(17))
			So(again, ShouldResemble, res)
		})
	})

	Convey("Given bad arguments", t, func() {
		_, errBits := BB84(newTestSimulator(), 0, seededRand(1))
		_, errRand := BB84(newTestSimulator(), 8, nil)

		Convey("They should be rejected", func() {
			So(errBits, ShouldWrap, ErrInvalidArgument)
			So(errRand, ShouldWrap, ErrInvalidArgument)
		})
	})
}
