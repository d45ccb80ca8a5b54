package main

import (
	"math"
	"math/cmplx"
)

// demoAmplitudes is cos(θ/2)|0⟩ + e^{iφ}sin(θ/2)|1⟩.
func demoAmplitudes(theta, phi float64) (complex128, complex128) {
	alpha := complex(math.Cos(theta/2), 0)
	beta := cmplx.Rect(math.Sin(theta/2), phi)
	return alpha, beta
}
