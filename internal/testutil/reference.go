package testutil

import (
	"math"
	"math/cmplx"
)

// NaiveHalfSpectrum returns the first len(x)/2+1 bins of the DFT of
// x[i]*w[i], evaluated directly. It is the independent reference for
// spectral column tests.
func NaiveHalfSpectrum(x, w []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n/2+1)
	for k := range out {
		var acc complex128
		for i := range n {
			s, c := math.Sincos(-2 * math.Pi * float64(k*i%n) / float64(n))
			acc += complex(x[i]*w[i], 0) * complex(c, s)
		}
		out[k] = acc
	}
	return out
}

// NaiveMagnitudeColumn is |NaiveHalfSpectrum(x, w)|.
func NaiveMagnitudeColumn(x, w []float64) []float64 {
	bins := NaiveHalfSpectrum(x, w)
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = cmplx.Abs(b)
	}
	return out
}
