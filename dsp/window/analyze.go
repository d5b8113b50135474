package window

import "math"

// Analysis holds numerically computed spectral properties of a window.
type Analysis struct {
	// Sum is sum(w[n]), the DC bin magnitude for a unit constant input.
	Sum float64
	// CoherentGain is sum(w[n]) / N.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// ProcessingLossdB is 10*log10(ENBW).
	ProcessingLossdB float64
	// ScallopLossdB is the amplitude error for a tone half a bin off-centre.
	ScallopLossdB float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
}

// Analyze computes spectral properties of the given window coefficients by
// evaluating the window's DTFT directly.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	sum := 0.0
	sumSq := 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	a := Analysis{
		Sum:          sum,
		CoherentGain: sum / float64(n),
	}
	if sum == 0 {
		return a
	}

	a.ENBW = float64(n) * sumSq / (sum * sum)
	a.ProcessingLossdB = 10 * math.Log10(a.ENBW)

	dcRef := dtftMagSq(coeffs, 0)
	if half := dtftMagSq(coeffs, 0.5/float64(n)); half > 0 {
		a.ScallopLossdB = 10 * math.Log10(half/dcRef)
	}

	// Bisection for |W(f)|^2 / |W(0)|^2 = 0.5 on [0, Nyquist].
	lo, hi := 0.0, 0.5
	for range 64 {
		mid := (lo + hi) / 2
		if dtftMagSq(coeffs, mid)/dcRef > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	a.Bandwidth3dB = 2 * lo * float64(n)

	return a
}

// dtftMagSq evaluates |W(f)|^2 at a normalised frequency f in [0, 0.5].
func dtftMagSq(coeffs []float64, f float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * f
	for k, c := range coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}
	return re*re + im*im
}
