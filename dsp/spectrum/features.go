package spectrum

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DefaultRolloff is the energy fraction used by Describe for Rolloff.
const DefaultRolloff = 0.85

// Features summarizes the shape of one linear magnitude column.
// Frequencies are in Hz.
type Features struct {
	PeakBin  int
	Peak     float64
	Energy   float64 // sum of squared bins
	Centroid float64
	Spread   float64 // standard deviation around Centroid
	Flatness float64 // geometric over arithmetic mean, DC excluded, 0..1
	Rolloff  float64 // frequency below which DefaultRolloff of Energy lies
}

// Describe computes Features of a magnitude column whose bin k lies at
// k*binHz. It does not allocate. Decibel or log columns give meaningless
// results.
func Describe[F algofft.Float](col []F, binHz float64) Features {
	var f Features
	if len(col) == 0 {
		return f
	}

	sum := 0.0
	f.Peak = float64(col[0])
	for k, c := range col {
		v := float64(c)
		sum += v
		f.Energy += v * v
		if v > f.Peak {
			f.Peak = v
			f.PeakBin = k
		}
	}

	if sum != 0 {
		weighted := 0.0
		for k, c := range col {
			weighted += float64(k) * binHz * float64(c)
		}
		f.Centroid = weighted / sum

		sq := 0.0
		for k, c := range col {
			d := float64(k)*binHz - f.Centroid
			sq += d * d * float64(c)
		}
		f.Spread = math.Sqrt(sq / sum)
	}

	f.Flatness = flatness(col)
	f.Rolloff = rolloff(col, binHz, DefaultRolloff, f.Energy)

	return f
}

// flatness is zero when any non-DC bin is zero.
func flatness[F algofft.Float](col []F) float64 {
	if len(col) < 2 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, c := range col[1:] {
		v := float64(c)
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(col) - 1)

	return math.Exp(sumLog/n) / (sumLin / n)
}

func rolloff[F algofft.Float](col []F, binHz, fraction, energy float64) float64 {
	if energy == 0 {
		return 0
	}

	threshold := fraction * energy
	cum := 0.0
	for k, c := range col {
		v := float64(c)
		cum += v * v
		if cum >= threshold {
			return float64(k) * binHz
		}
	}

	return float64(len(col)-1) * binHz
}
