package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// GoDSP wraps github.com/mjibson/go-dsp/fft. It handles any length through
// Bluestein's algorithm but returns a fresh slice per call, so it is not
// allocation-free.
type GoDSP[C algofft.Complex] struct {
	in []complex128
}

// NewGoDSP creates a go-dsp backed transform of length n.
func NewGoDSP[C algofft.Complex](n int) (*GoDSP[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	return &GoDSP[C]{in: make([]complex128, n)}, nil
}

// Len returns the transform length.
func (g *GoDSP[C]) Len() int { return len(g.in) }

// Forward computes the DFT of src into dst.
func (g *GoDSP[C]) Forward(dst, src []C) error {
	if err := checkLengths(len(g.in), dst, src); err != nil {
		return err
	}

	for i, v := range src {
		g.in[i] = complex128(v)
	}

	for i, v := range fft.FFT(g.in) {
		dst[i] = C(v)
	}

	return nil
}
