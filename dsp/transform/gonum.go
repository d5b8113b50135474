package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum wraps gonum's mixed-radix complex FFT. It supports any length and
// works in complex128 internally, widening complex64 input.
type Gonum[C algofft.Complex] struct {
	fft *fourier.CmplxFFT
	in  []complex128
	out []complex128
}

// NewGonum creates a gonum-backed transform of length n.
func NewGonum[C algofft.Complex](n int) (*Gonum[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	return &Gonum[C]{
		fft: fourier.NewCmplxFFT(n),
		in:  make([]complex128, n),
		out: make([]complex128, n),
	}, nil
}

// Len returns the transform length.
func (g *Gonum[C]) Len() int { return len(g.in) }

// Forward computes the DFT of src into dst.
func (g *Gonum[C]) Forward(dst, src []C) error {
	if err := checkLengths(len(g.in), dst, src); err != nil {
		return err
	}

	for i, v := range src {
		g.in[i] = complex128(v)
	}

	g.fft.Coefficients(g.out, g.in)

	for i, v := range g.out {
		dst[i] = C(v)
	}

	return nil
}
