package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// AlgoFFT wraps a precomputed algo-fft plan.
type AlgoFFT[C algofft.Complex] struct {
	plan *algofft.Plan[C]
	n    int
}

// NewAlgoFFT plans a forward transform of length n.
func NewAlgoFFT[C algofft.Complex](n int) (*AlgoFFT[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	plan, err := algofft.NewPlanT[C](n)
	if err != nil {
		return nil, fmt.Errorf("transform: failed to create FFT plan: %w", err)
	}

	return &AlgoFFT[C]{plan: plan, n: n}, nil
}

// Len returns the transform length.
func (a *AlgoFFT[C]) Len() int { return a.n }

// Forward computes the DFT of src into dst.
func (a *AlgoFFT[C]) Forward(dst, src []C) error {
	if err := checkLengths(a.n, dst, src); err != nil {
		return err
	}

	if err := a.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}

	return nil
}
