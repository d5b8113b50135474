package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stft/dsp/spectrum"
	"github.com/cwbudde/algo-stft/dsp/transform"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// FrameComputerT turns one materialized window into one spectral column:
// it applies the window table, runs the forward transform in place on an
// owned scratch buffer and reduces the non-redundant half spectrum.
type FrameComputerT[F algofft.Float, C algofft.Complex] struct {
	table   []float64
	frame   []float64
	tr      transform.Transformer[C]
	reducer *spectrum.ReducerT[F, C]
	scratch []C
}

// FrameComputer is the float64 specialization of FrameComputerT.
type FrameComputer = FrameComputerT[float64, complex128]

// FrameComputer32 is the float32 specialization of FrameComputerT.
type FrameComputer32 = FrameComputerT[float32, complex64]

// NewFrameComputerT creates a frame computer for len(table)-sample windows.
// The table is copied. floor is the decibel floor (0 selects the default).
func NewFrameComputerT[F algofft.Float, C algofft.Complex](
	table []float64,
	tr transform.Transformer[C],
	r spectrum.Reduction,
	floor float64,
) (*FrameComputerT[F, C], error) {
	n := len(table)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty window table", ErrConfiguration)
	}

	if tr == nil {
		return nil, fmt.Errorf("%w: nil transformer", ErrConfiguration)
	}

	if tr.Len() != n {
		return nil, fmt.Errorf("%w: transformer length %d, window size %d", ErrConfiguration, tr.Len(), n)
	}

	reducer, err := spectrum.NewReducerT[F, C](r, n/2+1, floor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &FrameComputerT[F, C]{
		table:   append([]float64(nil), table...),
		frame:   make([]float64, n),
		tr:      tr,
		reducer: reducer,
		scratch: make([]C, n),
	}, nil
}

// WindowSize returns the frame length.
func (fc *FrameComputerT[F, C]) WindowSize() int {
	return len(fc.table)
}

// OutputSize returns WindowSize()/2 + 1.
func (fc *FrameComputerT[F, C]) OutputSize() int {
	return len(fc.table)/2 + 1
}

// Reduction returns the reduction applied by Compute.
func (fc *FrameComputerT[F, C]) Reduction() spectrum.Reduction {
	return fc.reducer.Reduction()
}

// Compute writes the reduced half spectrum of view·table into out.
// view must hold WindowSize() samples and out OutputSize() values; on a
// length mismatch nothing is written. view is not modified.
func (fc *FrameComputerT[F, C]) Compute(view, out []F) error {
	if err := fc.transform(view, len(out)); err != nil {
		return err
	}

	return fc.reducer.Reduce(out, fc.scratch[:len(out)])
}

// ComputeComplex is like Compute but copies the raw complex half spectrum.
func (fc *FrameComputerT[F, C]) ComputeComplex(view []F, out []C) error {
	if err := fc.transform(view, len(out)); err != nil {
		return err
	}

	copy(out, fc.scratch)

	return nil
}

func (fc *FrameComputerT[F, C]) transform(view []F, outLen int) error {
	if outLen != fc.OutputSize() {
		return fmt.Errorf("%w: output length %d, want %d", ErrSizeMismatch, outLen, fc.OutputSize())
	}

	if len(view) != len(fc.table) {
		return fmt.Errorf("%w: window length %d, want %d", ErrSizeMismatch, len(view), len(fc.table))
	}

	for i, v := range view {
		fc.frame[i] = float64(v)
	}

	if err := window.ApplyCoefficientsInPlace(fc.frame, fc.table); err != nil {
		return fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	}

	for i, v := range fc.frame {
		fc.scratch[i] = C(complex(v, 0))
	}

	if err := fc.tr.Forward(fc.scratch, fc.scratch); err != nil {
		return fmt.Errorf("stft: forward transform failed: %w", err)
	}

	return nil
}
