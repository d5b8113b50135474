package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ReducerT converts complex bins to real values with a fixed Reduction.
//
// Bins are split into re/im scratch and reduced with the SIMD kernels from
// algo-vecmath. Scratch is sized once, so Reduce does not allocate.
// A ReducerT is not safe for concurrent use.
type ReducerT[F algofft.Float, C algofft.Complex] struct {
	reduction Reduction
	floor     float64
	re        []float64
	im        []float64
	acc       []float64
}

// Reducer is the float64 specialization of ReducerT.
type Reducer = ReducerT[float64, complex128]

// Reducer32 is the float32 specialization of ReducerT.
type Reducer32 = ReducerT[float32, complex64]

// NewReducerT creates a reducer for n bins. floor is only used by
// ReductionDecibels; pass 0 for DefaultDecibelFloor.
func NewReducerT[F algofft.Float, C algofft.Complex](r Reduction, n int, floor float64) (*ReducerT[F, C], error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownReduction, int(r))
	}

	if n <= 0 {
		return nil, fmt.Errorf("%w: bin count %d", ErrLengthMismatch, n)
	}

	if floor == 0 {
		floor = DefaultDecibelFloor
	}

	if floor < 0 || math.IsNaN(floor) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFloor, floor)
	}

	return &ReducerT[F, C]{
		reduction: r,
		floor:     floor,
		re:        make([]float64, n),
		im:        make([]float64, n),
		acc:       make([]float64, n),
	}, nil
}

// NewReducer creates a float64 reducer.
func NewReducer(r Reduction, n int, floor float64) (*Reducer, error) {
	return NewReducerT[float64, complex128](r, n, floor)
}

// Len returns the number of bins the reducer was sized for.
func (r *ReducerT[F, C]) Len() int { return len(r.re) }

// Reduction returns the configured policy.
func (r *ReducerT[F, C]) Reduction() Reduction { return r.reduction }

// Floor returns the decibel floor.
func (r *ReducerT[F, C]) Floor() float64 { return r.floor }

// Reduce writes the reduced value of src[i] into dst[i]. Both slices must
// have length Len().
func (r *ReducerT[F, C]) Reduce(dst []F, src []C) error {
	n := len(r.re)
	if len(dst) != n || len(src) != n {
		return fmt.Errorf("%w: want %d, got dst=%d src=%d", ErrLengthMismatch, n, len(dst), len(src))
	}

	for i, c := range src {
		z := complex128(c)
		r.re[i] = real(z)
		r.im[i] = imag(z)
	}

	if r.reduction == ReductionPower {
		vecmath.Power(r.acc, r.re, r.im)
	} else {
		vecmath.Magnitude(r.acc, r.re, r.im)
	}

	switch r.reduction {
	case ReductionDecibels:
		for i, v := range r.acc {
			dst[i] = F(20 * math.Log10(math.Max(v, r.floor)))
		}
	case ReductionLog10Positive:
		for i, v := range r.acc {
			dst[i] = F(log10Positive(v))
		}
	default:
		for i, v := range r.acc {
			dst[i] = F(v)
		}
	}

	return nil
}

// ReduceValue applies reduction to a single bin. It is the scalar
// definition Reduce follows.
func ReduceValue(reduction Reduction, c complex128, floor float64) float64 {
	re, im := real(c), imag(c)
	switch reduction {
	case ReductionPower:
		return re*re + im*im
	case ReductionDecibels:
		if floor <= 0 {
			floor = DefaultDecibelFloor
		}
		return 20 * math.Log10(math.Max(math.Hypot(re, im), floor))
	case ReductionLog10Positive:
		return log10Positive(math.Hypot(re, im))
	default:
		return math.Hypot(re, im)
	}
}

// log10Positive clamps log10(v) at zero. Zero input maps to 0 and NaN
// propagates.
func log10Positive(v float64) float64 {
	l := math.Log10(v)
	if l < 0 {
		return 0
	}

	return l
}
