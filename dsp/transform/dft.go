package transform

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DFT is the direct O(n²) transform with a precomputed twiddle table.
// It is the reference the fast backends are tested against and is
// adequate for very short windows.
type DFT[C algofft.Complex] struct {
	twiddle []complex128
	work    []complex128
}

// NewDFT creates a reference transform of length n.
func NewDFT[C algofft.Complex](n int) (*DFT[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	twiddle := make([]complex128, n)
	for k := range twiddle {
		s, c := math.Sincos(-2 * math.Pi * float64(k) / float64(n))
		twiddle[k] = complex(c, s)
	}

	return &DFT[C]{twiddle: twiddle, work: make([]complex128, n)}, nil
}

// Len returns the transform length.
func (d *DFT[C]) Len() int { return len(d.twiddle) }

// Forward computes the DFT of src into dst.
func (d *DFT[C]) Forward(dst, src []C) error {
	n := len(d.twiddle)
	if err := checkLengths(n, dst, src); err != nil {
		return err
	}

	for k := range n {
		var acc complex128
		idx := 0
		for _, v := range src {
			acc += complex128(v) * d.twiddle[idx]
			idx += k
			if idx >= n {
				idx -= n
			}
		}
		d.work[k] = acc
	}

	for k, v := range d.work {
		dst[k] = C(v)
	}

	return nil
}
