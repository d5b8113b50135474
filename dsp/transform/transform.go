package transform

import (
	"errors"
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrInvalidLength is returned when a transform length is <= 0.
	ErrInvalidLength = errors.New("transform: length must be > 0")
	// ErrLengthMismatch is returned when dst or src does not match Len().
	ErrLengthMismatch = errors.New("transform: buffer length mismatch")
	// ErrUnknownBackend is returned for unrecognised backend names or values.
	ErrUnknownBackend = errors.New("transform: unknown backend")
)

// Transformer computes the forward DFT of a fixed-length complex sequence.
//
// Forward must accept dst and src aliasing the same slice.
type Transformer[C algofft.Complex] interface {
	Len() int
	Forward(dst, src []C) error
}

// smallTransformLen is the length below which BackendAuto prefers the
// direct DFT over planning a fast transform.
const smallTransformLen = 16

// Backend selects a DFT implementation.
type Backend int

const (
	// BackendAuto uses the direct DFT below smallTransformLen points, algo-fft
	// for power-of-two lengths and gonum otherwise.
	BackendAuto Backend = iota
	// BackendAlgoFFT uses github.com/MeKo-Christian/algo-fft plans.
	BackendAlgoFFT
	// BackendGonum uses gonum.org/v1/gonum/dsp/fourier (any length).
	BackendGonum
	// BackendGoDSP uses github.com/mjibson/go-dsp/fft (any length, allocates per call).
	BackendGoDSP
	// BackendDFT is the O(n²) reference transform.
	BackendDFT

	backendCount
)

var backendNames = [backendCount]string{
	BackendAuto:    "auto",
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
	BackendDFT:     "dft",
}

// String returns the backend name accepted by ParseBackend.
func (b Backend) String() string {
	if b >= 0 && b < backendCount {
		return backendNames[b]
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Backends lists all selectable backends.
func Backends() []Backend {
	out := make([]Backend, 0, backendCount)
	for b := Backend(0); b < backendCount; b++ {
		out = append(out, b)
	}
	return out
}

// ParseBackend resolves a case-insensitive backend name.
func ParseBackend(name string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "default":
		return BackendAuto, nil
	case "algo-fft":
		return BackendAlgoFFT, nil
	case "go-dsp":
		return BackendGoDSP, nil
	case "naive", "reference":
		return BackendDFT, nil
	}

	for b, n := range backendNames {
		if n == key {
			return Backend(b), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// New creates a transformer of length n using backend b.
func New[C algofft.Complex](b Backend, n int) (Transformer[C], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	switch b {
	case BackendAuto:
		if n < smallTransformLen {
			return NewDFT[C](n)
		}
		if isPowerOf2(n) {
			return NewAlgoFFT[C](n)
		}
		return NewGonum[C](n)
	case BackendAlgoFFT:
		return NewAlgoFFT[C](n)
	case BackendGonum:
		return NewGonum[C](n)
	case BackendGoDSP:
		return NewGoDSP[C](n)
	case BackendDFT:
		return NewDFT[C](n)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBackend, b)
	}
}

func checkLengths[C algofft.Complex](n int, dst, src []C) error {
	if len(dst) != n || len(src) != n {
		return fmt.Errorf("%w: want %d, got dst=%d src=%d", ErrLengthMismatch, n, len(dst), len(src))
	}
	return nil
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
