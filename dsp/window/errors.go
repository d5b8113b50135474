package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned for window lengths <= 0.
	ErrInvalidLength = errors.New("window: length must be > 0")
	// ErrUnknownType is returned for window types or names outside the supported set.
	ErrUnknownType = errors.New("window: unknown type")

	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
	errInvalidAlpha     = errors.New("window: invalid alpha")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}
	return nil
}

func validateAlpha(t Type, alpha float64) error {
	switch t {
	case TypeKaiser:
		if alpha < 0 {
			return fmt.Errorf("%w: kaiser beta must be >= 0: %f", errInvalidAlpha, alpha)
		}
	case TypeTukey:
		if alpha < 0 || alpha > 1 {
			return fmt.Errorf("%w: tukey alpha must be in [0,1]: %f", errInvalidAlpha, alpha)
		}
	case TypeGauss:
		if alpha <= 0 {
			return fmt.Errorf("%w: gauss alpha must be > 0: %f", errInvalidAlpha, alpha)
		}
	}
	return nil
}
