package spectrum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownReduction is returned for unrecognised reduction names or values.
	ErrUnknownReduction = errors.New("spectrum: unknown reduction")
	// ErrLengthMismatch is returned when input and output lengths disagree.
	ErrLengthMismatch = errors.New("spectrum: length mismatch")
	// ErrInvalidFloor is returned for a non-positive decibel floor.
	ErrInvalidFloor = errors.New("spectrum: decibel floor must be > 0")
)

// DefaultDecibelFloor is the magnitude clamp used by ReductionDecibels so
// that empty bins map to -200 dB instead of -Inf.
const DefaultDecibelFloor = 1e-10

// Reduction maps one complex bin X to a real value.
type Reduction int

const (
	// ReductionMagnitude is |X| = sqrt(re²+im²).
	ReductionMagnitude Reduction = iota
	// ReductionPower is |X|² = re²+im².
	ReductionPower
	// ReductionDecibels is 20·log10(max(|X|, floor)).
	ReductionDecibels
	// ReductionLog10Positive is max(0, log10|X|).
	ReductionLog10Positive

	reductionCount
)

var reductionNames = [reductionCount]string{
	ReductionMagnitude:     "magnitude",
	ReductionPower:         "power",
	ReductionDecibels:      "decibels",
	ReductionLog10Positive: "log10-positive",
}

var reductionAliases = map[string]Reduction{
	"mag":   ReductionMagnitude,
	"abs":   ReductionMagnitude,
	"pow":   ReductionPower,
	"db":    ReductionDecibels,
	"log":   ReductionLog10Positive,
	"log10": ReductionLog10Positive,
}

// String returns the canonical reduction name.
func (r Reduction) String() string {
	if r.valid() {
		return reductionNames[r]
	}

	return fmt.Sprintf("Reduction(%d)", int(r))
}

func (r Reduction) valid() bool {
	return r >= 0 && r < reductionCount
}

// Reductions lists all supported reductions.
func Reductions() []Reduction {
	out := make([]Reduction, 0, reductionCount)
	for r := Reduction(0); r < reductionCount; r++ {
		out = append(out, r)
	}

	return out
}

// ParseReduction resolves a case-insensitive reduction name. The empty
// string selects ReductionMagnitude.
func ParseReduction(name string) (Reduction, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ReductionMagnitude, nil
	}

	for r, n := range reductionNames {
		if n == key {
			return Reduction(r), nil
		}
	}

	if r, ok := reductionAliases[key]; ok {
		return r, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownReduction, name)
}
