package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
	TypeTriangle
	TypeWelch
	TypeKaiser
	TypeTukey
	TypeGauss

	typeCount
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
	Parametric      bool
	DefaultAlpha    float64
}

var metadataByType = [typeCount]Metadata{
	TypeRectangular:         {Name: "rectangular", ENBW: 1, HighestSidelobe: -13.3, CoherentGain: 1},
	TypeHann:                {Name: "hann", ENBW: 1.5, HighestSidelobe: -31.5, CoherentGain: 0.5},
	TypeHamming:             {Name: "hamming", ENBW: 1.36, HighestSidelobe: -42.7, CoherentGain: 0.54},
	TypeBlackman:            {Name: "blackman", ENBW: 1.73, HighestSidelobe: -58.1, CoherentGain: 0.42},
	TypeBlackmanHarris4Term: {Name: "blackman-harris", ENBW: 2.0, HighestSidelobe: -92, CoherentGain: 0.36},
	TypeFlatTop:             {Name: "flat-top", ENBW: 3.77, HighestSidelobe: -93.6, CoherentGain: 0.22},
	TypeTriangle:            {Name: "triangle", ENBW: 1.33, HighestSidelobe: -26.5, CoherentGain: 0.5},
	TypeWelch:               {Name: "welch", ENBW: 1.2, HighestSidelobe: -21.3, CoherentGain: 0.67},
	TypeKaiser:              {Name: "kaiser", Parametric: true, DefaultAlpha: 8.6},
	TypeTukey:               {Name: "tukey", Parametric: true, DefaultAlpha: 0.5},
	TypeGauss:               {Name: "gauss", Parametric: true, DefaultAlpha: 2.5},
}

// aliases accepted by ParseType in addition to the canonical names.
var aliases = map[string]Type{
	"none":             TypeRectangular,
	"rect":             TypeRectangular,
	"boxcar":           TypeRectangular,
	"hanning":          TypeHann,
	"blackmanharris":   TypeBlackmanHarris4Term,
	"blackman-harris4": TypeBlackmanHarris4Term,
	"flattop":          TypeFlatTop,
	"bartlett":         TypeTriangle,
	"gaussian":         TypeGauss,
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs         = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

// WithAlpha configures alpha/beta parameters for parametric windows.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// String returns the canonical window name.
func (t Type) String() string {
	if t.valid() {
		return metadataByType[t].Name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) valid() bool {
	return t >= 0 && t < typeCount
}

// Types returns every supported window type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := Type(0); t < typeCount; t++ {
		out = append(out, t)
	}

	return out
}

// ParseType resolves a case-insensitive window name such as "hann",
// "hanning" or "none".
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t := Type(0); t < typeCount; t++ {
		if metadataByType[t].Name == key {
			return t, nil
		}
	}

	if t, ok := aliases[key]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if t.valid() {
		return metadataByType[t]
	}

	return Metadata{}
}

// Generate returns the coefficient table of the given length.
//
// A single-sample window is always {1}, independent of type.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	if !t.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	cfg := config{alpha: metadataByType[t].DefaultAlpha}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateAlpha(t, cfg.alpha); err != nil {
		return nil, err
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out, nil
	}

	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg.alpha)
	}

	return out, nil
}

// MustGenerate is like Generate but panics on error. Intended for tests and
// package-level tables with known-good parameters.
func MustGenerate(t Type, length int, opts ...Option) []float64 {
	w, err := Generate(t, length, opts...)
	if err != nil {
		panic(err)
	}

	return w
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
// Both slices must have the same length.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// Sum returns the coherent sum of the coefficients, which is the DC gain a
// constant signal sees through the window.
func Sum(coeffs []float64) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum
}

func evalWindow(t Type, x, alpha float64) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, blackmanHarris4Coeffs)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	case TypeWelch:
		d := 2*x - 1
		return 1 - d*d
	case TypeKaiser:
		return kaiserAt(x, alpha)
	case TypeTukey:
		return tukeyAt(x, alpha)
	case TypeGauss:
		v := (2*x - 1) * alpha
		return math.Exp(-0.5 * v * v)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta == 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha == 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
