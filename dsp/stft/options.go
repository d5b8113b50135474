package stft

import (
	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stft/dsp/spectrum"
	"github.com/cwbudde/algo-stft/dsp/transform"
)

// Option configures an engine.
type Option func(*config)

type config struct {
	reduction   spectrum.Reduction
	floor       float64
	backend     transform.Backend
	transformer any
	periodic    bool
	alpha       float64
	alphaSet    bool
	flush       bool
}

func defaultConfig() config {
	return config{
		reduction: spectrum.ReductionMagnitude,
		floor:     spectrum.DefaultDecibelFloor,
		backend:   transform.BackendAuto,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithReduction selects how complex bins are reduced to column values.
// The default is spectrum.ReductionMagnitude.
func WithReduction(r spectrum.Reduction) Option {
	return func(c *config) {
		c.reduction = r
	}
}

// WithDecibelFloor sets the magnitude floor for spectrum.ReductionDecibels.
func WithDecibelFloor(floor float64) Option {
	return func(c *config) {
		c.floor = floor
	}
}

// WithBackend selects the DFT implementation. Ignored when WithTransformer
// is also given.
func WithBackend(b transform.Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithTransformer injects a DFT implementation. Its complex type must match
// the engine's and its length must equal the window size.
func WithTransformer[C algofft.Complex](t transform.Transformer[C]) Option {
	return func(c *config) {
		c.transformer = t
	}
}

// WithPeriodicWindow generates the window table in periodic (DFT-even) form
// instead of the symmetric form.
func WithPeriodicWindow() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithWindowAlpha sets the shape parameter of parametric windows
// (Kaiser beta, Tukey taper ratio, Gauss width).
func WithWindowAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
		c.alphaSet = true
	}
}

// WithFlush makes Spectrogram zero-pad and emit the trailing partial window.
func WithFlush() Option {
	return func(c *config) {
		c.flush = true
	}
}
