package stft

import "github.com/cwbudde/algo-stft/dsp/window"

// Spectrogram runs a float64 engine over a complete signal and returns one
// freshly allocated column per window position. With WithFlush the
// trailing partial window is zero-padded and included.
func Spectrogram(samples []float64, wt window.Type, windowSize, stepSize int, opts ...Option) ([][]float64, error) {
	e, err := New(wt, windowSize, stepSize, opts...)
	if err != nil {
		return nil, err
	}

	e.Append(samples)

	col := make([]float64, e.OutputSize())

	var cols [][]float64
	collect := func(c []float64) error {
		cols = append(cols, append([]float64(nil), c...))
		return nil
	}

	if _, err := e.Drain(col, collect); err != nil {
		return nil, err
	}

	if applyOptions(opts).flush && (stepSize > 0 || len(cols) == 0) && e.Flush() {
		if _, err := e.Drain(col, collect); err != nil {
			return nil, err
		}
	}

	return cols, nil
}
