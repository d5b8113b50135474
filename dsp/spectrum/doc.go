// Package spectrum reduces complex DFT bins to real-valued spectral columns.
//
// The package does not implement a transform. It operates on complex bins
// produced by a [github.com/cwbudde/algo-stft/dsp/transform.Transformer] and
// applies one fixed [Reduction] per [ReducerT]. [Describe] summarizes a
// magnitude column by its peak, centroid, spread, flatness and rolloff.
package spectrum
