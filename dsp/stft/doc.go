// Package stft implements a streaming Short-Time Fourier Transform.
//
// An [EngineT] accumulates samples appended in chunks of any size and
// produces one spectral column per window position. Columns are written into
// caller-owned buffers of length OutputSize() = windowSize/2 + 1.
//
// The intended drive loop is:
//
//	e, _ := stft.New(window.TypeHann, 1024, 512)
//	col := make([]float64, e.OutputSize())
//	for chunk := range chunks {
//		e.Append(chunk)
//		for e.Ready() {
//			_ = e.ComputeColumn(col)
//			consume(col)
//			e.MoveToNextColumn()
//		}
//	}
//
// [EngineT.Drain] runs the inner loop for you.
//
// The engine owns its window table, transform scratch and sample storage.
// After warm-up, Append, ComputeColumn and MoveToNextColumn do not allocate
// (with the exception of the go-dsp transform backend). An engine is not
// safe for concurrent use.
package stft
