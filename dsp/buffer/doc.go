// Package buffer provides the sample storage used by streaming analysis:
// a sliding window over an append-only stream and a pool for fixed-size
// output slices. Both are generic over float32 and float64 samples.
package buffer
