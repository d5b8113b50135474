package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// ToFloat32 narrows a float64 signal.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// Chunks splits samples into consecutive slices whose lengths cycle
// through sizes. The last chunk may be shorter. Sizes <= 0 are treated as 1.
func Chunks[T any](samples []T, sizes ...int) [][]T {
	if len(sizes) == 0 {
		sizes = []int{len(samples)}
	}

	var out [][]T
	for i, k := 0, 0; i < len(samples); k++ {
		n := max(sizes[k%len(sizes)], 1)
		end := min(i+n, len(samples))
		out = append(out, samples[i:end])
		i = end
	}
	return out
}
