package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestReduceMatchesScalarDefinition(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0, 1e-3, 250 - 10i}

	for _, red := range Reductions() {
		t.Run(red.String(), func(t *testing.T) {
			r, err := NewReducer(red, len(bins), 0)
			if err != nil {
				t.Fatal(err)
			}

			got := make([]float64, len(bins))
			if err := r.Reduce(got, bins); err != nil {
				t.Fatal(err)
			}

			for i, c := range bins {
				want := ReduceValue(red, c, DefaultDecibelFloor)
				if math.Abs(got[i]-want) > 1e-9*math.Max(1, math.Abs(want)) {
					t.Fatalf("bin %d: got %v want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestReduceKnownValues(t *testing.T) {
	tests := []struct {
		red  Reduction
		in   complex128
		want float64
	}{
		{ReductionMagnitude, 3 + 4i, 5},
		{ReductionPower, 3 + 4i, 25},
		{ReductionDecibels, 10, 20},
		{ReductionDecibels, 0, -200},
		{ReductionLog10Positive, 100, 2},
		{ReductionLog10Positive, 0.5, 0},
		{ReductionLog10Positive, 0, 0},
	}

	for _, tt := range tests {
		r, _ := NewReducer(tt.red, 1, 0)
		out := []float64{math.NaN()}
		if err := r.Reduce(out, []complex128{tt.in}); err != nil {
			t.Fatal(err)
		}
		if math.Abs(out[0]-tt.want) > 1e-12 {
			t.Fatalf("%v(%v)=%v, want %v", tt.red, tt.in, out[0], tt.want)
		}
	}
}

func TestReduceFloat32(t *testing.T) {
	r, err := NewReducerT[float32, complex64](ReductionMagnitude, 2, 0)
	if err != nil {
		t.Fatal(err)
	}

	out := make([]float32, 2)
	if err := r.Reduce(out, []complex64{3 + 4i, 0 + 2i}); err != nil {
		t.Fatal(err)
	}
	if out[0] != 5 || out[1] != 2 {
		t.Fatalf("out=%v, want [5 2]", out)
	}
}

func TestCustomDecibelFloor(t *testing.T) {
	r, _ := NewReducer(ReductionDecibels, 1, 1e-3)
	if r.Floor() != 1e-3 {
		t.Fatalf("Floor()=%v", r.Floor())
	}

	out := make([]float64, 1)
	_ = r.Reduce(out, []complex128{0})
	if math.Abs(out[0]+60) > 1e-9 {
		t.Fatalf("floored value=%v, want -60", out[0])
	}
}

func TestNaNPropagates(t *testing.T) {
	for _, red := range Reductions() {
		r, _ := NewReducer(red, 1, 0)
		out := make([]float64, 1)
		_ = r.Reduce(out, []complex128{complex(math.NaN(), 0)})
		if !math.IsNaN(out[0]) {
			t.Fatalf("%v: got %v, want NaN", red, out[0])
		}
	}
}

func TestReducerErrors(t *testing.T) {
	if _, err := NewReducer(Reduction(17), 4, 0); !errors.Is(err, ErrUnknownReduction) {
		t.Fatalf("err=%v, want ErrUnknownReduction", err)
	}
	if _, err := NewReducer(ReductionMagnitude, 0, 0); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
	if _, err := NewReducer(ReductionDecibels, 4, -1); !errors.Is(err, ErrInvalidFloor) {
		t.Fatalf("err=%v, want ErrInvalidFloor", err)
	}

	r, _ := NewReducer(ReductionMagnitude, 4, 0)
	if err := r.Reduce(make([]float64, 3), make([]complex128, 4)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
}

func TestParseReduction(t *testing.T) {
	for _, red := range Reductions() {
		got, err := ParseReduction(red.String())
		if err != nil || got != red {
			t.Fatalf("round trip %v: got %v err %v", red, got, err)
		}
	}

	aliases := map[string]Reduction{
		"":      ReductionMagnitude,
		"dB":    ReductionDecibels,
		" POW ": ReductionPower,
		"log10": ReductionLog10Positive,
	}
	for name, want := range aliases {
		if got, err := ParseReduction(name); err != nil || got != want {
			t.Fatalf("ParseReduction(%q)=%v,%v want %v", name, got, err, want)
		}
	}

	if _, err := ParseReduction("phase"); !errors.Is(err, ErrUnknownReduction) {
		t.Fatalf("err=%v, want ErrUnknownReduction", err)
	}
	if Reduction(9).String() != "Reduction(9)" {
		t.Fatalf("String()=%q", Reduction(9).String())
	}
}

func TestReduceDoesNotAllocate(t *testing.T) {
	const n = 513
	r, _ := NewReducer(ReductionDecibels, n, 0)
	src := make([]complex128, n)
	for i := range src {
		src[i] = complex(float64(i), -float64(i)/2)
	}
	dst := make([]float64, n)

	allocs := testing.AllocsPerRun(100, func() {
		_ = r.Reduce(dst, src)
	})
	if allocs != 0 {
		t.Fatalf("allocs=%v, want 0", allocs)
	}
}

func BenchmarkReduce513(b *testing.B) {
	src := make([]complex128, 513)
	for i := range src {
		src[i] = complex(math.Sin(float64(i)), math.Cos(float64(i)))
	}
	dst := make([]float64, len(src))

	for _, red := range Reductions() {
		b.Run(red.String(), func(b *testing.B) {
			r, _ := NewReducer(red, len(src), 0)
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				_ = r.Reduce(dst, src)
			}
		})
	}
}
