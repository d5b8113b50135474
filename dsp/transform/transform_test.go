package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func noise(n int) []complex128 {
	out := make([]complex128, n)
	state := uint32(12345)
	for i := range out {
		state = state*1664525 + 1013904223
		re := float64(state)/float64(math.MaxUint32)*2 - 1
		state = state*1664525 + 1013904223
		im := float64(state)/float64(math.MaxUint32)*2 - 1
		out[i] = complex(re, im)
	}
	return out
}

func TestBackendsMatchReferenceDFT(t *testing.T) {
	for _, b := range Backends() {
		for _, n := range []int{1, 2, 8, 12, 15, 64} {
			if b == BackendAlgoFFT && (!isPowerOf2(n) || n < 8) {
				continue
			}

			ref, err := NewDFT[complex128](n)
			if err != nil {
				t.Fatal(err)
			}
			tr, err := New[complex128](b, n)
			if err != nil {
				t.Fatalf("%v n=%d: %v", b, n, err)
			}
			if tr.Len() != n {
				t.Fatalf("%v: Len()=%d, want %d", b, tr.Len(), n)
			}

			src := noise(n)
			want := make([]complex128, n)
			got := make([]complex128, n)
			if err := ref.Forward(want, src); err != nil {
				t.Fatal(err)
			}
			if err := tr.Forward(got, src); err != nil {
				t.Fatalf("%v n=%d: %v", b, n, err)
			}

			for k := range want {
				if cmplx.Abs(got[k]-want[k]) > 1e-9 {
					t.Fatalf("%v n=%d bin %d: got %v want %v", b, n, k, got[k], want[k])
				}
			}
		}
	}
}

func TestForwardInPlace(t *testing.T) {
	for _, b := range Backends() {
		tr, err := New[complex128](b, 16)
		if err != nil {
			t.Fatal(err)
		}

		src := noise(16)
		want := make([]complex128, 16)
		if err := tr.Forward(want, src); err != nil {
			t.Fatal(err)
		}

		buf := append([]complex128(nil), src...)
		if err := tr.Forward(buf, buf); err != nil {
			t.Fatal(err)
		}
		for k := range want {
			if cmplx.Abs(buf[k]-want[k]) > 1e-9 {
				t.Fatalf("%v in-place bin %d: got %v want %v", b, k, buf[k], want[k])
			}
		}
	}
}

func TestComplex64Backends(t *testing.T) {
	const n = 32
	src := noise(n)
	src64 := make([]complex64, n)
	for i, v := range src {
		src64[i] = complex64(v)
	}

	ref, _ := NewDFT[complex128](n)
	want := make([]complex128, n)
	_ = ref.Forward(want, src)

	for _, b := range Backends() {
		tr, err := New[complex64](b, n)
		if err != nil {
			t.Fatalf("%v: %v", b, err)
		}

		got := make([]complex64, n)
		if err := tr.Forward(got, src64); err != nil {
			t.Fatalf("%v: %v", b, err)
		}
		for k := range want {
			if cmplx.Abs(complex128(got[k])-want[k]) > 1e-4 {
				t.Fatalf("%v bin %d: got %v want %v", b, k, got[k], want[k])
			}
		}
	}
}

func TestDFTConventions(t *testing.T) {
	const n = 8
	tr, _ := NewDFT[complex128](n)

	dc := make([]complex128, n)
	for i := range dc {
		dc[i] = 1
	}
	out := make([]complex128, n)
	_ = tr.Forward(out, dc)
	if cmplx.Abs(out[0]-n) > 1e-12 {
		t.Fatalf("DC bin=%v, want %d", out[0], n)
	}

	nyq := make([]complex128, n)
	for i := range nyq {
		nyq[i] = complex(math.Pow(-1, float64(i)), 0)
	}
	_ = tr.Forward(out, nyq)
	if cmplx.Abs(out[n/2]-n) > 1e-12 {
		t.Fatalf("Nyquist bin=%v, want %d", out[n/2], n)
	}
	for k, v := range out {
		if k != n/2 && cmplx.Abs(v) > 1e-12 {
			t.Fatalf("bin %d=%v, want 0", k, v)
		}
	}
}

func TestAutoSelectsBackend(t *testing.T) {
	tr, err := New[complex128](BackendAuto, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*AlgoFFT[complex128]); !ok {
		t.Fatalf("power-of-two auto backend = %T, want *AlgoFFT", tr)
	}

	tr, err = New[complex128](BackendAuto, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*Gonum[complex128]); !ok {
		t.Fatalf("non-power-of-two auto backend = %T, want *Gonum", tr)
	}

	tr, err = New[complex128](BackendAuto, 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*DFT[complex128]); !ok {
		t.Fatalf("short auto backend = %T, want *DFT", tr)
	}
}

func TestErrors(t *testing.T) {
	for _, b := range Backends() {
		if _, err := New[complex128](b, 0); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("%v: err=%v, want ErrInvalidLength", b, err)
		}
	}

	if _, err := New[complex128](Backend(42), 8); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend", err)
	}

	tr, _ := New[complex128](BackendDFT, 8)
	if err := tr.Forward(make([]complex128, 8), make([]complex128, 7)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
}

func TestParseBackend(t *testing.T) {
	for _, b := range Backends() {
		got, err := ParseBackend(b.String())
		if err != nil || got != b {
			t.Fatalf("round trip %v: got %v err %v", b, got, err)
		}
	}

	if got, _ := ParseBackend(" Go-DSP "); got != BackendGoDSP {
		t.Fatalf("alias: got %v", got)
	}
	if got, _ := ParseBackend(""); got != BackendAuto {
		t.Fatalf("empty: got %v", got)
	}
	if _, err := ParseBackend("fftw"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend", err)
	}
	if Backend(9).String() != "Backend(9)" {
		t.Fatalf("String()=%q", Backend(9).String())
	}
}

func TestSteadyStateForwardDoesNotAllocate(t *testing.T) {
	for _, b := range []Backend{BackendAlgoFFT, BackendGonum, BackendDFT} {
		tr, _ := New[complex128](b, 256)
		buf := noise(256)
		allocs := testing.AllocsPerRun(50, func() {
			_ = tr.Forward(buf, buf)
		})
		if allocs != 0 {
			t.Fatalf("%v: allocs=%v, want 0", b, allocs)
		}
	}
}

func BenchmarkForward1024(b *testing.B) {
	for _, backend := range Backends() {
		b.Run(backend.String(), func(b *testing.B) {
			tr, err := New[complex128](backend, 1024)
			if err != nil {
				b.Fatal(err)
			}
			buf := noise(1024)
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				_ = tr.Forward(buf, buf)
			}
		})
	}
}
