package buffer

import (
	"errors"
	"testing"
)

func ramp(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}
	return out
}

func TestNewSlidingInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewSliding(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size %d: err=%v, want ErrInvalidSize", size, err)
		}
	}
}

func TestSlidingReadiness(t *testing.T) {
	s, err := NewSliding(4)
	if err != nil {
		t.Fatal(err)
	}

	if s.Ready() {
		t.Fatal("empty buffer must not be ready")
	}

	if _, err := s.Window(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Window() err=%v, want ErrNotReady", err)
	}

	s.Append(ramp(0, 3))
	if s.Ready() || s.Available() != 3 {
		t.Fatalf("after 3 samples: ready=%v available=%d", s.Ready(), s.Available())
	}

	s.Append(ramp(3, 1))
	if !s.Ready() {
		t.Fatal("buffer with 4 samples must be ready")
	}

	w, err := s.Window()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range w {
		if v != float64(i) {
			t.Fatalf("w[%d]=%v, want %d", i, v, i)
		}
	}
}

func TestSlidingOverlap(t *testing.T) {
	s, _ := NewSliding(8)
	s.Append(ramp(0, 12))

	s.Advance(4)
	if s.Available() != 8 || !s.Ready() {
		t.Fatalf("available=%d ready=%v", s.Available(), s.Ready())
	}

	w, _ := s.Window()
	if w[0] != 4 || w[7] != 11 {
		t.Fatalf("window=%v, want 4..11", w)
	}

	s.Advance(4)
	if s.Ready() {
		t.Fatal("only 4 samples remain, must not be ready")
	}

	s.Append(ramp(12, 4))
	w, _ = s.Window()
	if w[0] != 8 || w[7] != 15 {
		t.Fatalf("window=%v, want 8..15", w)
	}
}

func TestSlidingGapDropsSkippedSamples(t *testing.T) {
	s, _ := NewSliding(4)
	s.Append(ramp(0, 4))
	s.Advance(10)

	if s.Available() != 0 || s.Gap() != 6 {
		t.Fatalf("available=%d gap=%d, want 0 and 6", s.Available(), s.Gap())
	}

	// Samples 4..9 fall into the gap.
	s.Append(ramp(4, 5))
	if s.Available() != 0 || s.Gap() != 1 {
		t.Fatalf("available=%d gap=%d, want 0 and 1", s.Available(), s.Gap())
	}

	s.Append(ramp(9, 4))
	if s.Ready() {
		t.Fatal("only 3 samples past the gap, must not be ready")
	}

	s.Append(ramp(13, 1))
	w, err := s.Window()
	if err != nil {
		t.Fatal(err)
	}
	if w[0] != 10 || w[3] != 13 {
		t.Fatalf("window=%v, want 10..13", w)
	}
}

func TestSlidingAdvanceExactlyAvailable(t *testing.T) {
	s, _ := NewSliding(2)
	s.Append(ramp(0, 5))
	s.Advance(5)

	if s.Available() != 0 || s.Gap() != 0 {
		t.Fatalf("available=%d gap=%d", s.Available(), s.Gap())
	}

	s.Advance(-3)
	s.Advance(0)
	if s.Gap() != 0 {
		t.Fatalf("non-positive advance must be a no-op, gap=%d", s.Gap())
	}
}

func TestSlidingAppendZeros(t *testing.T) {
	s, _ := NewSliding(4)
	s.Append([]float64{1, 2})
	s.AppendZeros(2)

	w, err := s.Window()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 0, 0}
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("window=%v, want %v", w, want)
		}
	}

	s.Advance(6)
	s.AppendZeros(3)
	if s.Gap() != 0 || s.Available() != 1 {
		t.Fatalf("gap=%d available=%d, want 0 and 1", s.Gap(), s.Available())
	}
}

func TestSlidingCompactionKeepsCapacityBounded(t *testing.T) {
	const size, step, chunk = 1024, 512, 3000

	s, _ := NewSliding(size)
	next := 0
	for range 200 {
		s.Append(ramp(next, chunk))
		next += chunk
		for s.Ready() {
			s.Advance(step)
		}
	}

	if s.Cap() > 2*(size+chunk) {
		t.Fatalf("capacity grew to %d", s.Cap())
	}

	s.Append(ramp(next, size))
	w, err := s.Window()
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(w); i++ {
		if w[i] != w[i-1]+1 {
			t.Fatalf("window not contiguous at %d: %v %v", i, w[i-1], w[i])
		}
	}
}

func TestSlidingSteadyStateDoesNotAllocate(t *testing.T) {
	s, _ := NewSliding(1024)
	chunk := ramp(0, 3000)

	cycle := func() {
		s.Append(chunk)
		for s.Ready() {
			if _, err := s.Window(); err != nil {
				t.Fatal(err)
			}
			s.Advance(512)
		}
	}

	for range 4 {
		cycle()
	}

	if allocs := testing.AllocsPerRun(100, cycle); allocs != 0 {
		t.Fatalf("allocs per cycle = %v, want 0", allocs)
	}
}

func TestSlidingReset(t *testing.T) {
	s, _ := NewSliding32(4)
	s.Append([]float32{1, 2, 3, 4, 5})
	s.Advance(9)
	s.Reset()

	if s.Available() != 0 || s.Gap() != 0 {
		t.Fatalf("available=%d gap=%d after reset", s.Available(), s.Gap())
	}

	s.Append([]float32{7, 8, 9, 10})
	w, _ := s.Window()
	if w[0] != 7 {
		t.Fatalf("window after reset=%v", w)
	}
}

func TestPoolGetPut(t *testing.T) {
	p := NewPoolT[float32](5)
	a := p.Get()
	if len(*a) != 5 {
		t.Fatalf("len=%d, want 5", len(*a))
	}

	(*a)[0] = 42
	p.Put(a)

	b := p.Get()
	for i, v := range *b {
		if v != 0 {
			t.Fatalf("b[%d]=%v, want zeroed slice", i, v)
		}
	}

	short := make([]float32, 3)
	p.Put(&short)
	p.Put(nil)
	if p.Len() != 5 {
		t.Fatalf("Len()=%d", p.Len())
	}
}

func TestPoolRecycleDoesNotAllocate(t *testing.T) {
	p := NewPoolT[float64](513)
	p.Put(p.Get())

	allocs := testing.AllocsPerRun(100, func() {
		s := p.Get()
		(*s)[0] = 1
		p.Put(s)
	})
	if allocs != 0 {
		t.Fatalf("allocs per Get/Put = %v, want 0", allocs)
	}
}
