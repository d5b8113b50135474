package buffer

import (
	"errors"
	"fmt"
)

// Float is the sample type constraint for buffers in this package.
type Float interface {
	~float32 | ~float64
}

var (
	// ErrInvalidSize is returned when a window size is <= 0.
	ErrInvalidSize = errors.New("buffer: window size must be > 0")
	// ErrNotReady is returned by Window when fewer than Size() samples are
	// buffered from the cursor.
	ErrNotReady = errors.New("buffer: window not ready")
)

// SlidingT accumulates an append-only sample stream and exposes the
// Size()-sample window starting at a cursor that only moves forward.
//
// Storage is a single contiguous slice addressed through a logical start
// offset. Advancing the cursor is O(1); the dead prefix is reclaimed by
// shifting the live tail to offset 0 when the next append would otherwise
// need to grow the slice. In steady state (bounded chunk sizes) Append
// does not allocate.
//
// If the cursor is advanced past the buffered data, the difference is kept
// as a gap: the next Gap() appended samples are dropped, so no data before
// the gap is ever replayed.
type SlidingT[F Float] struct {
	data  []F
	start int // cursor offset into data
	gap   int // samples still to be skipped by Append
	size  int
}

// Sliding is the float64 specialization of SlidingT.
type Sliding = SlidingT[float64]

// Sliding32 is the float32 specialization of SlidingT.
type Sliding32 = SlidingT[float32]

// NewSlidingT creates a sliding window of the given size.
func NewSlidingT[F Float](size int) (*SlidingT[F], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return &SlidingT[F]{
		data: make([]F, 0, 2*size),
		size: size,
	}, nil
}

// NewSliding creates a float64 sliding window.
func NewSliding(size int) (*Sliding, error) {
	return NewSlidingT[float64](size)
}

// NewSliding32 creates a float32 sliding window.
func NewSliding32(size int) (*Sliding32, error) {
	return NewSlidingT[float32](size)
}

// Size returns the window length.
func (s *SlidingT[F]) Size() int {
	return s.size
}

// Available returns how many samples are buffered from the cursor on.
func (s *SlidingT[F]) Available() int {
	return len(s.data) - s.start
}

// Ready reports whether a full window is buffered at the cursor.
func (s *SlidingT[F]) Ready() bool {
	return s.Available() >= s.size
}

// Gap returns how many future samples will be discarded because the cursor
// was advanced beyond the buffered data.
func (s *SlidingT[F]) Gap() int {
	return s.gap
}

// Cap returns the capacity of the backing storage.
func (s *SlidingT[F]) Cap() int {
	return cap(s.data)
}

// Append copies samples to the tail of the stream. The caller keeps
// ownership of samples.
func (s *SlidingT[F]) Append(samples []F) {
	if s.gap > 0 {
		skip := min(s.gap, len(samples))
		s.gap -= skip
		samples = samples[skip:]
	}

	if len(samples) == 0 {
		return
	}

	s.reserve(len(samples))
	s.data = append(s.data, samples...)
}

// AppendZeros appends n zero samples, honoring a pending gap like Append.
func (s *SlidingT[F]) AppendZeros(n int) {
	if s.gap > 0 {
		skip := min(s.gap, n)
		s.gap -= skip
		n -= skip
	}

	if n <= 0 {
		return
	}

	s.reserve(n)
	old := len(s.data)
	s.data = s.data[:old+n]
	clear(s.data[old:])
}

// Window returns the Size() samples at the cursor. The returned slice
// aliases internal storage: it must not be modified and is only valid until
// the next Append, AppendZeros, Advance or Reset.
func (s *SlidingT[F]) Window() ([]F, error) {
	if !s.Ready() {
		return nil, fmt.Errorf("%w: have %d of %d samples", ErrNotReady, s.Available(), s.size)
	}

	end := s.start + s.size
	return s.data[s.start:end:end], nil
}

// Advance moves the cursor forward by n samples. Negative n is ignored.
// Samples before the new cursor are released; moving past the buffered
// data records the excess as a gap.
func (s *SlidingT[F]) Advance(n int) {
	if n <= 0 {
		return
	}

	avail := s.Available()
	if n < avail {
		s.start += n
		return
	}

	s.gap += n - avail
	s.data = s.data[:0]
	s.start = 0
}

// Reset drops all buffered samples and any pending gap. Capacity is kept.
func (s *SlidingT[F]) Reset() {
	s.data = s.data[:0]
	s.start = 0
	s.gap = 0
}

// reserve makes room for n more samples, compacting before growing.
func (s *SlidingT[F]) reserve(n int) {
	if len(s.data)+n <= cap(s.data) {
		return
	}

	live := len(s.data) - s.start
	if s.start > 0 {
		copy(s.data, s.data[s.start:])
		s.data = s.data[:live]
		s.start = 0
	}

	if live+n <= cap(s.data) {
		return
	}

	grown := make([]F, live, max(2*cap(s.data), live+n))
	copy(grown, s.data)
	s.data = grown
}
