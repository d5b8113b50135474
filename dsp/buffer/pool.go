package buffer

import "sync"

// PoolT provides sync.Pool-based reuse of fixed-length slices, for
// consumers that hand computed columns to another goroutine and want the
// slice back once it has been written out.
type PoolT[F Float] struct {
	length int
	pool   sync.Pool
}

// Pool is the float64 specialization of PoolT.
type Pool = PoolT[float64]

// Pool32 is the float32 specialization of PoolT.
type Pool32 = PoolT[float32]

// NewPoolT returns a pool handing out zeroed slices of the given length.
func NewPoolT[F Float](length int) *PoolT[F] {
	if length < 0 {
		length = 0
	}

	p := &PoolT[F]{length: length}
	p.pool.New = func() any {
		s := make([]F, length)
		return &s
	}

	return p
}

// Len returns the length of slices handed out by Get.
func (p *PoolT[F]) Len() int {
	return p.length
}

// Get returns a zeroed slice of Len() elements.
// Callers must return it via Put when done.
func (p *PoolT[F]) Get() *[]F {
	s := p.pool.Get().(*[]F)
	clear(*s)
	return s
}

// Put returns a slice obtained from Get to the pool for reuse. Nil or
// resized slices are dropped. The caller must not use the slice after
// calling Put.
func (p *PoolT[F]) Put(s *[]F) {
	if s == nil || len(*s) != p.length {
		return
	}
	p.pool.Put(s)
}
