package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/spectrum"
	"github.com/cwbudde/algo-stft/dsp/transform"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// EngineT is the streaming STFT state machine.
//
// It is Insufficient while fewer than WindowSize() samples are buffered at
// the cursor and Ready otherwise. Append and the Move methods are valid in
// both states; ComputeColumn only in Ready. There is no terminal state.
//
// A step size of zero is accepted: MoveToNextColumn is then a no-op and the
// caller repositions the window with MoveBy or Reset.
type EngineT[F algofft.Float, C algofft.Complex] struct {
	buf        *buffer.SlidingT[F]
	frame      *FrameComputerT[F, C]
	table      []float64
	windowType window.Type
	windowSize int
	stepSize   int
}

// Engine is the float64 specialization of EngineT.
type Engine = EngineT[float64, complex128]

// Engine32 is the float32 specialization of EngineT.
type Engine32 = EngineT[float32, complex64]

// NewT creates an engine for the given window type, window size and hop.
func NewT[F algofft.Float, C algofft.Complex](wt window.Type, windowSize, stepSize int, opts ...Option) (*EngineT[F, C], error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0, got %d", ErrConfiguration, windowSize)
	}

	if stepSize < 0 {
		return nil, fmt.Errorf("%w: step size must be >= 0, got %d", ErrConfiguration, stepSize)
	}

	cfg := applyOptions(opts)

	var winOpts []window.Option
	if cfg.periodic {
		winOpts = append(winOpts, window.WithPeriodic())
	}

	if cfg.alphaSet {
		if cfg.alpha < 0 {
			return nil, fmt.Errorf("%w: window alpha must be >= 0, got %v", ErrConfiguration, cfg.alpha)
		}
		winOpts = append(winOpts, window.WithAlpha(cfg.alpha))
	}

	table, err := window.Generate(wt, windowSize, winOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	tr, err := resolveTransformer[C](cfg, windowSize)
	if err != nil {
		return nil, err
	}

	frame, err := NewFrameComputerT[F, C](table, tr, cfg.reduction, cfg.floor)
	if err != nil {
		return nil, err
	}

	buf, err := buffer.NewSlidingT[F](windowSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &EngineT[F, C]{
		buf:        buf,
		frame:      frame,
		table:      table,
		windowType: wt,
		windowSize: windowSize,
		stepSize:   stepSize,
	}, nil
}

// New creates a float64 engine.
func New(wt window.Type, windowSize, stepSize int, opts ...Option) (*Engine, error) {
	return NewT[float64, complex128](wt, windowSize, stepSize, opts...)
}

// New32 creates a float32 engine.
func New32(wt window.Type, windowSize, stepSize int, opts ...Option) (*Engine32, error) {
	return NewT[float32, complex64](wt, windowSize, stepSize, opts...)
}

// NewFromNameT is like NewT but resolves the window by name (see
// window.ParseType).
func NewFromNameT[F algofft.Float, C algofft.Complex](name string, windowSize, stepSize int, opts ...Option) (*EngineT[F, C], error) {
	wt, err := window.ParseType(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return NewT[F, C](wt, windowSize, stepSize, opts...)
}

// NewFromName creates a float64 engine from a window name.
func NewFromName(name string, windowSize, stepSize int, opts ...Option) (*Engine, error) {
	return NewFromNameT[float64, complex128](name, windowSize, stepSize, opts...)
}

func resolveTransformer[C algofft.Complex](cfg config, n int) (transform.Transformer[C], error) {
	if cfg.transformer == nil {
		tr, err := transform.New[C](cfg.backend, n)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return tr, nil
	}

	tr, ok := cfg.transformer.(transform.Transformer[C])
	if !ok || tr == nil {
		return nil, fmt.Errorf("%w: injected transformer %T does not match engine precision", ErrConfiguration, cfg.transformer)
	}

	return tr, nil
}

// Append buffers samples. The engine copies them and does not retain the
// slice.
func (e *EngineT[F, C]) Append(samples []F) {
	e.buf.Append(samples)
}

// Ready reports whether a full window is buffered at the cursor.
func (e *EngineT[F, C]) Ready() bool {
	return e.buf.Ready()
}

// Available returns the number of samples buffered from the cursor on.
func (e *EngineT[F, C]) Available() int {
	return e.buf.Available()
}

// Gap returns how many future samples will be skipped because the cursor
// moved past the buffered data.
func (e *EngineT[F, C]) Gap() int {
	return e.buf.Gap()
}

// OutputSize returns windowSize/2 + 1.
func (e *EngineT[F, C]) OutputSize() int {
	return e.windowSize/2 + 1
}

// WindowSize returns the window length in samples.
func (e *EngineT[F, C]) WindowSize() int {
	return e.windowSize
}

// StepSize returns the hop in samples.
func (e *EngineT[F, C]) StepSize() int {
	return e.stepSize
}

// WindowType returns the analysis window type.
func (e *EngineT[F, C]) WindowType() window.Type {
	return e.windowType
}

// Reduction returns the column reduction policy.
func (e *EngineT[F, C]) Reduction() spectrum.Reduction {
	return e.frame.Reduction()
}

// WindowTable returns a copy of the window coefficients.
func (e *EngineT[F, C]) WindowTable() []float64 {
	return append([]float64(nil), e.table...)
}

// ComputeColumn writes the column for the current window into out, which
// must have length OutputSize(). The engine state is not changed.
func (e *EngineT[F, C]) ComputeColumn(out []F) error {
	if len(out) != e.OutputSize() {
		return fmt.Errorf("%w: output length %d, want %d", ErrSizeMismatch, len(out), e.OutputSize())
	}

	view, err := e.view()
	if err != nil {
		return err
	}

	return e.frame.Compute(view, out)
}

// ComputeComplexColumn writes the complex half spectrum of the current
// window into out, which must have length OutputSize().
func (e *EngineT[F, C]) ComputeComplexColumn(out []C) error {
	if len(out) != e.OutputSize() {
		return fmt.Errorf("%w: output length %d, want %d", ErrSizeMismatch, len(out), e.OutputSize())
	}

	view, err := e.view()
	if err != nil {
		return err
	}

	return e.frame.ComputeComplex(view, out)
}

func (e *EngineT[F, C]) view() ([]F, error) {
	view, err := e.buf.Window()
	if err != nil {
		return nil, fmt.Errorf("%w: %d of %d samples buffered", ErrNotReady, e.buf.Available(), e.windowSize)
	}

	return view, nil
}

// MoveToNextColumn advances the cursor by StepSize() samples. Samples
// before the new cursor are released. Advancing past the buffered data
// leaves a gap that later appends fill and discard.
func (e *EngineT[F, C]) MoveToNextColumn() {
	e.buf.Advance(e.stepSize)
}

// MoveBy advances the cursor by n samples. Negative n is ignored.
func (e *EngineT[F, C]) MoveBy(n int) {
	e.buf.Advance(n)
}

// Reset drops all buffered samples and any pending gap.
func (e *EngineT[F, C]) Reset() {
	e.buf.Reset()
}

// Flush zero-pads a partially filled window so it can be computed. It
// returns true if padding was appended. Nothing happens when the window is
// already full or nothing is buffered.
func (e *EngineT[F, C]) Flush() bool {
	avail := e.buf.Available()
	if avail == 0 || avail >= e.windowSize {
		return false
	}

	e.buf.AppendZeros(e.windowSize - avail)

	return true
}

// Drain computes every column available now: while Ready, it computes into
// out, passes out to fn and moves to the next column. It returns the number
// of columns handed to fn. If fn fails, the cursor stays on that column.
// With a zero step at most one column is produced.
func (e *EngineT[F, C]) Drain(out []F, fn func(col []F) error) (int, error) {
	n := 0
	for e.Ready() {
		if err := e.ComputeColumn(out); err != nil {
			return n, err
		}

		if fn != nil {
			if err := fn(out); err != nil {
				return n, err
			}
		}
		n++

		if e.stepSize == 0 {
			break
		}
		e.MoveToNextColumn()
	}

	return n, nil
}
