package stft

import "errors"

var (
	// ErrConfiguration is returned by constructors for a zero or negative
	// window size, a negative step, an unknown window type or name, or an
	// injected transformer that does not fit the engine.
	ErrConfiguration = errors.New("stft: invalid configuration")

	// ErrNotReady is returned when a column is requested before a full
	// window has been buffered at the cursor.
	ErrNotReady = errors.New("stft: window not ready")

	// ErrSizeMismatch is returned when a caller buffer does not have the
	// required length.
	ErrSizeMismatch = errors.New("stft: buffer size mismatch")
)
