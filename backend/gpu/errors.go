package gpu

import "errors"

// Backend errors.
var (
	// ErrNotAttached indicates a GPU-only operation before Attach.
	ErrNotAttached = errors.New("gpu: no host GPU context attached")

	// ErrClosed indicates an operation on a closed backend.
	ErrClosed = errors.New("gpu: backend is closed")
)
