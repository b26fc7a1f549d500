package soft

import (
	"errors"
	"fmt"

	"github.com/gogpu/compose"
)

// Backend errors.
var (
	// ErrForeignTexture indicates a texture created by another backend.
	ErrForeignTexture = errors.New("soft: texture belongs to another backend")

	// ErrTextureDestroyed indicates an operation on a destroyed texture.
	// It wraps compose.ErrDisposed so engine-level callers can match the
	// generic sentinel.
	ErrTextureDestroyed = fmt.Errorf("soft: texture already destroyed: %w", compose.ErrDisposed)

	// ErrSizeMismatch indicates texture dimensions that do not line up.
	ErrSizeMismatch = errors.New("soft: texture size mismatch")
)
