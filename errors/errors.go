// Package errors defines all exported error sentinels for the texhash library.
//
// This is the single source of truth for error values. Both the top-level
// texhash package and internal packages import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Pool errors
var (
	ErrInvalidDimensions  = errors.New("texhash: invalid texture dimensions")
	ErrAllocFailed        = errors.New("texhash: buffer allocation failed")
	ErrPoolNotInitialized = errors.New("texhash: buffer pool is not initialized")
	ErrThreadOutOfRange   = errors.New("texhash: thread index exceeds pool capacity")
)

// Format errors
var (
	ErrUnsupportedFormat = errors.New("texhash: unsupported color format")
	ErrPaletteRequired   = errors.New("texhash: color-indexed format requires a paletted image")
	ErrImageTooLarge     = errors.New("texhash: image does not fit destination buffer")
	ErrUnknownAlgorithm  = errors.New("texhash: unknown hash algorithm")
	ErrUnknownEngine     = errors.New("texhash: unknown checksum engine")
)

// Dump errors
var (
	ErrEmptyDump = errors.New("texhash: dump file is empty")
)
