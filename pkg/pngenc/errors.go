package pngenc

import "errors"

var (
	// ErrIndexOutOfRange is returned when a grid cell names no palette entry.
	ErrIndexOutOfRange = errors.New("color index out of range")
	// ErrRaggedGrid is returned when grid rows differ in length.
	ErrRaggedGrid = errors.New("grid rows have different lengths")
	// ErrInvalidCellSize is returned when a cell dimension is below 1.
	ErrInvalidCellSize = errors.New("cell size must be at least 1x1")
	// ErrImageTooLarge is returned when the scaled image exceeds PNG limits.
	ErrImageTooLarge = errors.New("image dimensions exceed PNG limits")
)

// EncodingError reports a failure of the Compressor. The encoder never retries.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "compress image data: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
