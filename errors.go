package pixfx

import "errors"

// Package errors.
var (
	// ErrNotFound is returned when an input path cannot be opened.
	ErrNotFound = errors.New("pixfx: file not found")

	// ErrDecode is returned when input data is not a decodable image.
	ErrDecode = errors.New("pixfx: decode failed")

	// ErrEncode is returned when an image cannot be written.
	ErrEncode = errors.New("pixfx: encode failed")

	// ErrUnsupportedFormat is returned for output formats without an encoder.
	ErrUnsupportedFormat = errors.New("pixfx: unsupported format")

	// ErrInvalidShape is returned when sample data is not height x width x 3.
	ErrInvalidShape = errors.New("pixfx: invalid buffer shape")
)
