package transform

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is wrapped by EncodeError when no encoder exists for
// the requested media type.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// DecodeError reports image bytes that could not be turned into a raster.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a raster the encoder refused to serialise.
type EncodeError struct {
	Name      string
	MediaType string
	Err       error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s as %s: %v", e.Name, e.MediaType, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// CompressionError scopes a decode or encode failure to one compressed file.
type CompressionError struct {
	Name string
	Err  error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("compress %s: %v", e.Name, e.Err)
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}

// ResizeError scopes a decode or encode failure to one resized file.
type ResizeError struct {
	Name string
	Err  error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("resize %s: %v", e.Name, e.Err)
}

func (e *ResizeError) Unwrap() error {
	return e.Err
}
