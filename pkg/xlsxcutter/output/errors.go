package output

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates a format with no registered writer.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrWrite indicates an output file could not be created or written.
	ErrWrite = errors.New("write failed")
)

// UnsupportedFormatError names the format that could not be served.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedFormat, string(e.Format))
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// WriteError reports the output path that failed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrWrite and the underlying cause.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}
