package xlsxcutter

import (
	"errors"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/chunk"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/parser"
)

// ErrInvalidRequest indicates a request that fails validation before any
// file is read.
var ErrInvalidRequest = errors.New("invalid request")

// Errors reported by the packages Split and Rebuild are built on. Use
// errors.Is against these; errors.As recovers the detailed struct errors
// (address.RangeError, parser.HeaderError, parser.MalformedRowError,
// output.UnsupportedFormatError, output.WriteError).
var (
	ErrInvalidRange         = address.ErrInvalidRange
	ErrSheetNotFound        = parser.ErrSheetNotFound
	ErrUnsupportedSource    = parser.ErrUnsupportedSource
	ErrInvalidHeader        = parser.ErrInvalidHeader
	ErrMalformedRow         = parser.ErrMalformedRow
	ErrUnsupportedJSONShape = parser.ErrUnsupportedJSONShape
	ErrInvalidChunkSize     = chunk.ErrInvalidChunkSize
	ErrUnsupportedFormat    = output.ErrUnsupportedFormat
	ErrWrite                = output.ErrWrite
)
