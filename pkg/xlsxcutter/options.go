// Package xlsxcutter splits worksheet ranges into row-limited chunk files and
// rebuilds flat CSV or JSON tables into multi-sheet workbooks.
package xlsxcutter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/xuri/excelize/v2"
)

// MaxSheetRows is the number of data rows a sheet can hold below its header.
const MaxSheetRows = excelize.TotalRows - 1

var validate = validator.New(validator.WithRequiredStructEnabled())

// SplitRequest describes one Split call.
type SplitRequest struct {
	// Source is the workbook to read (.xlsx, .xlsm, .xltx, .xltm or .xls).
	Source string `validate:"required"`
	// Sheet names the worksheet holding the table.
	Sheet string `validate:"required"`
	// Start is the top-left cell of the table; its row is the header.
	Start string `validate:"required"`
	// End is the optional bottom-right cell. Empty means the last used
	// row and column of the sheet.
	End string
	// RowsPerChunk is the maximum number of data rows per output file.
	RowsPerChunk int
	// OutputDir receives the chunk files; it is created if missing.
	OutputDir string `validate:"required"`
	// Formats lists the formats written for every chunk.
	Formats []output.Format `validate:"min=1,dive,required"`
	// BaseName prefixes the output file names. Empty means
	// output.DefaultBaseName(Source, Sheet).
	BaseName string `validate:"omitempty,excludesall=/\\"`
	// UsePrintArea replaces Start/End with the sheet's print area when
	// one is defined.
	UsePrintArea bool

	// Registry serves the formats; nil means output.DefaultRegistry().
	Registry *output.Registry `validate:"-"`
	// Logger receives progress events; nil disables logging.
	Logger *zerolog.Logger `validate:"-"`
}

// RebuildRequest describes one Rebuild call.
type RebuildRequest struct {
	// Source is the flat table to read (.csv or .json).
	Source string `validate:"required"`
	// MaxRowsPerSheet caps the data rows of each sheet. Values above
	// MaxSheetRows are clamped.
	MaxRowsPerSheet int
	// Output is the workbook to write (.xlsx or .ods).
	Output string `validate:"required"`
	// Comma is the CSV field delimiter; zero means ','.
	Comma rune
	// Charset names the CSV source encoding; empty means UTF-8.
	Charset string

	// Logger receives progress events; nil disables logging.
	Logger *zerolog.Logger `validate:"-"`
}

func (r *SplitRequest) validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidRequest(err)
	}
	return nil
}

func (r *RebuildRequest) validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidRequest(err)
	}
	return nil
}

// outputFormat returns the workbook format selected by the output extension.
func (r *RebuildRequest) outputFormat() (output.Format, error) {
	f, err := output.ParseFormat(filepath.Ext(r.Output))
	if err != nil || (f != output.FormatXLSX && f != output.FormatODS) {
		return "", fmt.Errorf("%w: output %s: %w", ErrInvalidRequest, filepath.Base(r.Output),
			&output.UnsupportedFormatError{Format: output.Format(strings.TrimPrefix(filepath.Ext(r.Output), "."))})
	}
	return f, nil
}

// invalidRequest turns validator field errors into a single ErrInvalidRequest.
func invalidRequest(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func loggerOrNop(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return *l
}
