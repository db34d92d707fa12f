package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
)

// FlatOptions configures CSV decoding. JSON sources ignore it.
type FlatOptions struct {
	// Comma is the CSV field delimiter; zero means ','.
	Comma rune
	// Charset names the source encoding (e.g. "windows-1252"); empty means UTF-8.
	Charset string
}

// OpenFlat opens a CSV or JSON table, chosen by the file extension. The
// caller must Close the returned table.
func OpenFlat(path string, opts FlatOptions) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return openCSV(path, opts)
	case ".json":
		return openJSON(path)
	default:
		return nil, fmt.Errorf("%w: %s (expected .csv or .json)", ErrUnsupportedSource, filepath.Base(path))
	}
}
