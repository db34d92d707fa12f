// Package output writes chunks of rows as xlsx, csv, json or ods files.
package output

import (
	"strings"
)

// Format identifies an output file format.
type Format string

const (
	// FormatXLSX is an Office Open XML workbook with a single sheet.
	FormatXLSX Format = "xlsx"
	// FormatCSV is comma-separated text with a header record.
	FormatCSV Format = "csv"
	// FormatJSON is an array of objects keyed by header.
	FormatJSON Format = "json"
	// FormatODS is an OpenDocument spreadsheet with a single sheet.
	FormatODS Format = "ods"
)

// AllFormats lists every known format in a stable order.
var AllFormats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatODS}

// ParseFormat parses a format name, case-insensitive, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range AllFormats {
		if f == known {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Format: Format(s)}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
