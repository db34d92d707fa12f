package output

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// PartFileName returns the file name of chunk index: {base}_part{index:03d}.{ext}.
func PartFileName(base string, index int, f Format) string {
	return fmt.Sprintf("%s_part%03d%s", base, index, f.Ext())
}

// DefaultBaseName derives the base name of split outputs from the source
// workbook and sheet: {stem}_{sheet}.
func DefaultBaseName(srcPath, sheet string) string {
	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return stem + "_" + SanitizeSheetName(sheet)
}

// SanitizeSheetName makes a sheet name safe for file names. Letters, digits,
// '-' and '_' are kept, anything else becomes '_', and surrounding
// underscores are trimmed. An empty result becomes "sheet".
func SanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if cleaned = strings.Trim(cleaned, "_"); cleaned == "" {
		return "sheet"
	}
	return cleaned
}
