package parser

import (
	"strings"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/xuri/excelize/v2"
)

// printArea returns the first print area defined for sheetName, if any.
func printArea(f *excelize.File, sheetName string) (address.Range, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		if dn.Scope != "" && dn.Scope != "Workbook" && dn.Scope != sheetName {
			continue
		}
		if rng, ok := firstAreaOf(dn.RefersTo, sheetName); ok {
			return rng, true
		}
	}
	return address.Range{}, false
}

// firstAreaOf scans a reference list such as 'Q1 ''24'!$A$1:$D$10,Data!$F$1:$G$2
// and returns the first area on sheetName. Commas and quotes inside a quoted
// sheet name do not split the list.
func firstAreaOf(refersTo, sheetName string) (address.Range, bool) {
	rest := strings.TrimPrefix(strings.TrimSpace(refersTo), "=")
	for rest != "" {
		sheet, n := sheetPrefix(rest)
		rest = rest[n:]
		area, tail, _ := strings.Cut(rest, ",")
		rest = strings.TrimSpace(tail)
		if sheet != sheetName {
			continue
		}
		from, to, ok := strings.Cut(area, ":")
		if !ok {
			to = from
		}
		if rng, err := address.ParseRange(from, to); err == nil {
			return rng, true
		}
	}
	return address.Range{}, false
}

// sheetPrefix reads the sheet name in front of '!' and returns it with the
// number of bytes consumed, including the '!'.
func sheetPrefix(ref string) (string, int) {
	if !strings.HasPrefix(ref, "'") {
		name, _, ok := strings.Cut(ref, "!")
		if !ok {
			return "", 0
		}
		return name, len(name) + 1
	}
	var b strings.Builder
	for i := 1; i < len(ref); i++ {
		if ref[i] != '\'' {
			b.WriteByte(ref[i])
			continue
		}
		if i+1 < len(ref) && ref[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		n := i + 1
		if n < len(ref) && ref[n] == '!' {
			n++
		}
		return b.String(), n
	}
	return b.String(), len(ref)
}
