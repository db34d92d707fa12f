// Package address parses A1-style cell references and resolves table ranges
// against the used area of a worksheet.
package address

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxRows is the last addressable row of a worksheet.
	MaxRows = 1048576
	// MaxColumns is the last addressable column of a worksheet (XFD).
	MaxColumns = 16384
)

// ErrInvalidRange indicates a malformed cell reference or an inverted range.
var ErrInvalidRange = errors.New("invalid range")

// cellRefRe matches a cell reference like A1, $B$2, aa100
var cellRefRe = regexp.MustCompile(`^\$?([A-Z]+)\$?([0-9]+)$`)

// RangeError describes why a range token was rejected.
type RangeError struct {
	Token  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Token, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// CellRef is a 1-based cell coordinate.
type CellRef struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String renders the reference in A1 notation.
func (c CellRef) String() string {
	return ColumnLetters(c.Col) + strconv.Itoa(c.Row)
}

// Bounds is the used area of a worksheet: the last populated row and column.
// A zero value describes an empty sheet.
type Bounds struct {
	Rows int
	Cols int
}

// Empty reports whether the sheet holds no cells.
func (b Bounds) Empty() bool {
	return b.Rows <= 0 || b.Cols <= 0
}

// Range is a rectangular block of cells. A nil End extends the range to the
// last populated row and column of the sheet.
type Range struct {
	Start CellRef
	End   *CellRef
}

// String renders the range as A1:D10, or as the start cell alone when open.
func (r Range) String() string {
	if r.End == nil {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// Empty reports whether a resolved range covers no cells.
func (r Range) Empty() bool {
	return r.End == nil || r.End.Row < r.Start.Row || r.End.Col < r.Start.Col
}

// Height is the number of rows covered by a resolved range, header included.
func (r Range) Height() int {
	if r.Empty() {
		return 0
	}
	return r.End.Row - r.Start.Row + 1
}

// Width is the number of columns covered by a resolved range.
func (r Range) Width() int {
	if r.Empty() {
		return 0
	}
	return r.End.Col - r.Start.Col + 1
}

// Parse converts a token such as "B10" into a CellRef. Letters are
// case-insensitive and optional $ anchors are ignored.
func Parse(token string) (CellRef, error) {
	m := cellRefRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(token)))
	if m == nil {
		return CellRef{}, &RangeError{Token: token, Reason: "cell references must look like A1 or BC12"}
	}
	col := ColumnNumber(m[1])
	if col < 1 || col > MaxColumns {
		return CellRef{}, &RangeError{Token: token, Reason: fmt.Sprintf("column must be between A and %s", ColumnLetters(MaxColumns))}
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 || row > MaxRows {
		return CellRef{}, &RangeError{Token: token, Reason: fmt.Sprintf("row must be between 1 and %d", MaxRows)}
	}
	return CellRef{Col: col, Row: row}, nil
}

// ParseRange parses a start cell and an optional end cell ("" when absent).
// The end cell must not lie above or to the left of the start cell.
func ParseRange(start, end string) (Range, error) {
	from, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: from}
	if strings.TrimSpace(end) == "" {
		return r, nil
	}
	to, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if to.Row < from.Row || to.Col < from.Col {
		return Range{}, &RangeError{
			Token:  start + ":" + end,
			Reason: "end cell must be below and to the right of the start cell",
		}
	}
	r.End = &to
	return r, nil
}

// Clamp fixes the end of the range against the sheet bounds. An open range
// extends to the bounds; an explicit end is cut down to them. The result is
// empty when the sheet is empty or the start lies outside the used area.
func (r Range) Clamp(b Bounds) Range {
	out := Range{Start: r.Start}
	end := CellRef{Col: b.Cols, Row: b.Rows}
	if r.End != nil {
		end.Col = min(r.End.Col, b.Cols)
		end.Row = min(r.End.Row, b.Rows)
	}
	out.End = &end
	return out
}

// Resolve parses the range tokens and clamps them to the sheet bounds.
func Resolve(start, end string, b Bounds) (Range, error) {
	r, err := ParseRange(start, end)
	if err != nil {
		return Range{}, err
	}
	return r.Clamp(b), nil
}

// ColumnNumber converts column letters to a 1-based index (A=1, Z=26, AA=27).
// It returns 0 for input containing anything but ASCII letters.
func ColumnNumber(letters string) int {
	if letters == "" {
		return 0
	}
	col := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return 0
		}
		col = col*26 + int(c-'A'+1)
		if col > MaxColumns {
			return col
		}
	}
	return col
}

// ColumnLetters converts a 1-indexed column number to Excel letter(s)
func ColumnLetters(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
