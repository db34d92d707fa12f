package parser

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a single-sheet workbook whose rows start at A1.
func writeWorkbook(t *testing.T, sheetName string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := row
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func drain(t *testing.T, table *models.Table) [][]string {
	t.Helper()
	var out [][]string
	for table.Rows.Next() {
		out = append(out, table.Rows.Row().Strings())
	}
	if err := table.Rows.Err(); err != nil {
		t.Fatalf("iterating rows: %v", err)
	}
	return out
}

func mustRange(t *testing.T, start, end string) address.Range {
	t.Helper()
	r, err := address.ParseRange(start, end)
	if err != nil {
		t.Fatalf("ParseRange(%q, %q): %v", start, end, err)
	}
	return r
}

func TestOpenSheet_WholeTable(t *testing.T) {
	path := writeWorkbook(t, "Data", [][]interface{}{
		{"id", "val"},
		{1, "a"},
		{2, 2.5},
		{3, true},
	})

	table, err := OpenSheet(path, "Data", mustRange(t, "A1", ""), SheetOptions{})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()

	if !reflect.DeepEqual(table.Header, []string{"id", "val"}) {
		t.Fatalf("header = %v", table.Header)
	}

	var rows []models.Row
	for table.Rows.Next() {
		rows = append(rows, table.Rows.Row())
	}
	if err := table.Rows.Err(); err != nil {
		t.Fatalf("iterating rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(rows))
	}
	if rows[0][0].Kind != models.KindNumber || rows[0][0].Num != 1 {
		t.Errorf("expected number 1, got %v (%s)", rows[0][0].String(), rows[0][0].Kind)
	}
	if rows[0][1].Kind != models.KindText || rows[0][1].Str != "a" {
		t.Errorf("expected text a, got %v", rows[0][1].String())
	}
	if rows[1][1].Num != 2.5 {
		t.Errorf("expected 2.5, got %v", rows[1][1].String())
	}
	if rows[2][1].Kind != models.KindBoolean || !rows[2][1].Bool {
		t.Errorf("expected boolean TRUE, got %v (%s)", rows[2][1].String(), rows[2][1].Kind)
	}
}

func TestOpenSheet_SubRangeAndPadding(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"title"},
		{nil, "name", "qty", "ignored"},
		{nil, "bolt", 10, "x"},
		{nil, "nut"},
		{nil, "washer", 7, "y"},
	})

	table, err := OpenSheet(path, "Sheet1", mustRange(t, "B2", "C4"), SheetOptions{})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()

	if !reflect.DeepEqual(table.Header, []string{"name", "qty"}) {
		t.Fatalf("header = %v", table.Header)
	}
	got := drain(t, table)
	want := [][]string{{"bolt", "10"}, {"nut", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}

func TestOpenSheet_BlankHeaderCell(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"id", "", "name"},
		{1, 2, 3},
	})

	_, err := OpenSheet(path, "Sheet1", mustRange(t, "A1", ""), SheetOptions{})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
	var headerErr *HeaderError
	if !errors.As(err, &headerErr) || headerErr.Column != "B" {
		t.Fatalf("expected HeaderError for column B, got %v", err)
	}
}

func TestOpenSheet_DuplicateHeader(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"id", "id"},
		{1, 2},
	})

	_, err := OpenSheet(path, "Sheet1", mustRange(t, "A1", ""), SheetOptions{})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestOpenSheet_EmptyRange(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"id"},
		{1},
	})

	table, err := OpenSheet(path, "Sheet1", mustRange(t, "A50", ""), SheetOptions{})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()
	if len(table.Header) != 0 {
		t.Errorf("expected no header, got %v", table.Header)
	}
	if table.Rows.Next() {
		t.Errorf("expected no rows")
	}
}

func TestOpenSheet_SheetNotFound(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{{"id"}})

	_, err := OpenSheet(path, "Missing", mustRange(t, "A1", ""), SheetOptions{})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestOpenSheet_UnsupportedExtension(t *testing.T) {
	_, err := OpenSheet("book.numbers", "Sheet1", mustRange(t, "A1", ""), SheetOptions{})
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
}

func TestOpenSheet_PrintArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for _, cell := range []struct {
		ref string
		val interface{}
	}{
		{"A1", "notes"}, {"B3", "code"}, {"C3", "amount"},
		{"B4", "x1"}, {"C4", 5}, {"B5", "x2"}, {"C5", 6}, {"B9", "footer"},
	} {
		if err := f.SetCellValue("Sheet1", cell.ref, cell.val); err != nil {
			t.Fatalf("set %s: %v", cell.ref, err)
		}
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$B$3:$C$5",
		Scope:    "Sheet1",
	}); err != nil {
		t.Fatalf("set print area: %v", err)
	}
	path := filepath.Join(t.TempDir(), "print.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	table, err := OpenSheet(path, "Sheet1", mustRange(t, "A1", ""), SheetOptions{UsePrintArea: true})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()
	if !reflect.DeepEqual(table.Header, []string{"code", "amount"}) {
		t.Fatalf("header = %v", table.Header)
	}
	if got := drain(t, table); len(got) != 2 {
		t.Fatalf("expected 2 rows inside the print area, got %v", got)
	}
}

func TestSheetNames(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]interface{}{{"id"}})
	names, err := SheetNames(path)
	if err != nil {
		t.Fatalf("SheetNames failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Orders"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestFirstAreaOf(t *testing.T) {
	tests := []struct {
		refersTo string
		sheet    string
		want     string
		ok       bool
	}{
		{"'My Sheet'!$A$1:$D$10,'My Sheet'!$F$1:$G$2", "My Sheet", "A1:D10", true},
		{"Data!$A$1:$B$2,'Q1 ''24'!$C$3:$E$9", "Q1 '24", "C3:E9", true},
		{"'a,b'!$B$2:$C$4", "a,b", "B2:C4", true},
		{"Sheet1!$D$4", "Sheet1", "D4:D4", true},
		{"Other!$A$1:$B$2", "Sheet1", "", false},
		{"#REF!", "Sheet1", "", false},
	}
	for _, tt := range tests {
		rng, ok := firstAreaOf(tt.refersTo, tt.sheet)
		if ok != tt.ok {
			t.Errorf("firstAreaOf(%q, %q) ok = %v, want %v", tt.refersTo, tt.sheet, ok, tt.ok)
			continue
		}
		if ok && rng.String() != tt.want {
			t.Errorf("firstAreaOf(%q, %q) = %s, want %s", tt.refersTo, tt.sheet, rng.String(), tt.want)
		}
	}
}

func TestOpenSheet_KeepsStoredTypes(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for _, h := range []struct{ ref, name string }{
		{"A1", "zip"}, {"B1", "flag"}, {"C1", "amount"}, {"D1", "big"}, {"E1", "ok"}, {"F1", "day"}, {"G1", "ratio"},
	} {
		if err := f.SetCellStr("Sheet1", h.ref, h.name); err != nil {
			t.Fatalf("set %s: %v", h.ref, err)
		}
	}
	if err := f.SetCellStr("Sheet1", "A2", "00123"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStr("Sheet1", "B2", "TRUE"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "C2", 1234567); err != nil {
		t.Fatal(err)
	}
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "C2", "C2", thousands); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "D2", int64(123456789012345678)); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellBool("Sheet1", "E2", false); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "F2", 45306); err != nil {
		t.Fatal(err)
	}
	isoDate := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &isoDate})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "F2", "F2", dateStyle); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "G2", 0.25); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "typed.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	table, err := OpenSheet(path, "Sheet1", mustRange(t, "A1", ""), SheetOptions{})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()
	if !table.Rows.Next() {
		t.Fatalf("expected a data row: %v", table.Rows.Err())
	}
	row := table.Rows.Row()

	want := []models.Value{
		models.Text("00123"),
		models.Text("TRUE"),
		models.Number(1234567),
		models.Number(123456789012345678),
		models.Boolean(false),
		models.Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		models.Number(0.25),
	}
	for i, w := range want {
		got := row[i]
		if got.Kind != w.Kind || got.String() != w.String() {
			t.Errorf("%s: got %s %q, want %s %q", table.Header[i], got.Kind, got.String(), w.Kind, w.String())
		}
	}
	if row[3].Num != 123456789012345678 {
		t.Errorf("big: got %v, want the stored integer", row[3].Num)
	}
}

func TestOpenSheet_IgnoresStaleDimension(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "name"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "bolt"}); err != nil {
		t.Fatal(err)
	}
	fill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "A10", "B10", fill); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetDimension("Sheet1", "A1:B10"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "stale.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	table, err := OpenSheet(path, "Sheet1", mustRange(t, "A1", ""), SheetOptions{})
	if err != nil {
		t.Fatalf("OpenSheet failed: %v", err)
	}
	defer table.Close()
	got := drain(t, table)
	want := [][]string{{"1", "bolt"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}
