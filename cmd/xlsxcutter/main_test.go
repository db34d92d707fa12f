package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/xuri/excelize/v2"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logLevel, logFormat, jsonOut = "", "console", false
		splitSheet, splitStart, splitEnd = "", "A1", ""
		splitRows, splitOutDir, splitName, splitPrintArea = defaultRowsPerFile, "", "", false
		splitFormats = newFormatList(output.FormatXLSX)
		buildOut, buildRows, buildComma, buildCharset = "", xlsxcutter.MaxSheetRows, ",", ""
	})
	logLevel, logFormat, jsonOut = "", "console", false
	splitSheet, splitStart, splitEnd = "", "A1", ""
	splitRows, splitOutDir, splitName, splitPrintArea = defaultRowsPerFile, "", "", false
	splitFormats = newFormatList(output.FormatXLSX)
	buildOut, buildRows, buildComma, buildCharset = "", xlsxcutter.MaxSheetRows, ",", ""
	t.Setenv("XLSXCUTTER_LOG_LEVEL", "")
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func writeWorkbookForTest(t *testing.T, dir string, rows int) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "People"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Other"); err != nil {
		t.Fatal(err)
	}
	_ = f.SetCellValue("People", "A1", "id")
	_ = f.SetCellValue("People", "B1", "name")
	for i := 1; i <= rows; i++ {
		_ = f.SetCellValue("People", fmt.Sprintf("A%d", i+1), i)
		_ = f.SetCellValue("People", fmt.Sprintf("B%d", i+1), fmt.Sprintf("person %d", i))
	}
	path := filepath.Join(dir, "people.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestFormatList(t *testing.T) {
	l := newFormatList(output.FormatXLSX)
	if l.String() != "xlsx" {
		t.Fatalf("default = %q", l.String())
	}
	if err := l.Set("csv, JSON"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("ods,csv"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := []output.Format{output.FormatCSV, output.FormatJSON, output.FormatODS}
	if !reflect.DeepEqual(l.Formats(), want) {
		t.Fatalf("formats = %v, want %v", l.Formats(), want)
	}
	if err := l.Set("pdf"); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRunSplit_DefaultsToFirstSheetAndWorkbookDir(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	src := writeWorkbookForTest(t, dir, 5)

	splitRows = 2
	if err := splitFormats.Set("csv"); err != nil {
		t.Fatal(err)
	}

	cmd, stdout, stderr := newTestCommand()
	if err := runSplit(cmd, []string{src}); err != nil {
		t.Fatalf("runSplit failed: %v (stderr: %s)", err, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 paths, got %q", stdout.String())
	}
	for i, line := range lines {
		want := filepath.Join(dir, fmt.Sprintf("people_People_part%03d.csv", i+1))
		if line != want {
			t.Errorf("line %d = %s, want %s", i, line, want)
		}
	}
	if !strings.Contains(stderr.String(), "Created 3 file(s).") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunSplit_MissingFile(t *testing.T) {
	resetGlobals(t)
	cmd, _, _ := newTestCommand()
	err := runSplit(cmd, []string{filepath.Join(t.TempDir(), "missing.xlsx")})
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file not found, got %v", err)
	}
}

func TestRunSplit_InvalidRange(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	src := writeWorkbookForTest(t, dir, 2)
	splitStart = "1A"

	cmd, _, _ := newTestCommand()
	err := runSplit(cmd, []string{src})
	if !errors.Is(err, xlsxcutter.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestReportResult_PartialFailureExitsWith2(t *testing.T) {
	resetGlobals(t)
	cmd, _, stderr := newTestCommand()
	result := &xlsxcutter.Result{
		Written:  []string{"/tmp/a_part001.xlsx"},
		Failures: []xlsxcutter.Failure{{Chunk: 1, Format: output.FormatODS, Err: output.ErrUnsupportedFormat}},
	}
	err := reportResult(cmd, result)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected ExitError code 2, got %v", err)
	}
	if !strings.Contains(stderr.String(), "chunk 1 (ods)") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunBuild(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "table.csv")
	if err := os.WriteFile(src, []byte("id;name\n1;a\n2;b\n3;c\n"), 0644); err != nil {
		t.Fatal(err)
	}
	buildOut = filepath.Join(dir, "book.xlsx")
	buildRows = 2
	buildComma = ";"

	cmd, stdout, _ := newTestCommand()
	if err := runBuild(cmd, []string{src}); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != buildOut {
		t.Errorf("stdout = %q", stdout.String())
	}
	f, err := excelize.OpenFile(buildOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"Sheet1", "Sheet2"}) {
		t.Errorf("sheets = %v", got)
	}
}

func TestRunBuild_InvalidComma(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "table.csv")
	if err := os.WriteFile(src, []byte("a\n1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	buildOut = filepath.Join(dir, "book.xlsx")
	buildComma = ";;"

	cmd, _, _ := newTestCommand()
	if err := runBuild(cmd, []string{src}); err == nil || !strings.Contains(err.Error(), "invalid comma") {
		t.Fatalf("expected invalid comma error, got %v", err)
	}
}

func TestRunJobs_FailedJobExitsWith2(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	writeWorkbookForTest(t, dir, 3)
	manifest := filepath.Join(dir, "jobs.yaml")
	doc := strings.Join([]string{
		"jobs:",
		"  - {name: people, kind: split, source: people.xlsx, sheet: People, rows: 10, out: parts, formats: [json]}",
		"  - {name: broken, kind: build, source: missing.csv, out: x.xlsx}",
	}, "\n")
	if err := os.WriteFile(manifest, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, stdout, _ := newTestCommand()
	err := runJobs(cmd, []string{manifest})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected ExitError code 2, got %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "people") || !strings.Contains(out, "OK") || !strings.Contains(out, "FAILED") {
		t.Errorf("unexpected summary: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "parts", "people_People_part001.json")); err != nil {
		t.Errorf("expected split output: %v", err)
	}
}

func TestRunSheets(t *testing.T) {
	resetGlobals(t)
	src := writeWorkbookForTest(t, t.TempDir(), 1)
	cmd, stdout, _ := newTestCommand()
	if err := runSheets(cmd, []string{src}); err != nil {
		t.Fatalf("runSheets failed: %v", err)
	}
	if stdout.String() != "People\nOther\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestNewLogger(t *testing.T) {
	resetGlobals(t)

	t.Setenv("XLSXCUTTER_LOG_LEVEL", "debug")
	logger, err := newLogger(&bytes.Buffer{})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}

	logLevel = "error"
	logFormat = "json"
	var buf bytes.Buffer
	logger, err = newLogger(&buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Warn().Msg("hidden")
	logger.Error().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"message":"shown"`) {
		t.Errorf("log output = %q", buf.String())
	}

	logFormat = "xml"
	if _, err := newLogger(&buf); err == nil {
		t.Error("expected an error for an unknown log format")
	}
	logFormat, logLevel = "console", "loud"
	if _, err := newLogger(&buf); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
