package xlsxcutter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/chunk"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/parser"
)

// Rebuild reads the flat table in req.Source and writes it to req.Output as
// a workbook with one sheet per req.MaxRowsPerSheet data rows. Sheets are
// named Sheet1, Sheet2, ... and each starts with the table header.
//
// A table without data rows produces no file and an empty Result. Any read
// or write failure is fatal and leaves req.Output untouched.
func Rebuild(ctx context.Context, req RebuildRequest) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := chunk.ValidateSize(req.MaxRowsPerSheet); err != nil {
		return nil, err
	}
	format, err := req.outputFormat()
	if err != nil {
		return nil, err
	}
	outPath, err := filepath.Abs(req.Output)
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}
	maxRows := min(req.MaxRowsPerSheet, MaxSheetRows)
	log := loggerOrNop(req.Logger).With().Str("source", req.Source).Logger()

	table, err := parser.OpenFlat(req.Source, parser.FlatOptions{Comma: req.Comma, Charset: req.Charset})
	if err != nil {
		return nil, err
	}
	defer table.Close()

	it, err := chunk.New(table, maxRows)
	if err != nil {
		return nil, err
	}
	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, err
		}
		log.Info().Msg("table has no data rows, nothing written")
		return &Result{}, nil
	}

	log.Info().Int("rows_per_sheet", maxRows).Str("path", outPath).Msg("rebuilding workbook")

	// Errors that did not come from writing are returned as they are.
	var abort error
	sheets := 0
	err = output.WriteFile(outPath, func(w io.Writer) error {
		wb, err := output.NewWorkbook(format, w)
		if err != nil {
			return err
		}
		defer wb.Close()
		for {
			if abort = ctx.Err(); abort != nil {
				return abort
			}
			c := it.Chunk()
			name := fmt.Sprintf("Sheet%d", c.Index)
			if err := wb.AddSheet(name, c.Header, c.Rows); err != nil {
				return fmt.Errorf("sheet %s: %w", name, err)
			}
			sheets++
			log.Debug().Int("chunk", c.Index).Int("rows", c.Len()).Msg("sheet added")
			if !it.Next() {
				break
			}
		}
		if abort = it.Err(); abort != nil {
			return abort
		}
		return wb.Close()
	})
	if abort != nil {
		return nil, abort
	}
	if err != nil {
		return nil, err
	}

	log.Info().Int("sheets", sheets).Str("path", outPath).Msg("rebuild finished")
	return &Result{Written: []string{outPath}}, nil
}
