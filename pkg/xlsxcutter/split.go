package xlsxcutter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/address"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/chunk"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/models"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/parser"
)

// Split reads the table in req.Sheet of req.Source and writes its data rows
// as chunks of at most req.RowsPerChunk rows, one file per chunk and format.
//
// Request, range, header and chunk size problems are returned before any
// file is written. A failure to write one chunk in one format is recorded
// in Result.Failures and the remaining outputs are still attempted. A read
// error part way through the sheet, or ctx being cancelled, stops the call
// and is returned along with the files written so far.
func Split(ctx context.Context, req SplitRequest) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := chunk.ValidateSize(req.RowsPerChunk); err != nil {
		return nil, err
	}
	rng, err := address.ParseRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	outDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	registry := req.Registry
	if registry == nil {
		registry = output.DefaultRegistry()
	}
	base := req.BaseName
	if base == "" {
		base = output.DefaultBaseName(req.Source, req.Sheet)
	}
	log := loggerOrNop(req.Logger).With().
		Str("source", req.Source).
		Str("sheet", req.Sheet).
		Logger()

	table, err := parser.OpenSheet(req.Source, req.Sheet, rng, parser.SheetOptions{UsePrintArea: req.UsePrintArea})
	if err != nil {
		return nil, err
	}
	defer table.Close()

	if len(table.Header) == 0 {
		if table.Used.Empty() {
			log.Info().Msg("sheet holds no data")
		} else {
			log.Info().
				Str("start", rng.Start.String()).
				Int("last_row", table.Used.Rows).
				Str("last_col", address.ColumnLetters(table.Used.Cols)).
				Msg("start cell lies outside the populated area")
		}
	}

	it, err := chunk.New(table, req.RowsPerChunk)
	if err != nil {
		return nil, err
	}

	log.Info().Str("range", rng.String()).Int("rows_per_chunk", req.RowsPerChunk).Msg("splitting sheet")

	result := &Result{}
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		c := it.Chunk()
		for _, f := range req.Formats {
			path := filepath.Join(outDir, output.PartFileName(base, c.Index, f))
			if err := writeChunk(registry, f, path, req.Sheet, c); err != nil {
				log.Warn().Err(err).Int("chunk", c.Index).Str("format", f.String()).Msg("chunk not written")
				result.Failures = append(result.Failures, Failure{Chunk: c.Index, Format: f, Err: err})
				continue
			}
			log.Debug().Int("chunk", c.Index).Str("format", f.String()).Str("path", path).Int("rows", c.Len()).Msg("chunk written")
			result.Written = append(result.Written, path)
		}
	}
	if err := it.Err(); err != nil {
		return result, err
	}

	log.Info().Int("files", len(result.Written)).Int("failures", len(result.Failures)).Msg("split finished")
	return result, nil
}

func writeChunk(registry *output.Registry, f output.Format, path, sheet string, c models.Chunk) error {
	w, err := registry.Lookup(f)
	if err != nil {
		return err
	}
	return output.WriteFile(path, func(dst io.Writer) error {
		return w.WriteChunk(dst, sheet, c)
	})
}
