package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/output"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/parser"
)

// defaultRowsPerFile is the chunk size used when --rows is not given.
const defaultRowsPerFile = 50_000

var (
	splitSheet     string
	splitStart     string
	splitEnd       string
	splitRows      int
	splitOutDir    string
	splitName      string
	splitPrintArea bool
	splitFormats   = newFormatList(output.FormatXLSX)
)

var splitCmd = &cobra.Command{
	Use:   "split <workbook>",
	Short: "Split a worksheet range into files of at most N data rows",
	Long: `Split reads the table starting at --start on --sheet (the first row is the
header) and writes its data rows in chunks of at most --rows rows. Every
chunk is written once per --format as {name}_part{NNN}.{ext}.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	f := splitCmd.Flags()
	f.StringVar(&splitSheet, "sheet", "", "Worksheet name (default: first sheet)")
	f.StringVar(&splitStart, "start", "A1", "Top-left cell of the table (header row)")
	f.StringVar(&splitEnd, "end", "", "Bottom-right cell of the table (default: last used cell)")
	f.IntVarP(&splitRows, "rows", "n", defaultRowsPerFile, "Maximum data rows per output file")
	f.StringVarP(&splitOutDir, "out", "o", "", "Output directory (default: the workbook's directory)")
	f.VarP(splitFormats, "format", "f", "Output formats, comma-separated: xlsx, csv, json, ods")
	f.StringVar(&splitName, "name", "", "Base name of output files (default: {workbook}_{sheet})")
	f.BoolVar(&splitPrintArea, "print-area", false, "Use the sheet's print area as the range when one is defined")
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	sheet := splitSheet
	if sheet == "" {
		names, err := parser.SheetNames(inputPath)
		if err != nil {
			return fmt.Errorf("reading sheet names: %w", err)
		}
		if len(names) == 0 {
			return fmt.Errorf("%s has no worksheets", inputPath)
		}
		sheet = names[0]
	}
	outDir := splitOutDir
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}

	result, err := xlsxcutter.Split(commandContext(cmd), xlsxcutter.SplitRequest{
		Source:       inputPath,
		Sheet:        sheet,
		Start:        splitStart,
		End:          splitEnd,
		RowsPerChunk: splitRows,
		OutputDir:    outDir,
		Formats:      splitFormats.Formats(),
		BaseName:     splitName,
		UsePrintArea: splitPrintArea,
		Logger:       &logger,
	})
	if err != nil {
		if result != nil && len(result.Written) > 0 {
			reportResult(cmd, result)
		}
		return fmt.Errorf("split failed: %w", err)
	}
	return reportResult(cmd, result)
}

// reportResult prints result and turns partial failures into exit code 2.
func reportResult(cmd *cobra.Command, result *xlsxcutter.Result) error {
	if jsonOut {
		if err := jsonPrint(result); err != nil {
			return err
		}
	} else {
		for _, p := range result.Written {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		for _, f := range result.Failures {
			fmt.Fprintln(cmd.ErrOrStderr(), "failed:", f.Error())
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Created %d file(s).\n", len(result.Written))
	}
	if !result.OK() {
		return &ExitError{Code: 2}
	}
	return nil
}
