package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter"
)

var (
	buildOut     string
	buildRows    int
	buildComma   string
	buildCharset string
)

var buildCmd = &cobra.Command{
	Use:   "build <table.csv|table.json>",
	Short: "Rebuild a csv or json table into a multi-sheet workbook",
	Long: `Build reads a csv or json table and writes it to an xlsx or ods workbook,
starting a new sheet (Sheet1, Sheet2, ...) every --rows data rows. Each sheet
repeats the table header in its first row.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVarP(&buildOut, "out", "o", "", "Output workbook (.xlsx or .ods)")
	f.IntVarP(&buildRows, "rows", "n", xlsxcutter.MaxSheetRows, "Maximum data rows per sheet")
	f.StringVar(&buildComma, "comma", ",", "CSV field delimiter")
	f.StringVar(&buildCharset, "charset", "", "CSV source charset, e.g. windows-1252 (default: utf-8)")
	_ = buildCmd.MarkFlagRequired("out")
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if utf8.RuneCountInString(buildComma) != 1 {
		return fmt.Errorf("invalid comma %q: must be a single character", buildComma)
	}
	comma, _ := utf8.DecodeRuneInString(buildComma)

	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	result, err := xlsxcutter.Rebuild(commandContext(cmd), xlsxcutter.RebuildRequest{
		Source:          inputPath,
		MaxRowsPerSheet: buildRows,
		Output:          buildOut,
		Comma:           comma,
		Charset:         buildCharset,
		Logger:          &logger,
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if len(result.Written) == 0 && !jsonOut {
		fmt.Fprintln(cmd.ErrOrStderr(), "The table has no data rows; nothing written.")
		return nil
	}
	return reportResult(cmd, result)
}
