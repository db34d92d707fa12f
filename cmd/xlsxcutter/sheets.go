package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/parser"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <workbook>",
	Short: "List the worksheets of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheets,
}

func runSheets(cmd *cobra.Command, args []string) error {
	names, err := parser.SheetNames(args[0])
	if err != nil {
		return err
	}
	if jsonOut {
		return jsonPrint(names)
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
