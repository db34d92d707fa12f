package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcutter-go/pkg/xlsxcutter/jobs"
)

var runCmd = &cobra.Command{
	Use:   "run <jobs.yaml>",
	Short: "Run the split and build jobs listed in a YAML manifest",
	Long: `Run executes every job of a manifest in order:

  jobs:
    - name: orders
      kind: split
      source: orders.xlsx
      sheet: Orders
      rows: 50000
      out: parts
      formats: [csv, json]
    - name: archive
      kind: build
      source: archive.csv
      out: archive.xlsx

A failing job does not stop the others. Relative paths are resolved against
the manifest's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobs,
}

func runJobs(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	m, err := jobs.Load(args[0])
	if err != nil {
		return err
	}

	outcomes := jobs.Run(commandContext(cmd), m, &logger)

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	if jsonOut {
		if err := jsonPrint(outcomes); err != nil {
			return err
		}
	} else {
		for _, o := range outcomes {
			switch {
			case o.Err != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s FAILED  %v\n", o.Job, o.Err)
			case !o.Result.OK():
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s PARTIAL %d file(s), %d failure(s)\n", o.Job, len(o.Result.Written), len(o.Result.Failures))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s OK      %d file(s)\n", o.Job, len(o.Result.Written))
			}
		}
	}
	if failed > 0 {
		return &ExitError{Code: 2}
	}
	return nil
}
