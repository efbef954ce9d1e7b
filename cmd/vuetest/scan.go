package main

import (
	"fmt"

	"github.com/spf13/cobra"

	vuetest "github.com/Pr0ny/vue-template-tester"
	"github.com/Pr0ny/vue-template-tester/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "List data-test markers with their positions",
	Long:  `Print every data-test attribute found in the matched components as file:line:col.`,
	RunE:  runScan,
}

func init() {
	f := scanCmd.Flags()
	f.String("output-format", "", "Output format: text|json")
	f.Bool("print-lines", true, "Show the source line with a caret under each marker")
	f.Bool("table", false, "Print markers as a table")
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := resolvePaths(args, "scan.paths")
	ignoreFile := getStringWithFallback("ignore-file", "ignore-file", defaultIgnoreFile)

	format, err := vuetest.DetermineOutputFormat(getStringWithFallback("output-format", "scan.output-format", ""))
	if err != nil {
		return err
	}

	refs, stats, err := vuetest.ScanFiles(paths, ignoreFile)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}

	w := cmd.OutOrStdout()
	if format == vuetest.OutputJSON {
		return vuetest.WriteScanJSON(w, refs, stats, version)
	}

	reporter := report.NewReporter(w, report.Options{
		UseColors:  getBoolWithFallback("color", "color", false),
		PrintLines: getBoolWithFallback("print-lines", "scan.print-lines", true),
	})
	if getBoolWithFallback("table", "scan.table", false) {
		reporter.PrintMarkerTable(refs, stats)
		return nil
	}
	reporter.PrintMarkers(refs)
	return nil
}
