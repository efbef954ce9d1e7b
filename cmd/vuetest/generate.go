package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	vuetest "github.com/Pr0ny/vue-template-tester"
	"github.com/Pr0ny/vue-template-tester/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate [paths...]",
	Aliases: []string{"gen"},
	Short:   "Generate vitest specs for Vue components",
	Long: `Scan each component for data-test attributes and write <Name>.spec.<ext>
next to it. Paths may be files, directories or doublestar globs.`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("imports", "", "Extra import lines appended to the import block")
	f.String("imports-file", "", "Read the extra import lines from a file")
	f.String("selector", "", "Selector template; $attr is replaced by the quoted marker")
	f.Bool("local-path", false, "Import the component from its own directory (./Name.vue)")
	f.String("root-marker", "", "Path segment the aliased import is taken after (default /src/)")
	f.String("alias-prefix", "", "Prefix of the aliased import (default @/)")
	f.String("quote", "", "Quote style of generated literals: single|double")
	f.String("scaffold", "", "Wrapper scaffold: full|minimal")
	f.String("ext", "", "Spec file extension (default ts)")
	f.Bool("distinct", false, "Generate one case per distinct marker")
	f.String("snippets", "", "Directory with an imports.txt replacing the built-in import snippet")
	f.Bool("dry-run", false, "Render specs without writing them")
	f.Bool("no-clobber", false, "Keep spec files that already exist")
	f.Int("concurrency", 0, "Files generated in parallel (0 = number of CPUs)")
	f.String("output-format", "", "Output format: text|json")
	f.Bool("strict", false, "Exit 1 when any fallback warning was produced")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	record := settingsStore().Load()

	config, err := buildBatchConfig(args, record)
	if err != nil {
		return err
	}

	format, err := vuetest.DetermineOutputFormat(getStringWithFallback("output-format", "generate.output-format", ""))
	if err != nil {
		return err
	}

	slog.Debug("Generating", "paths", config.Paths, "dry_run", config.DryRun, "no_clobber", config.NoClobber)

	result, err := vuetest.Generate(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		w := cmd.OutOrStdout()
		switch format {
		case vuetest.OutputJSON:
			if err := vuetest.WriteJSON(w, result, version, config.DryRun); err != nil {
				return fmt.Errorf("writing JSON: %w", err)
			}
		default:
			reporter := report.NewReporter(w, report.Options{
				UseColors: getBoolWithFallback("color", "color", false),
				ShowSpecs: config.DryRun,
			})
			reporter.PrintFiles(result)
			reporter.PrintSummary(result)
		}
	}

	strict := getBoolWithFallback("strict", "generate.strict", false)
	if vuetest.ExitCode(result, strict) != 0 {
		if result.FilesFailed > 0 {
			return fmt.Errorf("%d of %d files failed", result.FilesFailed, len(result.Files))
		}
		return fmt.Errorf("strict mode: %d warnings", result.WarningCount)
	}

	return nil
}
