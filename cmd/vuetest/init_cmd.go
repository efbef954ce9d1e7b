package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .vuetest.yaml config file",
	Long:  `Create a .vuetest.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# vuetest configuration
# Flags override VUETEST_* environment variables, which override this file.
# Unset generation keys fall back to the settings record (vuetest settings show).

verbose: false
ignore-file: .gitignore
settings: .vuetest/settings.yaml

log:
  filename: .vuetest/vuetest.log
  level: info
  max-size: 10       # megabytes
  max-backups: 3
  max-age: 28        # days
  compress: true

# Generation settings
generate:
  paths:
    - "src/**/*.vue"
  # Uncomment to override the settings record for everyone using this file
  # imports: "import { createPinia } from 'pinia'"
  # selector: "byTestId($attr)" # empty uses [data-test=...]
  # local-path: false           # true imports ./Name.vue instead of @/...
  # root-marker: /src/
  # alias-prefix: "@/"
  # quote: single               # single | double
  # scaffold: full              # full | minimal
  # ext: ts
  # distinct: false
  no-clobber: false
  concurrency: 0     # 0 = number of CPUs
  output-format: text
  strict: false

# Marker listing
scan:
  paths:
    - "src/**/*.vue"
  output-format: text
  print-lines: true
  table: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
