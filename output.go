package vuetest

import (
	"fmt"
	"strings"
)

// OutputFormat represents the report format for generate and scan
type OutputFormat string

const (
	// OutputText is the human-readable terminal report
	OutputText OutputFormat = "text"
	// OutputJSON is the machine-readable report
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// An empty flag means text; an unknown value is an error.
func DetermineOutputFormat(formatFlag string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(formatFlag)) {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", formatFlag)
	}
}

// ExitCode maps a generate result to a process exit code.
// Failures always exit 1; warnings only count when strict is set.
func ExitCode(result *GenerateResult, strict bool) int {
	if result == nil {
		return 0
	}
	if result.FilesFailed > 0 {
		return 1
	}
	if strict && result.WarningCount > 0 {
		return 1
	}
	return 0
}
