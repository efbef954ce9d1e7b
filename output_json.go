package vuetest

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema for generate
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	DryRun    bool        `json:"dry_run"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
}

// JSONSummary contains per-status file counts
type JSONSummary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesGenerated  int `json:"files_generated"`
	FilesNothing    int `json:"files_nothing_to_generate"`
	FilesSkipped    int `json:"files_skipped"`
	FilesFailed     int `json:"files_failed"`
	Warnings        int `json:"warnings"`
}

// JSONFile is the outcome for a single component
type JSONFile struct {
	Source   string        `json:"source"`
	Output   string        `json:"output,omitempty"`
	Status   string        `json:"status"`
	Markers  []string      `json:"markers"`
	Warnings []JSONWarning `json:"warnings,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Error    string        `json:"error,omitempty"`
	Content  string        `json:"content,omitempty"` // Only set for dry runs
}

// JSONWarning is a fallback taken while generating
type JSONWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSONScanOutput is the schema for the scan command
type JSONScanOutput struct {
	Version      string       `json:"version"`
	FilesScanned int          `json:"files_scanned"`
	Markers      []JSONMarker `json:"markers"`
}

// JSONMarker is a marker with its position
type JSONMarker struct {
	Value  string `json:"value"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// WriteJSON writes the generate result as JSON
func WriteJSON(w io.Writer, result *GenerateResult, version string, dryRun bool) error {
	return encodeJSON(w, buildJSONOutput(result, version, dryRun))
}

// WriteScanJSON writes scanned markers as JSON
func WriteScanJSON(w io.Writer, refs []MarkerReference, stats ScanStats, version string) error {
	out := JSONScanOutput{
		Version:      version,
		FilesScanned: stats.FilesScanned,
		Markers:      make([]JSONMarker, len(refs)),
	}
	for i, ref := range refs {
		out.Markers[i] = JSONMarker{
			Value:  ref.Value,
			File:   ref.Location.File,
			Line:   ref.Location.Line,
			Column: ref.Location.Column,
		}
	}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// buildJSONOutput converts GenerateResult to JSONOutput
func buildJSONOutput(result *GenerateResult, version string, dryRun bool) JSONOutput {
	files := make([]JSONFile, len(result.Files))
	for i, fr := range result.Files {
		markers := fr.Markers
		if markers == nil {
			markers = []string{}
		}

		jf := JSONFile{
			Source:  fr.Source,
			Output:  fr.Output,
			Status:  string(fr.Status),
			Markers: markers,
			Reason:  fr.Reason,
		}
		if fr.Err != nil {
			jf.Error = fr.Err.Error()
		}
		if dryRun {
			jf.Content = fr.Content
		}
		for _, w := range fr.Warnings {
			jf.Warnings = append(jf.Warnings, JSONWarning{Code: string(w.Code), Message: w.Message})
		}
		files[i] = jf
	}

	return JSONOutput{
		Version:   version,
		Timestamp: time.Now().Format(time.RFC3339),
		DryRun:    dryRun,
		Summary: JSONSummary{
			FilesDiscovered: result.Stats.FilesDiscovered,
			FilesGenerated:  result.FilesGenerated,
			FilesNothing:    result.FilesNothing,
			FilesSkipped:    result.FilesSkipped,
			FilesFailed:     result.FilesFailed,
			Warnings:        result.WarningCount,
		},
		Files: files,
	}
}
