// Package report renders generate and scan results for the terminal.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	vuetest "github.com/Pr0ny/vue-template-tester"
)

// Options controls what the reporter prints
type Options struct {
	UseColors  bool // Force colors even when stdout is not a TTY
	PrintLines bool // Print the source line and a caret under each marker
	ShowSpecs  bool // Print rendered spec content (dry runs)
}

// Reporter handles formatting and outputting results
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	showSpecs  bool
}

// NewReporter creates a new reporter with the given options
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  ShouldUseColors(opts.UseColors),
		printLines: opts.PrintLines,
		showSpecs:  opts.ShowSpecs,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintFiles outputs one line per component plus its warnings
func (r *Reporter) PrintFiles(result *vuetest.GenerateResult) {
	for _, fr := range result.Files {
		r.printFile(fr)
	}
}

func (r *Reporter) printFile(fr vuetest.FileResult) {
	source := vuetest.GetRelativePath(fr.Source)

	switch fr.Status {
	case vuetest.FileGenerated, vuetest.FileWithWarnings:
		fmt.Fprintf(r.w, "%s %s -> %s (%s)\n",
			RenderStyle(StyleGreen, "generated", r.useColors),
			source,
			vuetest.GetRelativePath(fr.Output),
			pluralizeCount(len(fr.Markers), "case", "cases"))
	case vuetest.FileNothing:
		fmt.Fprintf(r.w, "%s %s %s\n",
			RenderStyle(StyleGray, "nothing", r.useColors),
			source,
			RenderStyle(StyleGray, "("+fr.Reason+")", r.useColors))
	case vuetest.FileSkipped:
		fmt.Fprintf(r.w, "%s %s %s\n",
			RenderStyle(StyleGray, "skipped", r.useColors),
			source,
			RenderStyle(StyleGray, "("+fr.Reason+")", r.useColors))
	case vuetest.FileFailed:
		fmt.Fprintf(r.w, "%s %s: %v\n",
			RenderStyle(StyleRed, "failed", r.useColors),
			source,
			fr.Err)
	}

	for _, w := range fr.Warnings {
		fmt.Fprintf(r.w, "\t%s %s\n",
			RenderStyle(StyleYellow, "warning ("+string(w.Code)+"):", r.useColors),
			w.Message)
	}

	if r.showSpecs && fr.Content != "" {
		fmt.Fprintf(r.w, "%s\n%s\n", RenderStyle(StyleCyan, "--- "+vuetest.GetRelativePath(fr.Output), r.useColors), fr.Content)
	}
}

// PrintSummary outputs per-status counts for a generate run
func (r *Reporter) PrintSummary(result *vuetest.GenerateResult) {
	fmt.Fprintln(r.w, "")

	total := len(result.Files)
	fmt.Fprintf(r.w, "%s:\n", pluralizeCount(total, "file", "files"))
	fmt.Fprintf(r.w, "* generated: %d\n", result.FilesGenerated)
	fmt.Fprintf(r.w, "* nothing to generate: %d\n", result.FilesNothing)
	fmt.Fprintf(r.w, "* skipped: %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "* failed: %d\n", result.FilesFailed)

	if result.WarningCount > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleYellow,
			fmt.Sprintf("%s produced with fallbacks", pluralizeCount(result.WarningCount, "warning", "warnings")),
			r.useColors))
	}

	if result.Stats.FilesSkipped > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			fmt.Sprintf("%s ignored (spec files or ignore rules)", pluralizeCount(result.Stats.FilesSkipped, "file", "files")),
			r.useColors))
	}

	if result.Stats.FilesDiscovered == 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: pass a .vue file, a directory or a glob such as 'src/**/*.vue'", r.useColors))
	}
}

// PrintMarkers outputs markers in file:line:col format
func (r *Reporter) PrintMarkers(refs []vuetest.MarkerReference) {
	sorted := sortedMarkers(refs)

	for _, ref := range sorted {
		loc := ref.Location
		location := fmt.Sprintf("%s:%d:%d:", vuetest.GetRelativePath(loc.File), loc.Line, loc.Column)
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleCyan, location, r.useColors), ref.Value)

		if r.printLines && loc.Text != "" {
			fmt.Fprintf(r.w, "\t%s\n", loc.Text)
			caret := r.buildCaretIndicator(loc.Text, loc.Column)
			fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
		}
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Handles tabs vs spaces so the caret lines up in the terminal
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Columns count runes, not bytes
	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	prefix := runes[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintMarkerTable outputs markers grouped per file as a table
func (r *Reporter) PrintMarkerTable(refs []vuetest.MarkerReference, stats vuetest.ScanStats) {
	fmt.Fprint(r.w, renderMarkerTable(sortedMarkers(refs), stats))
}

func renderMarkerTable(refs []vuetest.MarkerReference, stats vuetest.ScanStats) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Position", "Marker"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	files := make(map[string]struct{})
	for _, ref := range refs {
		loc := ref.Location
		files[loc.File] = struct{}{}
		table.Append([]string{
			vuetest.GetRelativePath(loc.File),
			fmt.Sprintf("%d:%d", loc.Line, loc.Column),
			ref.Value,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Files %d/%d", len(files), stats.FilesScanned),
		"",
		pluralizeCount(len(refs), "marker", "markers"),
	})

	table.Render()

	return tableBuffer.String()
}

// sortedMarkers orders markers by file, then line, then column
func sortedMarkers(refs []vuetest.MarkerReference) []vuetest.MarkerReference {
	sorted := make([]vuetest.MarkerReference, len(refs))
	copy(sorted, refs)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Location, sorted[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	return sorted
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
