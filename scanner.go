package vuetest

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/tdewolff/parse/v2"

	"github.com/Pr0ny/vue-template-tester/internal/testgen"
)

// MarkerReference is a data-test attribute found in a component
type MarkerReference struct {
	Value    string       // "save-button"
	Location FileLocation // Where it was found
}

// FileLocation tracks where a marker was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column of "data-test"
	Text   string // Source line containing the marker, without its newline
}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Spec files and gitignored files
}

// isVueFile reports whether path is a Vue single-file component
func isVueFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".vue")
}

// isSpecFile checks if path is already a test file: Foo.spec.ts, Foo.test.js
func isSpecFile(path string) bool {
	base := filepath.Base(path)
	return strings.Contains(base, ".spec.") || strings.Contains(base, ".test.")
}

// loadIgnore compiles the ignore file at path.
// Returns nil when the file is absent or unreadable.
func loadIgnore(path string) *ignore.GitIgnore {
	if path == "" {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		slog.Debug("No ignore file loaded", "path", path, "error", err)
		return nil
	}
	return gi
}

// shouldSkipFile determines if a discovered file should be excluded
//
// Two-layer filtering:
// 1. Pattern check (fast): skip generated spec/test files
// 2. Ignore check: skip ignored files (only for relative paths)
func shouldSkipFile(path string, gi *ignore.GitIgnore) bool {
	if isSpecFile(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are outside the project's ignore rules
	if gi != nil && !filepath.IsAbs(path) && gi.MatchesPath(filepath.ToSlash(path)) {
		return true
	}

	return false
}

// expandPattern turns a directory into a recursive .vue glob
func expandPattern(pattern string) string {
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		return filepath.Join(pattern, "**", "*.vue")
	}
	return pattern
}

// DiscoverFiles expands glob patterns to files and tracks statistics.
// Directories are searched recursively for .vue files.
func DiscoverFiles(patterns []string, ignoreFile string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}
	gi := loadIgnore(ignoreFile)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(expandPattern(pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}

			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// ScanFiles lists the markers of every Vue file matching patterns
func ScanFiles(patterns []string, ignoreFile string) ([]MarkerReference, ScanStats, error) {
	files, stats, err := DiscoverFiles(patterns, ignoreFile)
	if err != nil {
		return nil, stats, err
	}

	var allRefs []MarkerReference
	for _, file := range files {
		if !isVueFile(file) {
			continue
		}

		refs, err := scanFile(file)
		if err != nil {
			slog.Warn("Failed to scan file", "file", file, "error", err)
			continue
		}
		allRefs = append(allRefs, refs...)
	}

	return allRefs, stats, nil
}

// scanFile reads a single file and locates its markers
func scanFile(filePath string) ([]MarkerReference, error) {
	// #nosec G304 - path comes from the user's own patterns
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return locateMarkers(content, filePath), nil
}

// locateMarkers resolves the line and column of every marker in content
func locateMarkers(content []byte, file string) []MarkerReference {
	matches := testgen.ScanMarkerMatches(string(content))
	refs := make([]MarkerReference, 0, len(matches))

	for _, m := range matches {
		line, col, _ := parse.Position(bytes.NewReader(content), m.Offset)
		refs = append(refs, MarkerReference{
			Value: m.Value,
			Location: FileLocation{
				File:   file,
				Line:   line,
				Column: col,
				Text:   lineAt(content, m.Offset),
			},
		})
	}

	return refs
}

// lineAt returns the line of content containing offset, without its newline
func lineAt(content []byte, offset int) string {
	start := bytes.LastIndexByte(content[:offset], '\n') + 1
	end := bytes.IndexByte(content[offset:], '\n')
	if end == -1 {
		return string(content[start:])
	}
	return strings.TrimSuffix(string(content[start:offset+end]), "\r")
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
