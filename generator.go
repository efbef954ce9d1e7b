package vuetest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Pr0ny/vue-template-tester/internal/testgen"
)

// Config holds batch generation settings
type Config struct {
	Paths       []string       // Files, directories or globs: ["src/**/*.vue"]
	Generation  testgen.Config // Per-file engine settings
	SnippetDir  string         // Directory holding an imports.txt that replaces the built-in snippet
	IgnoreFile  string         // ".gitignore"; empty disables ignore rules
	DryRun      bool           // Render specs without writing them
	NoClobber   bool           // Skip components whose spec file already exists
	Concurrency int            // Files generated in parallel (0 = number of CPUs)
}

// FileStatus is the outcome for one source file
type FileStatus string

// File outcomes
const (
	FileGenerated    FileStatus = "generated"
	FileWithWarnings FileStatus = "generated-with-warnings"
	FileNothing      FileStatus = "nothing-to-generate"
	FileSkipped      FileStatus = "skipped"
	FileFailed       FileStatus = "failed"
)

// FileResult contains the outcome for one component
type FileResult struct {
	Source   string            // Component path as discovered
	Output   string            // Spec path; empty when no spec was produced
	Status   FileStatus        // See File* constants
	Markers  []string          // Markers turned into test cases
	Warnings []testgen.Warning // Fallbacks taken while generating
	Reason   string            // Why the file was skipped
	Content  string            // Rendered spec (kept for dry runs)
	Err      error             // Read, render or write failure
}

// GenerateResult contains batch statistics
type GenerateResult struct {
	Files          []FileResult // In discovery order
	Stats          ScanStats
	FilesGenerated int
	FilesNothing   int
	FilesSkipped   int
	FilesFailed    int
	WarningCount   int
}

// SpecWriter persists generated spec files
type SpecWriter interface {
	Exists(path string) (bool, error)
	WriteFile(path string, data []byte) error
}

// OSWriter writes spec files to the local file system
type OSWriter struct{}

// Exists reports whether path exists
func (OSWriter) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFile writes data to path with 0644 permissions
func (OSWriter) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Generator runs the engine over many components
type Generator struct {
	config Config
	engine *testgen.Engine
	writer SpecWriter
}

// NewGenerator creates a generator writing through writer
func NewGenerator(config Config, writer SpecWriter) *Generator {
	engine := testgen.NewEngine()
	if config.SnippetDir != "" {
		engine = testgen.NewEngineWithFS(os.DirFS(config.SnippetDir))
	}

	return &Generator{
		config: config,
		engine: engine,
		writer: writer,
	}
}

// Generate is the main entry point: discover components, then generate and write their specs
func Generate(ctx context.Context, config Config) (*GenerateResult, error) {
	return NewGenerator(config, OSWriter{}).Run(ctx)
}

// Run generates specs for every discovered file.
// Per-file failures are recorded in the result; only discovery errors and
// cancellation abort the run.
func (g *Generator) Run(ctx context.Context) (*GenerateResult, error) {
	// 1. Discover files
	files, stats, err := DiscoverFiles(g.config.Paths, g.config.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	slog.Debug("Discovered files", "scanned", stats.FilesScanned, "skipped", stats.FilesSkipped)

	// 2. Generate concurrently; each result goes to its own slot so order is stable
	results := make([]FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.concurrency())

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = g.generateFile(file)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	// 3. Summarise
	result := &GenerateResult{Files: results, Stats: stats}
	for _, r := range results {
		result.WarningCount += len(r.Warnings)
		switch r.Status {
		case FileGenerated, FileWithWarnings:
			result.FilesGenerated++
		case FileNothing:
			result.FilesNothing++
		case FileSkipped:
			result.FilesSkipped++
		case FileFailed:
			result.FilesFailed++
		}
	}

	return result, nil
}

func (g *Generator) concurrency() int {
	if g.config.Concurrency > 0 {
		return g.config.Concurrency
	}
	return runtime.NumCPU()
}

// generateFile reads one component, renders its spec and writes it next to the source
func (g *Generator) generateFile(path string) FileResult {
	fr := FileResult{Source: path}

	if !isVueFile(path) {
		fr.Status = FileSkipped
		fr.Reason = "not a Vue (.vue) file"
		return fr
	}

	// #nosec G304 - path comes from the user's own patterns
	content, err := os.ReadFile(path)
	if err != nil {
		fr.Status = FileFailed
		fr.Err = fmt.Errorf("read %s: %w", path, err)
		return fr
	}

	// Import paths are derived from the absolute source path
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	result, err := g.engine.Generate(string(content), absPath, g.config.Generation)
	if err != nil {
		fr.Status = FileFailed
		fr.Err = fmt.Errorf("generate %s: %w", path, err)
		return fr
	}

	fr.Markers = result.Markers
	fr.Warnings = result.Warnings
	for _, w := range result.Warnings {
		slog.Warn("Generation fallback", "source", path, "code", string(w.Code), "message", w.Message)
	}

	switch result.Status() {
	case testgen.StatusNothingToGenerate:
		fr.Status = FileNothing
		fr.Reason = "no data-test attributes found"
		return fr
	case testgen.StatusGeneratedWithWarnings:
		fr.Status = FileWithWarnings
	default:
		fr.Status = FileGenerated
	}

	fr.Output = filepath.Join(filepath.Dir(path), result.File.Name)
	fr.Content = result.File.Content

	if g.config.NoClobber {
		exists, err := g.writer.Exists(fr.Output)
		if err != nil {
			fr.Status = FileFailed
			fr.Err = fmt.Errorf("stat %s: %w", fr.Output, err)
			return fr
		}
		if exists {
			fr.Status = FileSkipped
			fr.Reason = "spec file already exists"
			return fr
		}
	}

	if g.config.DryRun {
		return fr
	}

	if err := g.writer.WriteFile(fr.Output, []byte(fr.Content)); err != nil {
		fr.Status = FileFailed
		fr.Err = err
		return fr
	}

	slog.Debug("Generated spec", "source", path, "output", fr.Output, "cases", len(fr.Markers))
	return fr
}
