package testgen

import (
	"path"
	"strings"
)

// SourceDocument is one component file as read from disk
type SourceDocument struct {
	Text     string // Raw file content
	BaseName string // "Foo" for /proj/src/components/Foo.vue
	Path     string // Full path as given by the caller
}

// NewSourceDocument derives the base name from path
func NewSourceDocument(text, filePath string) SourceDocument {
	base := path.Base(normalizePath(filePath))
	return SourceDocument{
		Text:     text,
		BaseName: strings.TrimSuffix(base, path.Ext(base)),
		Path:     filePath,
	}
}

// normalizePath converts Windows separators so path handling is identical on every OS
func normalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Quote selects the string literal convention used in generated selectors
type Quote string

// Supported quote conventions
const (
	QuoteSingle Quote = "single" // '[data-test="m"]' and 'm' (default)
	QuoteDouble Quote = "double" // "[data-test='m']" and "m"
)

// Scaffold selects how much wrapper boilerplate is emitted
type Scaffold string

// Supported scaffold variants
const (
	ScaffoldFull    Scaffold = "full"    // vi.mock calls, props, createWrapper (default)
	ScaffoldMinimal Scaffold = "minimal" // mocks + createWrapper only
)

// Default values applied when the corresponding Config field is empty
const (
	DefaultRootMarker  = "/src/"
	DefaultAliasPrefix = "@/"
	DefaultExtension   = "ts"

	// Placeholder is replaced by the quoted marker in selector templates and by the
	// component import statement in the import snippet.
	Placeholder = "$attr"
)

// Config holds the per-call generation settings
type Config struct {
	ExtraImports     string // Appended verbatim after the import snippet
	SelectorTemplate string // "Sel($attr)"; empty uses the default attribute selector
	LocalPath        bool   // true: import from ./<base>; false: aliased import from RootMarker
	DataTest         string // Persisted but not used by generation

	RootMarker  string   // Source-root segment searched in the path (default "/src/")
	AliasPrefix string   // Prefix of aliased imports (default "@/")
	Quote       Quote    // Selector quoting (default single)
	Scaffold    Scaffold // Wrapper boilerplate variant (default full)
	Extension   string   // Test file extension without dot (default "ts")
	Distinct    bool     // Drop repeated markers before assembly
}

// withDefaults fills empty fields with their documented defaults
func (c Config) withDefaults() Config {
	if c.RootMarker == "" {
		c.RootMarker = DefaultRootMarker
	}
	if c.AliasPrefix == "" {
		c.AliasPrefix = DefaultAliasPrefix
	}
	if c.Quote == "" {
		c.Quote = QuoteSingle
	}
	if c.Scaffold == "" {
		c.Scaffold = ScaffoldFull
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	c.Extension = strings.TrimPrefix(c.Extension, ".")
	return c
}

// GeneratedTestFile is the rendered test file
type GeneratedTestFile struct {
	Name    string // "Foo.spec.ts"
	Content string
}

// Status summarises a generation call
type Status int

const (
	// StatusGenerated means a complete file was produced.
	StatusGenerated Status = iota
	// StatusGeneratedWithWarnings means a file was produced through a fallback path.
	StatusGeneratedWithWarnings
	// StatusNothingToGenerate means the source had no markers; no file was produced.
	StatusNothingToGenerate
)

func (s Status) String() string {
	switch s {
	case StatusGenerated:
		return "generated"
	case StatusGeneratedWithWarnings:
		return "generated-with-warnings"
	case StatusNothingToGenerate:
		return "nothing-to-generate"
	default:
		return "unknown"
	}
}

// Result is the outcome of one generation call
type Result struct {
	File     *GeneratedTestFile // nil when Status() is StatusNothingToGenerate
	Markers  []string           // Markers the suite was built from
	Warnings []Warning
}

// Status reports which of the three outcomes this result represents
func (r Result) Status() Status {
	if r.File == nil {
		return StatusNothingToGenerate
	}
	if len(r.Warnings) > 0 {
		return StatusGeneratedWithWarnings
	}
	return StatusGenerated
}
