// Package testgen turns the data-test attributes of a Vue component into a Vitest
// spec scaffold.
//
// The engine is pure: it reads source text and a Config and returns generated text.
// Reading components and writing spec files is left to the caller.
//
//	engine := testgen.NewEngine()
//	result, err := engine.Generate(source, "/proj/src/components/Foo.vue", testgen.Config{})
//	if result.Status() != testgen.StatusNothingToGenerate {
//		os.WriteFile(result.File.Name, []byte(result.File.Content), 0644)
//	}
package testgen

import (
	"embed"
	"io/fs"
)

//go:embed snippets
var embeddedSnippets embed.FS

// Engine generates spec files. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	snippets fs.FS
}

// NewEngine creates an engine using the built-in import snippet
func NewEngine() *Engine {
	sub, err := fs.Sub(embeddedSnippets, "snippets")
	if err != nil {
		// "snippets" is a valid path, fs.Sub only fails on invalid names
		panic(err)
	}
	return NewEngineWithFS(sub)
}

// NewEngineWithFS creates an engine reading ImportSnippetName from fsys
func NewEngineWithFS(fsys fs.FS) *Engine {
	return &Engine{snippets: fsys}
}

// Generate scans sourceText for markers and assembles the spec file for sourcePath
func (e *Engine) Generate(sourceText, sourcePath string, cfg Config) (Result, error) {
	doc := NewSourceDocument(sourceText, sourcePath)
	return e.Assemble(doc, ScanMarkers(doc.Text), cfg)
}
