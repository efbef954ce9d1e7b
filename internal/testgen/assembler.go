package testgen

import (
	"fmt"
	"strings"
	"text/template"
)

// Assemble builds the spec file for doc from markers.
//
// Output order is fixed: import block, wrapper helper, describe block with one case
// per marker in markers order. An empty marker list yields a Result without a file.
// The returned error is reserved for template execution failures.
func (e *Engine) Assemble(doc SourceDocument, markers []string, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	if cfg.Distinct {
		markers = distinctMarkers(markers)
	}
	if len(markers) == 0 {
		return Result{Markers: markers}, nil
	}

	identifier := ComponentIdentifier(doc.BaseName)
	imports, warnings := e.BuildImports(doc.BaseName, doc.Path, cfg)

	wrapper, err := renderWrapper(identifier, cfg.Scaffold)
	if err != nil {
		return Result{}, err
	}

	cases := make([]string, 0, len(markers))
	for _, marker := range markers {
		selector := ResolveSelector(marker, cfg.SelectorTemplate, cfg.Quote)
		c, err := BuildCase(selector, marker)
		if err != nil {
			return Result{}, err
		}
		cases = append(cases, c)
	}

	suite, err := execute(suiteTmpl, suiteData{Component: identifier, Cases: cases})
	if err != nil {
		return Result{}, err
	}

	return Result{
		File: &GeneratedTestFile{
			Name:    SpecFileName(doc.BaseName, cfg.Extension),
			Content: imports + wrapper + suite,
		},
		Markers:  markers,
		Warnings: warnings,
	}, nil
}

// SpecFileName returns "<baseName>.spec.<ext>"
func SpecFileName(baseName, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return baseName + ".spec." + strings.TrimPrefix(ext, ".")
}

func renderWrapper(identifier string, scaffold Scaffold) (string, error) {
	tmpl := fullWrapperTmpl
	if scaffold == ScaffoldMinimal {
		tmpl = minimalWrapperTmpl
	}
	return execute(tmpl, wrapperData{Component: identifier})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}
