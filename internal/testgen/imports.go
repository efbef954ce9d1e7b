package testgen

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode"
)

// ImportSnippetName is the import snippet file inside the engine's snippet FS
const ImportSnippetName = "imports.txt"

// AliasedPath returns the part of componentPath after the first rootMarker, without
// its extension: "/proj/src/components/Foo.vue" with "/src/" gives "components/Foo".
// ok is false when rootMarker does not occur in the path.
func AliasedPath(componentPath, rootMarker string) (aliased string, ok bool) {
	if rootMarker == "" {
		return "", false
	}

	p := normalizePath(componentPath)
	idx := strings.Index(p, rootMarker)
	if idx == -1 {
		return "", false
	}

	rest := p[idx+len(rootMarker):]
	return strings.TrimSuffix(rest, path.Ext(rest)), true
}

// ComponentImport builds the import statement for the component under test.
// A non-nil warning means the aliased path could not be derived and the relative
// import was used instead.
func ComponentImport(baseName, componentPath string, cfg Config) (string, *Warning) {
	cfg = cfg.withDefaults()
	identifier := ComponentIdentifier(baseName)
	ext := path.Ext(normalizePath(componentPath))

	relative := fmt.Sprintf("import %s from './%s%s'", identifier, baseName, ext)
	if cfg.LocalPath {
		return relative, nil
	}

	aliased, ok := AliasedPath(componentPath, cfg.RootMarker)
	if !ok {
		return relative, &Warning{
			Code:    WarnMissingRootSegment,
			Message: fmt.Sprintf("no %q segment in %s, using relative import", cfg.RootMarker, componentPath),
			Err:     ErrMissingRootSegment,
		}
	}

	return fmt.Sprintf("import %s from '%s%s%s'", identifier, cfg.AliasPrefix, aliased, ext), nil
}

// BuildImports renders the import block: snippet with the component import, the
// user's extra imports, then one blank line. Without a readable snippet only the
// extra imports are emitted.
func (e *Engine) BuildImports(baseName, componentPath string, cfg Config) (string, []Warning) {
	var warnings []Warning

	componentImport, warning := ComponentImport(baseName, componentPath, cfg)
	if warning != nil {
		warnings = append(warnings, *warning)
	}

	var b strings.Builder

	snippet, err := fs.ReadFile(e.snippets, ImportSnippetName)
	if err != nil {
		warnings = append(warnings, Warning{
			Code:    WarnBoilerplateUnavailable,
			Message: fmt.Sprintf("failed to read the import snippet: %v", err),
			Err:     fmt.Errorf("%w: %w", ErrBoilerplateUnavailable, err),
		})
	} else {
		text := strings.ReplaceAll(string(snippet), Placeholder, componentImport)
		b.WriteString(strings.TrimRight(text, "\r\n"))
		b.WriteString("\n")
	}

	if cfg.ExtraImports != "" {
		b.WriteString(cfg.ExtraImports)
		if !strings.HasSuffix(cfg.ExtraImports, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	return b.String(), warnings
}

// ComponentIdentifier upper-cases the first character of baseName
func ComponentIdentifier(baseName string) string {
	if baseName == "" {
		return ""
	}
	runes := []rune(baseName)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
