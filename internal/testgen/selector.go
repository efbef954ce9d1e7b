package testgen

import "strings"

// ResolveSelector returns the selector expression embedded in a generated assertion.
//
// With an empty template the default attribute selector is returned as a string
// literal. Otherwise every Placeholder in template is replaced by the quoted marker.
// The result is not checked for syntax; a template or marker containing quotes
// produces broken test code rather than an error.
func ResolveSelector(marker, template string, quote Quote) string {
	if template == "" {
		if quote == QuoteDouble {
			return `"[data-test='` + marker + `']"`
		}
		return `'[data-test="` + marker + `"]'`
	}

	return strings.ReplaceAll(template, Placeholder, quoteLiteral(marker, quote))
}

// quoteLiteral wraps s in the quote character of the chosen convention
func quoteLiteral(s string, quote Quote) string {
	if quote == QuoteDouble {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
