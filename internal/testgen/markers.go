package testgen

import "regexp"

// markerPattern matches data-test="value" and data-test='value'.
// The value stops at the matching quote and never spans lines.
var markerPattern = regexp.MustCompile(`data-test=(?:"([^"\n]*)"|'([^'\n]*)')`)

// MarkerMatch is one data-test attribute found in source text
type MarkerMatch struct {
	Value  string // "save-button"
	Offset int    // Byte offset of the attribute name in the source
}

// ScanMarkers returns every marker value in order of appearance, duplicates included
func ScanMarkers(source string) []string {
	matches := ScanMarkerMatches(source)
	markers := make([]string, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, m.Value)
	}
	return markers
}

// ScanMarkerMatches is ScanMarkers with the byte offset of each match
func ScanMarkerMatches(source string) []MarkerMatch {
	var matches []MarkerMatch

	for _, loc := range markerPattern.FindAllStringSubmatchIndex(source, -1) {
		// Exactly one of the two quote groups participates in a match
		value := ""
		switch {
		case loc[2] >= 0:
			value = source[loc[2]:loc[3]]
		case loc[4] >= 0:
			value = source[loc[4]:loc[5]]
		}

		matches = append(matches, MarkerMatch{
			Value:  value,
			Offset: loc[0],
		})
	}

	return matches
}

// distinctMarkers keeps the first occurrence of each marker
func distinctMarkers(markers []string) []string {
	seen := make(map[string]bool, len(markers))
	unique := make([]string, 0, len(markers))
	for _, m := range markers {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}
