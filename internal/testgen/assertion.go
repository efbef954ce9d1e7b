package testgen

// BuildCase renders one `it(...)` block asserting that selector matches an element.
// label is embedded in the test description without escaping.
func BuildCase(selector, label string) (string, error) {
	return execute(caseTmpl, caseData{Selector: selector, Label: label})
}
