package testgen

import "errors"

// Recoverable conditions. Generation continues through a fallback path and the
// condition is attached to the Result as a Warning.
var (
	ErrMissingRootSegment     = errors.New("root path segment not found in component path")
	ErrBoilerplateUnavailable = errors.New("import snippet unavailable")
)

// WarningCode identifies a recoverable condition in reports
type WarningCode string

// Warning codes
const (
	WarnMissingRootSegment     WarningCode = "missing-root-segment"
	WarnBoilerplateUnavailable WarningCode = "boilerplate-unavailable"
)

// Warning describes a fallback taken during generation
type Warning struct {
	Code    WarningCode
	Message string // "no \"/src/\" segment in /tmp/Foo.vue, using relative import"
	Err     error  // Wraps one of the Err* sentinels
}

func (w Warning) Error() string {
	return w.Message
}

func (w Warning) Unwrap() error {
	return w.Err
}
