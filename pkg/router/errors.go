package router

import "fmt"

// PatternError indicates a path template that could not be compiled.
// It is fatal at registration time.
type PatternError struct {
	Template string
	Reason   string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid path template %q: %s", e.Template, e.Reason)
}

// DuplicateRouteError indicates that a template was registered twice.
// It is fatal at registration time.
type DuplicateRouteError struct {
	Template string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route detected: %q - URL paths must be unique", e.Template)
}

// ConversionError indicates a captured path segment that could not be
// coerced to its declared placeholder type. It surfaces as a
// handler-invocation failure, not a dispatch failure.
type ConversionError struct {
	Name  string
	Type  PlaceholderType
	Value string
	Cause error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert path segment %q (%s) to %s: %v", e.Value, e.Name, e.Type, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
