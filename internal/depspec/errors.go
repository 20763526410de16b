package depspec

import "fmt"

// InvalidTypeError is returned when a specifier's type is not allowed in the
// current context (e.g. a git URL where a registry name is required).
type InvalidTypeError struct {
	Raw  string
	Type Type
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid package type specifier (%s - %s)", e.Type, e.Raw)
}

// InvalidSemverError is returned when the version part of a registry
// specifier is not usable as a semver version or range.
type InvalidSemverError struct {
	Raw  string
	Spec string
}

func (e *InvalidSemverError) Error() string {
	return fmt.Sprintf("invalid package semver specifier (%s - %s)", e.Spec, e.Raw)
}

// InvalidNameError is returned when the package name is empty or breaks the
// registry naming rules.
type InvalidNameError struct {
	Raw    string
	Reason string
}

func (e *InvalidNameError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid package name (%s)", e.Raw)
	}
	return fmt.Sprintf("invalid package name (%s - %s)", e.Raw, e.Reason)
}
