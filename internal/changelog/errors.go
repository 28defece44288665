package changelog

import "fmt"

// The three fatal error classes of a generation pass. Every one carries the
// offending commit's raw text so the user can locate the commit without
// re-running with more verbosity. There is no partial-success mode; the
// first error aborts the pass.

// SchemaError reports a malformed metadata block: unknown or missing keys,
// or a shape that is neither the skip shorthand, a map nor a project list.
type SchemaError struct {
	Reason string
	Raw    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s in changelog message in commit:\n>>> %s", e.Reason, e.Raw)
}

// AttributionError reports an entry that cannot be filed: an unknown project
// or section name, or a missing project where one is required.
type AttributionError struct {
	Reason string
	Raw    string
}

func (e *AttributionError) Error() string {
	return fmt.Sprintf("%s in changelog message in commit:\n>>> %s", e.Reason, e.Raw)
}

// ExtractionError reports a commit message from which no title could be
// derived.
type ExtractionError struct {
	Reason string
	Raw    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s in commit:\n>>> %s", e.Reason, e.Raw)
}
