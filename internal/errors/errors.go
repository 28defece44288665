// Package errors provides structured error handling for the chlog CLI:
// categorized errors with actionable remediation guidance, and colored
// terminal formatting.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/raveheart1/chlog/internal/changelog"
)

// Category represents the type of error that occurred.
type Category int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument Category = iota
	// Configuration errors are caused by an invalid or missing config file.
	Configuration
	// Schema errors are caused by a malformed changelog metadata block.
	Schema
	// Attribution errors are caused by unknown projects or sections.
	Attribution
	// Extraction errors occur when no title can be derived from a commit.
	Extraction
	// Runtime errors occur while reading the repository or its commits.
	Runtime
)

// String returns a human-readable name for the error category.
func (c Category) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Schema:
		return "Commit Metadata Error"
	case Attribution:
		return "Attribution Error"
	case Extraction:
		return "Extraction Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error.
	Category Category
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NewArgumentError creates an argument error with remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap wraps an existing error with a category, preserving its message.
func Wrap(err error, category Category, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation}
}

// WrapWithMessage wraps an error with a custom message prefix and category.
func WrapWithMessage(err error, category Category, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// Classify maps any error to a structured CLIError. Errors from the
// generation pass carry the offending commit text in their message; the
// remediation points at history editing since the commit itself must change.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}

	var schemaErr *changelog.SchemaError
	if stderrors.As(err, &schemaErr) {
		return Wrap(err, Schema,
			"fix the metadata block in the offending commit (e.g. git rebase -i)",
			"or mark the commit with 'changelog: skip' if it has no user-facing change",
		)
	}

	var attrErr *changelog.AttributionError
	if stderrors.As(err, &attrErr) {
		return Wrap(err, Attribution,
			"check the project and section names against the config file",
		)
	}

	var extrErr *changelog.ExtractionError
	if stderrors.As(err, &extrErr) {
		return Wrap(err, Extraction,
			"add a 'title' key to the metadata block or give the commit a message body",
		)
	}

	return Wrap(err, Runtime)
}

// IsCLIError checks if an error is a CLIError.
func IsCLIError(err error) bool {
	var cliErr *CLIError
	return stderrors.As(err, &cliErr)
}
