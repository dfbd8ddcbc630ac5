package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated is returned when no caller identity is present.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrUnauthorized is returned when the caller is not a member of the
// workspace owning the target resource.
var ErrUnauthorized = errors.New("not a member of the owning workspace")

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Kind string // e.g. "board", "workspace", "user"
	Ref  string // the identifier the caller supplied
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// FieldIssue describes a single validation violation at a field path.
type FieldIssue struct {
	Path   string // e.g. "lists[2].cards[14].labels[3]"
	Reason string
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Reason)
}

// ValidationError aggregates every violation found in a payload. It is
// always produced before any write occurs.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a violation at the given field path.
func (e *ValidationError) Add(path, format string, args ...any) {
	e.Issues = append(e.Issues, FieldIssue{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// HasIssues reports whether any violation has been recorded.
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// NewValidationError creates a ValidationError with a single issue.
func NewValidationError(path, format string, args ...any) *ValidationError {
	e := &ValidationError{}
	e.Add(path, format, args...)
	return e
}

// WriteError wraps a failure raised by a write step. Once an import batch
// exists, any WriteError marks it failed before propagating.
type WriteError struct {
	Step string // e.g. `list "To Do": cards`
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed at %s: %v", e.Step, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
