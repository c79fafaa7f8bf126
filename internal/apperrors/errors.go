package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the actor's role does not permit the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConsistency indicates that derived data no longer matches its source of truth.
// Operations hitting this must fail and log; the mismatch is never silently corrected.
var ErrConsistency = errors.New("consistency error")

// ValidationError describes a failed domain validation rule and, where applicable,
// the journal lines that violated it. It wraps ErrValidation so callers can check
// the whole category with errors.Is.
type ValidationError struct {
	Rule    string   // machine-readable rule identifier, e.g. "journal.balanced"
	Message string   // human-readable explanation
	LineIDs []string // offending journal line IDs, if any
}

func (e *ValidationError) Error() string {
	if len(e.LineIDs) > 0 {
		return fmt.Sprintf("%s: %s (lines: %s)", e.Rule, e.Message, strings.Join(e.LineIDs, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for the given rule.
func NewValidationError(rule, message string, lineIDs ...string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message, LineIDs: lineIDs}
}

// ConsistencyError reports a mismatch between a derived value and its recomputed
// expectation. It wraps ErrConsistency.
type ConsistencyError struct {
	Subject  string // what was being checked, e.g. "ledger summary closing balance"
	Expected string
	Actual   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Subject, e.Expected, e.Actual)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}

// NewConsistencyError builds a ConsistencyError for the given subject.
func NewConsistencyError(subject, expected, actual string) *ConsistencyError {
	return &ConsistencyError{Subject: subject, Expected: expected, Actual: actual}
}
