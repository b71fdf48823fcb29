package domain

import (
	"errors"
	"fmt"
)

// DomainError reports a malformed model element (bad arity, kind
// violation) or a goal referencing an object untyped in the initial
// atoms. It is fatal and raised before any solving begins.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "domain: " + e.Reason
}

// Errorf builds a DomainError from a format string.
func Errorf(format string, args ...any) *DomainError {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// ErrPreconditionFailed is wrapped by ApplyStep when a step's
// precondition does not hold in the current state.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrReportNotFound is returned when a report ID cannot be found in a
// plan store.
var ErrReportNotFound = errors.New("report not found")
