// Package scanerrors provides error types and handling for the route scanner.
package scanerrors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Collect represents failures reading the source tree. Fatal.
	Collect
	// Extract represents a matcher failing on one file. Downgraded to a
	// scan warning; never aborts.
	Extract
	// SnapshotRead represents a missing or corrupt prior snapshot.
	// Treated as "no history".
	SnapshotRead
	// SnapshotWrite represents a failure persisting the snapshot. Fatal.
	SnapshotWrite
	// Cancelled represents context cancellation.
	Cancelled
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Collect:
		return "collect"
	case Extract:
		return "extract"
	case SnapshotRead:
		return "snapshot_read"
	case SnapshotWrite:
		return "snapshot_write"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsFatal returns whether errors of this type abort the invocation.
func (t ErrorType) IsFatal() bool {
	switch t {
	case Collect, SnapshotWrite, Cancelled:
		return true
	default:
		return false
	}
}

// ScanError represents a categorized scanner error.
type ScanError struct {
	Type      ErrorType
	File      string
	Matcher   string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.File, e.Message)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewScanError creates a new ScanError.
func NewScanError(errType ErrorType, file, operation, message string, cause error) *ScanError {
	return &ScanError{
		Type:      errType,
		File:      file,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewCollectError creates a source-tree read error.
func NewCollectError(file string, cause error) *ScanError {
	return NewScanError(Collect, file, "collect", "reading source tree failed", cause)
}

// NewExtractError creates a per-file per-matcher extraction error.
func NewExtractError(file, matcher string, cause error) *ScanError {
	err := NewScanError(Extract, file, "extract", "extraction failed", cause)
	err.Matcher = matcher
	return err
}

// NewSnapshotReadError creates a prior-snapshot read error.
func NewSnapshotReadError(path string, cause error) *ScanError {
	return NewScanError(SnapshotRead, path, "snapshot_read", "reading prior snapshot failed", cause)
}

// NewSnapshotWriteError creates a snapshot write error.
func NewSnapshotWriteError(path string, cause error) *ScanError {
	return NewScanError(SnapshotWrite, path, "snapshot_write", "persisting snapshot failed", cause)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, file string) *ScanError {
	if err == nil {
		return nil
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewScanError(Cancelled, file, "scan", "operation cancelled", err)
	}

	return NewScanError(Unknown, file, "scan", err.Error(), err)
}

// IsFatal checks whether an error must abort the current invocation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type.IsFatal()
	}
	return true
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type
	}
	return Unknown
}
