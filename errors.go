package utfall

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrNoBody indicates a successful response whose status carries no body (204, 205)
	ErrNoBody = errors.New("utfall: failed to get readable stream from response body")

	// ErrUnexpectedStatus indicates a non-2xx HTTP status
	ErrUnexpectedStatus = errors.New("utfall: unexpected status code")

	// ErrInvalidConfig indicates a configuration that failed validation
	ErrInvalidConfig = errors.New("utfall: invalid configuration")
)

// MetadataProbeError is returned when the remote freshness marker could not be obtained.
// It is recoverable: the caller treats the remote marker as absent and fetches.
type MetadataProbeError struct {
	Endpoint string
	Err      error
}

func (e *MetadataProbeError) Error() string {
	return NewErrorContext("metadata probe", "").WithDetails(e.Endpoint).Error(e.Err).Error()
}

func (e *MetadataProbeError) Unwrap() error { return e.Err }

// TransferError is returned when the body could not be streamed to disk.
type TransferError struct {
	Endpoint string
	Path     string
	Err      error
}

func (e *TransferError) Error() string {
	return NewErrorContext("transfer", e.Path).WithDetails(e.Endpoint).Error(e.Err).Error()
}

func (e *TransferError) Unwrap() error { return e.Err }

// ParseError is returned for malformed CSV structure. Line is 1-based.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return NewErrorContext("parse", "").WithDetails(fmt.Sprintf("line %d", e.Line)).Error(e.Err).Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatchError is returned when a row does not have one field per manifest column.
type SchemaMismatchError struct {
	Line int
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return NewErrorContext("row mapping", "").
		WithDetails(fmt.Sprintf("line %d has %d fields, manifest has %d columns", e.Line, e.Got, e.Want)).
		Error(nil).Error()
}

// SchemaError is returned when the destination table or its indexes could not be created.
type SchemaError struct {
	Table     string
	Statement string
	Err       error
}

func (e *SchemaError) Error() string {
	return NewErrorContext("schema", "").WithTable(e.Table).WithDetails(e.Statement).Error(e.Err).Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// LoadError is returned when a batch transaction fails. Batch is 1-based.
// Batches committed before the failing one stay committed.
type LoadError struct {
	Table string
	Batch int
	Err   error
}

func (e *LoadError) Error() string {
	return NewErrorContext("load", "").WithTable(e.Table).WithDetails(fmt.Sprintf("batch %d", e.Batch)).Error(e.Err).Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("utfall: %s failed", ec.Operation))

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
