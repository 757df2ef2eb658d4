package entities

import (
	"errors"
	"fmt"
)

// Lookup misses
var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInsightNotFound = errors.New("insights not found")
)

// FormatError rejects a whole batch whose header lacks required columns
type FormatError struct {
	Required []string
	Found    []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("file must have columns: %v. Found: %v", e.Required, e.Found)
}

// RowParseError records one skipped row of a batch. Row is 1-based over data rows.
type RowParseError struct {
	Row int
	Err error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("Row %d: %v", e.Row, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// PersistenceError is a failed write or commit; the transaction was rolled back
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ExternalServiceError is a failed or unusable call to a generative-text provider
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
