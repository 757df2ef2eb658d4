package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the application error returned across the HTTP boundary
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrUnsupportedFileType(filename string, allowed ...string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UNSUPPORTED_FILE_TYPE,
		Message:  fmt.Sprintf("Only %s files allowed", strings.Join(allowed, ", ")),
	}.WithDetail("filename", filename)
}

func ErrPayloadTooLarge(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_PAYLOAD_TOO_LARGE,
		Message:  "Request body too large",
	}
}

// Ingestion Errors
func ErrInvalidFormat(required, found []string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INGEST_INVALID_FORMAT,
		Message:  fmt.Sprintf("File must have columns: %v. Found: %v", required, found),
	}.WithDetail("required", strings.Join(required, ",")).
		WithDetail("found", strings.Join(found, ","))
}

func ErrFileUnreadable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INGEST_INVALID_FORMAT,
		Message:  "Error processing file",
	}
}

// Analytics Errors
func ErrAnalyticsFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ANALYTICS_FAILED,
		Message:  "Error generating analytics",
	}
}

func ErrReportGenerationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_GENERATION_FAILED,
		Message:  "Failed to generate report",
	}
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}
