package errors

// ErrorCode identifies an application error category in API responses
type ErrorCode int

const (
	// General
	ErrorCode_INTERNAL ErrorCode = iota + 1000
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_UNSUPPORTED_FILE_TYPE
	ErrorCode_PAYLOAD_TOO_LARGE

	// Ingestion
	ErrorCode_INGEST_INVALID_FORMAT

	// Analytics
	ErrorCode_ANALYTICS_FAILED
	ErrorCode_REPORT_GENERATION_FAILED

	// Database
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_UNSUPPORTED_FILE_TYPE:    "UNSUPPORTED_FILE_TYPE",
	ErrorCode_PAYLOAD_TOO_LARGE:        "PAYLOAD_TOO_LARGE",
	ErrorCode_INGEST_INVALID_FORMAT:    "INGEST_INVALID_FORMAT",
	ErrorCode_ANALYTICS_FAILED:         "ANALYTICS_FAILED",
	ErrorCode_REPORT_GENERATION_FAILED: "REPORT_GENERATION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:    "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON payloads
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
