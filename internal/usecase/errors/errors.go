package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Upload errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyUpload         = errors.New("uploaded file is empty")
	ErrUnreadableFile      = errors.New("error processing file")
	ErrInvalidTranscript   = errors.New("transcript must be non-empty UTF-8 text")
)

// Invoice errors
var (
	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidAmount = errors.New("amount must be a finite number")
	ErrInvalidWindow = errors.New("invalid analytics window")
)

// Search errors
var (
	ErrEmptySearch = errors.New("search text is required")
)
