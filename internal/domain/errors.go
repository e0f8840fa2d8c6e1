package domain

import "errors"

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrEmptyBatch              = errors.New("batch contains no documents")
	ErrBatchTooLarge           = errors.New("batch exceeds maximum document count")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)
