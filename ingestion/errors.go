package ingestion

import "errors"

var (
	// ErrResourceRepositoryRequired indicates a missing resource repository.
	ErrResourceRepositoryRequired = errors.New("resource repository is required")

	// ErrBlobRepositoryRequired indicates a missing blob repository.
	ErrBlobRepositoryRequired = errors.New("blob repository is required")

	// ErrInvalidMaxAttempts indicates an invalid retry attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrFileDataRequired indicates file bytes were expected but missing.
	ErrFileDataRequired = errors.New("file data is required when a mime type is set")
)
