package service

import "errors"

var (
	// ErrNotFound means the target course file does not exist for the caller.
	ErrNotFound = errors.New("course file not found")
	// ErrConflict means a course file already exists for (owner, name).
	ErrConflict = errors.New("course file already exists")
	// ErrValidation covers malformed names, unknown slots and bad payloads.
	ErrValidation = errors.New("validation failed")
)

// Per-tuple result codes surfaced in the upload response. Stable strings;
// the UI keys retry behavior off them.
const (
	CodeStored              = "STORED"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeStorageWriteFailed  = "STORAGE_WRITE_FAILED"
	CodeMetadataWriteFailed = "METADATA_WRITE_FAILED"
)
