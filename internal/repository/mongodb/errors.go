package mongodb

import "errors"

// Sentinel errors surfaced by the repositories. Services translate
// these into domain errors; handlers never see them directly.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate indicates a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate document")
)
