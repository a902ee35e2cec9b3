package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when a blueprint name, branch or commit does not exist.
	ErrNotFound = zerr.New("blueprint not found")

	// ErrInvalidName is returned when a blueprint name contains whitespace or a path separator.
	ErrInvalidName = zerr.New("invalid blueprint name")

	// ErrNoContentSource is returned when source tarball contents are requested from a
	// blueprint that was never loaded from a store.
	ErrNoContentSource = zerr.New("blueprint has no content source attached")

	// ErrDocumentMissing is returned when a valid commit does not contain a blueprint document.
	ErrDocumentMissing = zerr.New("blueprint document missing from commit")

	// ErrDocumentInvalid is returned when a blueprint document cannot be decoded.
	ErrDocumentInvalid = zerr.New("malformed blueprint document")

	// ErrObjectMissing is returned when a referenced object is absent from the store.
	ErrObjectMissing = zerr.New("object missing from store")

	// ErrObjectCorrupt is returned when a stored object cannot be decoded.
	ErrObjectCorrupt = zerr.New("corrupt object in store")

	// ErrStoreReadFailed is returned when the object store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read from object store")

	// ErrStoreWriteFailed is returned when the object store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write to object store")

	// ErrSourceMissing is returned when a referenced source tarball cannot be read at
	// commit time.
	ErrSourceMissing = zerr.New("source tarball missing")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCollectorFailed is returned when a collector cannot capture its slice of
	// system state.
	ErrCollectorFailed = zerr.New("collector failed")
)
