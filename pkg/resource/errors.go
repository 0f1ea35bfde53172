package resource

import "errors"

// Sentinel errors returned by the resource cache.
// Callers should test for them with errors.Is, since load failures are
// usually wrapped with the offending path for context.
var (
	// ErrNotFound is returned when the identifier does not correspond to a
	// loadable file on disk.
	ErrNotFound = errors.New("resource not found")

	// ErrLoadFailed is returned when the file exists but cannot be decoded
	// (corrupt data, truncated file, wrong contents for its extension).
	ErrLoadFailed = errors.New("resource load failed")

	// ErrUnsupportedFormat is returned when a file extension maps to no known
	// resource kind, or when a wrapper is constructed from a resource of the
	// wrong kind (e.g. a Sprite from an audio file).
	ErrUnsupportedFormat = errors.New("unsupported resource format")

	// ErrConfigNotLoaded is returned by the *ByID methods when no resource
	// manifest has been loaded yet.
	ErrConfigNotLoaded = errors.New("resource config not loaded")

	// ErrUnknownID is returned when a resource ID is not defined in the
	// loaded manifest.
	ErrUnknownID = errors.New("unknown resource ID")
)
