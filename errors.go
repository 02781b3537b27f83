package lgx

import "errors"

var (
	// ErrMissingManifest is returned when an archive has no parsable
	// manifest.json entry.
	ErrMissingManifest = errors.New("missing manifest.json")

	// ErrEmptyVariantName is returned when a variant operation is given
	// an empty name.
	ErrEmptyVariantName = errors.New("variant name cannot be empty")

	// ErrVariantNotFound is returned when the named variant does not
	// exist in the package.
	ErrVariantNotFound = errors.New("variant does not exist")

	// ErrMainRequired is returned by AddVariant when the source is a
	// directory and no main path was given.
	ErrMainRequired = errors.New("main path is required when source is a directory")

	// ErrNotImplemented is returned by operations reserved for a future
	// release, such as signing.
	ErrNotImplemented = errors.New("not implemented")
)
