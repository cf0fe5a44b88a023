package localconfig

import "errors"

// Errors returned by configuration operations.
var (
	// ErrSourceUnavailable indicates a file source does not exist.
	// Reading other sources continues; the last source is skipped without this error.
	ErrSourceUnavailable = errors.New("config source unavailable")

	// ErrDuplicateSection indicates a section with the same normalized name already exists.
	ErrDuplicateSection = errors.New("section already exists")

	// ErrMissingSection indicates the section does not exist.
	ErrMissingSection = errors.New("section not found")

	// ErrMissingKey indicates the key does not exist in the section or the default section.
	ErrMissingKey = errors.New("key not found")

	// ErrInterpolation indicates a reference could not be resolved.
	ErrInterpolation = errors.New("interpolation failed")

	// ErrNoTarget indicates Save was called without a target and no last source is set.
	ErrNoTarget = errors.New("save target required when last source is not set")

	// ErrTypeMismatch indicates a typed getter could not convert the value.
	ErrTypeMismatch = errors.New("type mismatch")
)
