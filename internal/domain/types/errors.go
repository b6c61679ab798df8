package types

import "errors"

var (
	// ErrInvalidConfiguration indicates a split or extraction parameter is out of range.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrImageTooSmall indicates the grid cell of an image would be empty.
	ErrImageTooSmall = errors.New("image too small to create grid patches")

	// ErrInvalidRecord indicates an ingested record failed validation.
	ErrInvalidRecord = errors.New("invalid record")
)
