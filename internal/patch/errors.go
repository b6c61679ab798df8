package patch

import "artguard/internal/domain"

var (
	// ErrImageTooSmall indicates the grid cell side would be zero.
	ErrImageTooSmall = domain.ErrImageTooSmall

	// ErrInvalidConfiguration indicates a non-positive canonical size or an
	// unknown filter name.
	ErrInvalidConfiguration = domain.ErrInvalidConfiguration
)
