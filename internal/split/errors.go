package split

import "artguard/internal/domain"

// ErrInvalidConfiguration indicates k_folds or val_fraction is out of range.
var ErrInvalidConfiguration = domain.ErrInvalidConfiguration
