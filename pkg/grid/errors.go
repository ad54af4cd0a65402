package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is the parent of all configuration errors.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRowCapacity indicates that not even one item fits in a row.
	ErrRowCapacity = fmt.Errorf("%w: row capacity below one", ErrInvalidConfiguration)

	// ErrSingleColumn indicates a justified spacing request for a
	// single-column grid, which has no gaps to distribute space across.
	ErrSingleColumn = fmt.Errorf("%w: single column has no gaps to justify", ErrInvalidConfiguration)

	// ErrNonFinite indicates a NaN or infinite input.
	ErrNonFinite = fmt.Errorf("%w: non-finite value", ErrInvalidConfiguration)

	// ErrNegativeValue indicates a negative size, inset or spacing.
	ErrNegativeValue = fmt.Errorf("%w: negative value", ErrInvalidConfiguration)

	// ErrUnknownSkipPolicy indicates a skip policy name that is not defined.
	ErrUnknownSkipPolicy = errors.New("unknown skip policy")

	// ErrNegativeCount indicates a host reported fewer than zero items.
	ErrNegativeCount = fmt.Errorf("%w: negative item count", ErrInvalidConfiguration)
)
