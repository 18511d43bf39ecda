package framecheck

import "errors"

var (
	// ErrNilDataset indicates a guarded boundary received a nil dataset
	// where a tabular value was required.
	ErrNilDataset = errors.New("nil dataset")

	// ErrInvalidConfig indicates the environment configuration could not be
	// parsed or carries out-of-range values.
	ErrInvalidConfig = errors.New("invalid framecheck configuration")
)
