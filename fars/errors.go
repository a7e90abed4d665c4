package fars

import "errors"

// Error taxonomy for single-call operations. Multi-year aggregation never
// surfaces these directly; per-year failures land in YearTables.Failures.
var (
	// ErrMissingFile reports that a requested accident file does not exist.
	// Returned errors also match fs.ErrNotExist.
	ErrMissingFile = errors.New("accident data file does not exist")

	// ErrInvalidState reports a state code absent from the loaded year's
	// STATE column.
	ErrInvalidState = errors.New("invalid state code")

	// ErrInvalidInput reports a non-numeric year or state argument at the
	// API boundary.
	ErrInvalidInput = errors.New("invalid numeric input")
)
