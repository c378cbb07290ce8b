package letter

import "errors"

var (
	// ErrNoEligibleRecords indicates that no document would be produced.
	ErrNoEligibleRecords = errors.New("no eligible records")
	// ErrUnsupportedSource indicates a credential export of unknown type.
	ErrUnsupportedSource = errors.New("credential source must be .csv, .xlsx or .xml")
	// ErrMissingSource indicates a request without a credential export.
	ErrMissingSource = errors.New("credential source required")
)
