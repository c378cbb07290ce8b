package roster

import "errors"

var (
	// ErrInvalidPrimaryKey indicates a primary-key mode other than LEAID or IdentNr.
	ErrInvalidPrimaryKey = errors.New("primary key must be LEAID or IdentNr")
	// ErrInvalidOutputFormat indicates an output format without a serializer.
	ErrInvalidOutputFormat = errors.New("output format must be xlsx, csv or sqlite")
	// ErrNoEligibleRecords indicates a conversion without a single accepted row.
	ErrNoEligibleRecords = errors.New("no eligible records")
	// ErrMissingSource indicates a conversion request without a source path.
	ErrMissingSource = errors.New("source file required")
)
