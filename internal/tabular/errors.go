package tabular

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension the reader or writer does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrSourceNotFound indicates a missing input file.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrLegacyWorkbook indicates a binary BIFF workbook, which must be saved as .xlsx first.
	ErrLegacyWorkbook = errors.New("binary .xls workbooks are not readable, save the export as .xlsx")
	// ErrNoSheet indicates a workbook without worksheets.
	ErrNoSheet = errors.New("workbook has no sheets")
	// ErrInvalidEncoding indicates an unknown CSV text encoding.
	ErrInvalidEncoding = errors.New("encoding must be utf-8 or windows-1252")
)
