package roster

import (
	"fmt"
	"strings"
	"time"
)

// SourceRecord is one row of the roster export, keyed by column name.
type SourceRecord map[string]string

// Get returns the raw value of col, or "" when the column is absent.
func (r SourceRecord) Get(col string) string {
	return r[col]
}

// PrimaryKey selects which identifier decides whether a row is usable.
type PrimaryKey string

const (
	// PrimaryKeyLEAID accepts rows with a platform account id.
	PrimaryKeyLEAID PrimaryKey = "LEAID"
	// PrimaryKeyIdentNr accepts rows with a registry identifier of full width.
	PrimaryKeyIdentNr PrimaryKey = "IdentNr"
)

// ParsePrimaryKey accepts the export names (LEAID, IdentNr) and the generic
// names (PrimaryId, SecondaryId), case-insensitively. Empty selects LEAID.
func ParsePrimaryKey(s string) (PrimaryKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leaid", "primaryid":
		return PrimaryKeyLEAID, nil
	case "identnr", "secondaryid":
		return PrimaryKeyIdentNr, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPrimaryKey, s)
	}
}

// OutputRecord is an accepted row in the import format of the identity platform.
// Optional fields are either fully derived or empty, as decided by OutputShape.
type OutputRecord struct {
	Identifier      string `json:"leaid"`
	SecondaryID     string `json:"ident_nr"`
	Surname         string `json:"surname"`
	GivenName       string `json:"given_name"`
	Category        string `json:"category"`
	Seminar         string `json:"seminar,omitempty"`
	Program         string `json:"program,omitempty"`
	Cohort          string `json:"cohort,omitempty"`
	CoreSeminar     string `json:"core_seminar,omitempty"`
	SubjectSeminar1 string `json:"subject_seminar_1,omitempty"`
	SubjectSeminar2 string `json:"subject_seminar_2,omitempty"`
}

// RejectedRecord is a row that failed the primary-key rule. It always carries
// a best-effort program hint for triage.
type RejectedRecord struct {
	Identifier  string `json:"leaid"`
	SecondaryID string `json:"ident_nr"`
	Surname     string `json:"surname"`
	GivenName   string `json:"given_name"`
	Category    string `json:"category"`
	Program     string `json:"program"`
}

// Outcome is the classification of one source row. Exactly one field is set.
type Outcome struct {
	Accepted *OutputRecord
	Rejected *RejectedRecord
}

// Batch holds the classified rows of a conversion in source order.
type Batch struct {
	Accepted []OutputRecord
	Rejected []RejectedRecord
}

// Table is a header plus rows, ready for an external serializer.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Run is one conversion handed to an Exporter.
type Run struct {
	ID         string
	StartedAt  time.Time
	SourcePath string
	OutputDir  string
	Accepted   Table
	Rejected   Table
}

// OutputFormat selects the serializer for conversion results.
type OutputFormat string

const (
	FormatXLSX   OutputFormat = "xlsx"
	FormatCSV    OutputFormat = "csv"
	FormatSQLite OutputFormat = "sqlite"
)

// ParseOutputFormat validates a configured output format. Empty selects xlsx.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatSQLite:
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutputFormat, s)
	}
}
