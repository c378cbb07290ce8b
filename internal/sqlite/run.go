package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/lealogineo/internal/domain/roster"
)

// acceptedColumns maps import header names to accepted table columns.
var acceptedColumns = map[string]string{
	roster.ColLEAID:        "leaid",
	roster.ColIdentNr:      "ident_nr",
	roster.ColNachname:     "nachname",
	roster.ColVorname:      "vorname",
	roster.ColTyp:          "typ",
	roster.ColSeminar:      "seminar",
	roster.ColLehramt:      "lehramt",
	roster.ColJahrgang:     "jahrgang",
	roster.ColKernseminar:  "kernseminar",
	roster.ColFachseminar1: "fachseminar_1",
	roster.ColFachseminar2: "fachseminar_2",
}

var rejectedColumns = map[string]string{
	roster.ColLEAID:    "leaid",
	roster.ColIdentNr:  "ident_nr",
	roster.ColNachname: "nachname",
	roster.ColVorname:  "vorname",
	roster.ColTyp:      "typ",
	roster.ColLehramt:  "lehramt",
}

// StoredRun is the summary row of an exported run.
type StoredRun struct {
	ID              string
	StartedAt       time.Time
	SourcePath      string
	AcceptedColumns []string
	AcceptedCount   int
	RejectedCount   int
}

// RunRepository stores conversion runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save writes a run and all of its rows in one transaction.
func (r *RunRepository) Save(ctx context.Context, run roster.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, source_path, accepted_columns, accepted_count, rejected_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt,
		run.SourcePath,
		strings.Join(run.Accepted.Columns, ","),
		len(run.Accepted.Rows),
		len(run.Rejected.Rows),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrRunExists, run.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	if err := insertRows(ctx, tx, "accepted", acceptedColumns, run.ID, run.Accepted); err != nil {
		return err
	}
	if err := insertRows(ctx, tx, "rejected", rejectedColumns, run.ID, run.Rejected); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, mapping map[string]string, runID string, t roster.Table) error {
	if t.Empty() {
		return nil
	}
	cols := []string{"run_id", "position"}
	for _, name := range t.Columns {
		col, ok := mapping[name]
		if !ok {
			return fmt.Errorf("no %s column for header %q", table, name)
		}
		cols = append(cols, col)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		args := make([]any, 0, len(cols))
		args = append(args, runID, i+1)
		for c := range t.Columns {
			v := ""
			if c < len(row) {
				v = row[c]
			}
			args = append(args, v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i+1, err)
		}
	}
	return nil
}

// Get retrieves a run summary by ID
func (r *RunRepository) Get(ctx context.Context, id string) (*StoredRun, error) {
	query := `
		SELECT id, started_at, source_path, accepted_columns, accepted_count, rejected_count
		FROM runs
		WHERE id = ?
	`

	var (
		run     StoredRun
		columns string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.StartedAt,
		&run.SourcePath,
		&columns,
		&run.AcceptedCount,
		&run.RejectedCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if columns != "" {
		run.AcceptedColumns = strings.Split(columns, ",")
	}
	return &run, nil
}

// RejectedLEAIDs lists the primary identifiers of a run's rejected rows in source order.
func (r *RunRepository) RejectedLEAIDs(ctx context.Context, runID string) ([]string, error) {
	return r.column(ctx, "SELECT leaid FROM rejected WHERE run_id = ? ORDER BY position", runID)
}

// AcceptedLEAIDs lists the primary identifiers of a run's accepted rows in source order.
func (r *RunRepository) AcceptedLEAIDs(ctx context.Context, runID string) ([]string, error) {
	return r.column(ctx, "SELECT leaid FROM accepted WHERE run_id = ? ORDER BY position", runID)
}

func (r *RunRepository) column(ctx context.Context, query, runID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v.String)
	}
	return out, rows.Err()
}
