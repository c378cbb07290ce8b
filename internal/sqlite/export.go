package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/lealogineo/internal/domain/roster"
)

// Exporter writes each conversion run into its own SQLite file.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an exporter for roster.FormatSQLite.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export stores run in <output dir>/<timestamp>_referendare.db. A file
// created by a failed export is removed again.
func (e *Exporter) Export(ctx context.Context, run roster.Run) (files []string, err error) {
	if run.OutputDir != "" {
		if err := os.MkdirAll(run.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(run.OutputDir, roster.AcceptedFileName(run.StartedAt, "db"))

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	db, err := New(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		db.Close()
		if err != nil && created {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				e.logger.Warn("removing partial output failed", "run_id", run.ID, "path", path, "error", rmErr)
			}
		}
	}()

	if err := db.RunMigrations(); err != nil {
		return nil, err
	}
	if err := NewRunRepository(db).Save(ctx, run); err != nil {
		return nil, err
	}
	e.logger.Debug("run stored", "run_id", run.ID, "path", path)
	return []string{path}, nil
}
