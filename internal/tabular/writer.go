package tabular

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Exporter writes the tables of a conversion run as .xlsx or .csv files.
type Exporter struct {
	format roster.OutputFormat
	csv    CSVOptions
	logger *slog.Logger
}

// NewExporter creates an exporter for FormatXLSX or FormatCSV.
func NewExporter(format roster.OutputFormat, opts CSVOptions, logger *slog.Logger) (*Exporter, error) {
	switch format {
	case roster.FormatXLSX, roster.FormatCSV:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{format: format, csv: opts, logger: logger}, nil
}

// Export writes the accepted and rejected tables of run. Empty tables are
// not written. Tables are staged beside their final names and only renamed
// into place once every table is written; on failure no file of the run is
// left behind.
func (e *Exporter) Export(ctx context.Context, run roster.Run) ([]string, error) {
	if run.OutputDir != "" {
		if err := os.MkdirAll(run.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	ext := string(e.format)
	var staged []stagedFile
	defer func() {
		for _, f := range staged {
			os.Remove(f.tmp)
		}
	}()
	for _, t := range []struct {
		table roster.Table
		name  string
	}{
		{run.Accepted, roster.AcceptedFileName(run.StartedAt, ext)},
		{run.Rejected, roster.RejectedFileName(run.StartedAt, ext)},
	} {
		if t.table.Empty() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := stagedFile{
			path: filepath.Join(run.OutputDir, t.name),
			tmp:  filepath.Join(run.OutputDir, ".partial-"+t.name),
		}
		staged = append(staged, f)
		if err := e.WriteTable(f.tmp, t.table); err != nil {
			return nil, err
		}
		e.logger.Debug("table staged", "run_id", run.ID, "path", f.tmp, "rows", len(t.table.Rows))
	}

	files := make([]string, 0, len(staged))
	for _, f := range staged {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, done := range files {
				if rmErr := os.Remove(done); rmErr != nil {
					e.logger.Warn("removing partial output failed", "run_id", run.ID, "path", done, "error", rmErr)
				}
			}
			return nil, fmt.Errorf("placing %s: %w", filepath.Base(f.path), err)
		}
		files = append(files, f.path)
	}
	return files, nil
}

type stagedFile struct {
	path string
	tmp  string
}

// WriteTable writes one table to path in the exporter's format.
func (e *Exporter) WriteTable(path string, t roster.Table) error {
	if e.format == roster.FormatCSV {
		return WriteCSVFile(path, t, e.csv)
	}
	return WriteWorkbook(path, t)
}

// WriteCSVFile writes t as a CSV file.
func WriteCSVFile(path string, t roster.Table, opts CSVOptions) error {
	var buf bytes.Buffer
	rows := append([][]string{t.Columns}, t.Rows...)
	if err := writeCSV(&buf, rows, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteWorkbook writes t as a single-sheet workbook. Every cell is stored as
// text so identifiers are never converted to numbers.
func WriteWorkbook(path string, t roster.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if len(t.Columns) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("creating header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	if len(t.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("setting column widths: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}
	return nil
}
