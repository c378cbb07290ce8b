// Package tabular reads and writes spreadsheet and CSV files.
package tabular

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/xuri/excelize/v2"
)

var (
	// RosterExtensions are the accepted roster export types.
	RosterExtensions = []string{".xls", ".xlsx", ".csv"}
	// CredentialExtensions are the accepted flat account export types.
	CredentialExtensions = []string{".xlsx", ".xlsm", ".csv"}
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}

// Reader loads rows from .xlsx and .csv files.
type Reader struct {
	csv    CSVOptions
	logger *slog.Logger
}

// NewReader creates a reader. CSV options apply to .csv inputs only.
func NewReader(opts CSVOptions, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{csv: opts, logger: logger}
}

// ValidateSource checks that path exists and has one of the allowed extensions.
func ValidateSource(path string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: %q (expected %s)", ErrUnsupportedFormat, filepath.Base(path), strings.Join(allowed, ", "))
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("checking source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}
	return nil
}

// ReadRecords loads a roster export as one record per data row, keyed by the
// trimmed header names. Rows without any content are dropped.
func (r *Reader) ReadRecords(ctx context.Context, path string) ([]roster.SourceRecord, error) {
	if err := ValidateSource(path, RosterExtensions); err != nil {
		return nil, err
	}
	rows, err := r.read(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	records := make([]roster.SourceRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(roster.SourceRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	r.logger.Debug("roster rows read", "path", path, "rows", len(records))
	return records, nil
}

// ReadRows loads a flat account export, header row first.
func (r *Reader) ReadRows(ctx context.Context, path string) ([][]string, error) {
	if err := ValidateSource(path, CredentialExtensions); err != nil {
		return nil, err
	}
	rows, err := r.read(ctx, path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("account rows read", "path", path, "rows", len(rows))
	return rows, nil
}

func (r *Reader) read(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(bytes.NewReader(data), r.csv)
	}
	return readWorkbook(data)
}

// readWorkbook returns the rows of the first sheet. Cells are read raw so
// long identifiers keep every digit. Date-formatted cells are converted from
// their serial number to YYYY-MM-DD.
func readWorkbook(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, oleMagic) {
		return nil, ErrLegacyWorkbook
	}
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	dates := newDateCells(f)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if d, ok := dates.convert(sheet, cell, v); ok {
				row[c] = d
			}
		}
	}
	return rows, nil
}

// Built-in number formats that display a date.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 57: true, 58: true,
}

var quotedRe = regexp.MustCompile(`"[^"]*"|\\.|\[[^\]]*\]`)

// dateCells recognises date-styled cells, caching the verdict per style.
type dateCells struct {
	f        *excelize.File
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File) *dateCells {
	d := &dateCells{f: f, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert returns the ISO date of a serial number stored in a date-styled cell.
func (d *dateCells) convert(sheet, cell, value string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", false
	}
	styleID, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || !d.isDate(styleID) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func (d *dateCells) isDate(styleID int) bool {
	if v, ok := d.styles[styleID]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		v = builtinDateFormats[style.NumFmt]
		if style.CustomNumFmt != nil {
			v = dateLayout(*style.CustomNumFmt)
		}
	}
	d.styles[styleID] = v
	return v
}

// dateLayout reports whether a custom number format shows a year or day.
func dateLayout(format string) bool {
	format = strings.ToLower(quotedRe.ReplaceAllString(format, ""))
	return strings.ContainsAny(format, "yd")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
