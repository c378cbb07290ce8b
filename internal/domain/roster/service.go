package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout formats run timestamps in output file names.
const TimestampLayout = "2006-01-02_15-04-05"

// AcceptedFileName is the name of the accepted table written at t.
func AcceptedFileName(t time.Time, ext string) string {
	return t.Format(TimestampLayout) + "_referendare." + strings.TrimPrefix(ext, ".")
}

// RejectedFileName is the name of the rejected table written at t.
func RejectedFileName(t time.Time, ext string) string {
	return t.Format(TimestampLayout) + "_Referendare_FEHLER." + strings.TrimPrefix(ext, ".")
}

// Service runs roster conversions.
type Service struct {
	reader    SourceReader
	exporters map[OutputFormat]Exporter
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a conversion service. recorder may be nil.
func NewService(reader SourceReader, exporters map[OutputFormat]Exporter, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reader:    reader,
		exporters: exporters,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for run timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ConvertRequest describes one conversion.
type ConvertRequest struct {
	SourcePath string
	OutputDir  string
	Format     OutputFormat
	Rules      Rules
}

// ConvertResult summarizes a finished conversion.
type ConvertResult struct {
	RunID    string
	Accepted int
	Rejected int
	Columns  []string
	Files    []string
}

// Preview reads and classifies a source without writing anything.
func (s *Service) Preview(ctx context.Context, sourcePath string, rules Rules) (*Batch, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return nil, ErrMissingSource
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	records, err := s.reader.ReadRecords(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	batch, err := Partition(records, rules)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// Convert classifies the source and exports both tables. A run without
// accepted rows still writes the rejected table and returns
// ErrNoEligibleRecords alongside the result.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	format := req.Format
	if format == "" {
		format = FormatXLSX
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, format)
	}

	runID := uuid.NewString()
	started := s.now()
	s.logger.Info("conversion started", "run_id", runID, "source", req.SourcePath, "primary_key", req.Rules.PrimaryKey)

	batch, err := s.Preview(ctx, req.SourcePath, req.Rules)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{
		RunID:    runID,
		Accepted: len(batch.Accepted),
		Rejected: len(batch.Rejected),
		Columns:  req.Rules.Shape.Columns(),
	}
	if result.Accepted == 0 && result.Rejected == 0 {
		s.logger.Warn("source has no rows", "run_id", runID)
		return result, ErrNoEligibleRecords
	}

	accepted, rejected := req.Rules.Shape.Tables(*batch)
	files, err := exporter.Export(ctx, Run{
		ID:         runID,
		StartedAt:  started,
		SourcePath: req.SourcePath,
		OutputDir:  req.OutputDir,
		Accepted:   accepted,
		Rejected:   rejected,
	})
	if err != nil {
		return nil, fmt.Errorf("exporting run: %w", err)
	}
	result.Files = files

	if s.recorder != nil {
		s.recorder.ObserveConversion(result.Accepted, result.Rejected)
	}
	for _, f := range files {
		s.logger.Info("output written", "run_id", runID, "path", f)
	}
	s.logger.Info("conversion finished", "run_id", runID, "accepted", result.Accepted, "rejected", result.Rejected)

	if result.Accepted == 0 {
		return result, ErrNoEligibleRecords
	}
	return result, nil
}
