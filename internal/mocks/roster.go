package mocks

import (
	"context"

	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/stretchr/testify/mock"
)

// SourceReader is a mock for roster.SourceReader.
type SourceReader struct {
	mock.Mock
}

func (m *SourceReader) ReadRecords(ctx context.Context, path string) ([]roster.SourceRecord, error) {
	args := m.Called(ctx, path)
	if recs, ok := args.Get(0).([]roster.SourceRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Exporter is a mock for roster.Exporter.
type Exporter struct {
	mock.Mock
}

func (m *Exporter) Export(ctx context.Context, run roster.Run) ([]string, error) {
	args := m.Called(ctx, run)
	if files, ok := args.Get(0).([]string); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

// ConversionRecorder is a mock for roster.Recorder.
type ConversionRecorder struct {
	mock.Mock
}

func (m *ConversionRecorder) ObserveConversion(accepted, rejected int) {
	m.Called(accepted, rejected)
}
