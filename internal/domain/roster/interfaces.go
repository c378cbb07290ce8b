package roster

import "context"

// SourceReader loads the rows of a roster export.
type SourceReader interface {
	ReadRecords(ctx context.Context, path string) ([]SourceRecord, error)
}

// Exporter serializes the tables of a run and returns the files it wrote.
type Exporter interface {
	Export(ctx context.Context, run Run) ([]string, error)
}

// Recorder receives per-run counts.
type Recorder interface {
	ObserveConversion(accepted, rejected int)
}
