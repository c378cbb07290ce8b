package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/rpggio/lealogineo/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
}

func TestService_Convert(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.SourceReader{}
	exporter := &mocks.Exporter{}
	recorder := &mocks.ConversionRecorder{}

	reader.On("ReadRecords", ctx, "in.xlsx").Return([]roster.SourceRecord{
		{"LAA_Logineo": "1", "LAA_IdentNr": "1234567890", "Lehramt": "1"},
		{"LAA_Name": "Ohne"},
	}, nil)
	exporter.On("Export", ctx, mock.MatchedBy(func(run roster.Run) bool {
		return run.ID != "" &&
			run.StartedAt.Equal(fixedClock()) &&
			run.OutputDir == "out" &&
			len(run.Accepted.Rows) == 1 &&
			len(run.Rejected.Rows) == 1 &&
			run.Accepted.Rows[0][1] == "01234567890" &&
			run.Rejected.Sheet == roster.RejectedSheet
	})).Return([]string{"out/a.xlsx", "out/b.xlsx"}, nil)
	recorder.On("ObserveConversion", 1, 1).Return()

	svc := roster.NewService(reader, map[roster.OutputFormat]roster.Exporter{roster.FormatXLSX: exporter}, recorder, nil).
		WithClock(fixedClock)
	res, err := svc.Convert(ctx, roster.ConvertRequest{
		SourcePath: "in.xlsx",
		OutputDir:  "out",
		Rules:      roster.DefaultRules(),
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Accepted)
	require.Equal(t, 1, res.Rejected)
	require.Equal(t, []string{"out/a.xlsx", "out/b.xlsx"}, res.Files)
	require.NotEmpty(t, res.RunID)

	exporter.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestService_Convert_NoAcceptedRows(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.SourceReader{}
	exporter := &mocks.Exporter{}
	reader.On("ReadRecords", ctx, "in.xlsx").Return([]roster.SourceRecord{{"LAA_Name": "X"}}, nil)
	exporter.On("Export", ctx, mock.Anything).Return([]string{"out/fehler.xlsx"}, nil)

	svc := roster.NewService(reader, map[roster.OutputFormat]roster.Exporter{roster.FormatXLSX: exporter}, nil, nil)
	res, err := svc.Convert(ctx, roster.ConvertRequest{SourcePath: "in.xlsx", Rules: roster.DefaultRules()})
	require.ErrorIs(t, err, roster.ErrNoEligibleRecords)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Rejected)
	require.Equal(t, []string{"out/fehler.xlsx"}, res.Files)
}

func TestService_Convert_EmptySourceWritesNothing(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.SourceReader{}
	exporter := &mocks.Exporter{}
	reader.On("ReadRecords", ctx, "in.xlsx").Return([]roster.SourceRecord{}, nil)

	svc := roster.NewService(reader, map[roster.OutputFormat]roster.Exporter{roster.FormatXLSX: exporter}, nil, nil)
	_, err := svc.Convert(ctx, roster.ConvertRequest{SourcePath: "in.xlsx", Rules: roster.DefaultRules()})
	require.ErrorIs(t, err, roster.ErrNoEligibleRecords)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestService_Convert_FatalErrors(t *testing.T) {
	ctx := context.Background()
	exporters := map[roster.OutputFormat]roster.Exporter{roster.FormatXLSX: &mocks.Exporter{}}

	reader := &mocks.SourceReader{}
	svc := roster.NewService(reader, exporters, nil, nil)

	_, err := svc.Convert(ctx, roster.ConvertRequest{SourcePath: "in.xlsx", Format: roster.FormatCSV, Rules: roster.DefaultRules()})
	require.ErrorIs(t, err, roster.ErrInvalidOutputFormat)

	rules := roster.DefaultRules()
	rules.PrimaryKey = "bogus"
	_, err = svc.Convert(ctx, roster.ConvertRequest{SourcePath: "in.xlsx", Rules: rules})
	require.ErrorIs(t, err, roster.ErrInvalidPrimaryKey)

	_, err = svc.Convert(ctx, roster.ConvertRequest{Rules: roster.DefaultRules()})
	require.ErrorIs(t, err, roster.ErrMissingSource)

	readErr := errors.New("unreadable")
	reader.On("ReadRecords", ctx, "broken.xlsx").Return(nil, readErr)
	_, err = svc.Convert(ctx, roster.ConvertRequest{SourcePath: "broken.xlsx", Rules: roster.DefaultRules()})
	require.ErrorIs(t, err, readErr)
	reader.AssertNotCalled(t, "ReadRecords", ctx, "in.xlsx")
}

func TestFileNames(t *testing.T) {
	ts := fixedClock()
	require.Equal(t, "2024-05-06_07-08-09_referendare.xlsx", roster.AcceptedFileName(ts, "xlsx"))
	require.Equal(t, "2024-05-06_07-08-09_Referendare_FEHLER.csv", roster.RejectedFileName(ts, ".csv"))
}
