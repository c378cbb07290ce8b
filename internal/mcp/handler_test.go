package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rpggio/lealogineo/internal/config"
	"github.com/rpggio/lealogineo/internal/domain/credential"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

type rosterStub struct {
	previewFn func(context.Context, string, roster.Rules) (*roster.Batch, error)
	convertFn func(context.Context, roster.ConvertRequest) (*roster.ConvertResult, error)
}

func (r rosterStub) Preview(ctx context.Context, sourcePath string, rules roster.Rules) (*roster.Batch, error) {
	return r.previewFn(ctx, sourcePath, rules)
}
func (r rosterStub) Convert(ctx context.Context, req roster.ConvertRequest) (*roster.ConvertResult, error) {
	return r.convertFn(ctx, req)
}

type letterStub struct {
	generateFn func(context.Context, letter.GenerateRequest) (*letter.GenerateResult, error)
}

func (l letterStub) Generate(ctx context.Context, req letter.GenerateRequest) (*letter.GenerateResult, error) {
	return l.generateFn(ctx, req)
}

func testDefaults() config.Config {
	cfg := config.Default()
	cfg.Roster.SourceFile = "lea.xlsx"
	cfg.Letters.CSVFile = "logineo.csv"
	return cfg
}

func TestHandler_ConvertRoster(t *testing.T) {
	ctx := context.Background()

	var got roster.ConvertRequest
	handler := NewHandler(rosterStub{
		convertFn: func(_ context.Context, req roster.ConvertRequest) (*roster.ConvertResult, error) {
			got = req
			return &roster.ConvertResult{RunID: "run1", Accepted: 2, Rejected: 1, Columns: req.Rules.Shape.Columns(), Files: []string{"a.xlsx"}}, nil
		},
	}, nil, testDefaults())

	off := false
	out, err := handler.Handle(ctx, "convert_roster", mustJSON(t, ConvertRosterParams{
		OutputFormat: "csv",
		PrimaryKey:   "IdentNr",
		EmitCohort:   &off,
	}))
	require.NoError(t, err)

	require.Equal(t, "lea.xlsx", got.SourcePath)
	require.Equal(t, "output", got.OutputDir)
	require.Equal(t, roster.FormatCSV, got.Format)
	require.Equal(t, roster.PrimaryKeyIdentNr, got.Rules.PrimaryKey)
	require.Equal(t, roster.OutputShape{ProgramGroup: true, Seminars: true}, got.Rules.Shape)

	resp, ok := out.(ConvertRosterResponse)
	require.True(t, ok)
	require.Equal(t, "run1", resp.RunID)
	require.Equal(t, 2, resp.Accepted)
	require.Equal(t, []string{"a.xlsx"}, resp.Files)
	require.NotContains(t, resp.Columns, roster.ColJahrgang)
}

func TestHandler_ConvertRosterPreview(t *testing.T) {
	handler := NewHandler(rosterStub{
		previewFn: func(_ context.Context, path string, _ roster.Rules) (*roster.Batch, error) {
			require.Equal(t, "other.xlsx", path)
			return &roster.Batch{Accepted: make([]roster.OutputRecord, 3)}, nil
		},
	}, nil, testDefaults())

	out, err := handler.Handle(context.Background(), "convert_roster", mustJSON(t, ConvertRosterParams{SourceFile: "other.xlsx", Preview: true}))
	require.NoError(t, err)
	resp := out.(ConvertRosterResponse)
	require.True(t, resp.Preview)
	require.Equal(t, 3, resp.Accepted)
	require.Empty(t, resp.RunID)
}

func TestHandler_ConvertRosterErrors(t *testing.T) {
	ctx := context.Background()

	handler := NewHandler(rosterStub{
		convertFn: func(_ context.Context, _ roster.ConvertRequest) (*roster.ConvertResult, error) {
			return &roster.ConvertResult{RunID: "run1", Rejected: 4}, roster.ErrNoEligibleRecords
		},
	}, nil, testDefaults())

	_, err := handler.Handle(ctx, "convert_roster", mustJSON(t, ConvertRosterParams{PrimaryKey: "email"}))
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "INVALID_CONFIG", apiErr.Code)

	_, err = handler.Handle(ctx, "convert_roster", mustJSON(t, ConvertRosterParams{OutputFormat: "pdf"}))
	apiErr, ok = err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "INVALID_CONFIG", apiErr.Code)

	_, err = handler.Handle(ctx, "convert_roster", nil)
	apiErr, ok = err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "NO_ELIGIBLE_RECORDS", apiErr.Code)
	details, ok := apiErr.Details.(ConvertRosterResponse)
	require.True(t, ok)
	require.Equal(t, 4, details.Rejected)
}

func TestHandler_GenerateLetters(t *testing.T) {
	var got letter.GenerateRequest
	handler := NewHandler(nil, letterStub{
		generateFn: func(_ context.Context, req letter.GenerateRequest) (*letter.GenerateResult, error) {
			got = req
			rec := credential.Record{Surnames: []string{"Roth"}}
			return &letter.GenerateResult{
				RunID:    "run2",
				Ingested: 1,
				Units: []letter.Unit{
					{Dir: "pdf-files/Seminar_BK", FileName: "SAMMEL_LAA_BK_x.pdf", Collective: true, Sections: []letter.Section{{Record: rec}}},
				},
			}, nil
		},
	}, testDefaults())

	on := true
	out, err := handler.Handle(context.Background(), "generate_letters", mustJSON(t, GenerateLettersParams{Collective: &on, DryRun: true}))
	require.NoError(t, err)

	require.Equal(t, "logineo.csv", got.SourcePath)
	require.True(t, got.Mode.Individual)
	require.True(t, got.Mode.Collective)
	require.True(t, got.DryRun)
	require.Equal(t, 4, got.Workers)

	resp := out.(GenerateLettersResponse)
	require.Equal(t, []LetterDocument{{Path: "pdf-files/Seminar_BK/SAMMEL_LAA_BK_x.pdf", Collective: true, Sections: 1}}, resp.Documents)
}

func TestHandler_GenerateLettersMissingSource(t *testing.T) {
	handler := NewHandler(nil, letterStub{
		generateFn: func(_ context.Context, _ letter.GenerateRequest) (*letter.GenerateResult, error) {
			return nil, fmt.Errorf("ingest: %w", letter.ErrMissingSource)
		},
	}, config.Default())

	_, err := handler.Handle(context.Background(), "generate_letters", nil)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "MISSING_SOURCE", apiErr.Code)
}

func TestHandler_ResolveProgram(t *testing.T) {
	handler := NewHandler(nil, nil, config.Default())

	tests := []struct {
		params ResolveProgramParams
		want   ResolveProgramResponse
	}{
		{ResolveProgramParams{ProgramCode: "3"}, ResolveProgramResponse{Label: "GyGe", Resolved: true}},
		{ResolveProgramParams{ProgramCode: "x", ProgramGroup: "40"}, ResolveProgramResponse{Label: "BK", Resolved: true}},
		{ResolveProgramParams{ProgramCode: "9", ProgramGroup: "40"}, ResolveProgramResponse{Label: "???"}},
		{ResolveProgramParams{}, ResolveProgramResponse{Label: "???"}},
	}
	for _, tt := range tests {
		out, err := handler.Handle(context.Background(), "resolve_program", mustJSON(t, tt.params))
		require.NoError(t, err)
		require.Equal(t, tt.want, out)
	}
}

func TestHandler_DescribeColumns(t *testing.T) {
	handler := NewHandler(nil, nil, config.Default())

	off := false
	out, err := handler.Handle(context.Background(), "describe_columns", mustJSON(t, DescribeColumnsParams{EmitSeminars: &off}))
	require.NoError(t, err)

	resp := out.(DescribeColumnsResponse)
	require.Equal(t, []string{"LEAID", "IdentNr", "Nachname", "Vorname", "Typ", "Seminar", "Lehramt", "Jahrgang"}, resp.Accepted)
	require.Equal(t, roster.RejectedColumns(), resp.Rejected)
	require.Equal(t, "LAA_Logineo", resp.Source[roster.ColLEAID])
}

func TestHandler_UnknownMethod(t *testing.T) {
	handler := NewHandler(nil, nil, config.Default())
	_, err := handler.Handle(context.Background(), "drop_tables", nil)
	require.Error(t, err)
	require.Nil(t, MapError(err))
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
