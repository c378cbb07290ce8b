package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/lealogineo/internal/config"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/rpggio/lealogineo/internal/domain/program"
	"github.com/rpggio/lealogineo/internal/domain/roster"
)

// RosterService defines conversion operations needed by MCP.
type RosterService interface {
	Preview(ctx context.Context, sourcePath string, rules roster.Rules) (*roster.Batch, error)
	Convert(ctx context.Context, req roster.ConvertRequest) (*roster.ConvertResult, error)
}

// LetterService defines letter operations needed by MCP.
type LetterService interface {
	Generate(ctx context.Context, req letter.GenerateRequest) (*letter.GenerateResult, error)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	roster   RosterService
	letters  LetterService
	defaults config.Config
}

// NewHandler creates a new MCP handler. defaults supplies every argument a
// tool call leaves out.
func NewHandler(rosterSvc RosterService, letters LetterService, defaults config.Config) *Handler {
	return &Handler{
		roster:   rosterSvc,
		letters:  letters,
		defaults: defaults,
	}
}

// Handle dispatches a tool call to the domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "convert_roster":
		var req ConvertRosterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.convertRoster(ctx, req)
	case "generate_letters":
		var req GenerateLettersParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.generateLetters(ctx, req)
	case "resolve_program":
		var req ResolveProgramParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		label := program.Resolve(req.ProgramCode, req.ProgramGroup)
		return ResolveProgramResponse{Label: label.String(), Resolved: label.Resolved()}, nil
	case "describe_columns":
		var req DescribeColumnsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		rc := h.defaults.Roster
		applyToggles(&rc, req.EmitProgramGroup, req.EmitCohort, req.EmitSeminars)
		rules, err := rc.Rules()
		if err != nil {
			return nil, mapError(err)
		}
		return DescribeColumnsResponse{
			Accepted: rules.Shape.Columns(),
			Rejected: roster.RejectedColumns(),
			Source:   sourceColumns(rules.Columns),
		}, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) convertRoster(ctx context.Context, req ConvertRosterParams) (any, error) {
	rc := h.defaults.Roster
	if req.SourceFile != "" {
		rc.SourceFile = req.SourceFile
	}
	if req.OutputPath != "" {
		rc.OutputPath = req.OutputPath
	}
	if req.OutputFormat != "" {
		rc.OutputFormat = req.OutputFormat
	}
	if req.PrimaryKey != "" {
		rc.PrimaryKey = req.PrimaryKey
	}
	applyToggles(&rc, req.EmitProgramGroup, req.EmitCohort, req.EmitSeminars)

	rules, err := rc.Rules()
	if err != nil {
		return nil, mapError(err)
	}

	if req.Preview {
		batch, err := h.roster.Preview(ctx, rc.SourceFile, rules)
		if err != nil {
			return nil, mapError(err)
		}
		return ConvertRosterResponse{
			Accepted: len(batch.Accepted),
			Rejected: len(batch.Rejected),
			Columns:  rules.Shape.Columns(),
			Preview:  true,
		}, nil
	}

	format, err := rc.Format()
	if err != nil {
		return nil, mapError(err)
	}
	res, err := h.roster.Convert(ctx, roster.ConvertRequest{
		SourcePath: rc.SourceFile,
		OutputDir:  rc.OutputPath,
		Format:     format,
		Rules:      rules,
	})
	if res == nil {
		return nil, mapError(err)
	}
	resp := ConvertRosterResponse{
		RunID:    res.RunID,
		Accepted: res.Accepted,
		Rejected: res.Rejected,
		Columns:  res.Columns,
		Files:    res.Files,
	}
	if err != nil {
		return nil, withDetails(err, resp)
	}
	return resp, nil
}

func (h *Handler) generateLetters(ctx context.Context, req GenerateLettersParams) (any, error) {
	gen := h.defaults.Letters.Request()
	if req.SourceFile != "" {
		gen.SourcePath = req.SourceFile
	}
	if req.OutputPath != "" {
		gen.OutputDir = req.OutputPath
	}
	if req.Individual != nil {
		gen.Mode.Individual = *req.Individual
	}
	if req.Collective != nil {
		gen.Mode.Collective = *req.Collective
	}
	gen.DryRun = req.DryRun

	res, err := h.letters.Generate(ctx, gen)
	if res == nil {
		return nil, mapError(err)
	}
	resp := GenerateLettersResponse{
		RunID:     res.RunID,
		Ingested:  res.Ingested,
		Skipped:   res.Skipped,
		Documents: make([]LetterDocument, 0, len(res.Units)),
		DryRun:    req.DryRun,
	}
	for _, u := range res.Units {
		resp.Documents = append(resp.Documents, LetterDocument{
			Path:       u.Path(),
			Collective: u.Collective,
			Sections:   len(u.Sections),
		})
	}
	if err != nil {
		return nil, withDetails(err, resp)
	}
	return resp, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, out)
}

func applyToggles(rc *config.RosterConfig, group, cohort, seminars *bool) {
	if group != nil {
		rc.EmitProgramGroup = config.Toggle(*group)
	}
	if cohort != nil {
		rc.EmitCohort = config.Toggle(*cohort)
	}
	if seminars != nil {
		rc.EmitSeminars = config.Toggle(*seminars)
	}
}

// withDetails attaches a partial result to a mapped error.
func withDetails(err error, details any) error {
	mapped := toAPIError(err)
	out := *mapped
	out.Details = details
	return &out
}

func sourceColumns(c roster.Columns) map[string]string {
	return map[string]string{
		roster.ColLEAID:        c.PrimaryID,
		roster.ColIdentNr:      c.SecondaryID,
		roster.ColNachname:     c.Surname,
		roster.ColVorname:      c.GivenName,
		roster.ColLehramt:      c.ProgramCode + " / " + c.ProgramGroup,
		roster.ColJahrgang:     c.StartDate,
		roster.ColKernseminar:  c.CoreSeminar,
		roster.ColFachseminar1: c.Subject1,
		roster.ColFachseminar2: c.Subject2,
	}
}
