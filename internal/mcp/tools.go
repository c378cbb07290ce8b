package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/lealogineo/internal/domain/program"
)

// ToolDefinition describes a tool exposed by the server.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

var toggleProperties = map[string]any{
	"emit_program_group": map[string]any{
		"type":        "boolean",
		"description": "Emit Seminar and Lehramt columns",
	},
	"emit_cohort": map[string]any{
		"type":        "boolean",
		"description": "Emit the Jahrgang column",
	},
	"emit_seminars": map[string]any{
		"type":        "boolean",
		"description": "Emit Kernseminar and Fachseminar columns",
	},
}

func withToggles(props map[string]any) map[string]any {
	for k, v := range toggleProperties {
		props[k] = v
	}
	return props
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "convert_roster",
			Description: "Convert a LEA roster export into the LOGINEO import table and a table of rejected rows",
			InputSchema: map[string]any{
				"type": "object",
				"properties": withToggles(map[string]any{
					"source_file": map[string]any{
						"type":        "string",
						"description": "Path to the .xlsx or .csv roster (omit to use the configured file)",
					},
					"output_path": map[string]any{
						"type":        "string",
						"description": "Output directory",
					},
					"output_format": map[string]any{
						"type": "string",
						"enum": []string{"xlsx", "csv", "sqlite"},
					},
					"primary_key": map[string]any{
						"type": "string",
						"enum": []string{"LEAID", "IdentNr"},
					},
					"preview": map[string]any{
						"type":        "boolean",
						"description": "Classify only and report counts without writing files",
					},
				}),
			},
		},
		{
			Name:        "generate_letters",
			Description: "Render credential letters as PDF from a LOGINEO account export (.csv, .xlsx or .xml)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"source_file": map[string]any{
						"type":        "string",
						"description": "Path to the credential export (omit to use the configured file)",
					},
					"output_path": map[string]any{
						"type":        "string",
						"description": "Output directory",
					},
					"individual": map[string]any{
						"type":        "boolean",
						"description": "One letter per account",
					},
					"collective": map[string]any{
						"type":        "boolean",
						"description": "One letter per category and program",
					},
					"dry_run": map[string]any{
						"type":        "boolean",
						"description": "Plan documents without rendering them",
					},
				},
			},
		},
		{
			Name:        "resolve_program",
			Description: "Resolve a Lehramt code or Lehramtgruppe code to its program label",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"program_code": map[string]any{
						"type":        "string",
						"description": fmt.Sprintf("Detailed program code, one of %v", codes(program.DetailedProgramLabels)),
					},
					"program_group": map[string]any{
						"type":        "string",
						"description": fmt.Sprintf("Program group code, one of %v", codes(program.ProgramGroupLabels)),
					},
				},
			},
		},
		{
			Name:        "describe_columns",
			Description: "List output columns for the given toggles and the source columns they are read from",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": withToggles(map[string]any{}),
			},
		},
	}
}

func codes(table map[int]string) []int {
	out := make([]int, 0, len(table))
	for code := range table {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			resp, err := handler.Handle(ctx, name, args)
			if err != nil {
				apiErr := toAPIError(err)
				logger.Warn("tool failed", "tool", name, "code", apiErr.Code, "error", err)
				return jsonResult(apiErr, true)
			}
			return jsonResult(resp, false)
		})
	}
}

func jsonResult(v any, isError bool) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil
}
