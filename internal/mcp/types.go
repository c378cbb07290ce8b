package mcp

// ConvertRosterParams are the arguments of convert_roster. Unset fields fall
// back to the loaded configuration.
type ConvertRosterParams struct {
	SourceFile       string `json:"source_file,omitempty"`
	OutputPath       string `json:"output_path,omitempty"`
	OutputFormat     string `json:"output_format,omitempty"`
	PrimaryKey       string `json:"primary_key,omitempty"`
	EmitProgramGroup *bool  `json:"emit_program_group,omitempty"`
	EmitCohort       *bool  `json:"emit_cohort,omitempty"`
	EmitSeminars     *bool  `json:"emit_seminars,omitempty"`
	Preview          bool   `json:"preview,omitempty"`
}

type GenerateLettersParams struct {
	SourceFile string `json:"source_file,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Individual *bool  `json:"individual,omitempty"`
	Collective *bool  `json:"collective,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

type ResolveProgramParams struct {
	ProgramCode  string `json:"program_code,omitempty"`
	ProgramGroup string `json:"program_group,omitempty"`
}

type DescribeColumnsParams struct {
	EmitProgramGroup *bool `json:"emit_program_group,omitempty"`
	EmitCohort       *bool `json:"emit_cohort,omitempty"`
	EmitSeminars     *bool `json:"emit_seminars,omitempty"`
}

// ConvertRosterResponse summarizes a conversion or preview.
type ConvertRosterResponse struct {
	RunID    string   `json:"run_id,omitempty"`
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Columns  []string `json:"columns"`
	Files    []string `json:"files,omitempty"`
	Preview  bool     `json:"preview,omitempty"`
}

type GenerateLettersResponse struct {
	RunID     string           `json:"run_id"`
	Ingested  int              `json:"ingested"`
	Skipped   int              `json:"skipped"`
	Documents []LetterDocument `json:"documents"`
	DryRun    bool             `json:"dry_run,omitempty"`
}

type LetterDocument struct {
	Path       string `json:"path"`
	Collective bool   `json:"collective"`
	Sections   int    `json:"sections"`
}

type ResolveProgramResponse struct {
	Label    string `json:"label"`
	Resolved bool   `json:"resolved"`
}

type DescribeColumnsResponse struct {
	Accepted []string          `json:"accepted"`
	Rejected []string          `json:"rejected"`
	Source   map[string]string `json:"source"`
}
