package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `lealogineo prepares LOGINEO accounts for trainee teachers.

Tools:
- convert_roster: read a LEA roster export and write the LOGINEO import table
  (Referendare) plus a table of rejected rows (Referendare-FEHLER). Use preview=true
  to see counts without writing files.
- describe_columns: show which output columns the current toggles produce.
- resolve_program: map a Lehramt or Lehramtgruppe code to its program label.
- generate_letters: render credential letters as PDF from a LOGINEO account export.

Arguments left out fall back to the server configuration. Results are JSON. Failed
calls return an error object with code, message and recovery_hint.

Docs:
- lealogineo://docs/configuration
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "lealogineo://docs/configuration",
		Name:        "configuration",
		Title:       "Configuration reference",
		Description: "YAML keys, defaults and environment overrides",
		Content: `# Configuration

The YAML file is read from --config or LEALOGINEO_CONFIG_PATH. Toggles accept
true/false or ja/nein. An empty toggle keeps its default.

## roster

| key | default | meaning |
|---|---|---|
| source_file | | LEA export (.xlsx, .xls or .csv) |
| primary_key | LEAID | LEAID or IdentNr; rows without the key are rejected |
| emit_program_group | ja | Seminar and Lehramt columns |
| emit_cohort | ja | Jahrgang column (YYYY-MM of the start date) |
| emit_seminars | ja | Kernseminar, Fachseminar_1, Fachseminar_2 columns |
| output_path | output | directory for <timestamp>_referendare.<ext> |
| output_format | xlsx | xlsx, csv or sqlite |
| csv_delimiter | , | delimiter of .csv sources and csv output |
| csv_encoding | utf-8 | utf-8 or windows-1252 |
| category | LAA | value of the Typ column |
| columns.* | LAA_Logineo, ... | source column names |

## letters

| key | default | meaning |
|---|---|---|
| csv_file | | credential export (.csv or .xlsx) |
| xml_file | | credential export (.xml); wins over csv_file |
| csv_delimiter | , | single character or \t |
| csv_encoding | utf-8 | utf-8 or windows-1252 |
| output_path | pdf-files | letter root directory |
| portal_link | | host name printed as https://<portal_link> |
| support_name, support_mail | | contact printed on every letter |
| individual | ja | one letter per account |
| collective | nein | one letter per category and program |
| default_category | SAB | category of records without one |
| default_seminar | Seminar_UNBEKANNT | folder of records without a seminar |
| workers | 4 | parallel renderers |
| xml.container, xml.surname, ... | | exact XML tag names tried before the heuristics |

## log and metrics

| key | default | meaning |
|---|---|---|
| log.level | info | debug, info, warn or error (LEALOGINEO_LOG_LEVEL) |
| log.path | | log file, size capped (LEALOGINEO_LOG_PATH) |
| metrics.textfile | | node exporter textfile written after each run |

LEALOGINEO_OUTPUT_PATH and LEALOGINEO_PDF_OUTPUT_PATH override the two output paths.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
