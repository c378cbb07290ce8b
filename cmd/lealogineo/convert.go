package main

import (
	"fmt"

	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	source     string
	output     string
	format     string
	primaryKey string
	preview    bool
}

func newConvertCmd(global *globalOptions) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a LEA roster export into the LOGINEO import table",
		Long: `Reads the LEA roster export (.xlsx or .csv), keeps rows with a usable
primary identifier and writes them in the LOGINEO import format. Rows without
one are written to a separate table for triage.

Exit status is 2 when no row could be converted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return runConvert(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "roster export (overrides roster.source_file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides roster.output_path)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "xlsx, csv or sqlite (overrides roster.output_format)")
	cmd.Flags().StringVar(&opts.primaryKey, "primary-key", "", "LEAID or IdentNr (overrides roster.primary_key)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "classify and print counts without writing files")
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, opts *convertOptions) error {
	rc := a.cfg.Roster
	if opts.source != "" {
		rc.SourceFile = opts.source
	}
	if opts.output != "" {
		rc.OutputPath = opts.output
	}
	if opts.format != "" {
		rc.OutputFormat = opts.format
	}
	if opts.primaryKey != "" {
		rc.PrimaryKey = opts.primaryKey
	}

	rules, err := rc.Rules()
	if err != nil {
		return err
	}
	format, err := rc.Format()
	if err != nil {
		return err
	}
	svc, err := a.rosterService()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.preview {
		batch, err := svc.Preview(cmd.Context(), rc.SourceFile, rules)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "accepted: %d\nrejected: %d\n", len(batch.Accepted), len(batch.Rejected))
		if len(batch.Accepted) == 0 {
			return roster.ErrNoEligibleRecords
		}
		return nil
	}

	res, err := svc.Convert(cmd.Context(), roster.ConvertRequest{
		SourcePath: rc.SourceFile,
		OutputDir:  rc.OutputPath,
		Format:     format,
		Rules:      rules,
	})
	if res != nil {
		fmt.Fprintf(out, "accepted: %d\nrejected: %d\n", res.Accepted, res.Rejected)
		for _, f := range res.Files {
			fmt.Fprintf(out, "wrote %s\n", f)
		}
	}
	return err
}
