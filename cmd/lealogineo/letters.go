package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type lettersOptions struct {
	source     string
	output     string
	individual bool
	collective bool
	workers    int
	dryRun     bool
}

func newLettersCmd(global *globalOptions) *cobra.Command {
	opts := &lettersOptions{}
	cmd := &cobra.Command{
		Use:   "letters",
		Short: "Render credential letters from a LOGINEO account export",
		Long: `Reads a LOGINEO account export (.csv, .xlsx or .xml) and renders one PDF
letter per account, one collective letter per category and program, or both.

Exit status is 2 when the export holds no account with a password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return runLetters(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "account export (overrides letters.xml_file and letters.csv_file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides letters.output_path)")
	cmd.Flags().BoolVar(&opts.individual, "individual", false, "one letter per account (overrides letters.individual)")
	cmd.Flags().BoolVar(&opts.collective, "collective", false, "one letter per category and program (overrides letters.collective)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel renderers (overrides letters.workers)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list the planned documents without rendering")
	return cmd
}

func runLetters(cmd *cobra.Command, a *app, opts *lettersOptions) error {
	req := a.cfg.Letters.Request()
	flags := cmd.Flags()
	if opts.source != "" {
		req.SourcePath = opts.source
	}
	if opts.output != "" {
		req.OutputDir = opts.output
	}
	if flags.Changed("individual") {
		req.Mode.Individual = opts.individual
	}
	if flags.Changed("collective") {
		req.Mode.Collective = opts.collective
	}
	if opts.workers > 0 {
		req.Workers = opts.workers
	}
	req.DryRun = opts.dryRun

	svc, err := a.letterService()
	if err != nil {
		return err
	}
	res, err := svc.Generate(cmd.Context(), req)
	if res != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ingested: %d\nskipped: %d\n", res.Ingested, res.Skipped)
		verb := "wrote"
		if opts.dryRun {
			verb = "would write"
		}
		for _, p := range res.Paths() {
			fmt.Fprintf(out, "%s %s\n", verb, p)
		}
	}
	return err
}
