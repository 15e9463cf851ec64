// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refconvert/internal/convert"
)

// runConvertAll converts every reference file in the input directory.
// Individual failures are reported but do not change the exit status unless
// --strict is set.
func runConvertAll(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	reportPath, _ := cmd.Flags().GetString("report")
	strict, _ := cmd.Flags().GetBool("strict")

	progress := cmd.OutOrStdout()
	if jsonOutput {
		progress = cmd.ErrOrStderr()
	}

	c := convert.New(converterConfig(), progress, logger)

	if dryRun {
		return printPlan(c, cmd.OutOrStdout())
	}

	result, err := c.ConvertAll()
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := convert.FormatJSON(result, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if reportPath != "" {
		if err := convert.WriteReport(result, reportPath); err != nil {
			return err
		}
		fmt.Fprintf(progress, "Report written to: %s\n", reportPath)
	}

	if strict && result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func printPlan(c *convert.Converter, w io.Writer) error {
	jobs, err := c.Plan()
	if err != nil {
		return err
	}
	cfg := c.Config()
	if len(jobs) == 0 {
		fmt.Fprintf(w, "No files matching pattern '%s' found in %s\n", cfg.Pattern, cfg.InputDir)
		return nil
	}
	for _, job := range jobs {
		fmt.Fprintf(w, "%s -> %s\n", job.Input, job.Output)
	}
	fmt.Fprintf(w, "\n%d file(s) would be converted\n", len(jobs))
	return nil
}
