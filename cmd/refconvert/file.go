// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refconvert/internal/convert"
)

var fileCmd = &cobra.Command{
	Use:   "file <input.json> <output.html>",
	Short: "Convert a single reference file",
	Long: `File converts one reference JSON file into an HTML ordered list at the
given output path, independent of the configured directories. The output
directory must already exist.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := convert.New(converterConfig(), cmd.OutOrStdout(), logger)
		result := c.ConvertOne(args[0], args[1])
		if !result.OK() {
			return fmt.Errorf("conversion failed: %s", result.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fileCmd)
}
