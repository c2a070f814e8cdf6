package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pain/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pain-lsp build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "pain-lsp %s\n", version.Colored()); err != nil {
			return err
		}
		for _, line := range version.Details() {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	},
}
