package commands

import (
	"fmt"

	"github.com/andri/datasaver/pkg/output"
	"github.com/spf13/cobra"
)

// newFormatsCmd creates the formats subcommand
func newFormatsCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List data formats and their savers",
		Example: `  datasaver formats
  datasaver formats -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				return fmt.Errorf("--output: %w", err)
			}
			list, err := output.BuildFormatList()
			if err != nil {
				return err
			}
			return output.Render(cmd.OutOrStdout(), list, format)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatTable),
		"output format: table, json, yaml, toml")

	return cmd
}
