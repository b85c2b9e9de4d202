package commands

import (
	"fmt"

	"github.com/andri/datasaver/pkg/config"
	"github.com/andri/datasaver/pkg/render"
	"github.com/andri/datasaver/pkg/saver"
	"github.com/andri/datasaver/pkg/sink"
	"github.com/andri/datasaver/pkg/styles"
	"github.com/spf13/cobra"
)

// RenderOptions holds options for the render command
type RenderOptions struct {
	payloadOptions

	// Pretty frames the rendering in a styled preview box
	Pretty bool
}

// newRenderCmd creates the render subcommand
func newRenderCmd() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a payload to stdout",
		Long: `Render a payload in the chosen format and write it to stdout.

Output is written verbatim, with no trailing newline, so it can be piped.
Use --pretty for a framed preview with the format name and size.`,
		Example: `  # Print the HTML rendering
  datasaver render hi --format html

  # Preview the JSON rendering
  datasaver render x -f json --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", config.DefaultOutputFormat, "data format: text, html, json")
	flags.BoolVarP(&opts.Pretty, "pretty", "p", false, "show a styled preview instead of raw output")
	flags.BoolVar(&opts.Stdin, "stdin", false, "read the payload from stdin")
	flags.BoolVar(&opts.KeepNewline, "keep-newline", false, "keep a trailing newline read with --stdin")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	payload, err := readPayload(args, cmd.InOrStdin(), opts.payloadOptions)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(GlobalOptions.Config.Output.Format)
	if err != nil {
		return err
	}
	data := render.NewData(payload, format)
	out := cmd.OutOrStdout()

	if opts.Pretty {
		rendered, err := data.Render()
		if err != nil {
			return err
		}
		theme := styles.NewTheme(out, styles.DetectCapabilities(out))
		_, err = fmt.Fprintln(out, theme.Preview(format.String(), rendered))
		return err
	}

	s, err := saver.ForFormat(format)
	if err != nil {
		return err
	}
	if err := saver.SaveData(out, data, s); err != nil {
		if sink.IsBrokenPipe(err) {
			return nil
		}
		return err
	}
	if styles.IsTerminal(out) {
		_, _ = fmt.Fprintln(out)
	}
	return nil
}
