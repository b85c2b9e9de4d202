package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/andri/datasaver/internal/logger"
	"github.com/andri/datasaver/pkg/cli"
	"github.com/andri/datasaver/pkg/config"
	"github.com/andri/datasaver/pkg/output"
	"github.com/andri/datasaver/pkg/render"
	"github.com/andri/datasaver/pkg/saver"
	"github.com/andri/datasaver/pkg/sink"
	"github.com/andri/datasaver/pkg/styles"
	"github.com/spf13/cobra"
)

// SaveOptions holds options specific to the save command
type SaveOptions struct {
	payloadOptions

	// Saver names the saver to use; empty selects the one paired with the format
	Saver string

	// Output is an explicit output path; "-" writes to stdout
	Output string

	// Yes answers yes to the overwrite prompt
	Yes bool

	// Report prints a save report: table, json, yaml or toml
	Report string

	// Quiet suppresses progress lines
	Quiet bool
}

// newSaveCmd creates the save subcommand
func newSaveCmd() *cobra.Command {
	opts := &SaveOptions{}

	cmd := &cobra.Command{
		Use:   "save [payload]",
		Short: "Render a payload and save it",
		Long: `Render a payload in the chosen format and save it with a saver.

The output path comes from --output or from the output.path-template
setting, where {{.Format}} and {{.Ext}} expand to the format name and its
file extension. Existing files are backed up and, depending on the
output.overwrite policy, confirmed before being replaced.

By default the saver paired with --format is used. --saver picks another
one; the data is still written in its own format unless --strict is set,
in which case the mismatch is refused.`,
		Example: `  # Save "hello" to ./data.txt
  datasaver save hello

  # Save as HTML to a specific file
  datasaver save hi --format html --output page.html

  # Save JSON to stdout
  datasaver save x -f json -o -

  # Read the payload from stdin and print a JSON report
  echo hello | datasaver save --stdin --yes --report json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return validateSaveOptions(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", config.DefaultOutputFormat, "data format: text, html, json")
	flags.StringVar(&opts.Saver, "saver", "", "saver to use: text, html, json (default: paired with --format)")
	flags.StringVarP(&opts.Output, "output", "o", "", `output path, "-" for stdout (default: output.path-template)`)
	flags.String("template", config.DefaultPathTemplate, "output path template")
	flags.Bool("append", false, "append to the output file instead of replacing it")
	flags.Bool("atomic", true, "write to a temp file and rename it into place")
	flags.Bool("strict", false, "refuse a saver whose format differs from the data's")
	flags.String("overwrite", config.DefaultOverwrite, "existing file policy: prompt, always, never")
	flags.Bool("backup", config.DefaultBackupEnabled, "back up files before replacing them")
	flags.String("backup-dir", "", "directory for backups (default: next to the file)")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "replace existing files without prompting")
	flags.BoolVar(&opts.Stdin, "stdin", false, "read the payload from stdin")
	flags.BoolVar(&opts.KeepNewline, "keep-newline", false, "keep a trailing newline read with --stdin")
	flags.StringVarP(&opts.Report, "report", "r", "", "print a save report: table, json, yaml, toml")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

// validateSaveOptions validates options that do not depend on configuration
func validateSaveOptions(opts *SaveOptions) error {
	if opts.Report != "" {
		if _, err := output.ParseFormat(opts.Report); err != nil {
			return fmt.Errorf("--report: %w", err)
		}
	}
	return nil
}

func runSave(cmd *cobra.Command, args []string, opts *SaveOptions) error {
	cfg := GlobalOptions.Config.Output

	payload, err := readPayload(args, cmd.InOrStdin(), opts.payloadOptions)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	s, saverFormat, err := resolveSaver(format, opts.Saver, cfg.Strict)
	if err != nil {
		return err
	}
	if saverFormat != format {
		logger.Warn("saver does not match data format", "format", format, "saver", saverFormat, "strict", cfg.Strict)
	}

	path, err := resolveOutputPath(opts.Output, cfg.PathTemplate, format)
	if err != nil {
		return err
	}

	capability := styles.DetectCapabilities(cmd.ErrOrStderr())
	progress := cli.NewProgressWriter(cmd.ErrOrStderr(), styles.GetIcons(capability), opts.Quiet)
	log := logger.With("path", path, "format", format.String(), "saver", saver.Name(s))

	result := &output.SaveResult{
		Path:   path,
		Format: format.String(),
		Saver:  saver.Name(s),
	}

	var w io.WriteCloser
	var file *sink.File
	if path == sink.StdoutPath {
		w = sink.Stdout(cmd.OutOrStdout())
	} else {
		backupPath, prepErr := prepareTarget(cmd, path, opts)
		if prepErr != nil {
			return prepErr
		}
		result.BackupPath = backupPath
		result.Appended = cfg.Append

		file, err = openSink(path, sink.Options{
			Append: cfg.Append,
			Atomic: cfg.Atomic && !cfg.Append,
		})
		if err != nil {
			return err
		}
		w = file
	}

	progress.Step("saving %s data with the %s saver to %s", format, saver.Name(s), path)
	log.Debug("saving data", "bytes", len(payload))

	if err := saver.SaveData(w, render.NewData(payload, format), s); err != nil {
		if file != nil {
			_ = file.Abort()
		}
		if sink.IsBrokenPipe(err) {
			log.Debug("output closed early", "error", err)
			return nil
		}
		progress.PrintError("save failed: %v", err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		progress.PrintError("save failed: %v", err)
		return err
	}

	if file != nil {
		result.Bytes = file.Written()
	} else {
		rendered, _ := render.NewData(payload, format).Render()
		result.Bytes = int64(len(rendered))
	}
	result.SavedAt = now().UTC()

	log.Info("saved data", "bytes", result.Bytes, "backup", result.BackupPath)
	progress.PrintSuccess("saved %d bytes to %s", result.Bytes, path)

	if opts.Report != "" {
		reportOut := cmd.OutOrStdout()
		if path == sink.StdoutPath {
			reportOut = cmd.ErrOrStderr()
		}
		return output.Render(reportOut, result, output.Format(opts.Report))
	}
	return nil
}

// resolveOutputPath picks the explicit path when set, otherwise the template.
func resolveOutputPath(explicit, template string, format render.Format) (string, error) {
	if explicit != "" {
		return sink.ResolveExplicit(explicit)
	}
	return sink.ResolvePath(template, format)
}

// prepareTarget applies the overwrite policy and backs up an existing file.
// Appending never replaces content, so it skips both.
func prepareTarget(cmd *cobra.Command, path string, opts *SaveOptions) (string, error) {
	cfg := GlobalOptions.Config

	exists, err := sink.Exists(path)
	if err != nil {
		return "", err
	}
	if !exists || cfg.Output.Append {
		return "", nil
	}

	// With --stdin the payload has consumed the input the prompt would read.
	if opts.Stdin && !opts.Yes && isPromptPolicy(cfg.Output.Overwrite) {
		return "", fmt.Errorf("%w: %s (the payload was read from stdin, so the prompt cannot be answered; pass --yes or set --overwrite)",
			cli.ErrOverwriteDeclined, path)
	}

	err = cli.ConfirmOverwrite(path, cfg.Output.Overwrite, cli.ConfirmOptions{
		SkipPrompt: opts.Yes,
		Input:      cmd.InOrStdin(),
		Output:     cmd.ErrOrStderr(),
	})
	if err != nil {
		if errors.Is(err, cli.ErrOverwriteDeclined) {
			logger.Info("left existing output file in place", "path", path)
		}
		return "", err
	}

	return sink.BackupFile(path, sink.BackupOptions{
		Enabled:   cfg.Backup.Enabled,
		Directory: cfg.Backup.Directory,
		Now:       now,
	})
}

func isPromptPolicy(policy string) bool {
	return policy == config.OverwritePrompt || policy == ""
}
