// Package cli provides interactive helpers for datasaver commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andri/datasaver/pkg/config"
)

// ErrOverwriteDeclined is returned when an existing output file must not be replaced.
var ErrOverwriteDeclined = errors.New("output file exists and was not overwritten")

// ConfirmOptions holds options for the confirmation prompt.
type ConfirmOptions struct {
	// Question is the prompt to display to the user.
	Question string

	// SkipPrompt skips the confirmation and returns true immediately.
	// Use this with -y/--yes flags.
	SkipPrompt bool

	// Input is the reader for user input (defaults to os.Stdin).
	Input io.Reader

	// Output is the writer for the prompt (defaults to os.Stderr so
	// prompts never mix with data written to stdout).
	Output io.Writer
}

// Confirm prompts the user for confirmation with a y/n question.
// Returns true if the user confirms (y/Y/yes), false otherwise.
func Confirm(opts ConfirmOptions) (bool, error) {
	if opts.SkipPrompt {
		return true, nil
	}

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	_, _ = fmt.Fprintf(output, "%s (y/N): ", opts.Question)

	scanner := bufio.NewScanner(input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read input: %w", err)
		}
		// EOF without input
		return false, nil
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ConfirmOverwrite applies an overwrite policy to an existing output file.
// It returns ErrOverwriteDeclined when the file must be left alone.
func ConfirmOverwrite(path, policy string, opts ConfirmOptions) error {
	switch policy {
	case config.OverwriteAlways:
		return nil
	case config.OverwriteNever:
		if opts.SkipPrompt {
			return nil
		}
		return fmt.Errorf("%w: %s (overwrite policy is %q)", ErrOverwriteDeclined, path, policy)
	case config.OverwritePrompt, "":
		opts.Question = fmt.Sprintf("Overwrite existing file %s?", path)
		ok, err := Confirm(opts)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrOverwriteDeclined, path)
		}
		return nil
	default:
		return fmt.Errorf("unknown overwrite policy %q", policy)
	}
}
