package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andri/datasaver/pkg/styles"
)

// ProgressWriter prints save steps as they happen.
type ProgressWriter struct {
	w     io.Writer
	icons styles.Icons
	quiet bool
}

// NewProgressWriter creates a new ProgressWriter.
// If w is nil, os.Stderr is used.
func NewProgressWriter(w io.Writer, icons styles.Icons, quiet bool) *ProgressWriter {
	if w == nil {
		w = os.Stderr
	}
	return &ProgressWriter{w: w, icons: icons, quiet: quiet}
}

// Step prints an in-progress step.
func (pw *ProgressWriter) Step(format string, args ...any) {
	pw.print(pw.icons.Arrow, format, args...)
}

// PrintSuccess prints a success message.
func (pw *ProgressWriter) PrintSuccess(format string, args ...any) {
	pw.print(pw.icons.Checkmark, format, args...)
}

// PrintError prints an error message. Errors are printed even when quiet.
func (pw *ProgressWriter) PrintError(format string, args ...any) {
	_, _ = fmt.Fprintf(pw.w, "%s %s\n", pw.icons.Cross, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (pw *ProgressWriter) print(prefix, format string, args ...any) {
	if pw.quiet {
		return
	}
	_, _ = fmt.Fprintf(pw.w, "%s %s\n", prefix, strings.TrimSpace(fmt.Sprintf(format, args...)))
}
