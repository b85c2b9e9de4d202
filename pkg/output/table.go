package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

// TableWriter writes reports as aligned plain text tables
type TableWriter struct {
	w     io.Writer
	color bool
}

// NewTableWriter creates a new table writer. Color is enabled only when w
// is a terminal.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// RenderTable writes a *FormatList or *SaveResult as a table.
func RenderTable(w io.Writer, report any) error {
	tw := NewTableWriter(w)
	switch r := report.(type) {
	case *FormatList:
		tw.WriteFormatList(r)
	case *SaveResult:
		tw.WriteSaveResult(r)
	default:
		return fmt.Errorf("table output not supported for %T", report)
	}
	return nil
}

// WriteFormatList writes the format listing table
func (tw *TableWriter) WriteFormatList(list *FormatList) {
	tw.writeSectionHeader("FORMATS", len(list.Formats))

	cols := []column{
		{header: "NAME", width: 6},
		{header: "EXT", width: 5},
		{header: "SAVER", width: 6},
		{header: "EXAMPLE", width: 24},
	}
	tw.writeTableHeader(cols)
	tw.writeTableSeparator(cols)
	for _, f := range list.Formats {
		tw.writeTableRow(cols, []cell{
			{value: f.Name, color: colorCyan},
			{value: f.Extension},
			{value: f.Saver},
			{value: f.Example},
		})
	}
}

// WriteSaveResult writes a key/value summary of a save
func (tw *TableWriter) WriteSaveResult(r *SaveResult) {
	mode := "write"
	if r.Appended {
		mode = "append"
	}

	rows := [][2]string{
		{"Path", r.Path},
		{"Format", r.Format},
		{"Saver", r.Saver},
		{"Bytes", fmt.Sprintf("%d", r.Bytes)},
		{"Mode", mode},
	}
	if r.BackupPath != "" {
		rows = append(rows, [2]string{"Backup", r.BackupPath})
	}

	for _, row := range rows {
		label := tw.colorize(runewidth.FillRight(row[0]+":", 8), colorBold)
		_, _ = fmt.Fprintf(tw.w, "%s %s\n", label, row[1])
	}
	_, _ = fmt.Fprintln(tw.w, tw.colorize("saved", colorGreen))
}

// column defines a table column
type column struct {
	header string
	width  int
}

// cell defines a table cell
type cell struct {
	value string
	color string
}

func (tw *TableWriter) writeSectionHeader(title string, count int) {
	header := fmt.Sprintf("=== %s (%d) ===", title, count)
	_, _ = fmt.Fprintln(tw.w, tw.colorize(header, colorBold+colorCyan))
}

func (tw *TableWriter) writeTableHeader(cols []column) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = padRight(col.header, col.width)
	}
	_, _ = fmt.Fprintln(tw.w, strings.TrimRight(tw.colorize(strings.Join(parts, " "), colorBold), " "))
}

func (tw *TableWriter) writeTableSeparator(cols []column) {
	totalWidth := 0
	for _, col := range cols {
		totalWidth += col.width + 1
	}
	_, _ = fmt.Fprintln(tw.w, strings.Repeat("-", totalWidth-1))
}

func (tw *TableWriter) writeTableRow(cols []column, cells []cell) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		var c cell
		if i < len(cells) {
			c = cells[i]
		}
		padded := padRight(c.value, col.width)
		if c.color != "" {
			padded = tw.colorize(padded, c.color)
		}
		parts[i] = padded
	}
	_, _ = fmt.Fprintln(tw.w, strings.TrimRight(strings.Join(parts, " "), " "))
}

// padRight pads or truncates s to the display width
func padRight(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// colorize adds ANSI color codes if color is enabled
func (tw *TableWriter) colorize(s, color string) string {
	if !tw.color || color == "" {
		return s
	}
	return color + s + colorReset
}
