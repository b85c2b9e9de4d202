package sink

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/andri/datasaver/pkg/render"
)

// StdoutPath is the output path that selects standard output.
const StdoutPath = "-"

// pathVars are the fields available to output path templates.
type pathVars struct {
	Format string
	Ext    string
}

// ResolvePath renders an output path template such as "./out/data.{{.Ext}}"
// for the given format, expands a leading ~ and creates the parent directory.
func ResolvePath(templatePath string, format render.Format) (string, error) {
	if strings.TrimSpace(templatePath) == "" {
		return "", errors.New("output path template is required")
	}
	if !format.Valid() {
		return "", fmt.Errorf("%w: %s", render.ErrInvalidFormat, format)
	}

	tmpl, err := template.New("output-path").Option("missingkey=error").Parse(templatePath)
	if err != nil {
		return "", fmt.Errorf("invalid output path template: %w", err)
	}

	var rendered bytes.Buffer
	vars := pathVars{Format: format.String(), Ext: format.Extension()}
	if execErr := tmpl.Execute(&rendered, vars); execErr != nil {
		return "", fmt.Errorf("invalid output path template: %w", execErr)
	}

	return ResolveExplicit(rendered.String())
}

// ResolveExplicit expands a literal path and creates its parent directory.
// The stdout path is returned unchanged.
func ResolveExplicit(path string) (string, error) {
	if path == StdoutPath {
		return path, nil
	}

	resolved, err := expandHome(path)
	if err != nil {
		return "", err
	}
	if ensureErr := ensureParentDir(resolved); ensureErr != nil {
		return "", ensureErr
	}
	return resolved, nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat output file %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("output path is a directory: %s", path)
	}
	return true, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}
