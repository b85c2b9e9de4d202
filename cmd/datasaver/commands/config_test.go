package commands_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andri/datasaver/cmd/datasaver/commands"
)

func TestConfigShowDefaults(t *testing.T) {
	stdout, _, err := execute(t, "", "config", "show", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got commands.ConfigOutput
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if got.ConfigFile != "" {
		t.Errorf("expected no config file, got %q", got.ConfigFile)
	}
	if got.Config.Output.Format != "text" {
		t.Errorf("unexpected default format %q", got.Config.Output.Format)
	}
	if !got.Config.Output.Atomic {
		t.Error("expected atomic writes by default")
	}
}

func TestConfigShowFromFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "datasaver.toml")
	writeFile(t, cfgPath, "[output]\nformat = \"html\"\nstrict = true\n")

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			stdout, _, err := execute(t, "", "--config", cfgPath, "config", "show", "-o", format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout, cfgPath) {
				t.Errorf("expected config file path in output, got:\n%s", stdout)
			}
			if !strings.Contains(stdout, "html") {
				t.Errorf("expected format from file, got:\n%s", stdout)
			}
		})
	}
}

func TestConfigShowInvalidFormat(t *testing.T) {
	if _, _, err := execute(t, "", "config", "show", "-o", "table"); err == nil {
		t.Fatal("expected error for table output")
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "valid.yaml")
		writeFile(t, cfgPath, "output:\n  format: json\n")

		stdout, _, err := execute(t, "", "config", "validate", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Configuration is valid.") {
			t.Errorf("unexpected output:\n%s", stdout)
		}
	})

	t.Run("warnings", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "warn.yaml")
		writeFile(t, cfgPath, "output:\n  append: true\n")

		stdout, _, err := execute(t, "", "config", "validate", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Warnings:") {
			t.Errorf("expected warnings, got:\n%s", stdout)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "invalid.yaml")
		writeFile(t, cfgPath, "output:\n  format: xml\n  overwrite: sometimes\n")

		stdout, _, err := execute(t, "", "config", "validate", cfgPath)
		if err == nil {
			t.Fatal("expected validation error")
		}
		for _, want := range []string{"Configuration has errors:", "output.format", "output.overwrite"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "invalid.json.yaml")
		writeFile(t, cfgPath, "logging:\n  level: loud\n")

		stdout, _, err := execute(t, "", "config", "validate", cfgPath, "-o", "json")
		if err == nil {
			t.Fatal("expected validation error")
		}
		var got commands.ValidationOutput
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("decode: %v\n%s", err, stdout)
		}
		if got.Valid || len(got.Errors) != 1 {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		stdout, _, err := execute(t, "", "config", "validate", filepath.Join(dir, "missing.yaml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !strings.Contains(stdout, "config file not found") {
			t.Errorf("unexpected output:\n%s", stdout)
		}
	})
}
