package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andri/datasaver/pkg/cli"
	"github.com/andri/datasaver/pkg/config"
	"github.com/andri/datasaver/pkg/styles"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		skipPrompt bool
		wantResult bool
	}{
		{name: "yes lowercase", input: "y\n", wantResult: true},
		{name: "yes uppercase", input: "Y\n", wantResult: true},
		{name: "yes full word", input: "YES\n", wantResult: true},
		{name: "no", input: "n\n", wantResult: false},
		{name: "empty line", input: "\n", wantResult: false},
		{name: "eof", input: "", wantResult: false},
		{name: "whitespace around yes", input: "  yes  \n", wantResult: true},
		{name: "skip prompt", input: "", skipPrompt: true, wantResult: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := cli.Confirm(cli.ConfirmOptions{
				Question:   "Proceed?",
				SkipPrompt: tt.skipPrompt,
				Input:      strings.NewReader(tt.input),
				Output:     &out,
			})
			if err != nil {
				t.Fatalf("Confirm() error: %v", err)
			}
			if got != tt.wantResult {
				t.Errorf("Confirm() = %v, want %v", got, tt.wantResult)
			}
			if !tt.skipPrompt && !strings.Contains(out.String(), "Proceed? (y/N): ") {
				t.Errorf("expected prompt, got %q", out.String())
			}
			if tt.skipPrompt && out.Len() != 0 {
				t.Errorf("expected no prompt when skipped, got %q", out.String())
			}
		})
	}
}

func TestConfirmOverwrite(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		input    string
		skip     bool
		declined bool
		wantErr  bool
	}{
		{name: "always", policy: config.OverwriteAlways},
		{name: "never", policy: config.OverwriteNever, declined: true},
		{name: "never with yes flag", policy: config.OverwriteNever, skip: true},
		{name: "prompt accepted", policy: config.OverwritePrompt, input: "y\n"},
		{name: "prompt declined", policy: config.OverwritePrompt, input: "n\n", declined: true},
		{name: "prompt skipped", policy: config.OverwritePrompt, skip: true},
		{name: "unknown policy", policy: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.ConfirmOverwrite("out.txt", tt.policy, cli.ConfirmOptions{
				SkipPrompt: tt.skip,
				Input:      strings.NewReader(tt.input),
				Output:     &out,
			})

			switch {
			case tt.declined:
				if !errors.Is(err, cli.ErrOverwriteDeclined) {
					t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
				}
			case tt.wantErr:
				if err == nil || errors.Is(err, cli.ErrOverwriteDeclined) {
					t.Fatalf("expected policy error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	pw := cli.NewProgressWriter(&buf, styles.GetIcons(styles.Capability{HasUnicode: true}), false)

	pw.Step("rendering %s data", "html")
	pw.PrintSuccess("saved %d bytes", 15)
	pw.PrintError("write failed ")

	want := "→ rendering html data\n✓ saved 15 bytes\n✗ write failed\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestProgressWriterQuiet(t *testing.T) {
	var buf bytes.Buffer
	pw := cli.NewProgressWriter(&buf, styles.GetIcons(styles.Capability{}), true)

	pw.Step("rendering")
	pw.PrintSuccess("saved")
	pw.PrintError("failed")

	if buf.String() != "[X] failed\n" {
		t.Errorf("expected only the error line, got %q", buf.String())
	}
}
