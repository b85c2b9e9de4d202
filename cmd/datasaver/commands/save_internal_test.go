package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andri/datasaver/pkg/output"
	"github.com/andri/datasaver/pkg/render"
	"github.com/andri/datasaver/pkg/saver"
	"github.com/andri/datasaver/pkg/sink"
)

func stubSaveHooks(t *testing.T) *[]sink.Options {
	t.Helper()

	origOpen := openSink
	origNow := now
	t.Cleanup(func() {
		openSink = origOpen
		now = origNow
	})

	var opened []sink.Options
	openSink = func(path string, opts sink.Options) (*sink.File, error) {
		opened = append(opened, opts)
		return sink.Open(path, opts)
	}
	now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return &opened
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return stdout.String()
}

func TestSaveUsesAtomicSinkByDefault(t *testing.T) {
	opened := stubSaveHooks(t)
	path := filepath.Join(t.TempDir(), "data.txt")

	runRoot(t, "save", "hello", "-o", path)

	if len(*opened) != 1 {
		t.Fatalf("expected one sink, got %d", len(*opened))
	}
	if got := (*opened)[0]; !got.Atomic || got.Append {
		t.Errorf("unexpected sink options %+v", got)
	}
}

func TestSaveAppendDisablesAtomic(t *testing.T) {
	opened := stubSaveHooks(t)
	path := filepath.Join(t.TempDir(), "data.txt")

	runRoot(t, "save", "hello", "-o", path, "--append")

	if got := (*opened)[0]; got.Atomic || !got.Append {
		t.Errorf("unexpected sink options %+v", got)
	}
}

func TestSaveStdoutSkipsFileSink(t *testing.T) {
	opened := stubSaveHooks(t)

	if got := runRoot(t, "save", "hi", "-f", "html", "-o", "-"); got != "<html>hi</html>" {
		t.Errorf("unexpected stdout %q", got)
	}
	if len(*opened) != 0 {
		t.Errorf("expected no file sink, got %d", len(*opened))
	}
}

func TestSaveBackupUsesClock(t *testing.T) {
	stubSaveHooks(t)
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stdout := runRoot(t, "save", "x", "-f", "json", "-o", path, "-y", "-r", "json")

	var result output.SaveResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if result.BackupPath != path+".20240101T120000Z.bak" {
		t.Errorf("unexpected backup path %q", result.BackupPath)
	}
	if !result.SavedAt.Equal(now()) {
		t.Errorf("unexpected savedAt %v", result.SavedAt)
	}
}

func TestReadPayload(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		opts    payloadOptions
		want    string
		wantErr bool
	}{
		{name: "argument", args: []string{"hello"}, want: "hello"},
		{name: "empty argument", args: []string{""}, want: ""},
		{name: "stdin", stdin: "hi\r\n", opts: payloadOptions{Stdin: true}, want: "hi"},
		{name: "stdin keep newline", stdin: "hi\n", opts: payloadOptions{Stdin: true, KeepNewline: true}, want: "hi\n"},
		{name: "stdin multiline", stdin: "a\nb\n", opts: payloadOptions{Stdin: true}, want: "a\nb"},
		{name: "both", args: []string{"x"}, opts: payloadOptions{Stdin: true}, wantErr: true},
		{name: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(tt.args, strings.NewReader(tt.stdin), tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSaver(t *testing.T) {
	s, f, err := resolveSaver(render.FormatHTML, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != render.FormatHTML || saver.Name(s) != "html" {
		t.Errorf("expected paired html saver, got %s/%s", f, saver.Name(s))
	}

	s, f, err = resolveSaver(render.FormatHTML, "json", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != render.FormatJSON || saver.Name(s) != "json" {
		t.Errorf("expected json saver, got %s/%s", f, saver.Name(s))
	}

	var buf bytes.Buffer
	if err := saver.SaveData(&buf, render.NewData("x", render.FormatHTML), s); err == nil {
		t.Error("expected strict saver to refuse html data")
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestSaveRepeatedWithinOneSecond(t *testing.T) {
	stubSaveHooks(t)
	path := filepath.Join(t.TempDir(), "out.txt")

	for _, payload := range []string{"a", "b", "c", "d"} {
		runRoot(t, "save", payload, "-o", path, "-y")
	}

	if got, err := os.ReadFile(path); err != nil || string(got) != "d" {
		t.Fatalf("unexpected contents %q, %v", got, err)
	}
	backups, err := filepath.Glob(path + ".20240101T120000Z*.bak")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %v", backups)
	}
}
