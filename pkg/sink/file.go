// Package sink opens and manages the output destinations that savers write to.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/andri/datasaver/internal/logger"
)

// DefaultPerm is the permission used for newly created output files.
const DefaultPerm os.FileMode = 0o644

// Options controls how an output file is opened.
type Options struct {
	// Append writes after any existing content instead of truncating.
	Append bool

	// Atomic stages writes in a temp file that replaces the target on Close.
	Atomic bool

	// Perm is the file mode for new files (default 0644). Atomic writes
	// over an existing file keep its mode when Perm is zero.
	Perm os.FileMode
}

// File is a writable output file. Callers must Close it to flush an atomic
// write; Abort discards staged content instead.
type File struct {
	path    string
	tmpPath string
	f       *os.File
	perm    os.FileMode
	written int64
	closed  bool
}

// Open opens path for writing according to opts.
func Open(path string, opts Options) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("output path is required")
	}
	if opts.Append && opts.Atomic {
		return nil, errors.New("append and atomic output cannot be combined")
	}

	perm := opts.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	if opts.Atomic {
		// The renamed temp file keeps the target's mode unless one was given.
		if opts.Perm == 0 {
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				perm = info.Mode().Perm()
			}
		}
		dir := filepath.Dir(path)
		tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.")
		if err != nil {
			return nil, fmt.Errorf("create temp output file: %w", err)
		}
		return &File{path: path, tmpPath: tmp.Name(), f: tmp, perm: perm}, nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if opts.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}
	return &File{path: path, f: f, perm: perm}, nil
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	n, err := f.f.Write(p)
	f.written += int64(n)
	return n, err
}

// Path returns the final output path.
func (f *File) Path() string {
	return f.path
}

// Written returns the number of bytes written so far.
func (f *File) Written() int64 {
	return f.written
}

// Close flushes the file. For atomic files the staged content replaces the
// target only if every step succeeds.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.tmpPath == "" {
		if err := f.f.Close(); err != nil {
			return fmt.Errorf("close output file %s: %w", f.path, err)
		}
		return nil
	}

	if err := f.f.Sync(); err != nil {
		_ = f.f.Close()
		f.removeTemp()
		logger.Error("failed to sync output file", "path", f.path, "temp_path", f.tmpPath, "error", err)
		return fmt.Errorf("sync output file %s: %w", f.path, err)
	}
	if err := f.f.Close(); err != nil {
		f.removeTemp()
		logger.Error("failed to close output temp file", "path", f.path, "temp_path", f.tmpPath, "error", err)
		return fmt.Errorf("close output temp file %s: %w", f.path, err)
	}
	if err := os.Chmod(f.tmpPath, f.perm); err != nil {
		f.removeTemp()
		logger.Error("failed to set output file permissions", "path", f.path, "temp_path", f.tmpPath, "error", err)
		return fmt.Errorf("chmod output file %s: %w", f.path, err)
	}
	if err := os.Rename(f.tmpPath, f.path); err != nil {
		f.removeTemp()
		logger.Error("failed to replace output file", "path", f.path, "temp_path", f.tmpPath, "error", err)
		return fmt.Errorf("replace output file %s: %w", f.path, err)
	}
	return nil
}

// Abort closes the file without publishing an atomic write. Content already
// written to a non-atomic file stays where the OS left it.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := f.f.Close()
	if f.tmpPath != "" {
		f.removeTemp()
	}
	return err
}

func (f *File) removeTemp() {
	if err := os.Remove(f.tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove output temp file", "temp_path", f.tmpPath, "error", err)
	}
}

// Stdout wraps w so it can stand in for a File when output goes to a pipe.
// Closing it is a no-op.
func Stdout(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers such as `head` close stdout early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
