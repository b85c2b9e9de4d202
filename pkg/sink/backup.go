package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andri/datasaver/internal/logger"
)

// maxBackupCollisions bounds the suffixes tried for one timestamp.
const maxBackupCollisions = 1000

// BackupOptions controls backups of output files that are about to be replaced.
type BackupOptions struct {
	Enabled   bool
	Directory string
	Now       func() time.Time
}

// BackupFile copies an existing output file aside before it is overwritten.
// It returns the backup path, or "" when there was nothing to back up or
// backups are disabled.
func BackupFile(path string, opts BackupOptions) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("output path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat output file %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("output path is a directory: %s", path)
	}

	if !opts.Enabled {
		logger.Warn("Overwriting output file without backup (backup disabled in config)", "path", path)
		return "", nil
	}

	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	timestamp := clock().UTC().Format("20060102T150405Z")

	base := fmt.Sprintf("%s.%s", path, timestamp)
	if strings.TrimSpace(opts.Directory) != "" {
		if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
			return "", fmt.Errorf("create backup directory %s: %w", opts.Directory, err)
		}
		base = filepath.Join(opts.Directory, fmt.Sprintf("%s.%s", filepath.Base(path), timestamp))
	}

	// Saves within the same second get a -N suffix.
	backupPath := base + ".bak"
	for n := 1; ; n++ {
		err := copyFile(backupPath, path, info.Mode().Perm())
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) || n > maxBackupCollisions {
			return "", err
		}
		backupPath = fmt.Sprintf("%s-%d.bak", base, n)
	}

	logger.Info("backed up existing output file", "path", path, "backup_path", backupPath)
	return backupPath, nil
}

func copyFile(dst, src string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open output file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create backup file %s: %w", dst, err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy output file to backup %s: %w", dst, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync backup file %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close backup file %s: %w", dst, err)
	}

	return nil
}
