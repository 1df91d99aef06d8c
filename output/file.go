// Package output persists rendered scan reports.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path via a temp file in the same directory that
// is synced and then renamed over path. Missing directories are created. On
// failure any existing file at path is left untouched.
func WriteAtomic(path string, data []byte) error {

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "portgrab-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	discard := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		discard()
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		discard()
		return fmt.Errorf("failed to sync report: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close report: %w", err)
	}

	// CreateTemp uses 0600
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set report permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move report into place: %w", err)
	}

	return nil
}
