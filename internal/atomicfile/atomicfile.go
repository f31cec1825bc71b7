// Package atomicfile writes files via a temp file and rename so readers
// never observe a partially written note.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// renameFile is swapped out in tests to simulate a crash between the temp
// write and the rename.
var renameFile = os.Rename

// WriteFile writes data to path atomically.
//
// The data lands in a temp file in the target directory first and is
// renamed into place, so a failure at any point leaves the original file
// untouched. If perm is 0 the existing file's mode is preserved, falling
// back to 0644 for new files.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort; not all filesystems support chmod on the temp file.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := renameFile(tmpPath, path); err != nil {
		// Windows cannot rename over an existing file; retry after removing.
		// Elsewhere a rename failure must leave the original untouched.
		if runtime.GOOS != "windows" {
			return fmt.Errorf("rename temp file: %w", err)
		}
		_ = os.Remove(path)
		if err2 := renameFile(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
