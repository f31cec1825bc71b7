package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")

	if err := WriteFile(path, []byte("first\n"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteFile(path, []byte("second\n"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "second\n" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func TestWriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileRenameFailurePreservesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("original\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	// Simulate a crash after the temp file is written but before the rename.
	renameFile = func(oldpath, newpath string) error {
		return errors.New("injected rename failure")
	}
	defer func() { renameFile = os.Rename }()

	if err := WriteFile(path, []byte("replacement\n"), 0); err == nil {
		t.Fatalf("expected error from injected rename failure")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "original\n" {
		t.Fatalf("original content disturbed: %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file not cleaned up after failure: %v", entries)
	}
}
