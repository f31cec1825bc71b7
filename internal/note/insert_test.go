package note

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("seed note: %v", err)
	}
	return path
}

func readNote(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	return string(raw)
}

func TestInsertAppendsToExistingSection(t *testing.T) {
	path := writeNote(t, `# 2026-01-30

### 🏆 Wins

- Fixed the flaky test

### 💭 Dreams

- Something about sourdough
`)

	if err := Insert(path, "### 🏆 Wins", "- Shipped the bridge"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `# 2026-01-30

### 🏆 Wins

- Fixed the flaky test
- Shipped the bridge

### 💭 Dreams

- Something about sourdough
`
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong result:\n got %q\nwant %q", got, want)
	}
}

func TestInsertKeepsPriorEntryOrder(t *testing.T) {
	path := writeNote(t, "### 🏆 Wins\n- first\n")

	if err := Insert(path, "### 🏆 Wins", "- second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Insert(path, "### 🏆 Wins", "- third"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "### 🏆 Wins\n- first\n- second\n- third\n"
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong order:\n got %q\nwant %q", got, want)
	}
}

func TestInsertCreatesMissingSection(t *testing.T) {
	path := writeNote(t, "# 2026-01-30\n\nSome intro text.\n")

	if err := Insert(path, "### 🙏 Gratitude", "- Coffee"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "# 2026-01-30\n\nSome intro text.\n\n### 🙏 Gratitude\n- Coffee\n"
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong result:\n got %q\nwant %q", got, want)
	}
}

func TestInsertMissingSectionNoDoubleBlank(t *testing.T) {
	// File already ends in a blank line; exactly one separator is kept.
	path := writeNote(t, "# Title\n\n")

	if err := Insert(path, "## Log", "- entry"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# Title\n\n## Log\n- entry\n"
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong result:\n got %q\nwant %q", got, want)
	}
}

func TestInsertIntoEmptyFile(t *testing.T) {
	path := writeNote(t, "")

	if err := Insert(path, "## Log", "- entry"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readNote(t, path); got != "## Log\n- entry\n" {
		t.Fatalf("wrong result: %q", got)
	}
}

func TestInsertSectionSpansSubheadings(t *testing.T) {
	// A lower-level heading belongs to the section; insertion lands after it.
	path := writeNote(t, `## Review

#### Details

- detail line

## Next
`)

	if err := Insert(path, "## Review", "- closing thought"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `## Review

#### Details

- detail line
- closing thought

## Next
`
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong result:\n got %q\nwant %q", got, want)
	}
}

func TestInsertDoesNotMatchPrefix(t *testing.T) {
	// "### Wins" must not match "### Winsome"; a new section is created.
	path := writeNote(t, "### Winsome\n- x\n")

	if err := Insert(path, "### Wins", "- y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "### Winsome\n- x\n\n### Wins\n- y\n"
	if got := readNote(t, path); got != want {
		t.Fatalf("wrong result:\n got %q\nwant %q", got, want)
	}
}

func TestInsertMissingFile(t *testing.T) {
	err := Insert(filepath.Join(t.TempDir(), "absent.md"), "## H", "- x")
	if !errors.Is(err, ErrSectionInsert) {
		t.Fatalf("expected ErrSectionInsert, got %v", err)
	}
}

func TestReadSection(t *testing.T) {
	path := writeNote(t, `# Note

### 🏆 Wins

- one
- two

### Other

- other content
`)

	body, err := ReadSection(path, "### 🏆 Wins")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "- one\n- two" {
		t.Fatalf("wrong body: %q", body)
	}

	_, err = ReadSection(path, "### Missing")
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}
