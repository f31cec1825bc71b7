// Package note reads and edits the heading-delimited sections of a note
// file. All writes replace the file atomically.
package note

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aaqilk/forge/internal/atomicfile"
)

var (
	// ErrSectionInsert indicates an I/O failure while inserting.
	ErrSectionInsert = errors.New("section insert error")
	// ErrSectionNotFound indicates the requested heading is not in the note.
	ErrSectionNotFound = errors.New("section not found")
)

// Insert adds contentLine under sectionHeading in the note at path.
//
// The heading is matched by exact text (trimmed), including its '#'
// markers and any emoji prefix. When found, the line is appended at the
// bottom of the section: after its last non-blank line, before the next
// heading of equal or higher level. When missing, the heading and line
// are appended at end of file, separated by a single blank line.
func Insert(path, sectionHeading, contentLine string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrSectionInsert, path, err)
	}

	updated := insertInContent(string(raw), sectionHeading, contentLine)

	if err := atomicfile.WriteFile(path, []byte(updated), 0); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrSectionInsert, path, err)
	}
	return nil
}

// ReadSection returns the body of sectionHeading (without the heading line,
// trimmed of surrounding blank lines), or ErrSectionNotFound.
func ReadSection(path, sectionHeading string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	h, end, ok := locateSection(string(raw), sectionHeading)
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", ErrSectionNotFound, sectionHeading, path)
	}

	body := lines[h.Line+1 : end]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	return strings.Join(body, "\n"), nil
}

// insertInContent performs the insertion on in-memory content.
func insertInContent(content, sectionHeading, contentLine string) string {
	content = strings.TrimSuffix(content, "\n")
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}

	h, end, ok := locateSection(content, sectionHeading)
	if !ok {
		// Append a new section at end of file with one separating blank line.
		if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
			lines = append(lines, "")
		}
		lines = append(lines, strings.TrimSpace(sectionHeading), contentLine)
		return strings.Join(lines, "\n") + "\n"
	}

	// Append after the section's last non-blank line, keeping any trailing
	// blank lines between the insertion and the next heading.
	insertAt := h.Line + 1
	for i := end - 1; i > h.Line; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			insertAt = i + 1
			break
		}
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, contentLine)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n") + "\n"
}

// locateSection finds the heading matching sectionHeading and the line
// index just past its section (the next heading of equal or higher level,
// or end of file).
func locateSection(content, sectionHeading string) (heading, int, bool) {
	target := strings.TrimSpace(sectionHeading)
	headings := extractHeadings(content)

	for i, h := range headings {
		if strings.TrimSpace(h.Raw) != target {
			continue
		}
		end := len(strings.Split(strings.TrimSuffix(content, "\n"), "\n"))
		if content == "" {
			end = 0
		}
		for _, next := range headings[i+1:] {
			if next.Level <= h.Level {
				end = next.Line
				break
			}
		}
		return h, end, true
	}
	return heading{}, 0, false
}
