// Package vault maps date/week references onto the note files of an
// Obsidian-style vault and discovers the automation scripts stored in it.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaqilk/forge/internal/dates"
)

// ErrVaultWrite indicates the vault's directory tree could not be extended
// or a missing note could not be created.
var ErrVaultWrite = errors.New("vault write error")

// Layout describes where dated notes and scripts live inside a vault.
// Zero fields fall back to the conventional journal layout.
type Layout struct {
	DailyDir      string
	WeeklyDir     string
	DailyScripts  string
	WeeklyScripts string
}

// DefaultLayout returns the conventional journal layout.
func DefaultLayout() Layout {
	return Layout{
		DailyDir:      "01 - Journal/Daily",
		WeeklyDir:     "01 - Journal/Weekly",
		DailyScripts:  "98 - Organize/Scripts/Add to Daily Note",
		WeeklyScripts: "98 - Organize/Scripts/Add to Weekly Note",
	}
}

func (l Layout) withDefaults() Layout {
	def := DefaultLayout()
	if l.DailyDir == "" {
		l.DailyDir = def.DailyDir
	}
	if l.WeeklyDir == "" {
		l.WeeklyDir = def.WeeklyDir
	}
	if l.DailyScripts == "" {
		l.DailyScripts = def.DailyScripts
	}
	if l.WeeklyScripts == "" {
		l.WeeklyScripts = def.WeeklyScripts
	}
	return l
}

// NotePath is a resolved note location. Key is the note's canonical name
// without extension (YYYY-MM-DD or YYYY-Www).
type NotePath struct {
	Path string
	Kind dates.Kind
	Key  string
	Ref  dates.Reference
}

// Resolve maps a reference and note kind onto the note's absolute path.
// Pure: no filesystem access.
//
// Daily notes are keyed by date, filed under year and month
// (01 - Journal/Daily/2026/01-January/2026-01-30.md). Weekly notes are
// keyed by ISO week under the ISO year (01 - Journal/Weekly/2026/2026-W05.md).
// A week reference targeting a daily note resolves to the week's Monday;
// a date reference targeting a weekly note resolves to the date's ISO week.
func Resolve(root string, ref dates.Reference, kind dates.Kind, layout Layout) NotePath {
	layout = layout.withDefaults()

	switch kind {
	case dates.Week:
		isoYear, isoWeek := ref.ISOYear, ref.ISOWeek
		if ref.Kind == dates.Day {
			isoYear, isoWeek = ref.Date.ISOWeek()
		}
		key := dates.FormatWeekKey(isoYear, isoWeek)
		return NotePath{
			Path: filepath.Join(root, filepath.FromSlash(layout.WeeklyDir), fmt.Sprintf("%04d", isoYear), key+".md"),
			Kind: dates.Week,
			Key:  key,
			Ref:  ref,
		}
	default:
		d := ref.Date
		key := dates.FormatDateISO(d)
		monthDir := d.Format("01-January")
		return NotePath{
			Path: filepath.Join(root, filepath.FromSlash(layout.DailyDir), d.Format("2006"), monthDir, key+".md"),
			Kind: dates.Day,
			Key:  key,
			Ref:  ref,
		}
	}
}

// Ensure creates the note with a minimal skeleton (title line only) if it
// does not exist. Existing notes are never touched.
func Ensure(np NotePath) error {
	if _, err := os.Stat(np.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", ErrVaultWrite, np.Path, err)
	}

	if err := os.MkdirAll(filepath.Dir(np.Path), 0o755); err != nil {
		return fmt.Errorf("%w: create note directory: %v", ErrVaultWrite, err)
	}

	f, err := os.OpenFile(np.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("%w: create note: %v", ErrVaultWrite, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "# %s\n", np.Key); err != nil {
		return fmt.Errorf("%w: write note skeleton: %v", ErrVaultWrite, err)
	}
	return nil
}

// CheckRoot validates that root exists and is a directory.
func CheckRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("vault root not found: %s", root)
	}
	if !st.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", root)
	}
	return nil
}
