package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/note"
	"github.com/aaqilk/forge/internal/typography"
	"github.com/aaqilk/forge/internal/vault"
)

// VaultAPI answers the vault-facet requests of the simulated plugin API.
// It maps a note kind plus date token onto a concrete note file, creating
// it on demand, and reads or appends section content.
type VaultAPI struct {
	Root       string
	Layout     vault.Layout
	Typography bool

	// Now is the clock used to anchor partial date tokens; nil means
	// time.Now.
	Now func() time.Time
}

func (a *VaultAPI) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Handle dispatches a vault-facet request and returns the response value.
func (a *VaultAPI) Handle(kind RequestKind, payload json.RawMessage) (any, error) {
	var p SectionPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
	}

	switch kind {
	case RequestReadSection:
		return a.readSection(p)
	case RequestAppendSection:
		return nil, a.AppendSection(p)
	default:
		return nil, fmt.Errorf("unsupported vault request: %s", kind)
	}
}

func (a *VaultAPI) readSection(p SectionPayload) (any, error) {
	np, err := a.resolve(p)
	if err != nil {
		return nil, err
	}
	body, err := note.ReadSection(np.Path, p.Heading)
	if err != nil {
		// A section a script has not written yet reads as empty.
		if errors.Is(err, note.ErrSectionNotFound) {
			return "", nil
		}
		return nil, err
	}
	return body, nil
}

// AppendSection inserts a line of text under a heading in the targeted
// note, applying smart typography first when enabled.
func (a *VaultAPI) AppendSection(p SectionPayload) error {
	np, err := a.resolve(p)
	if err != nil {
		return err
	}
	text := p.Text
	if a.Typography {
		text = typography.Apply(text)
	}
	return note.Insert(np.Path, p.Heading, text)
}

// resolve turns the payload's kind+date into an existing note file.
func (a *VaultAPI) resolve(p SectionPayload) (vault.NotePath, error) {
	kind, err := noteKind(p.NoteKind)
	if err != nil {
		return vault.NotePath{}, err
	}
	ref, err := dates.ParseArg(p.Date, a.now())
	if err != nil {
		return vault.NotePath{}, err
	}
	np := vault.Resolve(a.Root, ref, kind, a.Layout)
	if err := vault.Ensure(np); err != nil {
		return vault.NotePath{}, err
	}
	return np, nil
}

func noteKind(s string) (dates.Kind, error) {
	switch s {
	case "", "daily", "day":
		return dates.Day, nil
	case "weekly", "week":
		return dates.Week, nil
	default:
		return 0, fmt.Errorf("unknown note kind: %q", s)
	}
}
