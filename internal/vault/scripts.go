package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aaqilk/forge/internal/dates"
)

// Script is an automation script discovered in the vault.
type Script struct {
	Name string // display name, e.g. "Win"
	Slug string // stable identifier, e.g. "win"
	Path string
	Kind dates.Kind // which note kind the script targets
}

// DiscoverScripts lists the .js scripts in the vault's daily and weekly
// script directories. Backup files (*.bak.js) are skipped. A missing
// script directory yields no scripts, not an error.
func DiscoverScripts(root string, layout Layout) ([]Script, error) {
	layout = layout.withDefaults()

	var scripts []Script
	for _, src := range []struct {
		dir  string
		kind dates.Kind
	}{
		{layout.DailyScripts, dates.Day},
		{layout.WeeklyScripts, dates.Week},
	} {
		dir := filepath.Join(root, filepath.FromSlash(src.dir))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read scripts directory %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
				continue
			}
			stem := strings.TrimSuffix(e.Name(), ".js")
			if strings.HasSuffix(stem, ".bak") {
				continue
			}
			name := scriptDisplayName(stem)
			scripts = append(scripts, Script{
				Name: name,
				Slug: slug.Make(name),
				Path: filepath.Join(dir, e.Name()),
				Kind: src.kind,
			})
		}
	}

	sort.Slice(scripts, func(i, j int) bool {
		if scripts[i].Kind != scripts[j].Kind {
			return scripts[i].Kind < scripts[j].Kind
		}
		return scripts[i].Name < scripts[j].Name
	})
	return scripts, nil
}

// FindScript locates a script by slug, display name (case-insensitive) or
// path. A path that points at an existing .js file outside the script
// directories is accepted as-is.
func FindScript(root string, layout Layout, query string) (Script, error) {
	scripts, err := DiscoverScripts(root, layout)
	if err != nil {
		return Script{}, err
	}
	for _, s := range scripts {
		if s.Slug == query || strings.EqualFold(s.Name, query) || s.Path == query {
			return s, nil
		}
	}

	if strings.HasSuffix(query, ".js") {
		if st, err := os.Stat(query); err == nil && !st.IsDir() {
			stem := strings.TrimSuffix(filepath.Base(query), ".js")
			name := scriptDisplayName(stem)
			return Script{Name: name, Slug: slug.Make(name), Path: query, Kind: dates.Day}, nil
		}
	}

	return Script{}, fmt.Errorf("script not found: %q (run 'forge scripts' to list)", query)
}

// scriptDisplayName turns a filename stem like "add-daily-open-loops" into
// "Open Loops".
func scriptDisplayName(stem string) string {
	stem = strings.TrimPrefix(stem, "add-daily-")
	stem = strings.TrimPrefix(stem, "add-weekly-")
	words := strings.Split(stem, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
