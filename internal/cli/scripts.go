package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts [daily|weekly]",
	Short: "List automation scripts in the vault",
	Long:  `Lists the vault's automation scripts, optionally filtered by the note kind they target.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFilter := ""
		if len(args) == 1 {
			kindFilter = args[0]
			if kindFilter != "daily" && kindFilter != "weekly" {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("unknown note kind: %s", kindFilter), "Use daily or weekly")
			}
		}

		scripts, err := vault.DiscoverScripts(getVaultPath(), getVaultConfig().Layout())
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		scripts = filterScriptsByKind(scripts, kindFilter)

		if isJSONOutput() {
			type scriptInfo struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
				Path string `json:"path"`
				Note string `json:"note"`
			}
			out := make([]scriptInfo, len(scripts))
			for i, s := range scripts {
				out[i] = scriptInfo{Name: s.Name, Slug: s.Slug, Path: s.Path, Note: noteKindLabel(s.Kind)}
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		if len(scripts) == 0 {
			fmt.Println(ui.Hint("no scripts found"))
			return nil
		}

		table := ui.NewTable(3)
		for _, s := range scripts {
			table.AddRow(s.Slug, noteKindLabel(s.Kind), s.Name)
		}
		fmt.Print(table.String())
		return nil
	},
}

// filterScriptsByKind keeps the scripts targeting the named note kind.
// An empty kind keeps everything.
func filterScriptsByKind(scripts []vault.Script, kind string) []vault.Script {
	if kind == "" {
		return scripts
	}
	want := dates.Day
	if kind == "weekly" {
		want = dates.Week
	}
	filtered := make([]vault.Script, 0, len(scripts))
	for _, s := range scripts {
		if s.Kind == want {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func noteKindLabel(kind dates.Kind) string {
	if kind == dates.Week {
		return "weekly"
	}
	return "daily"
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}
