package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/bridge"
	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/note"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var (
	appendWeeklyFlag bool
	appendDateFlag   string
)

var appendCmd = &cobra.Command{
	Use:   "append <heading> <text>...",
	Short: "Append a line under a heading in a dated note",
	Long: `Appends text under a section heading in a daily (or weekly) note,
creating the note and the section as needed. This is the same operation
scripts use, without the script: useful for quick captures and for
wiring Forge into other tools.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		heading := args[0]
		text := strings.Join(args[1:], " ")

		kind := "daily"
		if appendWeeklyFlag {
			kind = "weekly"
		}

		api := &bridge.VaultAPI{
			Root:       getVaultPath(),
			Layout:     getVaultConfig().Layout(),
			Typography: getVaultConfig().Typography(),
		}
		err := api.AppendSection(bridge.SectionPayload{
			NoteKind: kind,
			Date:     appendDateFlag,
			Heading:  heading,
			Text:     text,
		})
		if err != nil {
			switch {
			case errors.Is(err, dates.ErrInvalidReference):
				return handleError(ErrInvalidRef, err, "Use @YYYY-MM-DD, @MM-DD, @DD or @YYYY-Www")
			case errors.Is(err, vault.ErrVaultWrite):
				return handleError(ErrVaultWrite, err, "")
			case errors.Is(err, note.ErrSectionInsert):
				return handleError(ErrSectionInsert, err, "")
			default:
				return handleError(ErrInternal, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{
				"heading": heading,
				"note":    kind,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("appended under %s", heading))
		return nil
	},
}

func init() {
	appendCmd.Flags().BoolVarP(&appendWeeklyFlag, "weekly", "w", false, "Target the weekly note instead of the daily note")
	appendCmd.Flags().StringVarP(&appendDateFlag, "date", "d", "", "Date token (e.g. @15, @02-29, @2026-W05); empty means today")
	rootCmd.AddCommand(appendCmd)
}
