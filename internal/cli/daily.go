package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var dailyCmd = &cobra.Command{
	Use:   "daily [@date]",
	Short: "Open or create a daily note",
	Long: `Creates the daily note for a date if it doesn't exist, then opens it
in your editor. The date accepts @YYYY-MM-DD, @MM-DD, @DD and keywords
like @today or @tomorrow; partial dates resolve forward to the nearest
occurrence. No argument means today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return openDatedNote(dates.Day, args)
	},
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly [@week]",
	Short: "Open or create a weekly note",
	Long: `Creates the weekly note for an ISO week if it doesn't exist, then
opens it in your editor. The week accepts @YYYY-Www, @Www and keywords
like @this-week or @next-week. No argument means the current week.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return openDatedNote(dates.Week, args)
	},
}

func openDatedNote(kind dates.Kind, args []string) error {
	token := ""
	if len(args) == 1 {
		token = args[0]
	}
	ref, err := dates.ParseArg(token, time.Now())
	if err != nil {
		return handleError(ErrInvalidRef, err,
			"Use @YYYY-MM-DD, @MM-DD, @DD, @YYYY-Www or a keyword like @today")
	}

	np := vault.Resolve(getVaultPath(), ref, kind, getVaultConfig().Layout())
	if err := vault.Ensure(np); err != nil {
		return handleError(ErrVaultWrite, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{
			"note": np.Key,
			"path": np.Path,
		}, nil)
		return nil
	}

	fmt.Printf("%s %s\n", np.Key, ui.FilePath(np.Path))
	if editor := getConfig().GetEditor(); editor != "" {
		vault.OpenInEditor(editor, np.Path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(weeklyCmd)
}
