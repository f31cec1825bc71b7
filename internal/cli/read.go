package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/dates"
	"github.com/aaqilk/forge/internal/note"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var (
	readWeeklyFlag  bool
	readSectionFlag string
)

var readCmd = &cobra.Command{
	Use:   "read [@date]",
	Short: "Print a dated note, or one of its sections",
	Long: `Prints a daily (or weekly) note. In a terminal the markdown is
rendered; when piped the raw text is written. With --section only that
section's body is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = args[0]
		}
		ref, err := dates.ParseArg(token, time.Now())
		if err != nil {
			return handleError(ErrInvalidRef, err,
				"Use @YYYY-MM-DD, @MM-DD, @DD, @YYYY-Www or a keyword like @today")
		}

		kind := dates.Day
		if readWeeklyFlag {
			kind = dates.Week
		}
		np := vault.Resolve(getVaultPath(), ref, kind, getVaultConfig().Layout())

		if readSectionFlag != "" {
			body, err := note.ReadSection(np.Path, readSectionFlag)
			if err != nil {
				if errors.Is(err, note.ErrSectionNotFound) {
					return handleErrorMsg(ErrSectionMissing,
						fmt.Sprintf("section %q not found in %s", readSectionFlag, np.Key), "")
				}
				return handleError(ErrNoteNotFound, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]string{"note": np.Key, "section": readSectionFlag, "body": body}, nil)
				return nil
			}
			fmt.Println(body)
			return nil
		}

		data, err := os.ReadFile(np.Path)
		if err != nil {
			return handleErrorMsg(ErrNoteNotFound,
				fmt.Sprintf("note not found: %s", np.Key), "Run 'forge daily' to create it")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"note": np.Key, "path": np.Path, "content": string(data)}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if display.IsTTY {
			rendered, err := ui.RenderMarkdown(string(data), display.TermWidth)
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	readCmd.Flags().BoolVarP(&readWeeklyFlag, "weekly", "w", false, "Read the weekly note instead of the daily note")
	readCmd.Flags().StringVarP(&readSectionFlag, "section", "s", "", "Print only this section (exact heading, e.g. '### 🏆 Wins')")
	rootCmd.AddCommand(readCmd)
}
