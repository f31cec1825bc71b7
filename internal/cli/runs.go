package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/runlog"
	"github.com/aaqilk/forge/internal/ui"
)

var runsLimitFlag int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent script runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := runlog.Open(getVaultPath())
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		defer log.Close()

		entries, err := log.Recent(runsLimitFlag)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			type runInfo struct {
				Script     string `json:"script"`
				Status     string `json:"status"`
				Detail     string `json:"detail,omitempty"`
				Started    string `json:"started"`
				DurationMs int64  `json:"duration_ms"`
			}
			out := make([]runInfo, len(entries))
			for i, e := range entries {
				out[i] = runInfo{
					Script:     e.Script,
					Status:     e.Status,
					Detail:     e.Detail,
					Started:    e.Started.Format(time.RFC3339),
					DurationMs: e.Duration.Milliseconds(),
				}
			}
			outputSuccess(out, &Meta{Count: len(out)})
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Hint("no runs recorded"))
			return nil
		}

		table := ui.NewTable(4)
		for _, e := range entries {
			table.AddRow(
				e.Started.Local().Format("2006-01-02 15:04"),
				runStatusCell(e.Status),
				e.Script,
				e.Duration.Round(time.Millisecond).String(),
			)
		}
		fmt.Print(table.String())
		return nil
	},
}

func runStatusCell(status string) string {
	switch status {
	case "succeeded":
		return ui.SymbolSuccess
	case "timed_out", "cancelled":
		return ui.SymbolWarning
	default:
		return ui.SymbolError
	}
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimitFlag, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
