package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/bridge"
	"github.com/aaqilk/forge/internal/runlog"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var (
	runTimeoutFlag time.Duration
	runRuntimeFlag string
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a note automation script",
	Long: `Runs a vault script in the configured Node.js runtime. The script's
prompts appear in the terminal and its note edits are written to the
vault. With no argument and fzf installed, pick a script interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vaultPath := getVaultPath()
		layout := getVaultConfig().Layout()

		script, ok, err := pickScript(vaultPath, layout, args)
		if err != nil {
			return handleError(ErrScriptNotFound, err, "Run 'forge scripts' to list available scripts")
		}
		if !ok {
			return nil // cancelled picker
		}

		inv := bridge.Invocation{
			ScriptPath: script.Path,
			VaultRoot:  vaultPath,
			Runtime:    scriptRuntime(),
			Timeout:    scriptTimeout(),
		}
		if runRuntimeFlag != "" {
			inv.Runtime = runRuntimeFlag
		}
		if err := bridge.Validate(inv); err != nil {
			return handleError(ErrConfiguration, err, "Check 'runtime' in your config")
		}

		host := bridge.NewHost(&bridge.VaultAPI{
			Root:       vaultPath,
			Layout:     layout,
			Typography: getVaultConfig().Typography(),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		progress := newRunProgress(newTerminalRelay(), script.Name,
			!isJSONOutput() && isatty.IsTerminal(os.Stdout.Fd()))
		defer progress.pause()

		started := time.Now()
		result, err := host.Run(ctx, inv, progress)
		progress.pause()
		if err != nil {
			return handleError(ErrConfiguration, err, "")
		}

		recordRun(vaultPath, script, result, started)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"script": script.Slug,
				"status": result.Status.String(),
				"detail": result.Detail,
			}, &Meta{DurationMs: result.Duration.Milliseconds()})
			if result.Status != bridge.StatusSucceeded {
				os.Exit(1)
			}
			return nil
		}

		switch result.Status {
		case bridge.StatusSucceeded:
			fmt.Println(ui.Successf("%s (%s)", script.Name, result.Duration.Round(time.Millisecond)))
			return nil
		case bridge.StatusTimedOut:
			return handleErrorMsg(ErrScriptTimeout,
				fmt.Sprintf("%s timed out after %s", script.Name, inv.Timeout),
				"Raise timeout_seconds in config or forge.yaml")
		case bridge.StatusCancelled:
			fmt.Println(ui.Warning("cancelled"))
			os.Exit(130)
			return nil
		default:
			if result.Stderr != "" {
				fmt.Fprint(os.Stderr, result.Stderr)
			}
			return handleErrorMsg(ErrScriptFailed,
				fmt.Sprintf("%s failed: %s", script.Name, result.Detail), "")
		}
	},
}

// runProgress keeps a spinner on screen while the script works and
// yields the terminal to the relay whenever the script needs it.
type runProgress struct {
	inner   bridge.Relay
	message string
	enabled bool
	spinner *ui.Spinner
}

func newRunProgress(inner bridge.Relay, message string, enabled bool) *runProgress {
	p := &runProgress{inner: inner, message: message, enabled: enabled}
	p.resume()
	return p
}

func (p *runProgress) resume() {
	if !p.enabled {
		return
	}
	p.spinner = ui.NewSpinner(p.message)
	p.spinner.Start()
}

func (p *runProgress) pause() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

func (p *runProgress) Ask(ctx context.Context, prompt bridge.Prompt) (any, error) {
	p.pause()
	defer p.resume()
	return p.inner.Ask(ctx, prompt)
}

func (p *runProgress) Notice(text string) {
	p.pause()
	p.inner.Notice(text)
	p.resume()
}

// pickScript resolves the argument to a script, or offers an interactive
// pick when no argument is given. A cancelled pick reports ok=false.
func pickScript(vaultPath string, layout vault.Layout, args []string) (vault.Script, bool, error) {
	if len(args) == 1 {
		script, err := vault.FindScript(vaultPath, layout, args[0])
		return script, err == nil, err
	}

	scripts, err := vault.DiscoverScripts(vaultPath, layout)
	if err != nil {
		return vault.Script{}, false, err
	}
	if len(scripts) == 0 {
		return vault.Script{}, false, errors.New("no scripts found in vault")
	}
	if !canUseFZFInteractive() {
		return vault.Script{}, false, errors.New("script name required")
	}

	lines := make([]string, len(scripts))
	for i, s := range scripts {
		lines[i] = s.Slug
	}
	selections, ok, err := runFZFPicker(lines, fzfPickerOptions{Prompt: "script> "})
	if err != nil || !ok {
		return vault.Script{}, false, err
	}
	script, err := vault.FindScript(vaultPath, layout, selections[0])
	return script, err == nil, err
}

func scriptTimeout() time.Duration {
	if runTimeoutFlag > 0 {
		return runTimeoutFlag
	}
	if t := getVaultConfig().Timeout(); t > 0 {
		return t
	}
	if s := getConfig().TimeoutSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return bridge.DefaultTimeout
}

// runHistoryKeep caps the per-vault run history.
var runHistoryKeep = 200

func recordRun(vaultPath string, script vault.Script, result bridge.Result, started time.Time) {
	log, err := runlog.Open(vaultPath)
	if err != nil {
		warnf("run history unavailable: %v", err)
		return
	}
	defer log.Close()

	entry := runlog.Entry{
		Script:   script.Slug,
		Status:   result.Status.String(),
		Detail:   result.Detail,
		Started:  started,
		Duration: result.Duration,
	}
	if err := log.Record(entry); err != nil {
		warnf("failed to record run: %v", err)
		return
	}
	if err := log.Prune(runHistoryKeep); err != nil {
		warnf("failed to prune run history: %v", err)
	}
}

func init() {
	runCmd.Flags().DurationVar(&runTimeoutFlag, "timeout", 0, "Script timeout (e.g. 45s)")
	runCmd.Flags().StringVar(&runRuntimeFlag, "runtime", "", "Override the script runtime executable")
	rootCmd.AddCommand(runCmd)
}
