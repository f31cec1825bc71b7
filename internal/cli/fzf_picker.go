package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	fzfLookPath         = exec.LookPath
	fzfStdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	fzfStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }
)

type fzfPickerOptions struct {
	Prompt string
	Header string
	Multi  bool
}

func hasFZFInstalled() bool {
	_, err := fzfLookPath("fzf")
	return err == nil
}

func canUseFZFInteractive() bool {
	if isJSONOutput() {
		return false
	}
	if !fzfStdinIsTerminal() || !fzfStdoutIsTerminal() {
		return false
	}
	return hasFZFInstalled()
}

// runFZFPicker shows lines in fzf and returns the selections. A cancelled
// picker returns ok=false without an error.
func runFZFPicker(lines []string, opts fzfPickerOptions) ([]string, bool, error) {
	if len(lines) == 0 {
		return nil, false, nil
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
	}
	if opts.Multi {
		args = append(args, "--multi")
	} else {
		args = append(args, "--select-1", "--exit-0")
	}
	if strings.TrimSpace(opts.Prompt) != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	if strings.TrimSpace(opts.Header) != "" {
		args = append(args, "--header", opts.Header)
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return nil, false, nil
			}
		}
		return nil, false, fmt.Errorf("run fzf selector: %w", err)
	}

	var selections []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			selections = append(selections, trimmed)
		}
	}
	if len(selections) == 0 {
		return nil, false, nil
	}
	return selections, true, nil
}
