package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aaqilk/forge/internal/bridge"
	"github.com/aaqilk/forge/internal/ui"
)

// terminalRelay answers script prompts on the controlling terminal.
type terminalRelay struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalRelay() *terminalRelay {
	return &terminalRelay{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (r *terminalRelay) Notice(text string) {
	fmt.Fprintln(r.out, ui.Info(text))
}

func (r *terminalRelay) Ask(ctx context.Context, prompt bridge.Prompt) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch prompt.Kind {
	case bridge.RequestInput:
		if prompt.Wide {
			return r.askWide(prompt)
		}
		return r.askLine(prompt)
	case bridge.RequestSuggest:
		return r.askSuggest(prompt)
	case bridge.RequestSuggestMulti:
		return r.askMulti(prompt)
	case bridge.RequestConfirm:
		return r.askConfirm(prompt)
	}
	return nil, fmt.Errorf("unsupported prompt kind: %s", prompt.Kind)
}

func (r *terminalRelay) askLine(prompt bridge.Prompt) (any, error) {
	r.printTitle(prompt.Title)
	if prompt.Placeholder != "" {
		fmt.Fprintln(r.out, ui.Hint(prompt.Placeholder))
	}
	fmt.Fprint(r.out, "> ")

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		line = prompt.Default
	}
	return line, nil
}

// askWide collects a multi-line answer, terminated by a lone "." line.
func (r *terminalRelay) askWide(prompt bridge.Prompt) (any, error) {
	r.printTitle(prompt.Title)
	if prompt.Placeholder != "" {
		fmt.Fprintln(r.out, ui.Hint(prompt.Placeholder))
	}
	fmt.Fprintln(r.out, ui.Hint("(end with a single '.' on its own line)"))

	var lines []string
	for {
		line, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	text := strings.Join(lines, "\n")
	if text == "" {
		text = prompt.Default
	}
	return text, nil
}

// askSuggest picks one item. The returned value comes from the prompt's
// value list when present, otherwise the display item itself. A cancelled
// pick answers null.
func (r *terminalRelay) askSuggest(prompt bridge.Prompt) (any, error) {
	if len(prompt.Items) == 0 {
		return nil, nil
	}

	if canUseFZFInteractive() {
		selections, ok, err := runFZFPicker(prompt.Items, fzfPickerOptions{Prompt: "> ", Header: prompt.Title})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return r.suggestValue(prompt, selections[0]), nil
	}

	r.printTitle(prompt.Title)
	for i, item := range prompt.Items {
		fmt.Fprintf(r.out, "  %s %s\n", ui.Muted.Render(strconv.Itoa(i+1)+")"), item)
	}
	fmt.Fprint(r.out, "> ")

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(prompt.Items) {
		return nil, nil
	}
	if n-1 < len(prompt.Values) {
		return prompt.Values[n-1], nil
	}
	return prompt.Items[n-1], nil
}

func (r *terminalRelay) suggestValue(prompt bridge.Prompt, selection string) any {
	for i, item := range prompt.Items {
		if item == selection {
			if i < len(prompt.Values) {
				return prompt.Values[i]
			}
			return item
		}
	}
	return selection
}

// askMulti picks any number of items. Empty input keeps the pre-selected
// set.
func (r *terminalRelay) askMulti(prompt bridge.Prompt) (any, error) {
	if len(prompt.Items) == 0 {
		return []string{}, nil
	}

	if canUseFZFInteractive() {
		selections, ok, err := runFZFPicker(prompt.Items, fzfPickerOptions{Prompt: "> ", Header: prompt.Title, Multi: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return append([]string{}, prompt.Selected...), nil
		}
		return selections, nil
	}

	preselected := make(map[string]bool, len(prompt.Selected))
	for _, s := range prompt.Selected {
		preselected[s] = true
	}

	r.printTitle(prompt.Title)
	for i, item := range prompt.Items {
		mark := " "
		if preselected[item] {
			mark = "x"
		}
		fmt.Fprintf(r.out, "  %s [%s] %s\n", ui.Muted.Render(strconv.Itoa(i+1)+")"), mark, item)
	}
	fmt.Fprint(r.out, ui.Hint("numbers, comma separated (empty keeps current): "))

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return append([]string{}, prompt.Selected...), nil
	}

	var selected []string
	for _, part := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(prompt.Items) {
			continue
		}
		selected = append(selected, prompt.Items[n-1])
	}
	return selected, nil
}

func (r *terminalRelay) askConfirm(prompt bridge.Prompt) (any, error) {
	r.printTitle(prompt.Title)
	if prompt.Text != "" {
		fmt.Fprintln(r.out, prompt.Text)
	}
	fmt.Fprintf(r.out, "%s ", ui.Hint("[y/N]"))

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}

func (r *terminalRelay) printTitle(title string) {
	if title != "" {
		fmt.Fprintln(r.out, ui.Header(title))
	}
}

func (r *terminalRelay) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
