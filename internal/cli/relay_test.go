package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aaqilk/forge/internal/bridge"
)

func relayWithInput(input string) (*terminalRelay, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &terminalRelay{
		in:  bufio.NewReader(strings.NewReader(input)),
		out: out,
	}, out
}

func disableFZF(t *testing.T) {
	t.Helper()
	prev := fzfStdinIsTerminal
	fzfStdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { fzfStdinIsTerminal = prev })
}

func TestAskInputLine(t *testing.T) {
	relay, out := relayWithInput("shipped the release\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:        bridge.RequestInput,
		Title:       "Win of the day",
		Placeholder: "What went well?",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "shipped the release" {
		t.Errorf("answer = %v", got)
	}
	if !strings.Contains(out.String(), "Win of the day") {
		t.Errorf("title not shown: %q", out.String())
	}
}

func TestAskInputEmptyUsesDefault(t *testing.T) {
	relay, _ := relayWithInput("\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:    bridge.RequestInput,
		Default: "nothing today",
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "nothing today" {
		t.Errorf("answer = %v", got)
	}
}

func TestAskWideInputCollectsLines(t *testing.T) {
	relay, _ := relayWithInput("first line\nsecond line\n.\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind: bridge.RequestInput,
		Wide: true,
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "first line\nsecond line" {
		t.Errorf("answer = %q", got)
	}
}

func TestAskSuggestNumbered(t *testing.T) {
	disableFZF(t)
	relay, _ := relayWithInput("2\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:   bridge.RequestSuggest,
		Items:  []string{"Work", "Health", "Learning"},
		Values: []string{"work", "health", "learning"},
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "health" {
		t.Errorf("answer = %v, want mapped value", got)
	}
}

func TestAskSuggestWithoutValuesReturnsItem(t *testing.T) {
	disableFZF(t)
	relay, _ := relayWithInput("1\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:  bridge.RequestSuggest,
		Items: []string{"Work", "Health"},
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "Work" {
		t.Errorf("answer = %v", got)
	}
}

func TestAskSuggestInvalidChoiceIsNull(t *testing.T) {
	disableFZF(t)
	relay, _ := relayWithInput("99\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:  bridge.RequestSuggest,
		Items: []string{"Work"},
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != nil {
		t.Errorf("answer = %v, want nil", got)
	}
}

func TestAskMultiParsesNumbers(t *testing.T) {
	disableFZF(t)
	relay, _ := relayWithInput("1, 3\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:  bridge.RequestSuggestMulti,
		Items: []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	selected, ok := got.([]string)
	if !ok || len(selected) != 2 || selected[0] != "a" || selected[1] != "c" {
		t.Errorf("answer = %v", got)
	}
}

func TestAskMultiEmptyKeepsSelection(t *testing.T) {
	disableFZF(t)
	relay, _ := relayWithInput("\n")
	got, err := relay.Ask(context.Background(), bridge.Prompt{
		Kind:     bridge.RequestSuggestMulti,
		Items:    []string{"a", "b"},
		Selected: []string{"b"},
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	selected, ok := got.([]string)
	if !ok || len(selected) != 1 || selected[0] != "b" {
		t.Errorf("answer = %v", got)
	}
}

func TestAskConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "yes\n": true, "n\n": false, "\n": false} {
		relay, _ := relayWithInput(input)
		got, err := relay.Ask(context.Background(), bridge.Prompt{
			Kind:  bridge.RequestConfirm,
			Title: "Continue?",
		})
		if err != nil {
			t.Fatalf("Ask(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("Ask(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestAskCancelledContext(t *testing.T) {
	relay, _ := relayWithInput("ignored\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := relay.Ask(ctx, bridge.Prompt{Kind: bridge.RequestInput}); err == nil {
		t.Error("cancelled context accepted")
	}
}
