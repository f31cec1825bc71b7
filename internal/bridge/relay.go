package bridge

import "context"

// Prompt is an interactive request surfaced to the user. Exactly one
// invocation-side prompt is outstanding at a time; the script is blocked
// until the relay answers.
type Prompt struct {
	Kind        RequestKind
	Title       string
	Text        string
	Placeholder string
	Default     string
	Wide        bool
	Items       []string
	Values      []string
	Selected    []string
}

// Relay is supplied by the invoking shell. Ask blocks until the user
// answers (or ctx is done); the returned value is handed back to the
// script verbatim: a string for input/suggest, a bool for confirm, a
// string slice for suggestMulti. Notice is fire-and-forget.
type Relay interface {
	Ask(ctx context.Context, prompt Prompt) (any, error)
	Notice(text string)
}
