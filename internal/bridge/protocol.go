// Package bridge hosts vault automation scripts in an external runtime
// and mediates between them, the vault, and the user.
//
// The host and the script's runtime speak newline-delimited JSON over the
// child's stdin/stdout. Each line is one Message. The script side blocks
// after sending a request until the matching response line arrives, which
// is what makes the simulated plugin API look synchronous to the script.
package bridge

import (
	"encoding/json"
	"fmt"
)

// MessageKind discriminates the wire message variants.
type MessageKind string

const (
	KindRequest  MessageKind = "request"
	KindResponse MessageKind = "response"
	KindNotice   MessageKind = "notice"
	KindResult   MessageKind = "result"
)

// RequestKind enumerates the operations a script may request.
//
// The interactive kinds (input, suggest, suggestMulti, confirm) are
// forwarded to the relay and block the script until a human answers. The
// vault kinds (readSection, appendSection) are answered by the host
// directly, with no relay round-trip.
type RequestKind string

const (
	RequestInput         RequestKind = "input"
	RequestSuggest       RequestKind = "suggest"
	RequestSuggestMulti  RequestKind = "suggestMulti"
	RequestConfirm       RequestKind = "confirm"
	RequestReadSection   RequestKind = "readSection"
	RequestAppendSection RequestKind = "appendSection"
)

// Message is the wire unit of the host↔subprocess protocol, one JSON
// object per line. Only the fields relevant to Kind are populated.
type Message struct {
	Kind    MessageKind     `json:"kind"`
	Request RequestKind     `json:"request,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Text    string          `json:"text,omitempty"`    // notice
	Status  string          `json:"status,omitempty"`  // result: "ok" | "error"
	Detail  string          `json:"message,omitempty"` // result detail
}

// InputPayload asks the user for a line (or block) of text.
type InputPayload struct {
	Title       string `json:"title,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	Wide        bool   `json:"wide,omitempty"`
}

// SuggestPayload asks the user to pick one item. Values, when present,
// maps one-to-one onto Items and carries the value to return.
type SuggestPayload struct {
	Items  []string `json:"items"`
	Values []string `json:"values,omitempty"`
}

// SuggestMultiPayload asks the user to check any number of items.
type SuggestMultiPayload struct {
	Items    []string `json:"items"`
	Selected []string `json:"selected,omitempty"`
}

// ConfirmPayload asks a yes/no question.
type ConfirmPayload struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// SectionPayload targets a section of a dated note. Date is an @token
// (empty means today), NoteKind is "daily" or "weekly".
type SectionPayload struct {
	NoteKind string `json:"noteKind"`
	Date     string `json:"date,omitempty"`
	Heading  string `json:"heading"`
	Text     string `json:"text,omitempty"`
}

// ResponsePayload carries the answer back to a blocked script.
type ResponsePayload struct {
	Value any `json:"value"`
}

// DecodeMessage parses one wire line. Lines that are not JSON objects are
// not protocol traffic (scripts may write plain text to stdout) and are
// reported as ok=false without an error.
func DecodeMessage(line []byte) (Message, bool, error) {
	trimmed := trimLeftSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Message{}, false, nil
	}
	var msg Message
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return Message{}, false, fmt.Errorf("malformed bridge message: %w", err)
	}
	if msg.Kind == "" {
		return Message{}, false, fmt.Errorf("malformed bridge message: missing kind")
	}
	return msg, true, nil
}

// EncodeResponse builds the response line for a value.
func EncodeResponse(value any) ([]byte, error) {
	payload, err := json.Marshal(ResponsePayload{Value: value})
	if err != nil {
		return nil, fmt.Errorf("encode response payload: %w", err)
	}
	out, err := json.Marshal(Message{Kind: KindResponse, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return append(out, '\n'), nil
}

func trimLeftSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t' || b[0] == '\r') {
		b = b[1:]
	}
	return b
}
