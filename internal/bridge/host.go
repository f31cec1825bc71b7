package bridge

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

//go:embed bootstrap.js
var bootstrapJS []byte

// ErrConfiguration indicates an unusable runtime or vault root, detected
// before any subprocess is spawned.
var ErrConfiguration = errors.New("configuration error")

// DefaultTimeout bounds an invocation when the caller does not.
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long Wait blocks on a killed child's pipes.
const waitDelay = 5 * time.Second

// Invocation describes one script run. It is owned by the Host for the
// run's lifetime; invocations never share state.
type Invocation struct {
	ScriptPath string
	VaultRoot  string
	Runtime    string // path or name of the runtime executable (node)
	Timeout    time.Duration
	Env        []string // extra environment for the child
}

// Result is the outcome of one invocation. Stderr is always the child's
// full standard-error stream, whatever the status.
type Result struct {
	Status   Status
	Detail   string
	Stderr   string
	Duration time.Duration
}

// Host runs a single invocation: it spawns the runtime on the embedded
// bootstrap, serves the script's requests, and maps the child's exit into
// a Result. Create one Host per invocation.
type Host struct {
	vault *VaultAPI

	mu     sync.Mutex
	status Status
}

// NewHost returns a Host whose vault-facet requests are served by vaultAPI.
func NewHost(vaultAPI *VaultAPI) *Host {
	return &Host{vault: vaultAPI, status: StatusNotStarted}
}

// Status returns the invocation's current lifecycle state.
func (h *Host) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *Host) setStatus(to Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if canTransition(h.status, to) {
		h.status = to
	}
}

// Validate checks the invocation's external configuration: the runtime
// must resolve to an executable, the vault root must be a directory and
// the script file must exist. Runs before any subprocess is spawned.
func Validate(inv Invocation) error {
	if strings.TrimSpace(inv.Runtime) == "" {
		return fmt.Errorf("%w: runtime executable not configured", ErrConfiguration)
	}
	if _, err := exec.LookPath(inv.Runtime); err != nil {
		return fmt.Errorf("%w: runtime not runnable: %s", ErrConfiguration, inv.Runtime)
	}
	st, err := os.Stat(inv.VaultRoot)
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: vault root is not a directory: %s", ErrConfiguration, inv.VaultRoot)
	}
	if _, err := os.Stat(inv.ScriptPath); err != nil {
		return fmt.Errorf("%w: script not found: %s", ErrConfiguration, inv.ScriptPath)
	}
	return nil
}

// Run executes the invocation to completion. The child is confirmed
// reaped before any terminal status is returned. Errors are reserved for
// configuration and spawn failures; script-level failures, timeouts and
// cancellation are reported in the Result.
func (h *Host) Run(ctx context.Context, inv Invocation, relay Relay) (Result, error) {
	if err := Validate(inv); err != nil {
		return Result{}, err
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	bootstrapDir, err := os.MkdirTemp("", "forge-bridge-*")
	if err != nil {
		return Result{}, fmt.Errorf("create bootstrap directory: %w", err)
	}
	defer os.RemoveAll(bootstrapDir)

	bootstrapPath := filepath.Join(bootstrapDir, "bootstrap.js")
	if err := os.WriteFile(bootstrapPath, bootstrapJS, 0o644); err != nil {
		return Result{}, fmt.Errorf("write bootstrap: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scriptAbs, err := filepath.Abs(inv.ScriptPath)
	if err != nil {
		return Result{}, fmt.Errorf("resolve script path: %w", err)
	}

	cmd := exec.CommandContext(runCtx, inv.Runtime, bootstrapPath)
	cmd.Dir = inv.VaultRoot
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(),
		"FORGE_SCRIPT="+scriptAbs,
		"FORGE_VAULT="+inv.VaultRoot,
	)
	cmd.Env = append(cmd.Env, inv.Env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Result{}, fmt.Errorf("open stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("open stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("spawn runtime: %w", err)
	}
	h.setStatus(StatusRunning)

	var final *Message
	var hostErr error

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		msg, ok, derr := DecodeMessage(scanner.Bytes())
		if derr != nil || !ok {
			// Plain console output from the script; not protocol traffic.
			continue
		}
		switch msg.Kind {
		case KindNotice:
			relay.Notice(msg.Text)
		case KindResult:
			m := msg
			final = &m
		case KindRequest:
			if err := h.serveRequest(runCtx, msg, relay, stdin); err != nil {
				hostErr = err
				cancel() // kill the child; drain until EOF
			}
		}
	}
	_ = stdin.Close()

	waitErr := cmd.Wait()
	duration := time.Since(start)

	result := Result{
		Stderr:   stderr.String(),
		Duration: duration,
	}
	result.Status, result.Detail = h.classify(ctx, runCtx, hostErr, waitErr, final, &stderr)
	h.setStatus(result.Status)
	return result, nil
}

// serveRequest answers one script request. Vault requests are served
// directly; interactive requests block on the relay with the invocation
// in AwaitingPrompt. At most one request is in flight at a time: the
// script is blocked on its response and the read loop on this call.
func (h *Host) serveRequest(ctx context.Context, msg Message, relay Relay, stdin io.Writer) error {
	var value any
	var err error

	switch msg.Request {
	case RequestReadSection, RequestAppendSection:
		value, err = h.vault.Handle(msg.Request, msg.Payload)
		if err != nil {
			return err
		}
	case RequestInput, RequestSuggest, RequestSuggestMulti, RequestConfirm:
		prompt, perr := decodePrompt(msg)
		if perr != nil {
			return perr
		}
		h.setStatus(StatusAwaitingPrompt)
		value, err = relay.Ask(ctx, prompt)
		h.setStatus(StatusRunning)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown request kind: %q", msg.Request)
	}

	line, err := EncodeResponse(value)
	if err != nil {
		return err
	}
	if _, err := stdin.Write(line); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// decodePrompt builds the relay prompt for an interactive request.
func decodePrompt(msg Message) (Prompt, error) {
	prompt := Prompt{Kind: msg.Request}
	switch msg.Request {
	case RequestInput:
		var p InputPayload
		if err := unmarshalPayload(msg.Payload, &p); err != nil {
			return Prompt{}, err
		}
		prompt.Title = p.Title
		prompt.Placeholder = p.Placeholder
		prompt.Default = p.Value
		prompt.Wide = p.Wide
	case RequestSuggest:
		var p SuggestPayload
		if err := unmarshalPayload(msg.Payload, &p); err != nil {
			return Prompt{}, err
		}
		prompt.Items = p.Items
		prompt.Values = p.Values
	case RequestSuggestMulti:
		var p SuggestMultiPayload
		if err := unmarshalPayload(msg.Payload, &p); err != nil {
			return Prompt{}, err
		}
		prompt.Items = p.Items
		prompt.Selected = p.Selected
	case RequestConfirm:
		var p ConfirmPayload
		if err := unmarshalPayload(msg.Payload, &p); err != nil {
			return Prompt{}, err
		}
		prompt.Title = p.Title
		prompt.Text = p.Text
	}
	return prompt, nil
}

func unmarshalPayload(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode request payload: %w", err)
	}
	return nil
}

// classify maps the run's observations onto a terminal status and detail.
// Precedence: timeout, then cancellation, then host-side errors, then the
// child's exit code and final result message.
func (h *Host) classify(ctx, runCtx context.Context, hostErr, waitErr error, final *Message, stderr *bytes.Buffer) (Status, string) {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return StatusTimedOut, "script execution timed out"
	}
	if ctx.Err() != nil || errors.Is(hostErr, context.Canceled) {
		return StatusCancelled, "invocation cancelled"
	}
	if hostErr != nil {
		return StatusFailed, hostErr.Error()
	}

	if waitErr != nil {
		if final != nil && final.Status == "error" && final.Detail != "" {
			return StatusFailed, final.Detail
		}
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return StatusFailed, detail
		}
		return StatusFailed, waitErr.Error()
	}

	if final == nil {
		return StatusFailed, "script exited without reporting a result"
	}
	if final.Status != "ok" {
		detail := final.Detail
		if detail == "" {
			detail = "script reported an error"
		}
		return StatusFailed, detail
	}
	return StatusSucceeded, final.Detail
}
