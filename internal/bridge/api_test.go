package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testVaultAPI(t *testing.T) *VaultAPI {
	t.Helper()
	return &VaultAPI{
		Root:       t.TempDir(),
		Typography: true,
		Now: func() time.Time {
			return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
		},
	}
}

func sectionRaw(t *testing.T, p SectionPayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestHandleAppendCreatesNote(t *testing.T) {
	api := testVaultAPI(t)

	_, err := api.Handle(RequestAppendSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Heading:  "### 🏆 Wins",
		Text:     `Shipped the "review" script -- finally`,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	notePath := filepath.Join(api.Root, "01 - Journal", "Daily", "2024", "06-June", "2024-06-10.md")
	data, err := os.ReadFile(notePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "# 2024-06-10") {
		t.Errorf("note missing skeleton:\n%s", content)
	}
	if !strings.Contains(content, "Shipped the “review” script — finally") {
		t.Errorf("typography not applied:\n%s", content)
	}
}

func TestHandleAppendWeekly(t *testing.T) {
	api := testVaultAPI(t)

	_, err := api.Handle(RequestAppendSection, sectionRaw(t, SectionPayload{
		NoteKind: "weekly",
		Date:     "@2024-W24",
		Heading:  "## Review",
		Text:     "Planned next sprint",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	notePath := filepath.Join(api.Root, "01 - Journal", "Weekly", "2024", "2024-W24.md")
	if _, err := os.Stat(notePath); err != nil {
		t.Fatalf("weekly note not created: %v", err)
	}
}

func TestHandleReadBackAfterAppend(t *testing.T) {
	api := testVaultAPI(t)
	payload := SectionPayload{NoteKind: "daily", Heading: "### Tasks", Text: "Review open PRs"}

	if _, err := api.Handle(RequestAppendSection, sectionRaw(t, payload)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := api.Handle(RequestReadSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Heading:  "### Tasks",
	}))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if body, _ := got.(string); !strings.Contains(body, "Review open PRs") {
		t.Errorf("body = %q", got)
	}
}

func TestHandleReadMissingSectionIsEmpty(t *testing.T) {
	api := testVaultAPI(t)

	got, err := api.Handle(RequestReadSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Heading:  "### Nothing Here",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got != "" {
		t.Errorf("body = %q, want empty", got)
	}
}

func TestHandleTypographyDisabled(t *testing.T) {
	api := testVaultAPI(t)
	api.Typography = false

	if _, err := api.Handle(RequestAppendSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Heading:  "### Notes",
		Text:     `"verbatim"`,
	})); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	got, err := api.Handle(RequestReadSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Heading:  "### Notes",
	}))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if body, _ := got.(string); !strings.Contains(body, `"verbatim"`) {
		t.Errorf("body = %q, want straight quotes preserved", got)
	}
}

func TestHandleRejectsUnknownNoteKind(t *testing.T) {
	api := testVaultAPI(t)

	_, err := api.Handle(RequestAppendSection, sectionRaw(t, SectionPayload{
		NoteKind: "monthly",
		Heading:  "## Review",
		Text:     "x",
	}))
	if err == nil || !strings.Contains(err.Error(), "monthly") {
		t.Errorf("err = %v, want unknown note kind", err)
	}
}

func TestHandleRejectsBadDate(t *testing.T) {
	api := testVaultAPI(t)

	_, err := api.Handle(RequestAppendSection, sectionRaw(t, SectionPayload{
		NoteKind: "daily",
		Date:     "@2024-13-40",
		Heading:  "## X",
		Text:     "x",
	}))
	if err == nil {
		t.Error("invalid date accepted")
	}
}
