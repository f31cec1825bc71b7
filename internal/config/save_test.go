package config

import (
	"path/filepath"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		DefaultVault:   "personal",
		Vaults:         map[string]string{"personal": "/home/u/notes"},
		Runtime:        "node",
		TimeoutSeconds: 20,
		UI:             UIConfig{Accent: "#7C3AED"},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.DefaultVault != cfg.DefaultVault {
		t.Errorf("DefaultVault = %q", got.DefaultVault)
	}
	if got.Vaults["personal"] != "/home/u/notes" {
		t.Errorf("Vaults = %v", got.Vaults)
	}
	if got.TimeoutSeconds != 20 {
		t.Errorf("TimeoutSeconds = %d", got.TimeoutSeconds)
	}
	if got.UI.Accent != "#7C3AED" {
		t.Errorf("Accent = %q", got.UI.Accent)
	}
}

func TestSaveToOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, &Config{Editor: "  "}); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Editor != "" {
		t.Errorf("Editor = %q, want empty", got.Editor)
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo("  ", &Config{}); err == nil {
		t.Error("blank path accepted")
	}
}
