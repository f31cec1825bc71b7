package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aaqilk/forge/internal/config"
)

func withTestConfigPath(t *testing.T, cmd *cobra.Command) string {
	t.Helper()
	prev := configPath
	configPath = filepath.Join(t.TempDir(), "config.toml")
	t.Cleanup(func() {
		configPath = prev
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
		configSetVaults = nil
	})
	return configPath
}

func TestConfigSetWritesFields(t *testing.T) {
	path := withTestConfigPath(t, configSetCmd)

	for flag, value := range map[string]string{
		"editor":        "vim",
		"runtime":       "nodejs",
		"vault":         "personal=/srv/notes",
		"default-vault": "personal",
		"ui-accent":     "39",
	} {
		if err := configSetCmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set flag %s: %v", flag, err)
		}
	}

	if err := configSetCmd.RunE(configSetCmd, nil); err != nil {
		t.Fatalf("config set: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Editor != "vim" || loaded.Runtime != "nodejs" {
		t.Errorf("editor = %q, runtime = %q", loaded.Editor, loaded.Runtime)
	}
	if loaded.Vaults["personal"] != "/srv/notes" {
		t.Errorf("vaults = %v", loaded.Vaults)
	}
	if loaded.DefaultVault != "personal" {
		t.Errorf("default vault = %q", loaded.DefaultVault)
	}
	if loaded.UI.Accent != "39" {
		t.Errorf("ui accent = %q", loaded.UI.Accent)
	}
}

func TestConfigSetRejectsUnknownDefaultVault(t *testing.T) {
	withTestConfigPath(t, configSetCmd)

	if err := configSetCmd.Flags().Set("default-vault", "ghost"); err != nil {
		t.Fatal(err)
	}
	err := configSetCmd.RunE(configSetCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("config set error = %v, want unconfigured-vault error", err)
	}
}

func TestConfigSetRequiresAField(t *testing.T) {
	withTestConfigPath(t, configSetCmd)

	err := configSetCmd.RunE(configSetCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "no fields provided") {
		t.Fatalf("config set error = %v, want missing-field error", err)
	}
}

func TestConfigUnsetClearsFields(t *testing.T) {
	path := withTestConfigPath(t, configUnsetCmd)

	seed := &config.Config{Editor: "vim", Runtime: "nodejs"}
	if err := config.SaveTo(path, seed); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := configUnsetCmd.Flags().Set("editor", "true"); err != nil {
		t.Fatal(err)
	}
	if err := configUnsetCmd.RunE(configUnsetCmd, nil); err != nil {
		t.Fatalf("config unset: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Editor != "" {
		t.Errorf("editor = %q, want cleared", loaded.Editor)
	}
	if loaded.Runtime != "nodejs" {
		t.Errorf("runtime = %q, want preserved", loaded.Runtime)
	}
}
