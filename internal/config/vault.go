package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aaqilk/forge/internal/vault"
)

// VaultConfig represents vault-level configuration from forge.yaml.
type VaultConfig struct {
	// DailyDirectory is where daily notes live, relative to the vault root.
	DailyDirectory string `yaml:"daily_directory,omitempty"`

	// WeeklyDirectory is where weekly notes live.
	WeeklyDirectory string `yaml:"weekly_directory,omitempty"`

	// DailyScripts is the directory of scripts that target daily notes.
	DailyScripts string `yaml:"daily_scripts,omitempty"`

	// WeeklyScripts is the directory of scripts that target weekly notes.
	WeeklyScripts string `yaml:"weekly_scripts,omitempty"`

	// SmartTypography applies typographic substitution to appended text
	// (default: true).
	SmartTypography *bool `yaml:"smart_typography,omitempty"`

	// TimeoutSeconds overrides the global script timeout for this vault.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Runtime overrides the global script runtime for this vault.
	Runtime string `yaml:"runtime,omitempty"`
}

// DefaultVaultConfig returns a config with all defaults.
func DefaultVaultConfig() *VaultConfig {
	return &VaultConfig{}
}

// LoadVaultConfig loads vault configuration from forge.yaml.
// Missing file means defaults.
func LoadVaultConfig(vaultPath string) (*VaultConfig, error) {
	configPath := filepath.Join(vaultPath, "forge.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultVaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault config %s: %w", configPath, err)
	}

	var config VaultConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse vault config %s: %w", configPath, err)
	}
	return &config, nil
}

// Layout maps the configured directories onto a vault layout, applying
// defaults for anything unset.
func (vc *VaultConfig) Layout() vault.Layout {
	return vault.Layout{
		DailyDir:      vc.DailyDirectory,
		WeeklyDir:     vc.WeeklyDirectory,
		DailyScripts:  vc.DailyScripts,
		WeeklyScripts: vc.WeeklyScripts,
	}
}

// Typography reports whether smart typography is enabled (default true).
func (vc *VaultConfig) Typography() bool {
	if vc.SmartTypography == nil {
		return true
	}
	return *vc.SmartTypography
}

// Timeout returns the vault's script timeout, or zero when unset.
func (vc *VaultConfig) Timeout() time.Duration {
	if vc.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(vc.TimeoutSeconds) * time.Second
}
