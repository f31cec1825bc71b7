// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aaqilk/forge/internal/config"
	"github.com/aaqilk/forge/internal/ui"
	"github.com/aaqilk/forge/internal/vault"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path (rare)
	configPath    string

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
	vaultCfg          *config.VaultConfig
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Forge - run note automation scripts against a markdown vault",
	Long: `Forge hosts Node.js note-automation scripts and connects them to a
plain-text markdown vault. Scripts written against the QuickAdd plugin
API keep working unchanged: prompts surface in your terminal and the
note edits land in dated daily and weekly notes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip vault resolution for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version", "config":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Resolve vault path: explicit path > named vault > default
		if vaultPathFlag != "" {
			resolvedVaultPath = vaultPathFlag
		} else {
			resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
			if err != nil {
				if vaultName != "" {
					return fmt.Errorf("vault '%s' not found in config", vaultName)
				}
				return fmt.Errorf(`no vault specified

Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in ~/.config/forge/config.toml`)
			}
		}

		if err := vault.CheckRoot(resolvedVaultPath); err != nil {
			return err
		}

		vaultCfg, err = config.LoadVaultConfig(resolvedVaultPath)
		if err != nil {
			return err
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// normalizeFlags accepts underscore_style flag spellings.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getVaultConfig returns the loaded vault config.
func getVaultConfig() *config.VaultConfig {
	if vaultCfg == nil {
		return config.DefaultVaultConfig()
	}
	return vaultCfg
}

func loadGlobalConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}

// scriptRuntime resolves the runtime executable, vault config first.
func scriptRuntime() string {
	if rt := strings.TrimSpace(getVaultConfig().Runtime); rt != "" {
		return rt
	}
	return getConfig().GetRuntime()
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
