package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaqilk/forge/internal/config"
	"github.com/aaqilk/forge/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the global configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", ui.FilePath(path)))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective global configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Run 'forge config init' to create one")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"default_vault":   loaded.DefaultVault,
				"vaults":          loaded.Vaults,
				"runtime":         loaded.GetRuntime(),
				"timeout_seconds": loaded.TimeoutSeconds,
				"editor":          loaded.GetEditor(),
			}, nil)
			return nil
		}

		fmt.Printf("config:  %s\n", configFilePath())
		fmt.Printf("runtime: %s\n", loaded.GetRuntime())
		if loaded.TimeoutSeconds > 0 {
			fmt.Printf("timeout: %ds\n", loaded.TimeoutSeconds)
		}
		if editor := loaded.GetEditor(); editor != "" {
			fmt.Printf("editor:  %s\n", editor)
		}
		if loaded.DefaultVault != "" {
			fmt.Printf("default: %s\n", loaded.DefaultVault)
		}
		for name, path := range loaded.Vaults {
			fmt.Printf("vault:   %s %s\n", name, ui.FilePath(path))
		}
		return nil
	},
}

var (
	configSetEditor       string
	configSetRuntime      string
	configSetTimeout      int
	configSetDefaultVault string
	configSetVaults       []string
	configSetUIAccent     string
	configSetUICodeTheme  string

	configUnsetEditor       bool
	configUnsetRuntime      bool
	configUnsetTimeout      bool
	configUnsetDefaultVault bool
	configUnsetUIAccent     bool
	configUnsetUICodeTheme  bool
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more global config fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadGlobalConfigAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 6)

		for _, arg := range configSetVaults {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("invalid vault format: %s", arg), "Use format: --vault name=/path/to/vault")
			}
			if cfg.Vaults == nil {
				cfg.Vaults = make(map[string]string)
			}
			name := strings.TrimSpace(parts[0])
			cfg.Vaults[name] = strings.TrimSpace(parts[1])
			changed = append(changed, "vaults."+name)
		}

		if cmd.Flags().Changed("editor") {
			value := strings.TrimSpace(configSetEditor)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "editor cannot be empty; use 'forge config unset --editor' to clear it", "")
			}
			cfg.Editor = value
			changed = append(changed, "editor")
		}

		if cmd.Flags().Changed("runtime") {
			value := strings.TrimSpace(configSetRuntime)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "runtime cannot be empty; use 'forge config unset --runtime' to clear it", "")
			}
			cfg.Runtime = value
			changed = append(changed, "runtime")
		}

		if cmd.Flags().Changed("timeout-seconds") {
			if configSetTimeout <= 0 {
				return handleErrorMsg(ErrInvalidInput, "timeout-seconds must be positive", "")
			}
			cfg.TimeoutSeconds = configSetTimeout
			changed = append(changed, "timeout_seconds")
		}

		if cmd.Flags().Changed("default-vault") {
			value := strings.TrimSpace(configSetDefaultVault)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "default-vault cannot be empty; use 'forge config unset --default-vault' to clear it", "")
			}
			if _, err := cfg.GetVaultPath(value); err != nil {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("default-vault '%s' is not configured", value),
					"Register it first with 'forge config set --vault name=/path'")
			}
			cfg.DefaultVault = value
			changed = append(changed, "default_vault")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-accent cannot be empty; use 'forge config unset --ui-accent' to clear it", "")
			}
			cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if cmd.Flags().Changed("ui-code-theme") {
			value := strings.TrimSpace(configSetUICodeTheme)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-code-theme cannot be empty; use 'forge config unset --ui-code-theme' to clear it", "")
			}
			cfg.UI.CodeTheme = value
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument,
				"no fields provided; set at least one --editor/--runtime/--timeout-seconds/--default-vault/--vault/--ui-accent/--ui-code-theme", "")
		}

		if err := config.SaveTo(configFilePath(), cfg); err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":    configFilePath(),
				"changed": changed,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("updated %s (%s)", ui.FilePath(configFilePath()), strings.Join(changed, ", ")))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more global config fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadGlobalConfigAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 6)
		if configUnsetEditor {
			cfg.Editor = ""
			changed = append(changed, "editor")
		}
		if configUnsetRuntime {
			cfg.Runtime = ""
			changed = append(changed, "runtime")
		}
		if configUnsetTimeout {
			cfg.TimeoutSeconds = 0
			changed = append(changed, "timeout_seconds")
		}
		if configUnsetDefaultVault {
			cfg.DefaultVault = ""
			changed = append(changed, "default_vault")
		}
		if configUnsetUIAccent {
			cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetUICodeTheme {
			cfg.UI.CodeTheme = ""
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument,
				"no fields provided; clear at least one --editor/--runtime/--timeout-seconds/--default-vault/--ui-accent/--ui-code-theme", "")
		}

		if err := config.SaveTo(configFilePath(), cfg); err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":    configFilePath(),
				"changed": changed,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("updated %s (%s)", ui.FilePath(configFilePath()), strings.Join(changed, ", ")))
		return nil
	},
}

// loadGlobalConfigAllowMissing loads the global config, treating a
// missing file at an explicit --config path as empty.
func loadGlobalConfigAllowMissing() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return &config.Config{}, nil
		}
	}
	return loadGlobalConfig()
}

func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)

	configSetCmd.Flags().StringVar(&configSetEditor, "editor", "", "Set the editor command")
	configSetCmd.Flags().StringVar(&configSetRuntime, "runtime", "", "Set the script runtime executable")
	configSetCmd.Flags().IntVar(&configSetTimeout, "timeout-seconds", 0, "Set the script timeout in seconds")
	configSetCmd.Flags().StringVar(&configSetDefaultVault, "default-vault", "", "Set default_vault to a configured vault name")
	configSetCmd.Flags().StringArrayVar(&configSetVaults, "vault", nil, "Register a vault as name=/path (repeatable)")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	configSetCmd.Flags().StringVar(&configSetUICodeTheme, "ui-code-theme", "", "Set markdown code theme name")

	configUnsetCmd.Flags().BoolVar(&configUnsetEditor, "editor", false, "Clear the editor command")
	configUnsetCmd.Flags().BoolVar(&configUnsetRuntime, "runtime", false, "Clear the script runtime executable")
	configUnsetCmd.Flags().BoolVar(&configUnsetTimeout, "timeout-seconds", false, "Clear the script timeout")
	configUnsetCmd.Flags().BoolVar(&configUnsetDefaultVault, "default-vault", false, "Clear the default vault")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear the UI accent color")
	configUnsetCmd.Flags().BoolVar(&configUnsetUICodeTheme, "ui-code-theme", false, "Clear the markdown code theme")
}
