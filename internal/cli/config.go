package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/config"
	errs "github.com/tessro/uampc/internal/errors"
	"github.com/tessro/uampc/internal/wizard"
)

const configHeader = "# uampc configuration\n\n"

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing uampc configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the configuration in effect, with defaults and overrides applied.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  server.address        Server host name or IP address
  server.port           Server port
  server.timeout        Control request timeout in milliseconds
  tui.theme             Color theme (auto/dark/light)
  tui.bar_autoscroll    Keep the bar on the playing song (true/false)
  tui.search_debounce   Search delay in milliseconds
  tui.tick_interval     Progress refresh in milliseconds
  tail.emoji            Emoji in tail output (true/false)
  tail.timestamp        Timestamps in tail output (true/false)
  web.command           Command opening the web player
  log.level             Log level (debug/info/warn/error)
  log.file              Log file path
  log.format            Log format (json/console)

Examples:
  uampc config set server.address 192.168.1.20
  uampc config set tui.theme light`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configKinds lists the settable keys with their value kinds.
var configKinds = map[string]string{
	"server.address":      "string",
	"server.port":         "int",
	"server.timeout":      "int",
	"tui.theme":           "string",
	"tui.bar_autoscroll":  "bool",
	"tui.search_debounce": "int",
	"tui.tick_interval":   "int",
	"tail.emoji":          "bool",
	"tail.timestamp":      "bool",
	"web.command":         "string",
	"log.level":           "string",
	"log.file":            "string",
	"log.format":          "string",
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file without asking")

	configCmd.AddCommand(configShowCmd, configEditCmd, configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	if Verbose() {
		if path := getConfigPath(); fileExists(path) {
			fmt.Printf("# %s\n\n", path)
		} else {
			fmt.Print("# no config file, showing defaults\n\n")
		}
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if !fileExists(configPath) {
		return fmt.Errorf("%w at %s", errs.ErrConfigNotFound, configPath)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.CommandContext(cmd.Context(), editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if fileExists(configPath) && !configInitForce {
		if !wizard.IsTerminal() {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
		}
		overwrite := false
		confirm := huh.NewConfirm().
			Title("Overwrite " + configPath + "?").
			Description("The file will be replaced with the default configuration.").
			Affirmative("Overwrite").
			Negative("Keep").
			Value(&overwrite)
		if err := huh.NewForm(huh.NewGroup(confirm)).RunWithContext(cmd.Context()); err != nil {
			return fmt.Errorf("confirmation cancelled: %w", err)
		}
		if !overwrite {
			return printResult("Kept existing config file", map[string]any{"status": "unchanged", "path": configPath})
		}
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{"status": "created", "path": configPath})
	}
	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point server.address and server.port at your uamp server")
	fmt.Println("  2. Run 'uampc status' to check the connection")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindFile(); path != "" {
		return path
	}
	return config.DefaultPath()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeConfigFile encodes v as TOML under the config header.
func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// parseConfigValue converts value to the kind of key.
func parseConfigValue(key, value string) (any, error) {
	kind, ok := configKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return int64(i), nil
	case "bool":
		b, err := parseSwitch(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	}
	return value, nil
}

// setConfigValue sets key in a raw TOML document and checks the result.
func setConfigValue(raw map[string]any, key, value string) error {
	typed, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		raw[section] = sectionMap
	}
	sectionMap[field] = typed

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	check := config.Default()
	if _, err := toml.Decode(buf.String(), check); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := check.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	raw := make(map[string]any)
	if fileExists(configPath) {
		if _, err := toml.DecodeFile(configPath, &raw); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := setConfigValue(raw, key, value); err != nil {
		return err
	}
	if err := writeConfigFile(configPath, raw); err != nil {
		return err
	}

	return printResult(fmt.Sprintf("Set %s = %s", key, value), map[string]any{
		"status": "updated",
		"key":    key,
		"value":  value,
		"path":   configPath,
	})
}
