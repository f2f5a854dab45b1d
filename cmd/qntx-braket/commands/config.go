package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/errors"
)

// ConfigCmd manages braket.toml
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and manage qntx-braket configuration",
	Long: `Display and manage qntx-braket configuration.

Configuration sources (later overrides earlier):
1. Built-in defaults
2. System config (/etc/qntx/braket.toml)
3. User config (~/.qntx/braket.toml)
4. Project config (nearest braket.toml, searching up from the working directory)
5. Environment variables (QNTX_* prefix, AWS_REGION)

Examples:
  qntx-braket config show                       # Effective configuration as TOML
  qntx-braket config show --sources             # Where each value came from
  qntx-braket config init                       # Write ~/.qntx/braket.toml
  qntx-braket config set braket.default_shots 500`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default braket.toml",
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Set one value in braket.toml",
	Long: `Set one value in a braket.toml, keeping a backup of the previous file.
Values are written as booleans or numbers when they parse as such.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var (
	configFormat  string
	configSources bool
	configPath    string
	configForce   bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json")
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "Show the source of every setting")
	configInitCmd.Flags().StringVar(&configPath, "path", "", "File to write (default ~/.qntx/braket.toml)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configSetCmd.Flags().StringVar(&configPath, "path", "", "File to edit (default: the loaded file, else ~/.qntx/braket.toml)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	out := cmd.OutOrStdout()

	if configSources {
		table := pterm.TableData{{"Key", "Value", "Source", "From"}}
		for _, s := range am.Introspect() {
			table = append(table, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(table).Render()
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# qntx-braket configuration\n%s", string(data))
	default:
		return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json)", configFormat)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = am.UserConfigPath()
	}
	if err := am.WriteDefault(path, configForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = am.ActiveConfigFile()
	}
	if path == "" {
		path = am.UserConfigPath()
	}

	if err := am.UpdateSetting(path, args[0], parseValue(args[1])); err != nil {
		return err
	}

	am.Reset()
	cfg, err := am.LoadFromFile(path)
	if err != nil {
		return errors.Wrapf(err, "%s no longer loads", path)
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithHintf(err, "the previous file was kept as %s.back1", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s in %s\n", args[0], path)
	return nil
}

// parseValue types a command-line value for TOML.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
