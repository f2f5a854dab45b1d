package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/cmd/qntx-braket/commands"
	"github.com/teranos/qntx-braket/logger"
)

var rootCmd = &cobra.Command{
	Use:   "qntx-braket",
	Short: "Quantum circuits on Amazon Braket over MCP",
	Long: `qntx-braket builds quantum circuits, runs them on Amazon Braket devices and
analyzes the measurement results. It serves these operations as MCP tools.

Available commands:
  serve    - Run the MCP server (stdio or streamable HTTP)
  circuit  - Render and describe a circuit offline
  results  - Analyze measurement counts offline
  devices  - List Braket devices
  config   - Show and edit braket.toml
  version  - Show build information

Examples:
  qntx-braket serve                          # MCP over stdio
  qntx-braket serve --transport http -v      # MCP over HTTP on :8765
  qntx-braket circuit render --file bell.json
  qntx-braket results inspect --file result.json
  qntx-braket config show --sources`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs := false
		if cfg, err := am.Load(); err == nil {
			jsonLogs = cfg.Log.JSON
			if cfg.Log.Theme != "" {
				logger.SetTheme(cfg.Log.Theme)
			}
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.CircuitCmd)
	rootCmd.AddCommand(commands.ResultsCmd)
	rootCmd.AddCommand(commands.DevicesCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
