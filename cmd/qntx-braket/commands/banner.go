package commands

import (
	"fmt"
	"io"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/logger"
	"github.com/teranos/qntx-braket/version"
)

// printStartupBanner writes the startup summary to w. The stdio transport
// owns stdout, so callers pass stderr.
func printStartupBanner(w io.Writer, cfg *am.Config, verbosity int, configFile string) {
	cyan := "\033[36m"
	green := "\033[32m"
	blue := "\033[34m"
	bold := "\033[1m"
	reset := "\033[0m"

	info := version.Get()

	fmt.Fprintf(w, "\n%s%s", cyan, bold)
	fmt.Fprintf(w, "   ╔═══════════════════════════════════════════╗\n")
	fmt.Fprintf(w, "   ║   |0⟩ ─H─●─  qntx-braket                  ║\n")
	fmt.Fprintf(w, "   ║   |0⟩ ───⊕─  quantum circuits over MCP    ║\n")
	fmt.Fprintf(w, "   ╚═══════════════════════════════════════════╝%s\n\n", reset)

	fmt.Fprintf(w, "%s%s┌─ Server ─────────────────────────────────────────┐%s\n", green, bold, reset)
	fmt.Fprintf(w, "%s│%s Version:   %s (commit %s)\n", green, reset, info.Version, info.Short())
	fmt.Fprintf(w, "%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Fprintf(w, "%s│%s Transport: %s\n", green, reset, cfg.Server.Transport)
	if cfg.Server.Transport == am.TransportHTTP {
		fmt.Fprintf(w, "%s│%s Address:   %s\n", green, reset, cfg.Server.Address)
	}
	fmt.Fprintf(w, "%s│%s Region:    %s\n", green, reset, cfg.Braket.Region)
	fmt.Fprintf(w, "%s│%s Device:    %s\n", green, reset, cfg.Braket.DefaultDeviceARN)
	if configFile != "" {
		fmt.Fprintf(w, "%s│%s Config:    %s\n", green, reset, configFile)
	}
	fmt.Fprintf(w, "%s└──────────────────────────────────────────────────┘%s\n", green, reset)
	fmt.Fprintf(w, "%s💡 Press Ctrl+C to stop%s\n\n", blue, reset)
}
