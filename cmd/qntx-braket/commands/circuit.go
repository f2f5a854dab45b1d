package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/describe"
	"github.com/teranos/qntx-braket/visual"
)

// CircuitCmd groups offline circuit commands
var CircuitCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Render and describe circuits offline",
}

var circuitRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw a circuit and describe what it does",
	Long: `Read a circuit definition and print its ASCII diagram, the recognized
pattern, the gate sequence and a complexity assessment. No AWS access needed.

The file holds the same JSON the MCP tools accept:
  {"num_qubits": 2, "gates": [{"name": "h", "qubits": [0]}, {"name": "cx", "qubits": [0, 1]}]}

Examples:
  qntx-braket circuit render --file bell.json
  cat ghz.json | qntx-braket circuit render --file - --json`,
	RunE: runCircuitRender,
}

var (
	circuitFile     string
	circuitJSON     bool
	circuitValidate bool
)

func init() {
	circuitRenderCmd.Flags().StringVarP(&circuitFile, "file", "f", "", "Circuit JSON file, - for stdin")
	circuitRenderCmd.Flags().BoolVarP(&circuitJSON, "json", "j", false, "Output the description as JSON")
	circuitRenderCmd.Flags().BoolVar(&circuitValidate, "validate", false, "Fail if the circuit could not be submitted to Braket")

	CircuitCmd.AddCommand(circuitRenderCmd)
}

type renderOutput struct {
	Diagram     string          `json:"ascii_visualization"`
	Description describe.Report `json:"description"`
}

func runCircuitRender(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, circuitFile)
	if err != nil {
		return err
	}
	c, err := circuit.Decode(string(data))
	if err != nil {
		return err
	}
	if circuitValidate {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	diagram := visual.RenderCircuit(c)
	report := describe.Describe(c)

	out := cmd.OutOrStdout()
	if circuitJSON {
		return printJSON(out, renderOutput{Diagram: diagram, Description: report})
	}

	fmt.Fprintln(out, diagram)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Summary:"), report.Summary)
	fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Behavior:"), report.ExpectedBehavior)
	fmt.Fprintf(out, "%s %s (%d gates, depth %d, %s)\n", pterm.Bold.Sprint("Complexity:"),
		report.Complexity.ComplexityLevel, report.Complexity.GateCount, report.Complexity.Depth,
		report.Complexity.EstimatedRuntime)
	if len(report.GateSequence) > 0 {
		fmt.Fprintln(out, pterm.Bold.Sprint("Gates:"))
		for i, step := range report.GateSequence {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, step)
		}
	}
	if types := report.Details.GateTypes; len(types) > 0 {
		fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Gate types:"), strings.Join(types, ", "))
	}
	return nil
}
