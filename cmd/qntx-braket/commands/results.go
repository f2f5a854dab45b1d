package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-braket/insight"
	"github.com/teranos/qntx-braket/task"
	"github.com/teranos/qntx-braket/visual"
)

// ResultsCmd groups offline result commands
var ResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Analyze measurement results offline",
}

var resultsInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a histogram, statistics and insights for measurement counts",
	Long: `Read a task result (as returned by get_task_result) and analyze its counts.
A bare {"counts": {"00": 510, "11": 490}, "shots": 1000} is enough; per-shot
"measurements" are folded into counts when counts are absent.

Examples:
  qntx-braket results inspect --file result.json
  qntx-braket results inspect --file - --json < result.json`,
	RunE: runResultsInspect,
}

var (
	resultsFile string
	resultsJSON bool
)

func init() {
	resultsInspectCmd.Flags().StringVarP(&resultsFile, "file", "f", "", "Result JSON file, - for stdin")
	resultsInspectCmd.Flags().BoolVarP(&resultsJSON, "json", "j", false, "Output the analysis as JSON")

	ResultsCmd.AddCommand(resultsInspectCmd)
}

type inspectOutput struct {
	Histogram string         `json:"ascii_visualization"`
	Analysis  insight.Report `json:"description"`
}

func runResultsInspect(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, resultsFile)
	if err != nil {
		return err
	}
	r, err := task.DecodeResult(string(data))
	if err != nil {
		return err
	}

	histogram := visual.RenderHistogram(r.Counts)
	report := insight.Analyze(r.Counts, r.Shots)

	out := cmd.OutOrStdout()
	if resultsJSON {
		return printJSON(out, inspectOutput{Histogram: histogram, Analysis: report})
	}

	fmt.Fprintln(out, histogram)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", pterm.Bold.Sprint("Summary:"), report.Summary)
	fmt.Fprintf(out, "%s %s - %s\n", pterm.Bold.Sprint("Distribution:"),
		report.Distribution.Pattern, report.Distribution.Description)
	fmt.Fprintf(out, "%s %.4f bits over %d outcomes\n", pterm.Bold.Sprint("Entropy:"),
		report.Statistics.Entropy, report.Statistics.UniqueOutcomes)

	if len(report.Statistics.Probabilities) > 0 {
		states := make([]string, 0, len(report.Statistics.Probabilities))
		for s := range report.Statistics.Probabilities {
			states = append(states, s)
		}
		sort.Strings(states)

		table := pterm.TableData{{"State", "Count", "Probability"}}
		for _, s := range states {
			table = append(table, []string{
				"|" + s + "⟩",
				fmt.Sprintf("%d", r.Counts[s]),
				fmt.Sprintf("%.4f", report.Statistics.Probabilities[s]),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(table).Render(); err != nil {
			return err
		}
	}

	for _, line := range report.Insights {
		fmt.Fprintf(out, "  • %s\n", line)
	}
	return nil
}
