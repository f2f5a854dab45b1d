// Package response composes the rendered diagram, the structural or
// statistical description, and a persisted image reference into the
// objects returned to MCP clients.
package response

import (
	"context"
	"fmt"

	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/describe"
	"github.com/teranos/qntx-braket/insight"
	"github.com/teranos/qntx-braket/task"
	"github.com/teranos/qntx-braket/visual"
)

// Sink persists a rendered image under a descriptive base name and returns
// the stored path.
type Sink interface {
	Save(ctx context.Context, image []byte, baseName string) (string, error)
}

// DescribedSink is implemented by sinks that can also store a one-line
// description next to the image.
type DescribedSink interface {
	Sink
	SaveDescribed(ctx context.Context, image []byte, baseName, description string) (string, error)
}

// CircuitResponse is returned for circuit creation and visualization.
type CircuitResponse struct {
	CircuitDef         circuit.Circuit `json:"circuit_def"`
	Description        describe.Report `json:"description"`
	ASCIIVisualization string          `json:"ascii_visualization"`
	VisualizationFile  string          `json:"visualization_file"`
	UsageNote          string          `json:"usage_note"`
	NumQubits          int             `json:"num_qubits"`
	NumGates           int             `json:"num_gates"`
}

// ResultsResponse is returned for result inspection.
type ResultsResponse struct {
	Result             task.Result        `json:"result"`
	Description        insight.Report     `json:"description"`
	ASCIIVisualization string             `json:"ascii_visualization"`
	VisualizationFile  string             `json:"visualization_file"`
	UsageNote          string             `json:"usage_note"`
	Statistics         insight.Statistics `json:"statistics"`
	Insights           []string           `json:"insights"`
}

// Assembler builds responses, persisting each diagram through its Sink.
type Assembler struct {
	sink Sink
}

// New returns an Assembler writing to sink.
func New(sink Sink) *Assembler {
	return &Assembler{sink: sink}
}

// Circuit renders and describes c. kind labels the saved image
// ("bell_pair", "ghz", "custom", ...). Sink errors are returned unchanged.
func (a *Assembler) Circuit(ctx context.Context, c circuit.Circuit, kind string) (CircuitResponse, error) {
	diagram := visual.RenderCircuit(c)
	report := describe.Describe(c)

	path, err := a.persist(ctx, diagram, kind+"_circuit", report.Summary)
	if err != nil {
		return CircuitResponse{}, err
	}

	return CircuitResponse{
		CircuitDef:         c,
		Description:        report,
		ASCIIVisualization: diagram,
		VisualizationFile:  path,
		UsageNote:          fmt.Sprintf("Circuit visualization saved to %s. Use an image viewer to see the diagram.", path),
		NumQubits:          c.NumQubits,
		NumGates:           c.NumGates(),
	}, nil
}

// Results renders the histogram of r and analyzes it. Sink errors are
// returned unchanged.
func (a *Assembler) Results(ctx context.Context, r task.Result) (ResultsResponse, error) {
	chart := visual.RenderHistogram(r.Counts)
	report := insight.Analyze(r.Counts, r.Shots)

	path, err := a.persist(ctx, chart, "results_"+r.TaskID, report.Summary)
	if err != nil {
		return ResultsResponse{}, err
	}

	return ResultsResponse{
		Result:             r,
		Description:        report,
		ASCIIVisualization: chart,
		VisualizationFile:  path,
		UsageNote:          fmt.Sprintf("Results visualization saved to %s. Use an image viewer to see the chart.", path),
		Statistics:         report.Statistics,
		Insights:           report.Insights,
	}, nil
}

func (a *Assembler) persist(ctx context.Context, text, baseName, description string) (string, error) {
	img, err := visual.RasterizePNG(text)
	if err != nil {
		return "", err
	}
	if ds, ok := a.sink.(DescribedSink); ok {
		return ds.SaveDescribed(ctx, img, baseName, description)
	}
	return a.sink.Save(ctx, img, baseName)
}
