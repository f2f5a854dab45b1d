package server

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teranos/qntx-braket/braket"
	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/internal/util"
	"github.com/teranos/qntx-braket/logger"
	"github.com/teranos/qntx-braket/task"
	"github.com/teranos/qntx-braket/vizstore"
)

// Circuit kinds used as visualization base names.
const (
	kindCustom     = "custom"
	kindBellPair   = "bell_pair"
	kindGHZ        = "ghz"
	kindQFT        = "qft"
	kindVisualized = "visualized"
)

func (s *Server) handleCreateCircuit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "create_quantum_circuit"

	n, err := request.RequireInt("num_qubits")
	if err != nil {
		return s.toolError(ctx, tool, errors.Wrap(errors.ErrInvalidRequest, err.Error())), nil
	}
	gates, ok := request.GetArguments()["gates"]
	if !ok || gates == nil {
		return s.toolError(ctx, tool, errors.NewInvalidRequestError("gates is required")), nil
	}

	c, err := circuit.Decode(map[string]any{"num_qubits": n, "gates": gates})
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return s.circuitResult(ctx, tool, c, kindCustom)
}

func (s *Server) handleBellPair(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.circuitResult(ctx, "create_bell_pair_circuit", circuit.BellPair(), kindBellPair)
}

func (s *Server) handleGHZ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "create_ghz_circuit"
	c, err := circuit.GHZ(request.GetInt("num_qubits", 3))
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return s.circuitResult(ctx, tool, c, kindGHZ)
}

func (s *Server) handleQFT(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "create_qft_circuit"
	c, err := circuit.QFT(request.GetInt("num_qubits", 3))
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return s.circuitResult(ctx, tool, c, kindQFT)
}

// circuitResult validates c and returns the assembled circuit response.
func (s *Server) circuitResult(ctx context.Context, tool string, c circuit.Circuit, kind string) (*mcp.CallToolResult, error) {
	if err := c.Validate(); err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	resp, err := s.assembler.Circuit(ctx, c, kind)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	s.logFor(ctx).Debugw("Circuit created",
		logger.FieldQubits, c.NumQubits, logger.FieldGates, c.NumGates(), logger.FieldPath, resp.VisualizationFile)
	return jsonResult(resp)
}

// handleVisualizeCircuit renders any decodable circuit; malformed gates are
// drawn as far as possible rather than rejected.
func (s *Server) handleVisualizeCircuit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "visualize_circuit"
	c, err := circuit.Decode(request.GetArguments()["circuit"])
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	if c.NumQubits <= 0 {
		return s.toolError(ctx, tool, errors.NewInvalidRequestError("num_qubits must be positive, got %d", c.NumQubits)), nil
	}
	resp, err := s.assembler.Circuit(ctx, c, kindVisualized)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleVisualizeResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "visualize_results"
	r, err := task.DecodeResult(request.GetArguments()["result"])
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	if r.Shots <= 0 {
		r.Shots = r.TotalCounts()
	}
	resp, err := s.assembler.Results(ctx, r)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleRunTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "run_quantum_task"
	c, err := circuit.Decode(request.GetArguments()["circuit"])
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	if err := c.Validate(); err != nil {
		return s.toolError(ctx, tool, err), nil
	}

	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}

	req := braket.RunRequest{
		DeviceARN: request.GetString("device_arn", ""),
		Shots:     s.Config().ClampShots(request.GetInt("shots", 0)),
		S3Bucket:  request.GetString("s3_bucket", ""),
		S3Prefix:  request.GetString("s3_prefix", ""),
	}
	sub, err := b.Run(ctx, c, req)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(sub)
}

func (s *Server) handleGetTaskResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_task_result"
	id, err := request.RequireString("task_id")
	if err != nil {
		return s.toolError(ctx, tool, errors.Wrap(errors.ErrInvalidRequest, err.Error())), nil
	}
	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	r, err := b.GetResult(ctx, id)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	s.logFor(ctx).Debugw("Task status", logger.FieldTaskID, id, logger.FieldStatus, r.Status,
		"execution_time_s", util.Deref(r.ExecutionTime))
	return jsonResult(r)
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "list_devices"
	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	devices, err := b.ListDevices(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(devices)
}

func (s *Server) handleGetDeviceInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "get_device_info"
	arn, err := request.RequireString("device_arn")
	if err != nil {
		return s.toolError(ctx, tool, errors.Wrap(errors.ErrInvalidRequest, err.Error())), nil
	}
	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	info, err := b.GetDevice(ctx, arn)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(info)
}

type cancelResponse struct {
	TaskID             string `json:"task_id"`
	Cancelled          bool   `json:"cancelled"`
	CancellationStatus string `json:"cancellation_status"`
}

func (s *Server) handleCancelTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "cancel_quantum_task"
	id, err := request.RequireString("task_id")
	if err != nil {
		return s.toolError(ctx, tool, errors.Wrap(errors.ErrInvalidRequest, err.Error())), nil
	}
	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	res, err := b.Cancel(ctx, id)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(cancelResponse{
		TaskID:             res.TaskID,
		Cancelled:          true,
		CancellationStatus: res.CancellationStatus,
	})
}

func (s *Server) handleSearchTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "search_quantum_tasks"
	q := braket.SearchQuery{
		DeviceARN:  request.GetString("device_arn", ""),
		Status:     request.GetString("state", ""),
		DaysAgo:    request.GetInt("days_ago", 0),
		MaxResults: request.GetInt("max_results", braket.DefaultSearchResults),
	}
	b, err := s.getBackend(ctx)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	tasks, err := b.Search(ctx, q)
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(tasks)
}

func (s *Server) handleListVisualizations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "list_visualizations"
	if s.catalog == nil {
		return s.toolError(ctx, tool, errors.WithHint(
			errors.MarkVisualization(errors.New("visualization catalog is disabled")),
			"set visualization.catalog = true in braket.toml")), nil
	}
	kind := strings.ToLower(strings.TrimSpace(request.GetString("kind", "")))
	switch kind {
	case "", "circuit", "results":
	default:
		return s.toolError(ctx, tool, errors.NewInvalidRequestError("kind must be circuit or results, got %q", kind)), nil
	}
	entries, err := s.catalog.List(ctx, kind, request.GetInt("limit", vizstore.DefaultListLimit))
	if err != nil {
		return s.toolError(ctx, tool, err), nil
	}
	return jsonResult(entries)
}

func (s *Server) handleDevicesResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	b, err := s.getBackend(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := b.ListDevices(ctx)
	if err != nil {
		s.logFor(ctx).Errorw("Failed to list devices for resource", logger.FieldError, err)
		return nil, err
	}
	data, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode devices")
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DevicesResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
