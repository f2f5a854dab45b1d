package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool("create_quantum_circuit",
		mcp.WithDescription("Create a quantum circuit from a list of gates. Returns the circuit definition, an ASCII diagram and a description."),
		mcp.WithNumber("num_qubits", mcp.Required(), mcp.Description("Number of qubits in the circuit")),
		mcp.WithArray("gates", mcp.Required(),
			mcp.Description(`Gates in order, e.g. [{"name": "h", "qubits": [0]}, {"name": "rx", "qubits": [1], "params": [1.57]}]`),
			mcp.Items(map[string]any{"type": "object"}),
		),
	), s.handleCreateCircuit)

	s.addTool(mcp.NewTool("run_quantum_task",
		mcp.WithDescription("Submit a circuit to an Amazon Braket device. Returns the task id; poll it with get_task_result."),
		mcp.WithObject("circuit", mcp.Required(), mcp.Description("Circuit definition as returned by the create_* tools")),
		mcp.WithString("device_arn", mcp.Description("Device ARN; defaults to BRAKET_DEFAULT_DEVICE_ARN, the configured device, or SV1")),
		mcp.WithNumber("shots", mcp.Description("Number of shots (default 1000)")),
		mcp.WithString("s3_bucket", mcp.Description("Results bucket; defaults to the configured or amazon-braket-<region>-<account> bucket")),
		mcp.WithString("s3_prefix", mcp.Description("Results key prefix")),
	), s.handleRunTask)

	s.addTool(mcp.NewTool("get_task_result",
		mcp.WithDescription("Get the status of a quantum task and, once completed, its measurement counts."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Quantum task ARN")),
	), s.handleGetTaskResult)

	s.addTool(mcp.NewTool("list_devices",
		mcp.WithDescription("List available Amazon Braket devices (QPUs and simulators)."),
	), s.handleListDevices)

	s.addTool(mcp.NewTool("get_device_info",
		mcp.WithDescription("Get capabilities of a device: qubit count, connectivity, supported gates, shot limit."),
		mcp.WithString("device_arn", mcp.Required(), mcp.Description("Device ARN")),
	), s.handleGetDeviceInfo)

	s.addTool(mcp.NewTool("cancel_quantum_task",
		mcp.WithDescription("Request cancellation of a quantum task."),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("Quantum task ARN")),
	), s.handleCancelTask)

	s.addTool(mcp.NewTool("search_quantum_tasks",
		mcp.WithDescription("Search quantum tasks by device, state and age."),
		mcp.WithString("device_arn", mcp.Description("Only tasks on this device")),
		mcp.WithString("state", mcp.Description("Only tasks in this state, e.g. COMPLETED")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of tasks (default 10, max 100)")),
		mcp.WithNumber("days_ago", mcp.Description("Only tasks created within this many days")),
	), s.handleSearchTasks)

	s.addTool(mcp.NewTool("create_bell_pair_circuit",
		mcp.WithDescription("Create a two-qubit Bell pair circuit (H then CNOT, measured)."),
	), s.handleBellPair)

	s.addTool(mcp.NewTool("create_ghz_circuit",
		mcp.WithDescription("Create an n-qubit GHZ state circuit."),
		mcp.WithNumber("num_qubits", mcp.Description("Number of qubits (default 3)")),
	), s.handleGHZ)

	s.addTool(mcp.NewTool("create_qft_circuit",
		mcp.WithDescription("Create an n-qubit quantum Fourier transform circuit."),
		mcp.WithNumber("num_qubits", mcp.Description("Number of qubits (default 3)")),
	), s.handleQFT)

	s.addTool(mcp.NewTool("visualize_circuit",
		mcp.WithDescription("Render a circuit as an ASCII diagram with a description, and save it as an image."),
		mcp.WithObject("circuit", mcp.Required(), mcp.Description("Circuit definition")),
	), s.handleVisualizeCircuit)

	s.addTool(mcp.NewTool("visualize_results",
		mcp.WithDescription("Render measurement counts as a histogram and compute statistics and insights."),
		mcp.WithObject("result", mcp.Required(), mcp.Description(`Task result, at least {"counts": {"00": 510, "11": 490}, "shots": 1000}`)),
	), s.handleVisualizeResults)

	s.addTool(mcp.NewTool("list_visualizations",
		mcp.WithDescription("List saved circuit and result visualizations, newest first."),
		mcp.WithString("kind", mcp.Description("circuit or results; empty for both")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 50)")),
	), s.handleListVisualizations)
}
