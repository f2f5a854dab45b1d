// Package server exposes circuit construction, Braket task execution and
// result analysis as MCP tools.
package server

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/braket"
	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/logger"
	"github.com/teranos/qntx-braket/response"
	"github.com/teranos/qntx-braket/task"
	"github.com/teranos/qntx-braket/version"
	"github.com/teranos/qntx-braket/vizstore"
)

// DevicesResourceURI lists available devices as JSON.
const DevicesResourceURI = "amazon-braket://devices"

// Backend is the slice of braket.Service the tools call.
type Backend interface {
	Run(ctx context.Context, c circuit.Circuit, req braket.RunRequest) (task.Submission, error)
	GetResult(ctx context.Context, taskID string) (task.Result, error)
	ListDevices(ctx context.Context) ([]braket.DeviceInfo, error)
	GetDevice(ctx context.Context, arn string) (braket.DeviceInfo, error)
	Cancel(ctx context.Context, taskID string) (braket.CancelResult, error)
	Search(ctx context.Context, q braket.SearchQuery) ([]braket.TaskSummary, error)
}

// Tunable is implemented by backends that accept hot-reloaded settings.
type Tunable interface {
	SetDefaultDevice(arn string)
	SetRateLimit(rps float64, burst int)
}

// BackendFactory constructs the backend on first use.
type BackendFactory func(ctx context.Context) (Backend, error)

// Catalog lists persisted visualizations.
type Catalog interface {
	List(ctx context.Context, kind string, limit int) ([]vizstore.Entry, error)
}

// Server wraps an MCP server with the Braket tools registered.
type Server struct {
	mcp       *mcpserver.MCPServer
	assembler *response.Assembler
	catalog   Catalog
	log       *zap.SugaredLogger

	cfgMu sync.RWMutex
	cfg   *am.Config

	backendMu sync.Mutex
	factory   BackendFactory
	backend   Backend
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog enables the list_visualizations tool.
func WithCatalog(c Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithLogger replaces the component logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Server) { s.log = l }
}

// New builds a Server. The backend is created by factory on the first tool
// call that needs it; a failed attempt is not cached.
func New(cfg *am.Config, factory BackendFactory, sink response.Sink, opts ...Option) *Server {
	if cfg == nil {
		cfg = am.Default()
	}
	s := &Server{
		assembler: response.New(sink),
		log:       logger.ComponentLogger("server"),
		cfg:       cfg,
		factory:   factory,
	}
	for _, opt := range opts {
		opt(s)
	}

	name := cfg.Server.Name
	if name == "" {
		name = version.Name
	}
	s.mcp = mcpserver.NewMCPServer(
		name,
		version.Get().Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithInstructions(instructions),
	)
	s.registerTools()
	s.registerResources()
	return s
}

const instructions = `Build quantum circuits, run them on Amazon Braket devices and analyze the results.
Circuits are JSON objects: {"num_qubits": 2, "gates": [{"name": "h", "qubits": [0]}, {"name": "cx", "qubits": [0, 1]}]}.
Use create_bell_pair_circuit, create_ghz_circuit or create_qft_circuit for common circuits, run_quantum_task to submit,
get_task_result to poll, and visualize_results for a histogram with statistics.`

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Config returns the active configuration.
func (s *Server) Config() *am.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// ApplyConfig swaps the configuration and pushes the default device and
// rate limit to an already constructed backend.
func (s *Server) ApplyConfig(cfg *am.Config) {
	if cfg == nil {
		return
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()

	s.backendMu.Lock()
	b := s.backend
	s.backendMu.Unlock()

	if t, ok := b.(Tunable); ok {
		t.SetDefaultDevice(cfg.Braket.DefaultDeviceARN)
		t.SetRateLimit(cfg.Braket.RequestsPerSecond, cfg.Braket.Burst)
		s.log.Infow("Applied configuration",
			logger.FieldDeviceARN, cfg.Braket.DefaultDeviceARN,
			"requests_per_second", cfg.Braket.RequestsPerSecond)
	}
}

func (s *Server) getBackend(ctx context.Context) (Backend, error) {
	s.backendMu.Lock()
	defer s.backendMu.Unlock()
	if s.backend != nil {
		return s.backend, nil
	}
	b, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}
	s.backend = b
	return b, nil
}

func (s *Server) registerResources() {
	s.mcp.AddResource(
		mcp.NewResource(DevicesResourceURI, "QuantumDevices",
			mcp.WithResourceDescription("Available Amazon Braket quantum devices"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleDevicesResource,
	)
}
