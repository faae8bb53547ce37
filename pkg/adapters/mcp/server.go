// Package mcp exposes machine runs as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// DefaultTimeout bounds a single tool-initiated run.
const DefaultTimeout = 10 * time.Second

// Server exposes a DefinitionStore and the runner as an MCP Server.
type Server struct {
	store     ports.DefinitionStore
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	timeout   time.Duration
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHooks registers lifecycle hooks on every run.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithTimeout bounds each run. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case only inline definitions can be run.
func NewServer(store ports.DefinitionStore, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:   DefaultTimeout,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine until it halts and return the final tape. "+
			"Pass either an inline definition or the name of a stored machine."),
		mcp.WithString("definition", mcp.Description("Machine definition document (YAML or JSON)")),
		mcp.WithString("format", mcp.Description("Format of definition: yaml (default) or json")),
		mcp.WithString("name", mcp.Description("Name of a stored machine, used when definition is empty")),
	), s.handleRun)

	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of stored machines."),
	), s.handleList)

	// TOOL: describe_machine
	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe a machine as markdown: alphabet, tape and rule table."),
		mcp.WithString("definition", mcp.Description("Machine definition document (YAML or JSON)")),
		mcp.WithString("format", mcp.Description("Format of definition: yaml (default) or json")),
		mcp.WithString("name", mcp.Description("Name of a stored machine, used when definition is empty")),
	), s.handleDescribe)
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prog, errResult := s.resolve(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	m, err := prog.NewMachine()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := runner.New(
		runner.WithLogger(s.logger),
		runner.WithName(prog.Name),
		runner.WithHooks(s.hooks),
	).Run(runCtx, m)
	if res == nil {
		return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
	}

	result := textJSON(res)
	if err != nil {
		result.IsError = true
	}
	return result, nil
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("no machine store configured"), nil
	}

	names, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("list_machines failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	return textJSON(names), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prog, errResult := s.resolve(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(tui.Describe(prog)), nil
}

// textJSON encodes v as the text content of a tool result.
// Encoding failures become tool errors like every other failure.
func textJSON(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// resolve compiles the inline definition or loads the named one.
// Failures come back as tool errors so the model can correct its input.
func (s *Server) resolve(ctx context.Context, request mcp.CallToolRequest) (*definition.Program, *mcp.CallToolResult) {
	doc := request.GetString("definition", "")
	name := request.GetString("name", "")

	var def *definition.Definition
	switch {
	case doc != "":
		format, err := definition.ParseFormat(request.GetString("format", ""))
		if err != nil {
			return nil, mcp.NewToolResultError(err.Error())
		}
		def, err = definition.Parse([]byte(doc), format)
		if err != nil {
			return nil, mcp.NewToolResultError(err.Error())
		}
		if def.Name == "" {
			def.Name = name
		}

	case name != "":
		if s.store == nil {
			return nil, mcp.NewToolResultError("no machine store configured")
		}
		var err error
		def, err = s.store.Load(ctx, name)
		if errors.Is(err, domain.ErrDefinitionNotFound) {
			return nil, mcp.NewToolResultError(fmt.Sprintf("machine %q not found", name))
		}
		if err != nil {
			s.logger.Error("load failed", "machine", name, "error", err)
			return nil, mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err))
		}

	default:
		return nil, mcp.NewToolResultError("either definition or name is required")
	}

	prog, err := def.Compile()
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return prog, nil
}
