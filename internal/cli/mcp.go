package cli

import (
	"context"
	"time"

	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/aretw0/turing/pkg/observability"
)

// MCPOptions contains the configuration for the MCP command.
type MCPOptions struct {
	Timeout time.Duration
	Debug   bool
	Store   StoreOptions
}

// ServeMCP serves the MCP tools over stdio. Logs always go to stderr so they
// never corrupt the JSON-RPC stream on stdout.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger := serviceLogger(opts.Debug)

	store, closeStore, err := openStore(ctx, opts.Store, logger)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}
	defer closeStore()

	srv := mcp.NewServer(store,
		mcp.WithLogger(logger),
		mcp.WithTimeout(opts.Timeout),
		mcp.WithHooks(observability.LogHooks(logger)),
	)

	logger.Info("starting turing MCP server (stdio)")
	return srv.ServeStdio()
}
