package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing runs single-tape Turing machines described in YAML or JSON",
	Long: `Turing loads a machine definition (alphabet, circular tape and rule table),
validates it and runs it until it halts. It can also serve stored definitions
over HTTP or as MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	os.Exit(run())
}

// run executes the command tree and returns the process exit code.
// The signal context is released before the process exits.
func run() int {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Cancel()

	if err := rootCmd.ExecuteContext(sc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCode(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// envString returns the environment value for key, or def when unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

// envDuration returns the environment value for key parsed as a duration, or def.
func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", key, v, err)
		return def
	}
	return d
}

// addStoreFlags registers the definition store flags shared by serve and mcp.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis", envString("TURING_REDIS_ADDR", ""), "Redis address for stored definitions (empty: in-memory) [$TURING_REDIS_ADDR]")
	cmd.Flags().String("redis-prefix", "", "Key prefix for stored definitions")
	cmd.Flags().Duration("ttl", 0, "Expiration for stored definitions (0: never)")
	cmd.Flags().Duration("timeout", envDuration("TURING_RUN_TIMEOUT", 10*time.Second), "Maximum duration of a single run [$TURING_RUN_TIMEOUT]")
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	addr, _ := cmd.Flags().GetString("redis")
	prefix, _ := cmd.Flags().GetString("redis-prefix")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	return cli.StoreOptions{RedisAddr: addr, RedisPrefix: prefix, TTL: ttl}
}
