package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on stdin/stdout exposing the run_machine, list_machines
and describe_machine tools, so AI agents can run Turing machines.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		debug, _ := cmd.Flags().GetBool("debug")

		return cli.ServeMCP(cmd.Context(), cli.MCPOptions{
			Timeout: timeout,
			Debug:   debug,
			Store:   storeOptions(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addStoreFlags(mcpCmd)
}
