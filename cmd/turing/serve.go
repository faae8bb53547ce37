package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves stored machine definitions and runs over a JSON API, with Prometheus
metrics at /metrics. Definitions live in Redis when --redis is set, in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		debug, _ := cmd.Flags().GetBool("debug")

		return cli.Serve(cmd.Context(), cli.ServeOptions{
			Port:    port,
			Timeout: timeout,
			Debug:   debug,
			Store:   storeOptions(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	addStoreFlags(serveCmd)
}
