package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a machine until it halts",
	Long: `Loads the machine definition from a YAML or JSON file, runs it and prints the
final configuration. With --trace every configuration is printed, starting with
the initial one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, _ := cmd.Flags().GetBool("trace")
		jsonMode, _ := cmd.Flags().GetBool("json")
		stuckAsHalt, _ := cmd.Flags().GetBool("stuck-as-halt")
		noColor, _ := cmd.Flags().GetBool("no-color")
		debug, _ := cmd.Flags().GetBool("debug")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		return cli.Run(cmd.Context(), cli.RunOptions{
			Path:        args[0],
			Trace:       trace,
			JSON:        jsonMode,
			StuckAsHalt: stuckAsHalt,
			NoColor:     noColor,
			Debug:       debug,
			Timeout:     timeout,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("trace", "t", false, "Print every configuration")
	runCmd.Flags().Bool("json", false, "Print the result (and trace) as JSON")
	runCmd.Flags().Bool("stuck-as-halt", false, "Exit successfully when no rule matches")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().Duration("timeout", envDuration("TURING_RUN_TIMEOUT", 0), "Abort the run after this duration (0: never) [$TURING_RUN_TIMEOUT]")
}
