package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe a machine",
	Long: `Prints a machine as a markdown rule table, a Mermaid state diagram, or the
normalized YAML/JSON definition.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		overlay, _ := cmd.Flags().GetBool("overlay")
		noColor, _ := cmd.Flags().GetBool("no-color")

		return cli.Inspect(cmd.Context(), cli.InspectOptions{
			Path:    args[0],
			Format:  format,
			Overlay: overlay,
			NoColor: noColor,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, mermaid, yaml or json")
	inspectCmd.Flags().Bool("overlay", false, "Run the machine and highlight visited states (mermaid only)")
	inspectCmd.Flags().Bool("no-color", false, "Disable styled markdown")
}
