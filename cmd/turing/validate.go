package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check machine definitions without running them",
	Long:  `Parses each definition, compiles its rules and checks the tape and alphabet. Every problem is reported.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(args, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
