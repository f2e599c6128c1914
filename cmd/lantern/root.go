package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Lantern - structured logging toolkit",
	Long: `Lantern is a structured logging toolkit built on zerolog.

It provides leveled JSON logging with flexible calling conventions,
field redaction, async buffered output, and a durable audit trail for
high-severity records. This binary carries the supporting tooling:
pretty-printing JSON logs and inspecting the audit database.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
