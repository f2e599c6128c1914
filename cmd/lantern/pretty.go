package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var prettyNoColor bool

var prettyCmd = &cobra.Command{
	Use:   "pretty",
	Short: "Pretty-print JSON log lines from stdin",
	Long: `Read JSON log lines from stdin and render them in a colorized,
human-readable format. Lines that are not valid JSON pass through
unchanged, so mixed output from a service remains legible.

Example:

  my-service 2>&1 | lantern pretty`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return prettify(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func prettify(in io.Reader, out io.Writer) error {
	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    prettyNoColor,
		TimeFormat: time.Kitchen,
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if !json.Valid(line) {
			fmt.Fprintf(out, "%s\n", line)
			continue
		}
		if _, err := console.Write(append(line, '\n')); err != nil {
			// Render failures degrade to raw passthrough.
			fmt.Fprintf(out, "%s\n", line)
		}
	}
	return scanner.Err()
}

func init() {
	prettyCmd.Flags().BoolVar(&prettyNoColor, "no-color", false, "disable colorized output")
	rootCmd.AddCommand(prettyCmd)
}
