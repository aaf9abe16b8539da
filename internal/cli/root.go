package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string // optional config file (.yaml, .yml, .json, .cue)
	MetricsFile string // optional Prometheus textfile written after each command

	// TraceIDs stamps JSON responses. Nil means random UUIDs.
	TraceIDs TraceIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cryo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cryo",
		Short: "cryo - freeze object graphs in place",
		Long: `Load a JSON, YAML or CUE document as an object graph, freeze it in
place and inspect what the frozen graph permits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (yaml, json or cue)")
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	// Add subcommands
	cmd.AddCommand(NewFreezeCommand(opts))
	cmd.AddCommand(NewMutateCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
