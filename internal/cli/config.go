package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration cryo runs with: the built-in defaults, overlaid
with the file given by --config. The file is validated first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(rootOpts, cmd)
		},
	}

	return cmd
}

func runConfig(opts *RootOptions, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	if s.out.Format == "json" {
		return s.out.Success(s.cfg)
	}

	enc := yaml.NewEncoder(s.out.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(s.cfg); err != nil {
		return s.fail(ErrCodeGeneric, "failed to encode config", ExitFailure, err)
	}
	return enc.Close()
}
