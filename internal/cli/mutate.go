package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IljaManakov/cryostasis/internal/loader"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// MutateOptions holds flags for the mutate command.
type MutateOptions struct {
	*RootOptions
	freezeFlags
	Path   string
	Set    string // YAML value
	Delete bool
	Thaw   bool
}

// MutateResult is the JSON payload of the mutate command.
type MutateResult struct {
	Path    string `json:"path"`
	Op      string `json:"op"` // "set" | "delete"
	Applied bool   `json:"applied"`
	Denied  bool   `json:"denied"`
	Reason  string `json:"reason,omitempty"`
	Thawed  bool   `json:"thawed"`
	Repr    string `json:"repr"`
}

// NewMutateCommand creates the mutate command.
func NewMutateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MutateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mutate <document>",
		Short: "Freeze a document, then attempt one mutation",
		Long: `Freeze a document and attempt to assign or delete the slot addressed
by --path. A denied mutation is reported, not treated as a failure.

With --thaw the graph is deep-thawed before the attempt, which shows that
thawing restores mutability.

Example:
  cryo mutate cart.yaml --path items.0 --set '{sku: x1}'
  cryo mutate cart.yaml --path owner.name --delete --thaw`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(opts, args[0], cmd)
		},
	}

	opts.freezeFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Path, "path", "", "dotted path of the slot to mutate, e.g. owner.tags.0")
	cmd.Flags().StringVar(&opts.Set, "set", "", "assign this YAML value")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "delete the slot")
	cmd.Flags().BoolVar(&opts.Thaw, "thaw", false, "deep-thaw before mutating")
	_ = cmd.MarkFlagRequired("path")
	cmd.MarkFlagsMutuallyExclusive("set", "delete")
	cmd.MarkFlagsOneRequired("set", "delete")

	return cmd
}

func runMutate(opts *MutateOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	doc, err := s.loadDocument(path)
	if err != nil {
		return err
	}

	op := "delete"
	var value object.Object
	if !opts.Delete {
		op = "set"
		value, err = loader.Decode([]byte(opts.Set), loader.FormatYAML)
		if err != nil {
			return s.fail(ErrCodeBadFlag, "--set is not valid YAML", ExitCommandError, err)
		}
	}

	tgt, err := resolvePath(doc, opts.Path)
	if err != nil {
		return s.fail(ErrCodeBadPath, err.Error(), ExitCommandError, nil)
	}

	if _, err := opts.freezeFlags.apply(s.engine, doc); err != nil {
		return s.fail(ErrCodeBadFlag, err.Error(), ExitCommandError, nil)
	}
	if opts.Thaw {
		stats := s.engine.DeepThawStats(doc)
		s.out.VerboseLog("Thawed %d of %d objects", stats.Changed, stats.Visited)
	}

	if op == "set" {
		err = tgt.set(value)
	} else {
		err = tgt.delete()
	}

	result := MutateResult{Path: opts.Path, Op: op, Thawed: opts.Thaw}
	switch {
	case err == nil:
		result.Applied = true
	case object.IsImmutableError(err):
		result.Denied = true
		result.Reason = err.Error()
		s.logger.Debug("mutation denied", "path", opts.Path, "error", err)
	default:
		return s.fail(ErrCodeMutation, fmt.Sprintf("%s at %s failed", op, opts.Path), ExitFailure, err)
	}
	result.Repr = object.Repr(doc)

	if err := outputMutate(s, result); err != nil {
		return err
	}
	return s.finish()
}

func outputMutate(s *session, result MutateResult) error {
	if s.out.Format == "json" {
		return s.out.Success(result)
	}

	if result.Denied {
		fmt.Fprintf(s.out.Writer, "✗ Mutation denied at %s: %s\n", result.Path, result.Reason)
	} else {
		fmt.Fprintf(s.out.Writer, "✓ Mutation applied at %s\n", result.Path)
	}
	fmt.Fprintln(s.out.Writer, result.Repr)
	return nil
}
