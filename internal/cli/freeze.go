package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/IljaManakov/cryostasis/internal/engine"
	"github.com/IljaManakov/cryostasis/internal/exclusion"
	"github.com/IljaManakov/cryostasis/internal/loader"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// freezeFlags are the freezing controls shared by freeze and mutate.
type freezeFlags struct {
	Attributes   bool
	Items        bool
	Shallow      bool
	ExcludeAttrs []string
	ExcludeItems []string
	ExcludeTypes []string
}

func (f *freezeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Attributes, "attributes", true, "deny attribute assignment and deletion")
	cmd.Flags().BoolVar(&f.Items, "items", true, "deny item assignment and deletion")
	cmd.Flags().BoolVar(&f.Shallow, "shallow", false, "freeze only the document root")
	cmd.Flags().StringSliceVar(&f.ExcludeAttrs, "exclude-attr", nil, "attribute names not to descend into")
	cmd.Flags().StringSliceVar(&f.ExcludeItems, "exclude-item", nil, "item keys (or indexes) not to descend into")
	cmd.Flags().StringSliceVar(&f.ExcludeTypes, "exclude-type", nil, "shape names whose instances are left alone")
}

// exclusions builds the per-call exclusion set. Numeric item keys match
// both the string key and the sequence index.
func (f *freezeFlags) exclusions() (*exclusion.Set, error) {
	items := make([]object.Hashable, 0, len(f.ExcludeItems))
	for _, k := range f.ExcludeItems {
		items = append(items, object.Str(k))
		if n, err := strconv.ParseInt(k, 10, 64); err == nil {
			items = append(items, object.Int(n))
		}
	}

	types := make([]*object.Shape, 0, len(f.ExcludeTypes))
	for _, name := range f.ExcludeTypes {
		s, ok := object.LookupShape(name)
		if !ok {
			return nil, fmt.Errorf("--exclude-type: unknown shape %q", name)
		}
		types = append(types, s)
	}

	return exclusion.New(
		exclusion.Attrs(f.ExcludeAttrs...),
		exclusion.Items(items...),
		exclusion.Types(types...),
	), nil
}

// apply freezes doc and reports what changed. A shallow freeze visits
// only the root.
func (f *freezeFlags) apply(eng *engine.Engine, doc object.Object) (engine.Stats, error) {
	excl, err := f.exclusions()
	if err != nil {
		return engine.Stats{}, err
	}
	opts := []engine.Option{
		engine.FreezeAttributes(f.Attributes),
		engine.FreezeItems(f.Items),
		engine.Exclude(excl),
	}
	if !f.Shallow {
		return eng.DeepFreezeStats(doc, opts...), nil
	}

	stats := engine.Stats{Visited: 1}
	wasFrozen := eng.IsFrozen(doc)
	eng.Freeze(doc, opts...)
	switch {
	case !wasFrozen && eng.IsFrozen(doc):
		stats.Changed = 1
	case !eng.IsFrozen(doc) && !doc.Shape().Immutable():
		stats.Skipped = 1
	}
	return stats, nil
}

// FreezeOptions holds flags for the freeze command.
type FreezeOptions struct {
	*RootOptions
	freezeFlags
}

// FreezeResult is the JSON payload of the freeze command.
type FreezeResult struct {
	Document string          `json:"document"`
	Repr     string          `json:"repr"`
	Value    json.RawMessage `json:"value,omitempty"`
	Visited  int             `json:"visited"`
	Changed  int             `json:"changed"`
	Skipped  int             `json:"skipped"`
}

// NewFreezeCommand creates the freeze command.
func NewFreezeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FreezeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "freeze <document>",
		Short: "Freeze a document and print the frozen graph",
		Long: `Load a JSON, YAML or CUE document, deep-freeze the resulting object
graph and print its representation together with traversal counts.

Example:
  cryo freeze cart.yaml --exclude-item history --items=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFreeze(opts, args[0], cmd)
		},
	}

	opts.freezeFlags.register(cmd)

	return cmd
}

func runFreeze(opts *FreezeOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	doc, err := s.loadDocument(path)
	if err != nil {
		return err
	}

	stats, err := opts.freezeFlags.apply(s.engine, doc)
	if err != nil {
		return s.fail(ErrCodeBadFlag, err.Error(), ExitCommandError, nil)
	}
	s.logger.Debug("document frozen",
		"visited", stats.Visited, "changed", stats.Changed, "skipped", stats.Skipped)

	if err := outputFreeze(s, path, doc, stats); err != nil {
		return err
	}
	return s.finish()
}

func outputFreeze(s *session, path string, doc object.Object, stats engine.Stats) error {
	repr := object.Repr(doc)

	if s.out.Format == "json" {
		result := FreezeResult{
			Document: filepath.Base(path),
			Repr:     repr,
			Visited:  stats.Visited,
			Changed:  stats.Changed,
			Skipped:  stats.Skipped,
		}
		if value, err := loader.Encode(doc); err == nil {
			result.Value = value
		} else {
			s.out.VerboseLog("Value omitted: %v", err)
		}
		return s.out.Success(result)
	}

	fmt.Fprintf(s.out.Writer, "✓ Froze %d of %d objects (%d skipped)\n", stats.Changed, stats.Visited, stats.Skipped)
	fmt.Fprintln(s.out.Writer, repr)
	return nil
}
