package engine

import "github.com/IljaManakov/cryostasis/internal/exclusion"

// Option tunes a single Freeze, DeepFreeze or DeepThaw call.
type Option func(*callOptions)

type callOptions struct {
	freezeAttributes bool
	freezeItems      bool
	exclude          *exclusion.Set
}

func newCallOptions(opts []Option) callOptions {
	c := callOptions{freezeAttributes: true, freezeItems: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FreezeAttributes controls whether attribute set/delete is denied.
// Default: true.
func FreezeAttributes(on bool) Option {
	return func(c *callOptions) { c.freezeAttributes = on }
}

// FreezeItems controls whether item set/delete is denied. Default: true.
func FreezeItems(on bool) Option {
	return func(c *callOptions) { c.freezeItems = on }
}

// Exclude prunes a deep traversal. Ignored by Freeze.
func Exclude(s *exclusion.Set) Option {
	return func(c *callOptions) { c.exclude = s }
}
