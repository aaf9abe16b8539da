package object

// Mutator names a structural mutation method of a container.
type Mutator string

// Sequence mutators.
const (
	MutInsert  Mutator = "insert"
	MutAppend  Mutator = "append"
	MutClear   Mutator = "clear"
	MutReverse Mutator = "reverse"
	MutExtend  Mutator = "extend"
	MutPop     Mutator = "pop"
	MutRemove  Mutator = "remove"
	MutIAdd    Mutator = "iadd"
	MutIMul    Mutator = "imul"
)

// Mapping mutators (MutPop and MutClear are shared).
const (
	MutPopItem    Mutator = "popitem"
	MutUpdate     Mutator = "update"
	MutSetDefault Mutator = "setdefault"
	MutIOr        Mutator = "ior"
)

// Set mutators (MutRemove, MutPop, MutClear and MutIOr are shared).
const (
	MutAdd     Mutator = "add"
	MutDiscard Mutator = "discard"
	MutIAnd    Mutator = "iand"
	MutIXor    Mutator = "ixor"
	MutISub    Mutator = "isub"
)

// Access is one of the four guarded entry points.
type Access int

const (
	AccessSetAttr Access = iota
	AccessDelAttr
	AccessSetItem
	AccessDelItem
)

var accessOps = [...]string{
	AccessSetAttr: "setattr",
	AccessDelAttr: "delattr",
	AccessSetItem: "setitem",
	AccessDelItem: "delitem",
}

func (a Access) String() string { return accessOps[a] }

// Guard is the mutation-interception capability of a specialized shape.
// It is never used on its own, only through Specialize.
type Guard struct {
	freezeAttributes bool
	freezeItems      bool
	overrides        map[Mutator]struct{}
	display          func(string) string
}

// NewGuard builds a guard. Every mutator in overrides fails
// unconditionally; display wraps the original representation.
func NewGuard(freezeAttributes, freezeItems bool, overrides []Mutator, display func(string) string) *Guard {
	g := &Guard{
		freezeAttributes: freezeAttributes,
		freezeItems:      freezeItems,
		overrides:        make(map[Mutator]struct{}, len(overrides)),
		display:          display,
	}
	for _, m := range overrides {
		g.overrides[m] = struct{}{}
	}
	return g
}

// FreezeAttributes reports whether attribute set/delete is denied.
func (g *Guard) FreezeAttributes() bool { return g.freezeAttributes }

// FreezeItems reports whether item set/delete is denied.
func (g *Guard) FreezeItems() bool { return g.freezeItems }

// Overrides reports whether m is replaced by a failing stub.
func (g *Guard) Overrides(m Mutator) bool {
	_, ok := g.overrides[m]
	return ok
}

// Mutators returns the number of overridden mutators.
func (g *Guard) Mutators() int { return len(g.overrides) }

func (g *Guard) denies(a Access) bool {
	switch a {
	case AccessSetAttr, AccessDelAttr:
		return g.freezeAttributes
	default:
		return g.freezeItems
	}
}

// Check returns an immutable error if o's shape guards access a.
// A nil result means the call falls through to the original behavior.
// Custom Object implementations call it at the top of their own
// attribute and item mutators.
func Check(o Object, a Access) error {
	s := o.Shape()
	if s.guard != nil && s.guard.denies(a) {
		return NewImmutableError(s, a.String())
	}
	return nil
}

// CheckMutator returns an immutable error if o's shape overrides m.
func CheckMutator(o Object, m Mutator) error {
	s := o.Shape()
	if s.guard != nil && s.guard.Overrides(m) {
		return NewImmutableError(s, string(m))
	}
	return nil
}
