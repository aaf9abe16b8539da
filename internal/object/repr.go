package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Repr returns the canonical representation of o.
//
// Containers render like Python literals ([1, 2], {'a': 1}, {1, 2}) and
// self-references render as [...] or {...}. A frozen object renders through
// its guard's display wrapper, e.g. Frozen([1, 2, 3]).
func Repr(o Object) string {
	p := printer{active: make(map[Object]struct{})}
	return p.repr(o)
}

type printer struct {
	active map[Object]struct{}
}

func (p *printer) repr(o Object) string {
	if IsNil(o) {
		return "None"
	}
	s := o.Shape()
	inner := p.base(o, s.Original())
	if p.busy(o) {
		// cycle marker, left unwrapped
		return inner
	}
	if g := s.Guard(); g != nil && g.display != nil {
		return g.display(inner)
	}
	return inner
}

func (p *printer) busy(o Object) bool {
	k, ok := IdentityKey(o)
	if !ok {
		return false
	}
	_, busy := p.active[k]
	return busy
}

// enter marks o as being printed; false means o is already on the stack.
func (p *printer) enter(o Object) bool {
	k, ok := IdentityKey(o)
	if !ok {
		return true
	}
	if _, busy := p.active[k]; busy {
		return false
	}
	p.active[k] = struct{}{}
	return true
}

func (p *printer) leave(o Object) {
	if k, ok := IdentityKey(o); ok {
		delete(p.active, k)
	}
}

func (p *printer) base(o Object, s *Shape) string {
	if fn := s.reprFunc(); fn != nil {
		return fn(o)
	}
	switch v := o.(type) {
	case None:
		return "None"
	case Bool:
		if v {
			return "True"
		}
		return "False"
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return formatFloat(float64(v))
	case Str:
		return quote(string(v))
	case Bytes:
		return "b" + quote(string(v))
	case *Tuple:
		if !p.enter(v) {
			return "(...)"
		}
		defer p.leave(v)
		if len(v.items) == 1 {
			return "(" + p.repr(v.items[0]) + ",)"
		}
		return "(" + p.join(v.items) + ")"
	case *List:
		if !p.enter(v) {
			return "[...]"
		}
		defer p.leave(v)
		return "[" + p.join(v.items) + "]"
	case *Dict:
		if !p.enter(v) {
			return "{...}"
		}
		defer p.leave(v)
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, p.repr(k)+": "+p.repr(v.vals[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Set:
		if len(v.m.order) == 0 {
			return "set()"
		}
		return "{" + p.joinMembers(v.m.order) + "}"
	case *FrozenSet:
		if len(v.m.order) == 0 {
			return "frozenset()"
		}
		return "frozenset({" + p.joinMembers(v.m.order) + "})"
	case *Record:
		if !p.enter(v) {
			return s.name + "(...)"
		}
		defer p.leave(v)
		return s.name + "(" + p.attrs(v.attrs) + ")"
	case *Struct:
		if !p.enter(v) {
			return v.TypeName() + "(...)"
		}
		defer p.leave(v)
		var parts []string
		for name, fv := range v.Attrs() {
			parts = append(parts, name+"="+p.repr(fv))
		}
		return v.TypeName() + "(" + strings.Join(parts, ", ") + ")"
	case *Func:
		return "<function " + v.name + ">"
	case *Enum:
		return "<enum " + v.shape.name + ">"
	case *EnumMember:
		return fmt.Sprintf("<%s.%s: %d>", v.enum.shape.name, v.name, v.value)
	case fmt.Stringer:
		return v.String()
	}
	return "<" + s.name + " object>"
}

func (p *printer) join(items []Object) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = p.repr(v)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) joinMembers(ms []Hashable) string {
	parts := make([]string, len(ms))
	for i, v := range ms {
		parts[i] = p.repr(v)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) attrs(t attrTable) string {
	parts := make([]string, 0, len(t.names))
	for _, n := range t.names {
		parts = append(parts, n+"="+p.repr(t.vals[n]))
	}
	return strings.Join(parts, ", ")
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote renders s as a single-quoted literal, switching to double quotes
// when s contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
