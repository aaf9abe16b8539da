package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// Encode renders o as JSON, keeping container order.
//
// Key differences from encoding/json:
//  1. Dict and Record members are written in insertion order
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Non-string Dict keys are written as their Repr
//  5. Cycles and non-finite floats are errors
//
// Frozen objects encode exactly like their thawed form.
func Encode(o object.Object) ([]byte, error) {
	e := encoder{active: make(map[object.Object]struct{})}
	var buf bytes.Buffer
	if err := e.encode(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	active map[object.Object]struct{}
}

func (e *encoder) enter(o object.Object) error {
	k, ok := object.IdentityKey(o)
	if !ok {
		return nil
	}
	if _, busy := e.active[k]; busy {
		return fmt.Errorf("cannot encode cyclic %s", o.Shape().Original().Name())
	}
	e.active[k] = struct{}{}
	return nil
}

func (e *encoder) leave(o object.Object) {
	if k, ok := object.IdentityKey(o); ok {
		delete(e.active, k)
	}
}

func (e *encoder) encode(buf *bytes.Buffer, o object.Object) error {
	if object.IsNil(o) {
		buf.WriteString("null")
		return nil
	}
	switch v := o.(type) {
	case nil, object.None:
		buf.WriteString("null")
	case object.Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case object.Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case object.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode non-finite float %v", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case object.Str:
		return writeString(buf, string(v))
	case object.Bytes:
		return writeString(buf, base64.StdEncoding.EncodeToString([]byte(v)))
	case *object.Func, *object.Enum:
		return writeString(buf, object.Repr(v))
	case *object.EnumMember:
		return writeString(buf, v.Name())
	case *object.Dict:
		return e.members(buf, v, func(yield func(string, object.Object) error) error {
			for k, val := range v.Items() {
				key, ok := k.(object.Str)
				name := string(key)
				if !ok {
					name = object.Repr(k)
				}
				if err := yield(name, val); err != nil {
					return err
				}
			}
			return nil
		})
	case object.AttrEnumerator:
		return e.members(buf, v, func(yield func(string, object.Object) error) error {
			for name, val := range v.Attrs() {
				if err := yield(name, val); err != nil {
					return err
				}
			}
			return nil
		})
	case object.ItemEnumerator:
		return e.elements(buf, v)
	default:
		return fmt.Errorf("cannot encode %s", o.Shape().Name())
	}
	return nil
}

func (e *encoder) members(buf *bytes.Buffer, o object.Object, each func(func(string, object.Object) error) error) error {
	if err := e.enter(o); err != nil {
		return err
	}
	defer e.leave(o)

	buf.WriteByte('{')
	first := true
	err := each(func(name string, v object.Object) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := e.encode(buf, v); err != nil {
			return fmt.Errorf("[%q]: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

// elements writes sequences and sets as arrays of their values.
func (e *encoder) elements(buf *bytes.Buffer, o object.ItemEnumerator) error {
	if err := e.enter(o); err != nil {
		return err
	}
	defer e.leave(o)

	buf.WriteByte('[')
	i := 0
	for _, v := range o.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := e.encode(buf, v); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		i++
	}
	buf.WriteByte(']')
	return nil
}

// writeString writes s as a JSON string with NFC normalization and
// without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(s)); err != nil {
		return err
	}
	// json.Encoder adds trailing newline, remove it
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
