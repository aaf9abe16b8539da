package loader

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/IljaManakov/cryostasis/internal/object"
)

const (
	tagTuple  = "!tuple"
	tagRecord = "!record"
)

type yamlDecoder struct {
	// built maps anchored nodes to their object so aliases share identity.
	built map[*yaml.Node]object.Object
}

func decodeYAML(data []byte) (object.Object, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Format: FormatYAML, Message: err.Error()}
	}
	if doc.Kind == 0 {
		return object.None{}, nil
	}
	d := &yamlDecoder{built: make(map[*yaml.Node]object.Object)}
	return d.node(&doc)
}

func (d *yamlDecoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &DecodeError{Format: FormatYAML, Line: n.Line, Column: n.Column, Message: fmt.Sprintf(format, args...)}
}

func (d *yamlDecoder) node(n *yaml.Node) (object.Object, error) {
	if o, ok := d.built[n]; ok {
		if o == nil {
			return nil, d.errorf(n, "tuple contains itself")
		}
		return o, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return object.None{}, nil
		}
		return d.node(n.Content[0])
	case yaml.AliasNode:
		return d.node(n.Alias)
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.SequenceNode:
		if n.Tag == tagTuple {
			return d.tuple(n)
		}
		return d.list(n)
	case yaml.MappingNode:
		switch n.Tag {
		case "!!set":
			return d.set(n)
		case tagRecord:
			return d.record(n)
		}
		return d.dict(n)
	}
	return nil, d.errorf(n, "unsupported node kind %d", n.Kind)
}

func (d *yamlDecoder) list(n *yaml.Node) (object.Object, error) {
	l := object.NewList()
	d.built[n] = l
	for _, c := range n.Content {
		v, err := d.node(c)
		if err != nil {
			return nil, err
		}
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// tuple cannot be registered before its elements exist, so a tuple that
// contains itself is rejected.
func (d *yamlDecoder) tuple(n *yaml.Node) (object.Object, error) {
	d.built[n] = nil
	items := make([]object.Object, len(n.Content))
	for i, c := range n.Content {
		v, err := d.node(c)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	t := object.NewTuple(items...)
	d.built[n] = t
	return t, nil
}

func (d *yamlDecoder) dict(n *yaml.Node) (object.Object, error) {
	m := object.NewDict()
	d.built[n] = m
	if err := d.pairs(n, func(k object.Hashable, v object.Object) error {
		return m.SetItem(k, v)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *yamlDecoder) set(n *yaml.Node) (object.Object, error) {
	s := object.NewSet()
	d.built[n] = s
	if err := d.pairs(n, func(k object.Hashable, _ object.Object) error {
		return s.Add(k)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *yamlDecoder) record(n *yaml.Node) (object.Object, error) {
	r := object.NewRecord()
	d.built[n] = r
	if err := d.pairs(n, func(k object.Hashable, v object.Object) error {
		name, ok := k.(object.Str)
		if !ok {
			return d.errorf(n, "record attribute names must be strings, got %s", object.Repr(k))
		}
		return r.SetAttr(string(name), v)
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// pairs decodes mapping entries in order, expanding merge keys in place.
func (d *yamlDecoder) pairs(n *yaml.Node, put func(object.Hashable, object.Object) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]

		if kn.Kind == yaml.ScalarNode && kn.Tag == "!!merge" {
			if err := d.merge(vn, put); err != nil {
				return err
			}
			continue
		}

		k, err := d.node(kn)
		if err != nil {
			return err
		}
		hk, ok := k.(object.Hashable)
		if !ok {
			return d.errorf(kn, "unhashable mapping key %s", object.Repr(k))
		}
		v, err := d.node(vn)
		if err != nil {
			return err
		}
		if err := put(hk, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *yamlDecoder) merge(vn *yaml.Node, put func(object.Hashable, object.Object) error) error {
	src := vn
	if src.Kind == yaml.AliasNode {
		src = src.Alias
	}
	switch src.Kind {
	case yaml.MappingNode:
		return d.pairs(src, put)
	case yaml.SequenceNode:
		for _, c := range src.Content {
			if err := d.merge(c, put); err != nil {
				return err
			}
		}
		return nil
	}
	return d.errorf(vn, "merge value must be a mapping")
}

func (d *yamlDecoder) scalar(n *yaml.Node) (object.Object, error) {
	switch n.ShortTag() {
	case "!!null":
		return object.None{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.errorf(n, "%v", err)
		}
		return object.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, d.errorf(n, "%v", err)
		}
		return object.Int(i), nil
	case "!!float":
		return d.float(n)
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, d.errorf(n, "invalid !!binary: %v", err)
		}
		return object.Bytes(b), nil
	case "!!str":
		return object.Str(normalize(n.Value)), nil
	}
	return nil, d.errorf(n, "unsupported scalar tag %s", n.Tag)
}

func (d *yamlDecoder) float(n *yaml.Node) (object.Object, error) {
	switch strings.ToLower(n.Value) {
	case ".nan":
		return object.Float(math.NaN()), nil
	case ".inf", "+.inf":
		return object.Float(math.Inf(1)), nil
	case "-.inf":
		return object.Float(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
	if err != nil {
		return nil, d.errorf(n, "invalid float %q", n.Value)
	}
	return object.Float(f), nil
}
