package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// decodeJSON walks the token stream so that object member order is kept.
func decodeJSON(data []byte) (object.Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	o, err := decodeJSONValue(dec)
	if err != nil {
		return nil, jsonError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Format: FormatJSON, Message: "trailing data after document"}
	}
	return o, nil
}

func decodeJSONValue(dec *json.Decoder) (object.Object, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			d := object.NewDict()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				if err := d.SetItem(object.Str(normalize(key)), val); err != nil {
					return nil, err
				}
			}
			_, err := dec.Token()
			return d, err
		case '[':
			l := object.NewList()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				if err := l.Append(val); err != nil {
					return nil, err
				}
			}
			_, err := dec.Token()
			return l, err
		}
	case string:
		return object.Str(normalize(v)), nil
	case json.Number:
		return number(v)
	case bool:
		return object.Bool(v), nil
	case nil:
		return object.None{}, nil
	}
	return nil, &DecodeError{Format: FormatJSON, Message: "unexpected token"}
}

// number keeps integral literals as Int and everything else as Float.
func number(n json.Number) (object.Object, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return object.Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return object.Float(f), nil
}

func jsonError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &DecodeError{Format: FormatJSON, Message: se.Error() + " at offset " + strconv.FormatInt(se.Offset, 10)}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &DecodeError{Format: FormatJSON, Message: "unexpected end of document"}
	}
	return &DecodeError{Format: FormatJSON, Message: err.Error()}
}
