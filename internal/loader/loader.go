// Package loader turns JSON, YAML and CUE documents into object graphs
// and encodes graphs back to JSON.
//
// Mappings become *object.Dict in document order, sequences *object.List
// and scalars the matching object scalar. YAML additionally supports:
//
//	!!set     mapping with null values  -> *object.Set
//	!tuple    sequence                  -> *object.Tuple
//	!record   mapping with string keys  -> *object.Record
//	!!binary  base64 scalar             -> object.Bytes
//	&anchor / *alias                    -> the same object, cycles included
//	<<: *base                           merge keys
//
// All strings and mapping keys are NFC-normalized so that visually equal
// keys are equal.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// Format identifies a document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// DecodeError reports a malformed document.
type DecodeError struct {
	Format  Format
	Line    int // 1-based, 0 if unknown
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Format, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Message)
}

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported document format %q", ext)
	}
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (object.Object, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	o, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (object.Object, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatCUE:
		return decodeCUE(data)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
