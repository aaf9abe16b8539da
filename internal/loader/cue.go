package loader

import (
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// decodeCUE evaluates the document, requires it to be concrete and
// re-reads the JSON export, which preserves field declaration order.
func decodeCUE(data []byte) (object.Object, error) {
	v := cuecontext.New().CompileBytes(data)
	if err := v.Err(); err != nil {
		return nil, cueError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, cueError(err)
	}
	return decodeJSON(out)
}

func cueError(err error) error {
	de := &DecodeError{Format: FormatCUE, Message: strings.TrimSpace(errors.Details(err, nil))}
	if pos := errors.Positions(err); len(pos) > 0 && pos[0].IsValid() {
		de.Line = pos[0].Line()
		de.Column = pos[0].Column()
	}
	return de
}
