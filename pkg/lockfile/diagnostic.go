package lockfile

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"

	errs "github.com/matzehuels/lockfile/pkg/errors"
)

// Diagnostic locates a syntax problem inside a document. Line and Column are
// 1-based and zero when the underlying decoder does not report them.
type Diagnostic struct {
	Line   int
	Column int
	Err    error
}

func (d *Diagnostic) Error() string {
	switch {
	case d.Line > 0 && d.Column > 0:
		return fmt.Sprintf("%d:%d: %v", d.Line, d.Column, d.Err)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %v", d.Line, d.Err)
	default:
		return d.Err.Error()
	}
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// At builds a Diagnostic for a problem found at line and column.
func At(line, column int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Line: line, Column: column, Err: fmt.Errorf(format, args...)}
}

// Malformed wraps a decoding failure of a typ document as a
// MALFORMED_DOCUMENT error. When err does not already carry a [Diagnostic],
// one is attached with whatever position the standard decoders expose,
// resolved against data.
func Malformed(typ string, data []byte, err error) error {
	var d *Diagnostic
	if !errors.As(err, &d) {
		d = &Diagnostic{Err: err}
		d.Line, d.Column = position(data, err)
		err = d
	}
	return errs.Wrap(errs.ErrCodeMalformedDocument, err, "parse %s", typ)
}

func position(data []byte, err error) (int, int) {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		xmlErr    *xml.SyntaxError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return LineColumn(data, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return LineColumn(data, typeErr.Offset)
	case errors.As(err, &xmlErr):
		return xmlErr.Line, 0
	}
	return 0, 0
}

// LineColumn converts a byte offset into a 1-based line and column.
func LineColumn(data []byte, offset int64) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := len(head) - bytes.LastIndexByte(head, '\n')
	return line, col
}
