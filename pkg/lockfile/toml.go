package lockfile

import (
	"errors"

	"github.com/BurntSushi/toml"
)

// DecodeTOML unmarshals a TOML document into v after normalizing its
// encoding. Syntax errors come back as a [Diagnostic] positioned where the
// decoder stopped.
func DecodeTOML(data []byte, v any) error {
	text, err := Decode(data)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(text), v); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			line, col := LineColumn(text, int64(perr.Position.Start))
			if perr.Position.Line > 0 {
				line = perr.Position.Line
			}
			return &Diagnostic{Line: line, Column: col, Err: err}
		}
		return err
	}
	return nil
}
