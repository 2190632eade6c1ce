package lockfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Entry is one key/value pair of a JSON object.
type Entry[V any] struct {
	Key   string
	Value V
}

// Entries decodes a JSON object into its key/value pairs, keeping document
// order and duplicate keys. A JSON null decodes to an empty list.
type Entries[V any] []Entry[V]

func (e *Entries[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{
			Value:  jsonKind(tok),
			Type:   reflect.TypeFor[Entries[V]](),
			Offset: dec.InputOffset(),
		}
	}

	out := make(Entries[V], 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key: unexpected %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, Entry[V]{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = out
	return nil
}

func jsonKind(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return "object"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, json.Number:
		return "number"
	}
	return "value"
}
