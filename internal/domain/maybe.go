package domain

import (
	"bytes"
	"encoding/json"
)

// Unknown is how a missing value is written to the output file.
const Unknown = "N/A"

// Maybe is a value that is either known or explicitly unknown.
type Maybe[T any] struct {
	V     T
	Known bool
}

func Known[T any](v T) Maybe[T] { return Maybe[T]{V: v, Known: true} }

func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.Known {
		return json.Marshal(Unknown)
	}
	return json.Marshal(m.V)
}

func (m *Maybe[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`"`+Unknown+`"`)) {
		*m = Maybe[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Known(v)
	return nil
}
