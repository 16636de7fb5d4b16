package models

import (
	"bytes"
	"encoding/json"
)

// Field is a three-state JSON value for partial updates: a key can be
// absent (leave unchanged), explicitly null (clear the column), or set
// to a value. Set reports whether the key appeared in the payload at
// all; Valid reports whether it carried a non-null value.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(data, []byte("null")) {
		f.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
