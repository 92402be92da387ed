package app

import (
	"bytes"
	"encoding/json"
)

// Field distinguishes the three states of an optional JSON property:
// absent (keep current value), null (clear), and present (set). The
// zero value is the absent state.
type Field[T any] struct {
	Defined bool
	Null    bool
	Value   T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Defined = true
	if bytes.Equal(data, []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Set reports whether the field carries a non-null value.
func (f Field[T]) Set() bool {
	return f.Defined && !f.Null
}
