package domain

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes "not supplied" from "supplied as null" from "supplied with a value".
// Set && Value == nil means the caller explicitly cleared the field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a set slot holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a set slot that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Get returns the value when the slot is set and non-null.
func (o Optional[T]) Get() (T, bool) {
	if o.Set && o.Value != nil {
		return *o.Value, true
	}
	var zero T
	return zero, false
}

// IsNull reports an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// ApplyTo overwrites *dst when the slot is set.
func (o Optional[T]) ApplyTo(dst **T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}

// UnmarshalJSON is only invoked when the key is present, which is what marks the slot as Set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
