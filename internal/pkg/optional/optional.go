// Package optional distinguishes "not provided" from a provided value,
// including a provided nil for clearable fields.
package optional

import "encoding/json"

type Value[T any] struct {
	v   T
	set bool
}

// Of marks v as provided.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// None is the zero Value; it is what an omitted field looks like.
func None[T any]() Value[T] {
	return Value[T]{}
}

func (o Value[T]) IsSet() bool { return o.set }

func (o Value[T]) Get() (T, bool) { return o.v, o.set }

// OrElse returns the provided value or fallback when nothing was provided.
func (o Value[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.v
}

// UnmarshalJSON runs only for keys present in the document, so a missing
// key stays unset while an explicit null becomes a set zero value.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.v, o.set = v, true
	return nil
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
