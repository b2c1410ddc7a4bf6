// Package optional provides a type-safe Optional type for representing values that may or may not be present.
// It is the result type of the timeout combinator: a present value means the wrapped computation
// finished in time, an absent value means the deadline fired first.
package optional

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingValueField = errors.New("optional: missing 'value' field in JSON")

// Value represents a value that may or may not be present.
// Use Some(value) to create a Value with a value, or None() for an empty Value.
type Value[T any] struct {
	value T
	isSet bool
}

// Some creates a Value containing the given value.
func Some[T any](value T) Value[T] {
	return Value[T]{value: value, isSet: true}
}

// None creates an empty Value with no value.
func None[T any]() Value[T] {
	return Value[T]{isSet: false}
}

// NonEmpty returns true if the Value contains a value.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty returns true if the Value does not contain a value.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// Get returns the value and a boolean indicating whether the value is present.
// This is the safe way to extract a value from a Value.
func (o Value[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOrPanic returns the value if present, or panics if empty.
// Use this only when you are certain the Value contains a value.
func (o Value[T]) GetOrPanic() T {
	if !o.isSet {
		panic("called GetOrPanic on None")
	}

	return o.value
}

// GetOrElse returns the value if present, or the provided default value if empty.
func (o Value[T]) GetOrElse(defaultValue T) T {
	if o.isSet {
		return o.value
	}

	return defaultValue
}

// String returns a string representation of the Value.
// Returns "Some(value)" if present, or "None" if empty.
func (o Value[T]) String() string {
	if o.isSet {
		return fmt.Sprintf("Some(%v)", o.value)
	} else {
		return "None"
	}
}

// Map transforms the value inside the Value using the provided function.
// Returns Some(f(value)) if the Value contains a value, or None if empty.
func Map[T any, U any](o Value[T], f func(T) U) Value[U] {
	if o.isSet {
		return Some(f(o.value))
	} else {
		return None[U]()
	}
}

// MarshalJSON implements json.Marshaler.
// None is marshaled as null, Some(value) is marshaled as {"value": ...}.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.isSet {
		return []byte("null"), nil
	}

	return json.Marshal(map[string]T{"value": o.value})
}

// UnmarshalJSON implements json.Unmarshaler.
// null is unmarshaled as None, {"value": ...} is unmarshaled as Some(value).
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		o.isSet = false

		var zero T
		o.value = zero

		return nil
	}

	var wrapper map[string]T
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	value, ok := wrapper["value"]
	if !ok {
		return errMissingValueField
	}

	o.value = value
	o.isSet = true

	return nil
}
