package model

import "encoding/json"

// Optional is a JSON field that remembers whether its key was present.
// A present null sets Set with a nil Value.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the input, null included.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
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

// setNullable copies a present value into a nullable field; null clears it.
func setNullable[T any](o Optional[T], dst **T) {
	if o.Set {
		*dst = o.Value
	}
}

// setValue copies a present value into a field; null stores the zero value
// so that validation rejects it where the field is required.
func setValue[T any](o Optional[T], dst *T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		var zero T
		*dst = zero
		return
	}
	*dst = *o.Value
}
