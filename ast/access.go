// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/creachadair/jason"
)

// ErrWrongType is reported by the typed accessors when a value does not have
// the requested type.
var ErrWrongType = errors.New("wrong value type")

// GetObject returns the object value of the member of o with the given key.
func (o *Object) GetObject(key string) (*Object, error) { return memberAs(o, key, asObject) }

// GetArray returns the array value of the member of o with the given key.
func (o *Object) GetArray(key string) (*Array, error) { return memberAs(o, key, asArray) }

// GetString returns the string value of the member of o with the given key.
func (o *Object) GetString(key string) (string, error) { return memberAs(o, key, asString) }

// GetBool returns the Boolean value of the member of o with the given key.
func (o *Object) GetBool(key string) (bool, error) { return memberAs(o, key, asBool) }

// GetNumber returns the text of the number value of the member of o with the
// given key.
func (o *Object) GetNumber(key string) (jason.Number, error) { return memberAs(o, key, asNumber) }

// GetInt64 returns the integer value of the member of o with the given key.
func (o *Object) GetInt64(key string) (int64, error) { return memberAs(o, key, asInt64) }

// GetInt returns the integer value of the member of o with the given key.
func (o *Object) GetInt(key string) (int, error) { return memberAs(o, key, asInt) }

// GetFloat64 returns the numeric value of the member of o with the given key.
func (o *Object) GetFloat64(key string) (float64, error) { return memberAs(o, key, asFloat64) }

// GetTime returns the timestamp stored as a string in the member of o with
// the given key. See [String.Time].
func (o *Object) GetTime(key string) (time.Time, error) { return memberAs(o, key, asTime) }

// GetDuration returns the duration stored as a string in the member of o
// with the given key. See [String.Duration].
func (o *Object) GetDuration(key string) (time.Duration, error) {
	return memberAs(o, key, asDuration)
}

// Set sets the value of the member of o with the given key. If no such
// member exists, a new one is added at the end.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	o.Members = append(o.Members, Field(key, v))
}

// Rename changes the key of the member of o named oldKey to newKey, and
// reports whether oldKey was found. If a member named newKey already exists,
// it takes the value of oldKey and the oldKey member is removed.
func (o *Object) Rename(oldKey, newKey string) bool {
	m := o.Find(oldKey)
	if m == nil {
		return false
	} else if oldKey == newKey {
		return true
	}
	if dup := o.Find(newKey); dup != nil {
		dup.Value = m.Value
		o.Delete(oldKey)
	} else {
		m.Key = newKey
	}
	return true
}

// Delete removes the member of o with the given key, and reports whether it
// was found.
func (o *Object) Delete(key string) bool {
	for i, m := range o.Members {
		if m.Key == key {
			o.Members = append(o.Members[:i], o.Members[i+1:]...)
			return true
		}
	}
	return false
}

// At returns the element of a at offset i, or nil if i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= len(a.Values) {
		return nil
	}
	return a.Values[i]
}

// Append adds vs to the end of a.
func (a *Array) Append(vs ...Value) { a.Values = append(a.Values, vs...) }

// The typed element accessors report ErrNotFound if i is out of range, and
// ErrWrongType if the element has another type.

func (a *Array) ObjectAt(i int) (*Object, error)         { return elementAs(a, i, asObject) }
func (a *Array) ArrayAt(i int) (*Array, error)           { return elementAs(a, i, asArray) }
func (a *Array) StringAt(i int) (string, error)          { return elementAs(a, i, asString) }
func (a *Array) BoolAt(i int) (bool, error)              { return elementAs(a, i, asBool) }
func (a *Array) NumberAt(i int) (jason.Number, error)    { return elementAs(a, i, asNumber) }
func (a *Array) Int64At(i int) (int64, error)            { return elementAs(a, i, asInt64) }
func (a *Array) IntAt(i int) (int, error)                { return elementAs(a, i, asInt) }
func (a *Array) Float64At(i int) (float64, error)        { return elementAs(a, i, asFloat64) }
func (a *Array) TimeAt(i int) (time.Time, error)         { return elementAs(a, i, asTime) }
func (a *Array) DurationAt(i int) (time.Duration, error) { return elementAs(a, i, asDuration) }

func memberAs[T any](o *Object, key string, as func(Value) (T, error)) (T, error) {
	m := o.Find(key)
	if m == nil {
		var zero T
		return zero, fmt.Errorf("%w: member %q", ErrNotFound, key)
	}
	v, err := as(m.Value)
	if err != nil {
		return v, fmt.Errorf("member %q: %w", key, err)
	}
	return v, nil
}

func elementAs[T any](a *Array, i int, as func(Value) (T, error)) (T, error) {
	if i < 0 || i >= len(a.Values) {
		var zero T
		return zero, fmt.Errorf("%w: element %d of %d", ErrNotFound, i, len(a.Values))
	}
	v, err := as(a.Values[i])
	if err != nil {
		return v, fmt.Errorf("element %d: %w", i, err)
	}
	return v, nil
}

func typeName(v Value) string {
	switch v.(type) {
	case *Object:
		return "object"
	case *Array:
		return "array"
	case *Number:
		return "number"
	case *String:
		return "string"
	case *Bool:
		return "boolean"
	case *Null, nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func wrongType(v Value, want string) error {
	return fmt.Errorf("%w: %s is not %s", ErrWrongType, typeName(v), want)
}

func asObject(v Value) (*Object, error) {
	if o, ok := v.(*Object); ok {
		return o, nil
	}
	return nil, wrongType(v, "an object")
}

func asArray(v Value) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}
	return nil, wrongType(v, "an array")
}

func asString(v Value) (string, error) {
	if s, ok := v.(*String); ok {
		return s.Value, nil
	}
	return "", wrongType(v, "a string")
}

func asBool(v Value) (bool, error) {
	if b, ok := v.(*Bool); ok {
		return b.Value, nil
	}
	return false, wrongType(v, "a boolean")
}

func asNumber(v Value) (jason.Number, error) {
	if n, ok := v.(*Number); ok {
		return n.Text, nil
	}
	return "", wrongType(v, "a number")
}

func asInt64(v Value) (int64, error) {
	n, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

func asInt(v Value) (int, error) {
	n, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(string(n), 10, strconv.IntSize)
	return int(i), err
}

func asFloat64(v Value) (float64, error) {
	n, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

func asTime(v Value) (time.Time, error) {
	s, ok := v.(*String)
	if !ok {
		return time.Time{}, wrongType(v, "a string")
	}
	return s.Time()
}

func asDuration(v Value) (time.Duration, error) {
	s, ok := v.(*String)
	if !ok {
		return 0, wrongType(v, "a string")
	}
	return s.Duration()
}
