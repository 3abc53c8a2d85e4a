// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree of JSON values, and a parser that constructs
// trees from JSON source.
package ast

import (
	"github.com/creachadair/jason"
	"github.com/shopspring/decimal"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Location reports the position of the first token of the value in its
	// source text. It is the zero Position for values not parsed from text.
	Location() jason.Position

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	writeTo(w *jason.Writer) error
}

type pos struct{ loc jason.Position }

// Location satisfies part of the Value interface.
func (p pos) Location() jason.Position { return p.loc }

// An Object is a collection of key-value members. Member keys are unique.
type Object struct {
	pos
	Members []*Member
}

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Get returns the value of the member of o with the given key, or nil.
func (o *Object) Get(key string) Value {
	if m := o.Find(key); m != nil {
		return m.Value
	}
	return nil
}

// Len returns the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Keys returns the keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

// An Array is a sequence of values.
type Array struct {
	pos
	Values []Value
}

// Len returns the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

// A Number is a numeric value. It keeps the text of the number so that no
// precision is lost between reading and writing.
type Number struct {
	pos
	Text jason.Number
}

// IsInt reports whether n is lexically an integer.
func (n *Number) IsInt() bool { return n.Text.IsInt() }

// Int64 returns n as a signed 64-bit integer.
func (n *Number) Int64() (int64, error) { return n.Text.Int64() }

// Float64 returns n as a 64-bit floating-point value.
func (n *Number) Float64() (float64, error) { return n.Text.Float64() }

// Decimal returns n as an arbitrary-precision decimal value.
func (n *Number) Decimal() (decimal.Decimal, error) { return n.Text.Decimal() }

// Value converts n to a Go value as described by jason.Number.Value.
func (n *Number) Value(useFloat bool) (any, error) { return n.Text.Value(useFloat) }

// A String is a string value.
type String struct {
	pos
	Value string
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	pos
	Value bool
}

// Null represents the null constant.
type Null struct{ pos }
