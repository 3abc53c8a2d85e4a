// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"math"
	"strings"

	"github.com/creachadair/jason"
)

// Encode writes the JSON encoding of v to w using the settings of c.
// If c == nil, the default configuration is used. Encode does not close w.
func Encode(c *jason.Config, w io.Writer, v Value) error {
	jw := config(c).NewWriter(w)
	if err := writeValue(jw, v); err != nil {
		return err
	}
	return jw.Close()
}

// Marshal returns the JSON encoding of v using the settings of c.
// If c == nil, the default configuration is used.
func Marshal(c *jason.Config, v Value) (string, error) {
	var sb strings.Builder
	if err := Encode(c, &sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// compact is the configuration used by the JSON methods.
var compact = jason.Config{MaxDepth: math.MaxInt}

func toJSON(v Value) string {
	s, err := Marshal(&compact, v)
	if err != nil {
		panic(err)
	}
	return s
}

// writeValue writes v to w. A nil Value is written as null.
func writeValue(w *jason.Writer, v Value) error {
	if v == nil {
		return w.WriteNull()
	}
	return v.writeTo(w)
}

func (o *Object) JSON() string { return toJSON(o) }
func (a *Array) JSON() string  { return toJSON(a) }
func (n *Number) JSON() string { return toJSON(n) }
func (s *String) JSON() string { return toJSON(s) }
func (b *Bool) JSON() string   { return toJSON(b) }
func (n *Null) JSON() string   { return "null" }

func (o *Object) writeTo(w *jason.Writer) error {
	if err := w.WriteStartObject(); err != nil {
		return err
	}
	for _, m := range o.Members {
		if err := w.WriteMember(m.Key); err != nil {
			return err
		}
		if err := writeValue(w, m.Value); err != nil {
			return err
		}
	}
	return w.WriteEndObject()
}

func (a *Array) writeTo(w *jason.Writer) error {
	if err := w.WriteBeginArray(); err != nil {
		return err
	}
	for _, v := range a.Values {
		if err := writeValue(w, v); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

func (n *Number) writeTo(w *jason.Writer) error { return w.WriteNumber(n.Text) }
func (s *String) writeTo(w *jason.Writer) error { return w.WriteString(s.Value) }
func (b *Bool) writeTo(w *jason.Writer) error   { return w.WriteBool(b.Value) }
func (*Null) writeTo(w *jason.Writer) error     { return w.WriteNull() }
