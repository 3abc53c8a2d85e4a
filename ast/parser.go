// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"

	"github.com/creachadair/jason"
	"github.com/creachadair/jason/resource"
)

// Parse reads a single JSON value from r and returns its tree. The reader
// must be positioned before its first token.
func Parse(r *jason.Reader) (Value, error) {
	h := new(parseHandler)
	if err := jason.NewStreamWithReader(r).Parse(h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// Decode parses a single JSON value from r using the settings of c.
// If c == nil, the default configuration is used.
func Decode(c *jason.Config, r io.Reader) (Value, error) {
	return Parse(config(c).NewReader(r))
}

// DecodeString parses a single JSON value from s using the settings of c.
// If c == nil, the default configuration is used.
func DecodeString(c *jason.Config, s string) (Value, error) {
	return Parse(config(c).NewStringReader(s))
}

// DecodeResource opens res and parses a single JSON value from its contents
// using the settings of c. If c == nil, the default configuration is used.
func DecodeResource(c *jason.Config, res resource.Resource) (Value, error) {
	rc, err := res.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	v, err := Decode(c, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res, err)
	}
	return v, nil
}

func config(c *jason.Config) jason.Config {
	if c == nil {
		return jason.Default()
	}
	return *c
}

// A parseHandler implements the jason.Handler interface to construct trees
// for JSON values.
type parseHandler struct {
	stk  []any                // open *Object, *Array, and *Member values
	keys []map[string]*Member // member index for each open object
	root Value
}

func (h *parseHandler) top() any { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() any {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v any) { h.stk = append(h.stk, v) }

// add attaches a completed value to the innermost open member or array.
func (h *parseHandler) add(v Value) {
	if len(h.stk) == 0 {
		h.root = v
		return
	}
	switch t := h.top().(type) {
	case *Member:
		t.Value = v
	case *Array:
		t.Values = append(t.Values, v)
	}
}

func (h *parseHandler) BeginObject(loc jason.Anchor) error {
	h.push(&Object{pos: pos{loc.Location()}, Members: []*Member{}})
	h.keys = append(h.keys, make(map[string]*Member))
	return nil
}

func (h *parseHandler) EndObject(loc jason.Anchor) error {
	h.keys = h.keys[:len(h.keys)-1]
	h.add(h.pop().(*Object))
	return nil
}

func (h *parseHandler) BeginArray(loc jason.Anchor) error {
	h.push(&Array{pos: pos{loc.Location()}, Values: []Value{}})
	return nil
}

func (h *parseHandler) EndArray(loc jason.Anchor) error {
	h.add(h.pop().(*Array))
	return nil
}

func (h *parseHandler) BeginMember(loc jason.Anchor) error {
	// A repeated key replaces the value of the earlier member, which keeps
	// its place in the object.
	key := loc.Text()
	keys := h.keys[len(h.keys)-1]
	mem, ok := keys[key]
	if !ok {
		mem = &Member{pos: pos{loc.Location()}, Key: key}
		obj := h.top().(*Object)
		obj.Members = append(obj.Members, mem)
		keys[key] = mem
	}
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(loc jason.Anchor) error {
	h.pop()
	return nil
}

func (h *parseHandler) Value(loc jason.Anchor) error {
	p := pos{loc.Location()}
	switch loc.Kind() {
	case jason.StringValue:
		h.add(&String{pos: p, Value: loc.Text()})
	case jason.NumberValue:
		h.add(&Number{pos: p, Text: jason.Number(loc.Text())})
	case jason.BoolValue:
		h.add(&Bool{pos: p, Value: loc.Text() == "true"})
	case jason.NullValue:
		h.add(&Null{pos: p})
	default:
		return fmt.Errorf("unknown value %v", loc.Kind())
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jason.Anchor) {}
