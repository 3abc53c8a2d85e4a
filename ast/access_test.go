// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"testing"
	"time"

	"github.com/creachadair/jason"
	"github.com/creachadair/jason/ast"
	"github.com/google/go-cmp/cmp"
)

const accessInput = `{
  "name": "Cake", "count": 12, "big": 9223372036854775808, "ppu": 0.55,
  "ok": true, "nil": null, "inner": {"k": "v"},
  "when": "2021-03-04T05:06:07.5Z", "wait": "P1DT2H",
  "list": ["a", 1, 2.5, false, {"x": 1}, [], "2021-03-04T05:06:07Z", "PT1H30M"]
}`

func TestTypedGetters(t *testing.T) {
	obj := mustParse(t, accessInput).(*ast.Object)
	list, err := obj.GetArray("list")
	if err != nil {
		t.Fatalf("GetArray failed: %v", err)
	}
	when := time.Date(2021, 3, 4, 5, 6, 7, 5e8, time.UTC)

	tests := []struct {
		name string
		get  func() (any, error)
		want any
	}{
		{"GetString", func() (any, error) { return obj.GetString("name") }, "Cake"},
		{"GetBool", func() (any, error) { return obj.GetBool("ok") }, true},
		{"GetInt64", func() (any, error) { return obj.GetInt64("count") }, int64(12)},
		{"GetInt", func() (any, error) { return obj.GetInt("count") }, 12},
		{"GetFloat64", func() (any, error) { return obj.GetFloat64("ppu") }, 0.55},
		{"GetNumber", func() (any, error) { return obj.GetNumber("big") }, jason.Number("9223372036854775808")},
		{"GetTime", func() (any, error) { return obj.GetTime("when") }, when},
		{"GetDuration", func() (any, error) { return obj.GetDuration("wait") }, 26 * time.Hour},
		{"GetObject", func() (any, error) {
			o, err := obj.GetObject("inner")
			return o.JSON(), err
		}, `{"k":"v"}`},

		{"StringAt", func() (any, error) { return list.StringAt(0) }, "a"},
		{"Int64At", func() (any, error) { return list.Int64At(1) }, int64(1)},
		{"IntAt", func() (any, error) { return list.IntAt(1) }, 1},
		{"Float64At", func() (any, error) { return list.Float64At(2) }, 2.5},
		{"NumberAt", func() (any, error) { return list.NumberAt(2) }, jason.Number("2.5")},
		{"BoolAt", func() (any, error) { return list.BoolAt(3) }, false},
		{"TimeAt", func() (any, error) { return list.TimeAt(6) }, when.Truncate(time.Second)},
		{"DurationAt", func() (any, error) { return list.DurationAt(7) }, 90 * time.Minute},
		{"ObjectAt", func() (any, error) {
			o, err := list.ObjectAt(4)
			return o.JSON(), err
		}, `{"x":1}`},
		{"ArrayAt", func() (any, error) {
			a, err := list.ArrayAt(5)
			return a.JSON(), err
		}, `[]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.get()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Value (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestTypedGetterErrors(t *testing.T) {
	obj := mustParse(t, accessInput).(*ast.Object)
	list, err := obj.GetArray("list")
	if err != nil {
		t.Fatalf("GetArray failed: %v", err)
	}

	tests := []struct {
		name string
		get  func() error
		want error // if nil, any error is accepted
	}{
		{"MissingMember", func() error { _, err := obj.GetString("nonesuch"); return err }, ast.ErrNotFound},
		{"StringIsNumber", func() error { _, err := obj.GetString("count"); return err }, ast.ErrWrongType},
		{"BoolIsNull", func() error { _, err := obj.GetBool("nil"); return err }, ast.ErrWrongType},
		{"ObjectIsArray", func() error { _, err := obj.GetObject("list"); return err }, ast.ErrWrongType},
		{"ArrayIsObject", func() error { _, err := obj.GetArray("inner"); return err }, ast.ErrWrongType},
		{"TimeIsNumber", func() error { _, err := obj.GetTime("count"); return err }, ast.ErrWrongType},
		{"IntIsFraction", func() error { _, err := obj.GetInt64("ppu"); return err }, nil},
		{"IntOverflow", func() error { _, err := obj.GetInt64("big"); return err }, nil},
		{"TimeSyntax", func() error { _, err := obj.GetTime("name"); return err }, nil},
		{"DurationSyntax", func() error { _, err := obj.GetDuration("name"); return err }, nil},

		{"IndexTooLarge", func() error { _, err := list.StringAt(8); return err }, ast.ErrNotFound},
		{"IndexNegative", func() error { _, err := list.StringAt(-1); return err }, ast.ErrNotFound},
		{"ElementType", func() error { _, err := list.IntAt(0); return err }, ast.ErrWrongType},
		{"ElementArray", func() error { _, err := list.ArrayAt(4); return err }, ast.ErrWrongType},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.get()
			if err == nil {
				t.Fatal("Got nil error, want error")
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("Got error %v, want %v", err, test.want)
			}
		})
	}
}

func TestObjectEdit(t *testing.T) {
	obj := mustParse(t, `{"a": 1, "b": 2, "c": 3}`).(*ast.Object)
	check := func(want string) {
		t.Helper()
		if got := obj.JSON(); got != want {
			t.Errorf("Object: got %#q, want %#q", got, want)
		}
	}

	obj.Set("b", ast.ToValue("x"))
	obj.Set("d", ast.ToValue(true))
	check(`{"a":1,"b":"x","c":3,"d":true}`)

	if !obj.Rename("a", "z") {
		t.Error(`Rename("a", "z") reported false`)
	}
	check(`{"z":1,"b":"x","c":3,"d":true}`)

	// Renaming onto an existing key replaces its value.
	if !obj.Rename("z", "c") {
		t.Error(`Rename("z", "c") reported false`)
	}
	check(`{"b":"x","c":1,"d":true}`)

	if obj.Rename("nonesuch", "q") {
		t.Error(`Rename("nonesuch", "q") reported true`)
	}
	if !obj.Rename("b", "b") {
		t.Error(`Rename("b", "b") reported false`)
	}
	if !obj.Delete("d") {
		t.Error(`Delete("d") reported false`)
	}
	if obj.Delete("d") {
		t.Error(`Delete("d") reported true after removal`)
	}
	check(`{"b":"x","c":1}`)
}

func TestArrayEdit(t *testing.T) {
	arr := mustParse(t, `[]`).(*ast.Array)
	arr.Append(ast.ToValue(1), nil, ast.ToValue("x"))
	if got, want := arr.JSON(), `[1,null,"x"]`; got != want {
		t.Errorf("Array: got %#q, want %#q", got, want)
	}
	if v := arr.At(2); v == nil || v.JSON() != `"x"` {
		t.Errorf("At(2): got %v, want \"x\"", v)
	}
	for _, i := range []int{-1, 3} {
		if v := arr.At(i); v != nil {
			t.Errorf("At(%d): got %v, want nil", i, v)
		}
	}
}
