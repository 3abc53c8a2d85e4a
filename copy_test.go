// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jason"
)

func TestCopy(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"9223372036854775808", "9223372036854775808"},
		{"-123456789012345678901234567890.125e-7", "-123456789012345678901234567890.125e-7"},
		{` { "a" : [ 1 , 2.5 , true , null ] , "b" : "c\"d" } `, `{"a":[1,2.5,true,null],"b":"c\"d"}`},
		{`"é\n"`, `"é\n"`},
		{`[[], {}]`, `[[],{}]`},
	}
	for _, test := range tests {
		var buf strings.Builder
		w := jason.Config{}.NewWriter(&buf)
		if err := jason.Copy(w, jason.Config{}.NewStringReader(test.input)); err != nil {
			t.Fatalf("Copy %#q failed: %v", test.input, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("Copy %#q: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestCopyRoundTrip(t *testing.T) {
	// Output with layout reads back to the same compact form.
	const input = `{"blue":[0,0,200],"x":{"y":[{"z":null}]},"big":18446744073709551616}`

	var pretty strings.Builder
	pw := jason.Config{Layout: true}.NewWriter(&pretty)
	if err := jason.Copy(pw, jason.Config{}.NewStringReader(input)); err != nil {
		t.Fatalf("Copy to pretty failed: %v", err)
	}
	if err := pw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var compact strings.Builder
	cw := jason.Config{}.NewWriter(&compact)
	if err := jason.Copy(cw, jason.Config{}.NewStringReader(pretty.String())); err != nil {
		t.Fatalf("Copy to compact failed: %v", err)
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := compact.String(); got != input {
		t.Errorf("Round trip: got %#q, want %#q", got, input)
	}
}

func TestCopyError(t *testing.T) {
	var buf strings.Builder
	w := jason.Config{}.NewWriter(&buf)
	err := jason.Copy(w, jason.Config{}.NewStringReader(`[1, 2`))
	var serr *jason.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("Copy: got error %v, want *SyntaxError", err)
	}
}
