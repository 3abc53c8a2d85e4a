// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jason"
	"github.com/shopspring/decimal"
)

// writeBlue writes the value {"blue":[0,0,200]}.
func writeBlue(w *jason.Writer) error {
	for _, f := range []func() error{
		w.WriteStartObject,
		func() error { return w.WriteMember("blue") },
		w.WriteBeginArray,
		func() error { return w.WriteInt(0) },
		func() error { return w.WriteInt(0) },
		func() error { return w.WriteInt(200) },
		w.WriteEndArray,
		w.WriteEndObject,
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return w.Close()
}

func TestWriterLayout(t *testing.T) {
	tests := []struct {
		layout bool
		want   string
	}{
		{true, `{
    "blue": [
        0,
        0,
        200
    ]
}`},
		{false, `{"blue":[0,0,200]}`},
	}
	for _, test := range tests {
		var buf strings.Builder
		w := jason.Config{Layout: test.layout}.NewWriter(&buf)
		if err := writeBlue(w); err != nil {
			t.Fatalf("Write (layout=%v) failed: %v", test.layout, err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("Layout=%v: got\n%s\nwant\n%s", test.layout, got, test.want)
		}
	}
}

func TestWriterDefault(t *testing.T) {
	var buf strings.Builder
	if err := writeBlue(jason.NewWriter(&buf)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "{\n    \"blue\": [\n") {
		t.Errorf("Default writer output is not indented:\n%s", got)
	}
}

func TestWriterValues(t *testing.T) {
	tests := []struct {
		name   string
		layout bool
		write  func(w *jason.Writer) error
		want   string
	}{
		{"Null", false, (*jason.Writer).WriteNull, "null"},
		{"True", false, func(w *jason.Writer) error { return w.WriteBool(true) }, "true"},
		{"String", false, func(w *jason.Writer) error { return w.WriteString("a\"b\nc") }, `"a\"b\nc"`},
		{"Escapes", false, func(w *jason.Writer) error {
			return w.WriteString("\\\b\f\r\t\x00\x1f/é✓")
		}, `"\\\b\f\r\t\u0000\u001f/é✓"`},
		{"Invalid", false, func(w *jason.Writer) error { return w.WriteString("a\xffb") }, `"a\ufffdb"`},
		{"Int", false, func(w *jason.Writer) error { return w.WriteInt(-9223372036854775808) }, "-9223372036854775808"},
		{"Float", false, func(w *jason.Writer) error { return w.WriteFloat(0.5) }, "0.5"},
		{"FloatInt", false, func(w *jason.Writer) error { return w.WriteFloat(100) }, "100"},
		{"FloatSmall", false, func(w *jason.Writer) error { return w.WriteFloat(1e-9) }, "1e-9"},
		{"FloatLarge", false, func(w *jason.Writer) error { return w.WriteFloat(1e21) }, "1e+21"},
		{"Number", false, func(w *jason.Writer) error {
			return w.WriteNumber("9223372036854775808")
		}, "9223372036854775808"},
		{"Decimal", false, func(w *jason.Writer) error {
			return w.WriteDecimal(decimal.RequireFromString("123456789012345678901234567890.5"))
		}, "123456789012345678901234567890.5"},
		{"EmptyObject", true, func(w *jason.Writer) error {
			w.WriteStartObject()
			return w.WriteEndObject()
		}, "{}"},
		{"EmptyArray", true, func(w *jason.Writer) error {
			w.WriteBeginArray()
			return w.WriteEndArray()
		}, "[]"},
		{"NestedEmpty", true, func(w *jason.Writer) error {
			w.WriteBeginArray()
			w.WriteStartObject()
			w.WriteEndObject()
			w.WriteBeginArray()
			w.WriteEndArray()
			return w.WriteEndArray()
		}, "[\n    {},\n    []\n]"},
		{"Members", true, func(w *jason.Writer) error {
			w.WriteStartObject()
			w.WriteMember("a")
			w.WriteNull()
			w.WriteMember("b\tc")
			w.WriteStartObject()
			w.WriteMember("d")
			w.WriteBool(false)
			w.WriteEndObject()
			return w.WriteEndObject()
		}, "{\n    \"a\": null,\n    \"b\\tc\": {\n        \"d\": false\n    }\n}"},
		{"Compact", false, func(w *jason.Writer) error {
			w.WriteStartObject()
			w.WriteMember("a")
			w.WriteBeginArray()
			w.WriteString("x")
			w.WriteStartObject()
			w.WriteEndObject()
			w.WriteEndArray()
			w.WriteMember("b")
			w.WriteNull()
			return w.WriteEndObject()
		}, `{"a":["x",{}],"b":null}`},
		{"Layout", false, func(w *jason.Writer) error {
			w.WriteLayout(" \t")
			w.WriteBeginArray()
			w.WriteLayout("\r\n")
			w.WriteInt(1)
			w.WriteEndArray()
			return w.WriteLayout("\n")
		}, " \t[\r\n1]\n"},
		{"NoValue", false, func(w *jason.Writer) error { return nil }, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf strings.Builder
			w := jason.Config{Layout: test.layout}.NewWriter(&buf)
			if err := test.write(w); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if got := buf.String(); got != test.want {
				t.Errorf("Output: got %#q, want %#q", got, test.want)
			}
		})
	}
}

func TestWriterMisuse(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *jason.Writer) error
		want  string
	}{
		{"TwoValues", func(w *jason.Writer) error {
			w.WriteInt(1)
			return w.WriteInt(2)
		}, "WriteInt: only one text content permitted"},
		{"TwoContainers", func(w *jason.Writer) error {
			w.WriteBeginArray()
			w.WriteEndArray()
			return w.WriteStartObject()
		}, "WriteStartObject: only one text content permitted"},
		{"ValueWithoutMember", func(w *jason.Writer) error {
			w.WriteStartObject()
			return w.WriteString("x")
		}, "WriteString: no value expected"},
		{"TwoValuesInMember", func(w *jason.Writer) error {
			w.WriteStartObject()
			w.WriteMember("a")
			w.WriteNull()
			return w.WriteNull()
		}, "WriteNull: no value expected"},
		{"MemberWithoutValue", func(w *jason.Writer) error {
			w.WriteStartObject()
			w.WriteMember("a")
			return w.WriteMember("b")
		}, "WriteMember: missing member value"},
		{"EndWithoutValue", func(w *jason.Writer) error {
			w.WriteStartObject()
			w.WriteMember("a")
			return w.WriteEndObject()
		}, "WriteEndObject: missing member value"},
		{"MemberInArray", func(w *jason.Writer) error {
			w.WriteBeginArray()
			return w.WriteMember("a")
		}, "WriteMember: not within an object"},
		{"MemberAtTop", func(w *jason.Writer) error {
			return w.WriteMember("a")
		}, "WriteMember: not within an object"},
		{"EndArrayInObject", func(w *jason.Writer) error {
			w.WriteStartObject()
			return w.WriteEndArray()
		}, "WriteEndArray: not within an array"},
		{"EndObjectAtTop", func(w *jason.Writer) error {
			return w.WriteEndObject()
		}, "WriteEndObject: not within an object"},
		{"UnclosedObject", func(w *jason.Writer) error {
			w.WriteStartObject()
			return w.Close()
		}, "Close: unclosed object"},
		{"UnclosedArray", func(w *jason.Writer) error {
			w.WriteBeginArray()
			return w.Close()
		}, "Close: unclosed array"},
		{"BadLayout", func(w *jason.Writer) error {
			return w.WriteLayout(" x ")
		}, "WriteLayout: layout contains non-whitespace character 'x'"},
		{"BadNumber", func(w *jason.Writer) error {
			return w.WriteNumber("01")
		}, `WriteNumber: invalid number "01"`},
		{"NumberWithSpace", func(w *jason.Writer) error {
			return w.WriteNumber(" 1")
		}, `WriteNumber: invalid number " 1"`},
		{"NaN", func(w *jason.Writer) error {
			return w.WriteFloat(math.NaN())
		}, "WriteFloat: value NaN is not a JSON number"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := jason.Config{}.NewWriter(new(strings.Builder))
			err := test.write(w)
			if !errors.Is(err, jason.ErrUsage) {
				t.Fatalf("Got error %v, want %v", err, jason.ErrUsage)
			}
			if got := err.Error(); got != test.want {
				t.Errorf("Got error %q, want %q", got, test.want)
			}
			for _, next := range []func() error{
				func() error { return w.WriteFloat(math.Inf(1)) },
				func() error { return w.WriteNumber("bogus") },
				func() error { return w.WriteInt(1) },
				w.Close,
			} {
				if again := next(); again != err {
					t.Errorf("Error is not sticky: got %v, want %v", again, err)
				}
			}
		})
	}
}

func TestWriterDepth(t *testing.T) {
	w := jason.Config{MaxDepth: 2}.NewWriter(new(strings.Builder))
	if err := w.WriteBeginArray(); err != nil {
		t.Fatalf("WriteBeginArray 1: %v", err)
	}
	if err := w.WriteStartObject(); err != nil {
		t.Fatalf("WriteStartObject 2: %v", err)
	}
	w.WriteMember("x")
	err := w.WriteBeginArray()
	if !errors.Is(err, jason.ErrMaxDepth) || !errors.Is(err, jason.ErrUsage) {
		t.Errorf("WriteBeginArray 3: got error %v, want %v", err, jason.ErrMaxDepth)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterIOError(t *testing.T) {
	boom := errors.New("boom")
	w := jason.NewWriter(failWriter{boom})
	if err := w.WriteString("x"); err != nil {
		t.Fatalf("WriteString: unexpected error: %v", err)
	}
	err := w.Close()
	var ioe *jason.IOError
	if !errors.As(err, &ioe) || !errors.Is(err, boom) {
		t.Errorf("Close: got error %v, want I/O error wrapping %v", err, boom)
	}
}

func TestWriterCharset(t *testing.T) {
	tests := []struct {
		charset string
		want    []byte
	}{
		{"UTF-8", []byte(`"é"`)},
		{"ISO-8859-1", []byte{'"', 0xe9, '"'}},
		{"UTF-16BE", []byte{0, '"', 0, 0xe9, 0, '"'}},
	}
	for _, test := range tests {
		var buf strings.Builder
		w := jason.Config{Charset: test.charset}.NewWriter(&buf)
		if err := w.WriteString("é"); err != nil {
			t.Fatalf("WriteString (%s): %v", test.charset, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close (%s): %v", test.charset, err)
		}
		if got := buf.String(); got != string(test.want) {
			t.Errorf("Charset %s: got %q, want %q", test.charset, got, test.want)
		}
	}

	w := jason.Config{Charset: "no-such-charset"}.NewWriter(new(strings.Builder))
	var ioe *jason.IOError
	if err := w.WriteNull(); !errors.As(err, &ioe) {
		t.Errorf("WriteNull with bad charset: got error %v, want *IOError", err)
	}
}
