// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jason/internal/escape"
	"github.com/shopspring/decimal"
	"go4.org/mem"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const indentWidth = 4

type frameKind byte

const (
	topLevel frameKind = iota
	inObject
	inArray
)

// A frame is the writer state for one level of nesting.
type frame struct {
	kind    frameKind
	pending bool // a member name has been written without its value
	count   int  // values (top level, arrays) or members (objects) written
}

// A Writer emits JSON text from a sequence of structural tokens. It checks
// that the sequence of calls forms a single well-formed value, and reports a
// *UsageError for any call not permitted at that point. If the Config enables
// Layout, the output is indented; otherwise no whitespace is added.
//
// Output is buffered. Call Close to check that the value is complete and to
// flush the output. A Writer does not close its underlying io.Writer.
//
// A Writer is not safe for concurrent use. After any error, the Writer
// reports the same error from every subsequent call.
type Writer struct {
	cfg   Config
	out   *bufio.Writer
	enc   io.WriteCloser // transcoder for non-UTF-8 output, or nil
	stack []frame
	err   error
	buf   []byte
}

func newWriter(cfg Config, w io.Writer, enc encoding.Encoding) *Writer {
	wr := &Writer{cfg: cfg, stack: []frame{{kind: topLevel}}}
	if isUTF8(enc) {
		wr.out = bufio.NewWriter(w)
	} else {
		tw := transform.NewWriter(w, enc.NewEncoder())
		wr.enc = tw
		wr.out = bufio.NewWriter(tw)
	}
	return wr
}

func newFailedWriter(cfg Config, err error) *Writer {
	return &Writer{cfg: cfg, stack: []frame{{kind: topLevel}}, err: err}
}

// Config returns the configuration of w.
func (w *Writer) Config() Config { return w.cfg }

// Depth returns the number of objects and arrays currently open.
func (w *Writer) Depth() int { return len(w.stack) - 1 }

// Err returns the error that ended the output, if any.
func (w *Writer) Err() error { return w.err }

// WriteNull writes a null value.
func (w *Writer) WriteNull() error {
	if err := w.beginValue("WriteNull"); err != nil {
		return err
	}
	return w.write("null")
}

// WriteBool writes a boolean value.
func (w *Writer) WriteBool(v bool) error {
	if err := w.beginValue("WriteBool"); err != nil {
		return err
	}
	return w.write(strconv.FormatBool(v))
}

// WriteString writes a string value.
func (w *Writer) WriteString(s string) error {
	if err := w.beginValue("WriteString"); err != nil {
		return err
	}
	return w.writeQuoted(s)
}

// WriteInt writes an integer value.
func (w *Writer) WriteInt(v int64) error {
	if err := w.beginValue("WriteInt"); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf[:0], v, 10)
	return w.writeBuf()
}

// WriteFloat writes a floating-point value in the shortest form that reads
// back as the same value. Infinities and NaN cannot be written.
func (w *Writer) WriteFloat(v float64) error {
	if w.err != nil {
		return w.err
	} else if math.IsNaN(v) || math.IsInf(v, 0) {
		return w.fail(usagef("WriteFloat", "value %v is not a JSON number", v))
	}
	if err := w.beginValue("WriteFloat"); err != nil {
		return err
	}
	w.buf = appendFloat(w.buf[:0], v)
	return w.writeBuf()
}

// WriteNumber writes the text of n unchanged. It reports an error if n is
// not a valid JSON number.
func (w *Writer) WriteNumber(n Number) error {
	if w.err != nil {
		return w.err
	} else if !validNumber(string(n)) {
		return w.fail(usagef("WriteNumber", "invalid number %q", n))
	}
	if err := w.beginValue("WriteNumber"); err != nil {
		return err
	}
	return w.write(string(n))
}

// WriteDecimal writes an arbitrary-precision decimal value.
func (w *Writer) WriteDecimal(d decimal.Decimal) error {
	if err := w.beginValue("WriteDecimal"); err != nil {
		return err
	}
	return w.write(d.String())
}

// WriteBeginArray starts a new array.
func (w *Writer) WriteBeginArray() error { return w.open("WriteBeginArray", inArray, '[') }

// WriteEndArray ends the innermost array.
func (w *Writer) WriteEndArray() error { return w.close("WriteEndArray", inArray, ']') }

// WriteStartObject starts a new object.
func (w *Writer) WriteStartObject() error { return w.open("WriteStartObject", inObject, '{') }

// WriteEndObject ends the innermost object. It is an error if a member name
// has been written without a value.
func (w *Writer) WriteEndObject() error { return w.close("WriteEndObject", inObject, '}') }

// WriteMember writes the name of an object member. The next call must write
// the value of the member.
func (w *Writer) WriteMember(name string) error {
	if w.err != nil {
		return w.err
	}
	f := w.top()
	if f.kind != inObject {
		return w.fail(usagef("WriteMember", "not within an object"))
	} else if f.pending {
		return w.fail(usagef("WriteMember", "missing member value"))
	}
	if err := w.separate(f); err != nil {
		return err
	}
	f.count++
	f.pending = true
	if err := w.writeQuoted(name); err != nil {
		return err
	}
	if w.cfg.Layout {
		return w.write(": ")
	}
	return w.write(":")
}

// WriteLayout writes s to the output verbatim. It reports an error unless s
// consists only of JSON whitespace.
func (w *Writer) WriteLayout(s string) error {
	if w.err != nil {
		return w.err
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return !isSpace(r) }); i >= 0 {
		return w.fail(usagef("WriteLayout", "layout contains non-whitespace character %q", s[i]))
	}
	return w.write(s)
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		return w.fail(ioError("write", err))
	}
	return nil
}

// Close reports an error if any object or array is still open, and otherwise
// flushes the output. Close does not close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if f := w.top(); f.kind != topLevel {
		what := "object"
		if f.kind == inArray {
			what = "array"
		}
		return w.fail(usagef("Close", "unclosed %s", what))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			return w.fail(ioError("write", err))
		}
	}
	return nil
}

func (w *Writer) top() *frame { return &w.stack[len(w.stack)-1] }

// beginValue checks whether a value is permitted in the current context, and
// writes the separator and indentation that precede it.
func (w *Writer) beginValue(op string) error {
	if w.err != nil {
		return w.err
	}
	switch f := w.top(); f.kind {
	case topLevel:
		if f.count != 0 {
			return w.fail(usagef(op, "only one text content permitted"))
		}
		f.count++
	case inObject:
		if !f.pending {
			return w.fail(usagef(op, "no value expected"))
		}
		f.pending = false
	case inArray:
		if err := w.separate(f); err != nil {
			return err
		}
		f.count++
	}
	return nil
}

// separate writes the comma and line break that precede a member or element
// of the container described by f.
func (w *Writer) separate(f *frame) error {
	if f.count != 0 {
		if err := w.write(","); err != nil {
			return err
		}
	}
	if w.cfg.Layout {
		return w.newline(w.Depth())
	}
	return nil
}

func (w *Writer) open(op string, kind frameKind, delim byte) error {
	if err := w.beginValue(op); err != nil {
		return err
	}
	if limit := w.cfg.maxDepth(); w.Depth()+1 > limit {
		return w.fail(&UsageError{
			Op:      op,
			Message: "maximum depth exceeded (" + strconv.Itoa(limit) + ")",
			err:     ErrMaxDepth,
		})
	}
	w.stack = append(w.stack, frame{kind: kind})
	return w.writeByte(delim)
}

func (w *Writer) close(op string, kind frameKind, delim byte) error {
	if w.err != nil {
		return w.err
	}
	f := w.top()
	if f.kind != kind {
		if kind == inObject {
			return w.fail(usagef(op, "not within an object"))
		}
		return w.fail(usagef(op, "not within an array"))
	} else if f.pending {
		return w.fail(usagef(op, "missing member value"))
	}
	n := f.count
	w.stack = w.stack[:len(w.stack)-1]
	if n != 0 && w.cfg.Layout {
		if err := w.newline(w.Depth()); err != nil {
			return err
		}
	}
	return w.writeByte(delim)
}

func (w *Writer) newline(level int) error {
	w.buf = append(w.buf[:0], '\n')
	for range level * indentWidth {
		w.buf = append(w.buf, ' ')
	}
	return w.writeBuf()
}

func (w *Writer) writeQuoted(s string) error {
	w.buf = append(w.buf[:0], '"')
	w.buf = escape.Append(w.buf, mem.S(s))
	w.buf = append(w.buf, '"')
	return w.writeBuf()
}

func (w *Writer) write(s string) error {
	if _, err := w.out.WriteString(s); err != nil {
		return w.fail(ioError("write", err))
	}
	return nil
}

func (w *Writer) writeByte(b byte) error {
	if err := w.out.WriteByte(b); err != nil {
		return w.fail(ioError("write", err))
	}
	return nil
}

func (w *Writer) writeBuf() error {
	if _, err := w.out.Write(w.buf); err != nil {
		return w.fail(ioError("write", err))
	}
	return nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

// appendFloat formats v as described by ECMA-262 for Number.prototype.toString.
func appendFloat(dst []byte, v float64) []byte {
	abs := math.Abs(v)
	fmt := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	dst = strconv.AppendFloat(dst, v, fmt, -1, 64)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// validNumber reports whether s is exactly one JSON number.
func validNumber(s string) bool {
	sc := newScanner(strings.NewReader(s))
	if sc.Next() != nil || sc.Text() != s {
		return false
	} else if tok := sc.Token(); tok != Integer && tok != Fractional {
		return false
	}
	return sc.Next() == io.EOF
}
