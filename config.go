// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultMaxDepth is the nesting limit used when a Config does not set one.
const DefaultMaxDepth = 1000

// Config carries the options shared by readers and writers. A Config is a
// plain value and may be shared freely among concurrent goroutines.
type Config struct {
	// Layout enables pretty-printed output: each member and element on its
	// own line, indented four spaces per level.
	Layout bool

	// Strict requests that input conform exactly to RFC 8259. It is
	// reported by the Reader but does not currently relax any rule.
	Strict bool

	// UseFloatingPoint prefers float64 over decimal.Decimal when a number
	// does not fit in an int64.
	UseFloatingPoint bool

	// Charset is the IANA name of the encoding used when none is detected
	// from the input, and the encoding of Writer output. If empty, "UTF-8".
	Charset string

	// MaxDepth is the maximum nesting depth of objects and arrays.
	// If MaxDepth <= 0, DefaultMaxDepth is used.
	MaxDepth int
}

// Default returns the default configuration.
var Default = sync.OnceValue(func() Config {
	return Config{
		Layout:   true,
		Strict:   true,
		Charset:  "UTF-8",
		MaxDepth: DefaultMaxDepth,
	}
})

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// Encoding returns the character encoding named by c.Charset.
func (c Config) Encoding() (encoding.Encoding, error) { return lookupCharset(c.Charset) }

// lookupCharset resolves an IANA charset name. The empty string means UTF-8.
func lookupCharset(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "charset %q", name)
	} else if enc == nil {
		return nil, errors.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}

// NewReader constructs a Reader that consumes r. The encoding of r is
// detected from its first bytes; if that is inconclusive, c.Charset is used.
// If the charset is invalid, the error is reported by the first call to Next.
func (c Config) NewReader(r io.Reader) *Reader {
	enc, err := c.Encoding()
	if err != nil {
		return newFailedReader(c, &IOError{Op: "decode", Err: err})
	}
	return newReader(c, newByteSource(r, enc))
}

// NewRuneReader constructs a Reader that consumes characters from rr.
// No encoding detection is performed.
func (c Config) NewRuneReader(rr io.RuneReader) *Reader { return newReader(c, rr) }

// NewStringReader constructs a Reader that consumes the characters of s.
func (c Config) NewStringReader(s string) *Reader {
	return c.NewRuneReader(strings.NewReader(s))
}

// NewWriter constructs a Writer that writes to w. Output is encoded in
// c.Charset. If the charset is invalid, the error is reported by the first
// write.
func (c Config) NewWriter(w io.Writer) *Writer {
	enc, err := c.Encoding()
	if err != nil {
		return newFailedWriter(c, &IOError{Op: "encode", Err: err})
	}
	return newWriter(c, w, enc)
}

// NewReader constructs a Reader for r using the default configuration.
func NewReader(r io.Reader) *Reader { return Default().NewReader(r) }

// NewWriter constructs a Writer to w using the default configuration.
func NewWriter(w io.Writer) *Writer { return Default().NewWriter(w) }
