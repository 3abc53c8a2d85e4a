// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

const bufferSize = 1 << 10

// eoi is returned by cursor methods at the end of the input.
const eoi rune = -1

// A cursor is a character source with one character of lookahead. It tracks
// the position of the next character to be read.
type cursor struct {
	rr  io.RuneReader
	ch  rune // lookahead, valid if full
	eof bool
	err error
	pos Position

	full bool
}

func newCursor(rr io.RuneReader) *cursor { return &cursor{rr: rr, pos: startPosition} }

func (c *cursor) fill() error {
	if c.full || c.eof {
		return nil
	} else if c.err != nil {
		return c.err
	}
	ch, _, err := c.rr.ReadRune()
	if err == io.EOF {
		c.eof = true
		return nil
	} else if err != nil {
		c.err = ioError("read", err)
		return c.err
	}
	c.ch, c.full = ch, true
	return nil
}

// peek returns the next character without consuming it, or eoi.
func (c *cursor) peek() (rune, error) {
	if err := c.fill(); err != nil {
		return 0, err
	} else if !c.full {
		return eoi, nil
	}
	return c.ch, nil
}

// read consumes and returns the next character, or eoi.
func (c *cursor) read() (rune, error) {
	ch, err := c.peek()
	if err != nil || ch == eoi {
		return ch, err
	}
	c.full = false
	c.pos = c.pos.advance(ch)
	return ch, nil
}

// A byteSource decodes characters from a byte stream whose encoding is chosen
// from the first bytes of the stream. The choice is deferred until the first
// character is requested.
type byteSource struct {
	br  *bufio.Reader
	def encoding.Encoding
	enc encoding.Encoding // chosen encoding, nil until setup
	rr  io.RuneReader
	raw bool // rr reads UTF-8 directly from br

	// lossy means the decoder replaces malformed input with U+FFFD, so any
	// U+FFFD it yields is an error.
	lossy bool
}

func newByteSource(r io.Reader, def encoding.Encoding) *byteSource {
	return &byteSource{br: bufio.NewReaderSize(r, bufferSize), def: def}
}

func (b *byteSource) setup() error {
	head, err := b.br.Peek(4)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return err
	}
	b.enc = detectEncoding(head, b.def)
	if isUTF8(b.enc) {
		b.rr, b.raw = b.br, true
		return nil
	}
	var dec transform.Transformer = b.enc.NewDecoder()
	if v, ok := unitCheck(b.enc); ok {
		dec = transform.Chain(v, dec)
	} else {
		b.lossy = true
	}
	b.rr = bufio.NewReaderSize(transform.NewReader(b.br, dec), bufferSize)
	return nil
}

// ReadRune implements io.RuneReader.
func (b *byteSource) ReadRune() (rune, int, error) {
	if b.rr == nil {
		if err := b.setup(); err != nil {
			return 0, 0, err
		}
	}
	ch, n, err := b.rr.ReadRune()
	if err != nil || ch != utf8.RuneError {
		return ch, n, err
	} else if b.raw && n == 1 {
		return 0, 0, decodeError("invalid UTF-8 sequence")
	} else if b.lossy {
		return 0, 0, decodeError("malformed input for charset")
	}
	return ch, n, nil
}

func decodeError(msg string) error { return &IOError{Op: "decode", Err: errors.New(msg)} }

// A unitValidator is a transform.Transformer that copies UTF-16 or UTF-32
// text unchanged, and fails on code units that do not form a valid
// character: unpaired surrogates, values beyond U+10FFFF, and a partial code
// unit at the end of the input.
type unitValidator struct {
	width int // bytes per code unit, 2 or 4
	order binary.ByteOrder
}

// unitCheck returns a validator for enc if it is UTF-16 or UTF-32 with a
// fixed byte order.
func unitCheck(enc encoding.Encoding) (transform.Transformer, bool) {
	switch enc {
	case utf16BE:
		return unitValidator{2, binary.BigEndian}, true
	case utf16LE:
		return unitValidator{2, binary.LittleEndian}, true
	case utf32BE:
		return unitValidator{4, binary.BigEndian}, true
	case utf32LE:
		return unitValidator{4, binary.LittleEndian}, true
	}
	return nil, false
}

func (unitValidator) Reset() {}

func (v unitValidator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		n, err := v.check(src[nSrc:], atEOF)
		if err != nil {
			return nDst, nSrc, err
		} else if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+n])
		nSrc += n
	}
	return nDst, nSrc, nil
}

// check reports the length in bytes of the character at the start of src.
func (v unitValidator) check(src []byte, atEOF bool) (int, error) {
	if len(src) < v.width {
		return 0, short(atEOF, "truncated code unit")
	}
	if v.width == 4 {
		if c := v.order.Uint32(src); c > utf8.MaxRune || isSurrogate(rune(c)) {
			return 0, decodeError(fmt.Sprintf("invalid code point %#x", c))
		}
		return 4, nil
	}
	u := rune(v.order.Uint16(src))
	if !isSurrogate(u) {
		return 2, nil
	} else if u >= 0xdc00 {
		return 0, decodeError(fmt.Sprintf("unpaired surrogate %#x", u))
	} else if len(src) < 4 {
		return 0, short(atEOF, fmt.Sprintf("unpaired surrogate %#x", u))
	} else if lo := rune(v.order.Uint16(src[2:])); lo < 0xdc00 || lo >= 0xe000 {
		return 0, decodeError(fmt.Sprintf("unpaired surrogate %#x", u))
	}
	return 4, nil
}

// short reports that src ended in the middle of a character: an error if
// the input is complete, otherwise a request for more input.
func short(atEOF bool, msg string) error {
	if atEOF {
		return decodeError(msg)
	}
	return transform.ErrShortSrc
}

func isSurrogate(r rune) bool { return r >= 0xd800 && r < 0xe000 }

var (
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32BE = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	utf32LE = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

// detectEncoding chooses an encoding for a stream that begins with head.
// A JSON text starts with an ASCII character, so the position of zero bytes
// among the first few bytes reveals the width and byte order of UTF-16 and
// UTF-32 encodings. Otherwise the result is def.
func detectEncoding(head []byte, def encoding.Encoding) encoding.Encoding {
	switch {
	case len(head) > 1 && head[0] == 0:
		if head[1] == 0 {
			return utf32BE
		}
		return utf16BE
	case len(head) > 1 && head[1] == 0:
		if len(head) > 2 && head[2] == 0 {
			return utf32LE
		}
		return utf16LE
	}
	return def
}

func isUTF8(enc encoding.Encoding) bool {
	if enc == unicode.UTF8 {
		return true
	}
	name, err := ianaindex.IANA.Name(enc)
	return err == nil && name == "UTF-8"
}
