// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid    Token = iota // invalid token
	LBrace                  // left brace "{"
	RBrace                  // right brace "}"
	LSquare                 // left square bracket "["
	RSquare                 // right square bracket "]"
	Comma                   // comma ","
	Colon                   // colon ":"
	Integer                 // number: integer with no fraction or exponent
	Fractional              // number with fraction and/or exponent
	Quoted                  // quoted string
	True                    // constant: true
	False                   // constant: false
	Null                    // constant: null
)

var tokenStr = [...]string{
	Invalid:    "invalid token",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Comma:      `","`,
	Colon:      `":"`,
	Integer:    "integer",
	Fractional: "number",
	Quoted:     "string",
	True:       "true",
	False:      "false",
	Null:       "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Unlike a raw lexer, the Scanner decodes the payload of each token as it
// reads: the Text of a string token has its quotes removed and its escapes
// replaced.
type Scanner struct {
	cur *cursor
	buf strings.Builder // current token payload
	tok Token
	err error
	pos Position // start of the current token
	hi  rune     // pending high surrogate from a \u escape, or 0
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// The encoding of r is detected from its first bytes, defaulting to UTF-8.
func NewScanner(r io.Reader) *Scanner {
	return newScanner(newByteSource(r, unicode.UTF8))
}

func newScanner(rr io.RuneReader) *Scanner {
	return &Scanner{cur: newCursor(rr), pos: startPosition}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Any other error is either a
// *SyntaxError or an *IOError, and is reported by every subsequent call.
func (s *Scanner) Next() error {
	if s.err != nil {
		return s.err
	}
	s.buf.Reset()
	s.tok = Invalid
	s.hi = 0

	for {
		s.pos = s.cur.pos
		ch, err := s.cur.read()
		if err != nil {
			return s.fail(err)
		} else if ch == eoi {
			return s.setErr(io.EOF)
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		switch {
		case ch == '"':
			return s.scanString()
		case isNumStart(ch):
			return s.scanNumber(ch)
		case ch == 't':
			return s.scanConstant(True, "true")
		case ch == 'f':
			return s.scanConstant(False, "false")
		case ch == 'n':
			return s.scanConstant(Null, "null")
		}
		return s.failf("illegal content %q", ch)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the decoded payload of the current token: the unescaped
// contents of a string, the digits of a number, or the literal text of a
// constant or punctuation token.
func (s *Scanner) Text() string { return s.buf.String() }

// Location returns the position of the first character of the current token.
func (s *Scanner) Location() Position { return s.pos }

// scanConstant matches the remaining letters of word, whose first letter has
// already been consumed.
func (s *Scanner) scanConstant(tok Token, word string) error {
	for _, want := range word[1:] {
		ch, err := s.cur.read()
		if err != nil {
			return s.fail(err)
		} else if ch != want {
			return s.failf("illegal content")
		}
	}
	s.buf.WriteString(word)
	s.tok = tok
	return nil
}

func (s *Scanner) scanString() error {
	for {
		ch, err := s.cur.read()
		if err != nil {
			return s.fail(err)
		}
		switch {
		case ch == eoi:
			return s.failf("unterminated string")
		case ch == '"':
			s.flushUnit()
			s.tok = Quoted
			return nil
		case ch == '\\':
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf("control character %q in string", ch)
		default:
			s.flushUnit()
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape decodes the escape sequence following a backslash.
func (s *Scanner) scanEscape() error {
	ch, err := s.cur.read()
	if err != nil {
		return s.fail(err)
	}
	var dec rune
	switch ch {
	case '"', '\\', '/':
		dec = ch
	case 'b':
		dec = '\b'
	case 'f':
		dec = '\f'
	case 'n':
		dec = '\n'
	case 'r':
		dec = '\r'
	case 't':
		dec = '\t'
	case 'u':
		v, err := s.readHex4()
		if err != nil {
			return err
		}
		s.putUnit(v)
		return nil
	case eoi:
		return s.failf("unterminated string")
	default:
		return s.failf("illegal escape character %q", ch)
	}
	s.flushUnit()
	s.buf.WriteRune(dec)
	return nil
}

// putUnit appends a UTF-16 code unit decoded from a \u escape. A high
// surrogate is held until the next unit, so that a valid pair decodes to a
// single code point. Unpaired surrogates decode to U+FFFD.
func (s *Scanner) putUnit(u rune) {
	if s.hi != 0 {
		hi := s.hi
		s.hi = 0
		if r := utf16.DecodeRune(hi, u); r != utf8.RuneError {
			s.buf.WriteRune(r)
			return
		}
		s.buf.WriteRune(utf8.RuneError)
	}
	if u >= 0xd800 && u < 0xdc00 {
		s.hi = u
		return
	}
	s.buf.WriteRune(u) // a lone low surrogate is written as U+FFFD
}

func (s *Scanner) flushUnit() {
	if s.hi != 0 {
		s.buf.WriteRune(utf8.RuneError)
		s.hi = 0
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for range 4 {
		ch, err := s.cur.read()
		if err != nil {
			return 0, s.fail(err)
		}
		switch {
		case '0' <= ch && ch <= '9':
			v = v<<4 | (ch - '0')
		case 'a' <= ch && ch <= 'f':
			v = v<<4 | (ch - 'a' + 10)
		case 'A' <= ch && ch <= 'F':
			v = v<<4 | (ch - 'A' + 10)
		case ch == eoi:
			return 0, s.failf("unterminated string")
		default:
			return 0, s.failf("invalid Unicode escape: not a hex digit: %q", ch)
		}
	}
	return v, nil
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		ch, err := s.cur.peek()
		if err != nil {
			return s.fail(err)
		} else if !isDigit(ch) {
			return s.failf("invalid number (negative without integer part)")
		}
		s.accept(ch)
		start = ch
	}

	// A leading zero must be the only digit of the integer part.
	// That is: 0.12 is OK, 01.2 is not.
	if start == '0' {
		if ch, err := s.cur.peek(); err != nil {
			return s.fail(err)
		} else if isDigit(ch) {
			return s.failf("extra leading zeroes")
		}
	} else if _, err := s.digits(); err != nil {
		return err
	}

	s.tok = Integer
	ch, err := s.cur.peek()
	if err != nil {
		return s.fail(err)
	}

	// If a decimal point follows, consume a fractional part.
	if ch == '.' {
		s.accept(ch)
		if nr, err := s.digits(); err != nil {
			return err
		} else if nr == 0 {
			return s.failf("fractional digits expected")
		}
		s.tok = Fractional
		if ch, err = s.cur.peek(); err != nil {
			return s.fail(err)
		}
	}

	// If an exponent follows, consume it.
	if ch == 'e' || ch == 'E' {
		s.accept(ch)
		if ch, err = s.cur.peek(); err != nil {
			return s.fail(err)
		} else if ch == '+' || ch == '-' {
			s.accept(ch)
		}
		if nr, err := s.digits(); err != nil {
			return err
		} else if nr == 0 {
			return s.failf("exponential digits expected")
		}
		s.tok = Fractional
	}
	return nil
}

// accept consumes ch, which the caller has already peeked, into the token.
func (s *Scanner) accept(ch rune) {
	s.cur.read()
	s.buf.WriteRune(ch)
}

// digits consumes decimal digits until a non-digit or the end of input, and
// reports how many were consumed.
func (s *Scanner) digits() (int, error) {
	var nr int
	for {
		ch, err := s.cur.peek()
		if err != nil {
			return nr, s.fail(err)
		} else if !isDigit(ch) {
			return nr, nil
		}
		s.accept(ch)
		nr++
	}
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// fail records err, which is already an *IOError or *SyntaxError.
func (s *Scanner) fail(err error) error { return s.setErr(err) }

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(&SyntaxError{Location: s.pos, Message: fmt.Sprintf(msg, args...)})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
