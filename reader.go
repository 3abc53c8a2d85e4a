// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"fmt"
	"io"
)

// Kind is the type of a structural token produced by a Reader.
type Kind byte

// Constants defining the valid Kind values. The zero Kind means no token has
// been read.
const (
	NoKind      Kind = iota
	BeginObject      // start of an object "{"
	EndObject        // end of an object "}"
	BeginArray       // start of an array "["
	EndArray         // end of an array "]"
	MemberName       // the name of an object member
	NullValue        // the constant null
	BoolValue        // the constant true or false
	NumberValue      // a number
	StringValue      // a string
)

var kindStr = [...]string{
	NoKind:      "no token",
	BeginObject: "begin object",
	EndObject:   "end object",
	BeginArray:  "begin array",
	EndArray:    "end array",
	MemberName:  "member name",
	NullValue:   "null",
	BoolValue:   "boolean",
	NumberValue: "number",
	StringValue: "string",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[NoKind]
	}
	return kindStr[k]
}

// IsValue reports whether k is a scalar value token.
func (k Kind) IsValue() bool { return k >= NullValue }

// parseState records what the grammar permits next.
type parseState byte

const (
	stValue       parseState = iota // any single value
	stObjectFirst                   // first member or "}"
	stObjectNext                    // member name after ","
	stNameSep                       // "," or "}" after a member value
	stMemberStart                   // ":" after a member name
	stMemberValue                   // value after ":"
	stArrayFirst                    // first element or "]"
	stArrayNext                     // element after ","
	stArraySep                      // "," or "]" after an element
)

// A Reader is a pull parser for a single JSON value. Each call to Next
// returns the next structural token of the input. The tokens returned by a
// Reader always form a well-formed derivation of the JSON grammar: any input
// that would violate it is reported as an error instead.
//
// A Reader is not safe for concurrent use. After any error, the Reader
// reports the same error from every subsequent call to Next.
type Reader struct {
	cfg    Config
	sc     *Scanner
	states []parseState
	depth  int
	err    error

	kind Kind
	text string
	loc  Position
}

func newReader(cfg Config, rr io.RuneReader) *Reader {
	return &Reader{cfg: cfg, sc: newScanner(rr), states: []parseState{stValue}}
}

func newFailedReader(cfg Config, err error) *Reader {
	return &Reader{cfg: cfg, states: []parseState{stValue}, err: err}
}

// Config returns the configuration of r.
func (r *Reader) Config() Config { return r.cfg }

// HasNext reports whether the input has more tokens. It is true until the
// one top-level value of the input has been completely read.
func (r *Reader) HasNext() bool { return len(r.states) != 0 }

// Depth returns the number of objects and arrays currently open.
func (r *Reader) Depth() int { return r.depth }

// Err returns the error that ended the input, if any.
func (r *Reader) Err() error { return r.err }

// Next advances r to the next structural token and reports its kind.
// When the last token of the top-level value has been read, Next verifies
// that nothing but whitespace follows it.
func (r *Reader) Next() (Kind, error) {
	if r.err != nil {
		return NoKind, r.err
	} else if len(r.states) == 0 {
		return NoKind, r.fail(usagef("Next", "no more tokens"))
	}
	for {
		st := r.pop()
		if err := r.sc.Next(); err == io.EOF {
			return NoKind, r.failf("unexpected end of input")
		} else if err != nil {
			return NoKind, r.fail(err)
		}
		tok := r.sc.Token()

		switch st {
		case stValue:
			return r.value(tok)

		case stObjectFirst:
			if tok == RBrace {
				return r.leave(EndObject)
			}
			fallthrough
		case stObjectNext:
			if tok != Quoted {
				return NoKind, r.failf("attribute name expected")
			}
			r.push(stMemberStart)
			return r.emit(MemberName)

		case stNameSep:
			switch tok {
			case RBrace:
				return r.leave(EndObject)
			case Comma:
				r.push(stObjectNext)
				continue
			}
			return NoKind, r.failf("attribute expected")

		case stMemberStart:
			if tok != Colon {
				return NoKind, r.failf("colon expected")
			}
			r.push(stMemberValue)

		case stMemberValue:
			r.push(stNameSep)
			return r.value(tok)

		case stArrayFirst:
			if tok == RSquare {
				return r.leave(EndArray)
			}
			fallthrough
		case stArrayNext:
			r.push(stArraySep)
			return r.value(tok)

		case stArraySep:
			switch tok {
			case RSquare:
				return r.leave(EndArray)
			case Comma:
				r.push(stArrayNext)
				continue
			}
			return NoKind, r.failf("] or , expected")

		default:
			panic(fmt.Sprintf("invalid parse state %d", st))
		}
	}
}

// value interprets tok as the start of a value.
func (r *Reader) value(tok Token) (Kind, error) {
	switch tok {
	case LBrace:
		return r.enter(BeginObject, stObjectFirst)
	case LSquare:
		return r.enter(BeginArray, stArrayFirst)
	case Quoted:
		return r.emit(StringValue)
	case Integer, Fractional:
		return r.emit(NumberValue)
	case True, False:
		return r.emit(BoolValue)
	case Null:
		return r.emit(NullValue)
	}
	return NoKind, r.failf("value expected, found %s", tok)
}

func (r *Reader) enter(kind Kind, st parseState) (Kind, error) {
	if limit := r.cfg.maxDepth(); r.depth+1 > limit {
		return NoKind, r.fail(&SyntaxError{
			Location: r.sc.Location(),
			Message:  fmt.Sprintf("maximum depth exceeded (%d)", limit),
			err:      ErrMaxDepth,
		})
	}
	r.depth++
	r.push(st)
	return r.emit(kind)
}

func (r *Reader) leave(kind Kind) (Kind, error) {
	r.depth--
	return r.emit(kind)
}

// emit records the current scanner token as a structural token of the given
// kind. If the stack is empty, the top-level value is complete and the rest
// of the input must be empty.
func (r *Reader) emit(kind Kind) (Kind, error) {
	r.kind = kind
	r.text = r.sc.Text()
	r.loc = r.sc.Location()
	if len(r.states) == 0 {
		if err := r.sc.Next(); err == nil {
			return NoKind, r.failf("expected end of file")
		} else if err != io.EOF {
			return NoKind, r.fail(err)
		}
	}
	return kind, nil
}

func (r *Reader) push(st parseState) { r.states = append(r.states, st) }

func (r *Reader) pop() parseState {
	n := len(r.states) - 1
	st := r.states[n]
	r.states = r.states[:n]
	return st
}

// memberDone reports whether the value most recently returned by Next
// completed an object member.
func (r *Reader) memberDone() bool {
	n := len(r.states)
	return n != 0 && r.states[n-1] == stNameSep
}

func (r *Reader) fail(err error) error {
	r.err = err
	r.kind = NoKind
	return err
}

func (r *Reader) failf(msg string, args ...any) error {
	return r.fail(&SyntaxError{Location: r.sc.Location(), Message: fmt.Sprintf(msg, args...)})
}

// Kind returns the kind of the current token.
func (r *Reader) Kind() Kind { return r.kind }

// Text returns the payload of the current token: the decoded text of a name
// or string, the text of a number, or the literal text of any other token.
func (r *Reader) Text() string { return r.text }

// Location returns the input position of the current token.
func (r *Reader) Location() Position { return r.loc }

// Name returns the current member name.
func (r *Reader) Name() (string, error) {
	if r.kind != MemberName {
		return "", r.wrongKind("Name", MemberName)
	}
	return r.text, nil
}

// Str returns the contents of the current string value.
func (r *Reader) Str() (string, error) {
	if r.kind != StringValue {
		return "", r.wrongKind("Str", StringValue)
	}
	return r.text, nil
}

// Bool returns the current boolean value.
func (r *Reader) Bool() (bool, error) {
	if r.kind != BoolValue {
		return false, r.wrongKind("Bool", BoolValue)
	}
	return r.text == "true", nil
}

// Number returns the current number value.
func (r *Reader) Number() (Number, error) {
	if r.kind != NumberValue {
		return "", r.wrongKind("Number", NumberValue)
	}
	return Number(r.text), nil
}

// Value returns the current scalar value as a Go value: nil for null, a bool,
// a string, or a number converted as described by Number.Value using the
// UseFloatingPoint setting of the configuration.
func (r *Reader) Value() (any, error) {
	switch r.kind {
	case NullValue:
		return nil, nil
	case BoolValue:
		return r.text == "true", nil
	case StringValue:
		return r.text, nil
	case NumberValue:
		return Number(r.text).Value(r.cfg.UseFloatingPoint)
	}
	return nil, usagef("Value", "current token is %s, not a value", r.kind)
}

func (r *Reader) wrongKind(op string, want Kind) error {
	return usagef(op, "current token is %s, not %s", r.kind, want)
}
