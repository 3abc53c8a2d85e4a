// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import "io"

// An Anchor represents a token in source text. The methods of an Anchor
// report the location, kind, and contents of the token.
type Anchor interface {
	Kind() Kind         // Returns the kind of the token
	Text() string       // Returns the decoded payload of the token
	Location() Position // Returns the starting position of the token
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose name is at loc. The text of the
	// anchor is the decoded name.
	BeginMember(loc Anchor) error

	// End the current object member. The anchor is the last token of the
	// member value.
	EndMember(loc Anchor) error

	// Report a scalar value at the given location. The type of the value can
	// be recovered from the kind of the anchor.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	r *Reader
}

// NewStream constructs a new Stream that consumes input from r using the
// default configuration.
func NewStream(r io.Reader) *Stream { return &Stream{r: NewReader(r)} }

// NewStreamWithReader constructs a new Stream that consumes tokens from r.
func NewStreamWithReader(r *Reader) *Stream { return &Stream{r: r} }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(handlerError); ok {
			*errp = err.error
		} else {
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. In case of a syntax error, the
// returned error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for s.r.HasNext() {
		kind, nerr := s.r.Next()
		if nerr != nil {
			return nerr
		}
		switch kind {
		case BeginObject:
			s.checkError(h.BeginObject(s.r))
			continue
		case BeginArray:
			s.checkError(h.BeginArray(s.r))
			continue
		case MemberName:
			s.checkError(h.BeginMember(s.r))
			continue
		case EndObject:
			s.checkError(h.EndObject(s.r))
		case EndArray:
			s.checkError(h.EndArray(s.r))
		default:
			s.checkError(h.Value(s.r))
		}

		// The token completed a value; if that value belonged to a member,
		// the member is complete too.
		if s.r.memberDone() {
			s.checkError(h.EndMember(s.r))
		}
	}
	h.EndOfInput(s.r)
	return nil
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }
