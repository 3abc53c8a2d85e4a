// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jason implements a streaming JSON reader and writer.
//
// # Reading
//
// The Reader type is a pull parser. Construct a reader from an io.Reader and
// call its Next method until HasNext reports false. Each call returns the
// kind of the next structural token:
//
//	r := jason.NewReader(input)
//	for r.HasNext() {
//	   kind, err := r.Next()
//	   if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   }
//	   log.Printf("Next token: %v %q", kind, r.Text())
//	}
//
// A Reader accepts exactly one top-level value, and reports an error if any
// content other than whitespace follows it. Syntax errors have concrete type
// *jason.SyntaxError and carry the position of the offending token. Input
// nested more deeply than the configured limit is reported as a SyntaxError
// wrapping ErrMaxDepth.
//
// The encoding of the input is detected from its first bytes: UTF-16 and
// UTF-32 in either byte order are recognized by the placement of zero bytes.
// Otherwise the charset of the Config is used.
//
// # Writing
//
// The Writer type is the inverse of a Reader. It accepts the same token
// vocabulary through its Write methods, and checks that the calls form a
// single well-formed value:
//
//	w := jason.NewWriter(os.Stdout)
//	w.WriteStartObject()
//	w.WriteMember("blue")
//	w.WriteBeginArray()
//	w.WriteInt(200)
//	w.WriteEndArray()
//	w.WriteEndObject()
//	if err := w.Close(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
//
// A call that is not permitted, such as a value inside an object without a
// member name, reports a *jason.UsageError.
//
// # Streaming
//
// The Stream type drives a Reader and reports its tokens to the methods of
// a Handler:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The ast package uses a Handler to build a tree of values.
package jason
