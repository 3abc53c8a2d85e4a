// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

// Copy reads every remaining token of src and writes it to dst. Numbers are
// copied as text, so no precision is lost. Copy does not close dst.
func Copy(dst *Writer, src *Reader) error {
	for src.HasNext() {
		kind, err := src.Next()
		if err != nil {
			return err
		}
		if err := copyToken(dst, kind, src.Text()); err != nil {
			return err
		}
	}
	return nil
}

func copyToken(dst *Writer, kind Kind, text string) error {
	switch kind {
	case BeginObject:
		return dst.WriteStartObject()
	case EndObject:
		return dst.WriteEndObject()
	case BeginArray:
		return dst.WriteBeginArray()
	case EndArray:
		return dst.WriteEndArray()
	case MemberName:
		return dst.WriteMember(text)
	case NullValue:
		return dst.WriteNull()
	case BoolValue:
		return dst.WriteBool(text == "true")
	case NumberValue:
		return dst.WriteNumber(Number(text))
	case StringValue:
		return dst.WriteString(text)
	}
	return usagef("Copy", "unexpected token %s", kind)
}
