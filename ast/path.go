// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is reported by Find when a path does not select a value.
var ErrNotFound = errors.New("value not found")

// Find returns the value selected by path, starting from v.
//
// A path is a sequence of selectors. The selector ".name" selects the member
// of an object with the given key, and "[n]" selects the element of an array
// at offset n. The first selector may also be a bare name. For example,
// given
//
//	{"a": [{"b": "c"}, {"b": "d"}]}
//
// the path "a[0].b" selects "c". The empty path selects v itself.
//
// If any step of the path does not exist, Find reports ErrNotFound. If the
// path is malformed, Find reports some other error.
func Find(v Value, path string) (Value, error) {
	for i, j := 0, nextSelector(path, 1); i < len(path); i, j = j, nextSelector(path, j+1) {
		var ok bool
		switch c := path[i]; {
		case c == '.':
			v, ok = member(v, path[i+1:j])
		case c == '[':
			k := strings.IndexByte(path[i:], ']') + i
			if k != j-1 {
				return nil, fmt.Errorf("invalid path %q: offset %d: closing bracket expected", path, i)
			}
			n, err := strconv.Atoi(path[i+1 : k])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid path %q: offset %d: invalid index %q", path, i, path[i+1:k])
			}
			v, ok = element(v, n)
		case i == 0:
			v, ok = member(v, path[:j])
		default:
			return nil, fmt.Errorf("invalid path %q: offset %d: invalid selector", path, i)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path[:j])
		}
	}
	return v, nil
}

// nextSelector returns the offset of the first selector in path at or after
// i, or len(path).
func nextSelector(path string, i int) int {
	if i >= len(path) {
		return len(path)
	} else if k := strings.IndexAny(path[i:], ".["); k >= 0 {
		return i + k
	}
	return len(path)
}

func member(v Value, key string) (Value, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, false
	}
	m := obj.Find(key)
	return m.valueOf(), m != nil
}

func (m *Member) valueOf() Value {
	if m == nil {
		return nil
	}
	return m.Value
}

func element(v Value, n int) (Value, bool) {
	arr, ok := v.(*Array)
	if !ok || n >= len(arr.Values) {
		return nil, false
	}
	return arr.Values[n], true
}
