// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import (
	"github.com/creachadair/jason/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src string) (string, error) {
	r := Default().NewStringReader(src)
	if _, err := r.Next(); err != nil {
		return "", err
	}
	return r.Str()
}
