// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jason

import "fmt"

// A Position describes the location of the first character of a token in
// source text. Positions are counted in decoded characters, not bytes.
type Position struct {
	Offset int64 // character offset, 0-based
	Line   int   // line number, 1-based
	Column int   // column number, 1-based
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// startPosition is the position of the first character of an input.
var startPosition = Position{Line: 1, Column: 1}

// advance returns the position following p after consuming ch.
func (p Position) advance(ch rune) Position {
	p.Offset++
	if ch == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}
