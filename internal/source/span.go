package source

import "fmt"

// Position is a human-readable location in a document.
// Both fields are 1-based; the zero value means "unknown".
type Position struct {
	Line   int
	Column int
}

// Start returns the position of the first byte of a document.
func Start() Position {
	return Position{Line: 1, Column: 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p precedes other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Span covers the region between two positions, end inclusive of its line.
type Span struct {
	Start Position
	End   Position
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// At returns a span that starts and ends at p.
func At(p Position) Span {
	return Span{Start: p, End: p}
}

// Line returns the 1-based start line.
func (s Span) Line() int { return s.Start.Line }

// Column returns the 1-based start column.
func (s Span) Column() int { return s.Start.Column }

// ContainsLine reports whether a 1-based line falls inside the span.
func (s Span) ContainsLine(line int) bool {
	return line >= s.Start.Line && line <= s.End.Line
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
