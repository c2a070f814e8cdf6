package lsp

import (
	"fortio.org/safecast"

	"pain/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// spanToRange is the only place where front-end positions become protocol
// positions: 1-based (line, col) maps to (line-1, col-1)..(line-1, col).
// Unknown (zero) positions saturate at the top of the document.
func spanToRange(sp source.Span) Range {
	line := safeUint32(sp.Start.Line - 1)
	col := safeUint32(sp.Start.Column - 1)
	end := col
	if end < maxUint32 {
		end++
	}
	return Range{
		Start: Position{Line: line, Character: col},
		End:   Position{Line: line, Character: end},
	}
}

func safeInt(n uint32) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		return 0
	}
	return v
}

// toLine converts a 0-based protocol line into a 1-based front-end line.
func toLine(p Position) int {
	return safeInt(p.Line) + 1
}
