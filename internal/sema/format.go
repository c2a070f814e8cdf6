package sema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"pain/internal/source"
)

// Formatter renders a TypeError with the offending source line:
//
//	Undefined variable `x`
//	 --> 3:9
//	  |
//	3 | let y = x + 1
//	  |         ^
//	  = help: did you mean `xs`?
type Formatter struct {
	text string
	ctx  *Context
}

func NewFormatter(text string) *Formatter {
	return &Formatter{text: text}
}

// WithContext lets the formatter draw hints from program declarations.
func (f *Formatter) WithContext(ctx *Context) *Formatter {
	f.ctx = ctx
	return f
}

// Format returns a multi-line explanation; the first line is the headline.
func (f *Formatter) Format(err *TypeError) string {
	var b strings.Builder
	b.WriteString(err.Headline())

	start := err.Span.Start
	if start.Line > 0 {
		fmt.Fprintf(&b, "\n --> %s", start)
		if line, ok := source.LineAt(f.text, start.Line-1); ok {
			gutter := strconv.Itoa(start.Line)
			pad := strings.Repeat(" ", len(gutter))
			display := expandTabs(line)
			fmt.Fprintf(&b, "\n%s |\n%s | %s\n%s | %s", pad, gutter, display, pad, caretLine(line, err.Span))
		}
	}

	if help := f.help(err); help != "" {
		fmt.Fprintf(&b, "\n  = help: %s", help)
	}
	return b.String()
}

func (f *Formatter) help(err *TypeError) string {
	if err.Help != "" || f.ctx == nil || err.Kind != UndefinedVariable {
		return err.Help
	}
	tc := &typeChecker{ctx: f.ctx}
	return tc.suggest(err.Name)
}

// caretLine строит строку с ^ под span, учитывая ширину символов.
func caretLine(line string, sp source.Span) string {
	startOff := source.UTF16Offset(line, sp.Start.Column-1)
	endOff := startOff
	if sp.End.Line == sp.Start.Line && sp.End.Column > sp.Start.Column {
		endOff = source.UTF16Offset(line, sp.End.Column-1)
	}
	indent := runewidth.StringWidth(expandTabs(line[:startOff]))
	width := runewidth.StringWidth(expandTabs(line[startOff:endOff]))
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", indent) + strings.Repeat("^", width)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
