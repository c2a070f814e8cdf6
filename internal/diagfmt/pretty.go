package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pain/internal/lsp"
	"pain/internal/source"
)

const tabWidth = 4

// Pretty prints every diagnostic as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed, with opts.Context, by the source line and a caret under the
// start column. Lines and columns are 1-based; columns count UTF-16 units as
// the protocol does.
func Pretty(w io.Writer, files []FileReport, opts PrettyOpts) error {
	paint := newPalette(opts.Color)
	for _, f := range files {
		path := displayPath(f.Path, opts.PathMode)
		for _, d := range f.Diagnostics {
			line := int(d.Range.Start.Line) + 1
			col := int(d.Range.Start.Character) + 1
			label := paint.severity(d.Severity).Sprint(severityName(d.Severity))
			if d.Code != "" {
				label += " " + d.Code
			}
			header := fmt.Sprintf("%s:%d:%d: %s: %s", paint.path.Sprint(path), line, col, label, d.Message)
			if _, err := fmt.Fprintln(w, header); err != nil {
				return err
			}
			if !opts.Context {
				continue
			}
			text, ok := source.LineAt(f.Text, line-1)
			if !ok {
				continue
			}
			gutter := strconv.Itoa(line)
			pad := strings.Repeat(" ", len(gutter))
			caret := strings.Repeat(" ", caretColumn(text, col-1)) + "^"
			if _, err := fmt.Fprintf(w, "%s |\n%s | %s\n%s | %s\n",
				pad, gutter, expandTabs(text), pad, paint.severity(d.Severity).Sprint(caret)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Short prints one `path:line:col: severity: message` line per diagnostic.
func Short(w io.Writer, files []FileReport, mode PathMode) error {
	for _, f := range files {
		path := displayPath(f.Path, mode)
		for _, d := range f.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path,
				d.Range.Start.Line+1, d.Range.Start.Character+1,
				severityName(d.Severity), d.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// caretColumn is the display width of line before the UTF-16 column char.
func caretColumn(line string, char int) int {
	return runewidth.StringWidth(expandTabs(line[:source.UTF16Offset(line, char)]))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - width%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			width += n
			continue
		}
		b.WriteRune(r)
		width += runewidth.RuneWidth(r)
	}
	return b.String()
}

type palette struct {
	path    *color.Color
	errors  *color.Color
	warning *color.Color
	info    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		errors:  color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.path, p.errors, p.warning, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev int) *color.Color {
	switch sev {
	case lsp.SeverityError:
		return p.errors
	case lsp.SeverityWarning:
		return p.warning
	}
	return p.info
}
