// Package diagfmt prints the diagnostics of `pain-lsp check` as text, JSON
// or msgpack.
package diagfmt

import (
	"fmt"
	"path/filepath"
	"strings"

	"pain/internal/lsp"
	"pain/internal/observ"
)

// FileReport is the analysis result of one file.
type FileReport struct {
	Path        string
	Text        string
	Diagnostics []lsp.Diagnostic
	Timings     *observ.Report
}

// Format selects an output encoding.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatShort   Format = "short"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatShort, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want pretty, short, json or msgpack)", s)
}

// Count returns the number of errors and warnings across files.
func Count(files []FileReport) (errors, warnings int) {
	for _, f := range files {
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case lsp.SeverityError:
				errors++
			case lsp.SeverityWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}

func severityName(sev int) string {
	switch sev {
	case lsp.SeverityError:
		return "error"
	case lsp.SeverityWarning:
		return "warning"
	}
	return "info"
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
