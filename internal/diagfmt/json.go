package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"pain/internal/observ"
)

// LocationJSON is a 1-based location; Col counts UTF-16 units.
type LocationJSON struct {
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code,omitempty" msgpack:"code,omitempty"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

type FileJSON struct {
	Path        string           `json:"path" msgpack:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Timings     *observ.Report   `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files    []FileJSON `json:"files" msgpack:"files"`
	Errors   int        `json:"errors" msgpack:"errors"`
	Warnings int        `json:"warnings" msgpack:"warnings"`
	// Truncated is set when opts.Max cut the listing short.
	Truncated bool `json:"truncated,omitempty" msgpack:"truncated,omitempty"`
}

// Build converts reports into the serializable form shared by JSON and
// msgpack. Counts always cover every diagnostic, even when Max truncates.
func Build(files []FileReport, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(files))}
	out.Errors, out.Warnings = Count(files)
	emitted := 0
	for _, f := range files {
		fj := FileJSON{
			Path:        displayPath(f.Path, opts.PathMode),
			Diagnostics: make([]DiagnosticJSON, 0, len(f.Diagnostics)),
		}
		if opts.IncludeTimings {
			fj.Timings = f.Timings
		}
		for _, d := range f.Diagnostics {
			if opts.Max > 0 && emitted >= opts.Max {
				out.Truncated = true
				break
			}
			fj.Diagnostics = append(fj.Diagnostics, DiagnosticJSON{
				Severity: severityName(d.Severity),
				Code:     d.Code,
				Message:  d.Message,
				Location: LocationJSON{Line: d.Range.Start.Line + 1, Col: d.Range.Start.Character + 1},
			})
			emitted++
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON writes the diagnostics as a single JSON document.
func JSON(w io.Writer, files []FileReport, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Build(files, opts))
}

// Msgpack writes the same document as JSON in msgpack encoding.
func Msgpack(w io.Writer, files []FileReport, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(Build(files, opts))
}
