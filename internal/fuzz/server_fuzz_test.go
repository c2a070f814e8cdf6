package fuzztests

import (
	"testing"

	"pain/internal/lsp"
	"pain/internal/source"
)

// FuzzBackendRequests drives one document through every request the server
// answers. The fault boundaries must absorb whatever the front-end does.
func FuzzBackendRequests(f *testing.F) {
	addCorpusSeeds(f)
	opts := lsp.DefaultCompletionOptions()

	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		b := lsp.NewBackend(nil, lsp.Options{})

		diags := b.Analyze(text)
		for _, d := range diags {
			if d.Range.End.Line < d.Range.Start.Line {
				t.Fatalf("inverted range: %+v", d.Range)
			}
		}

		prog, ok := b.Cache().GetOrParse("file:///fuzz.pain", text)
		if !ok {
			prog = nil
		}
		lines := len(source.Lines(text))
		for line := 0; line <= lines && line < 64; line++ {
			pos := lsp.Position{Line: uint32(line), Character: uint32(line % 7)}
			if items := lsp.Complete(prog, text, pos, opts); len(items) == 0 {
				t.Fatalf("empty completion at %+v", pos)
			}
			if prog != nil {
				_, _ = lsp.HoverAt(prog, line+1, 1)
			}
		}
	})
}
