package lsp

import "pain/internal/ast"

// HoverAt finds the first top-level function defined on line (1-based) or
// on the line just before it. The column is accepted for symmetry with the
// protocol but does not narrow the match.
func HoverAt(program *ast.Program, line, _ int) (*HoverInfo, bool) {
	if program == nil {
		return nil, false
	}
	for _, fn := range program.Functions() {
		start := fn.Span.Start.Line
		if line != start && line != start+1 {
			continue
		}
		info := isolate("hover signature", &HoverInfo{Signature: "fn " + fn.Name + "()"}, func() *HoverInfo {
			return &HoverInfo{Signature: formatSignature(fn)}
		})
		info.Doc = fn.Doc
		return info, true
	}
	return nil, false
}

// contents renders the hover blocks: the signature, then the doc comment
// after a rule.
func (h *HoverInfo) contents() []string {
	out := []string{h.Signature}
	if h.Doc != "" {
		out = append(out, "---\n"+h.Doc)
	}
	return out
}
