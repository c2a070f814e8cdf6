package lsp

import (
	"fmt"
	"strings"

	"pain/internal/observ"
	"pain/internal/parser"
	"pain/internal/sema"
)

const diagnosticSource = "pain"

// Analyze runs parse, type-check and warning collection over text. Faults in
// any stage drop that stage's findings; what earlier stages found is kept.
func (b *Backend) Analyze(text string) []Diagnostic {
	diags, _ := b.AnalyzeTimed(text)
	return diags
}

// AnalyzeTimed is Analyze that also returns the per-phase timings.
func (b *Backend) AnalyzeTimed(text string) ([]Diagnostic, *observ.Timer) {
	timer := observ.NewTimer()
	diags := isolate("analyze", []Diagnostic{}, func() []Diagnostic {
		return b.analyze(text, timer)
	})
	log.Debugf("analyze %d bytes: %s", len(text), timer.Line())
	return diags, timer
}

type checkOutcome struct {
	err *sema.TypeError
	ok  bool
}

func (b *Backend) analyze(text string, timer *observ.Timer) []Diagnostic {
	idx := timer.Begin("parse")
	prog, parseErrs, fatal := b.fe.ParseWithRecovery(text)
	timer.End(idx, fmt.Sprintf("%d errors", len(parseErrs)))

	out := make([]Diagnostic, 0, len(parseErrs))
	for _, pe := range parseErrs {
		out = append(out, parseErrorDiagnostic(pe))
	}
	if fatal != nil || prog == nil {
		return out
	}

	idx = timer.Begin("context")
	ctx := isolate("context", (*sema.Context)(nil), func() *sema.Context {
		return b.fe.NewContext(prog)
	})
	timer.End(idx, "")
	if ctx == nil {
		return out
	}

	idx = timer.Begin("typecheck")
	res := isolate("type check", checkOutcome{}, func() checkOutcome {
		return checkOutcome{err: b.fe.TypeCheck(prog, ctx), ok: true}
	})
	timer.End(idx, "")
	if !res.ok {
		return out
	}
	if res.err != nil {
		return append(out, b.typeErrorDiagnostic(text, ctx, res.err))
	}

	idx = timer.Begin("warnings")
	warnings := isolate("warnings", []sema.Warning(nil), func() []sema.Warning {
		return b.fe.CollectWarnings(prog, ctx)
	})
	timer.End(idx, fmt.Sprintf("%d warnings", len(warnings)))
	for _, w := range warnings {
		out = append(out, warningDiagnostic(w))
	}
	return out
}

func parseErrorDiagnostic(pe parser.Error) Diagnostic {
	return Diagnostic{
		Range:    spanToRange(pe.Span),
		Severity: SeverityError,
		Code:     pe.Code.ID(),
		Source:   diagnosticSource,
		Message:  pe.Message,
	}
}

func (b *Backend) typeErrorDiagnostic(text string, ctx *sema.Context, err *sema.TypeError) Diagnostic {
	msg := isolate("format type error", "type error: "+err.Headline(), func() string {
		return b.fe.FormatTypeError(text, ctx, err)
	})
	if first, _, ok := strings.Cut(msg, "\n"); ok {
		msg = first
	}
	return Diagnostic{
		Range:    spanToRange(err.Span),
		Severity: SeverityError,
		Code:     err.Code().ID(),
		Source:   diagnosticSource,
		Message:  msg,
	}
}

func warningDiagnostic(w sema.Warning) Diagnostic {
	return Diagnostic{
		Range:    spanToRange(w.Span),
		Severity: SeverityWarning,
		Code:     w.Code().ID(),
		Source:   diagnosticSource,
		Message:  warningMessage(w),
	}
}

func warningMessage(w sema.Warning) string {
	switch w.Kind {
	case sema.UnusedVariable:
		return fmt.Sprintf("unused variable `%s`", w.Name)
	case sema.UnusedFunction:
		return fmt.Sprintf("unused function `%s`", w.Name)
	case sema.DeadCode:
		return "dead code: " + w.Reason
	case sema.UnreachableCode:
		return "unreachable code"
	}
	return "warning"
}
