package lsp

import (
	"strings"

	"pain/internal/ast"
	"pain/internal/source"
	"pain/internal/stdlib"
)

// CompletionOptions bounds the work done per completion request.
type CompletionOptions struct {
	// MaxDetailed user functions and methods get a full signature; the
	// rest get `fn name`.
	MaxDetailed int
	// MaxBuiltins caps how many catalog entries are offered.
	MaxBuiltins int
	// BuiltinDetailCutoff: built-ins get a full signature only while fewer
	// items than this have been produced.
	BuiltinDetailCutoff int
	Builtins            []stdlib.Function
}

const (
	DefaultMaxDetailed         = 50
	DefaultMaxBuiltins         = 100
	DefaultBuiltinDetailCutoff = 200
)

// maxScopeDepth bounds the statement walk that collects locals.
const maxScopeDepth = 200

func DefaultCompletionOptions() CompletionOptions {
	return CompletionOptions{
		MaxDetailed:         DefaultMaxDetailed,
		MaxBuiltins:         DefaultMaxBuiltins,
		BuiltinDetailCutoff: DefaultBuiltinDetailCutoff,
		Builtins:            stdlib.Functions(),
	}
}

type keyword struct {
	label  string
	detail string
}

var keywordCompletions = []keyword{
	{"fn", "Function definition"},
	{"let", "Immutable variable"},
	{"var", "Mutable variable"},
	{"if", "Conditional statement"},
	{"else", "Else branch"},
	{"for", "For loop"},
	{"while", "While loop"},
	{"break", "Break out of loop"},
	{"continue", "Continue to next loop iteration"},
	{"return", "Return from function"},
}

func keywordItems() []CompletionItem {
	items := make([]CompletionItem, 0, len(keywordCompletions))
	for _, kw := range keywordCompletions {
		items = append(items, CompletionItem{Label: kw.label, Kind: CompletionKindKeyword, Detail: kw.detail})
	}
	return items
}

// fallbackCompletions is the list offered when nothing better is available.
func fallbackCompletions() []CompletionItem {
	return append(keywordItems(), CompletionItem{
		Label:  "print",
		Kind:   CompletionKindFunction,
		Detail: "print(value: dynamic) -> void",
	})
}

// Complete lists completion candidates at cursor. The result is never empty:
// a missing program, a cursor on a line the text does not have or a fault
// yields fallbackCompletions.
func Complete(program *ast.Program, text string, cursor Position, opts CompletionOptions) []CompletionItem {
	if program == nil {
		return fallbackCompletions()
	}
	if _, ok := source.LineAt(text, toLine(cursor)-1); !ok {
		return fallbackCompletions()
	}
	items := isolate("completion", []CompletionItem(nil), func() []CompletionItem {
		return complete(program, text, cursor, opts)
	})
	if len(items) == 0 {
		return fallbackCompletions()
	}
	return items
}

func complete(program *ast.Program, text string, cursor Position, opts CompletionOptions) []CompletionItem {
	line := toLine(cursor)
	memberAccess := isMemberAccess(text, cursor)

	var items []CompletionItem
	declared := make(map[string]bool)
	detailed := 0
	detail := func(fn *ast.Function) string {
		if detailed < opts.MaxDetailed {
			detailed++
			return formatSignature(fn)
		}
		return "fn " + fn.Name
	}

	for _, it := range program.Items {
		switch it := it.(type) {
		case *ast.Function:
			declared[it.Name] = true
			items = append(items, CompletionItem{
				Label:         it.Name,
				Kind:          CompletionKindFunction,
				Detail:        detail(it),
				Documentation: it.Doc,
			})
		case *ast.Class:
			items = append(items, CompletionItem{
				Label:         it.Name,
				Kind:          CompletionKindClass,
				Detail:        "class " + it.Name,
				Documentation: it.Doc,
			})
			for _, m := range it.Methods {
				declared[m.Name] = true
				items = append(items, CompletionItem{
					Label:         it.Name + "." + m.Name,
					Kind:          CompletionKindMethod,
					Detail:        detail(m),
					Documentation: m.Doc,
				})
			}
		}
	}

	for _, name := range localsAt(program, line) {
		if declared[name] {
			continue
		}
		items = append(items, CompletionItem{Label: name, Kind: CompletionKindVariable, Detail: "Variable"})
	}

	builtins := opts.Builtins
	if len(builtins) > opts.MaxBuiltins {
		builtins = builtins[:max(opts.MaxBuiltins, 0)]
	}
	for _, fn := range builtins {
		if declared[fn.Name] {
			continue
		}
		sig := fn.Name + "()"
		if len(items) < opts.BuiltinDetailCutoff {
			sig = builtinSignature(fn)
		}
		items = append(items, CompletionItem{
			Label:         fn.Name,
			Kind:          CompletionKindFunction,
			Detail:        sig,
			Documentation: fn.Description,
		})
	}

	if !memberAccess {
		items = append(items, keywordItems()...)
	}
	return items
}

// isMemberAccess reports whether the text before the cursor, ignoring
// trailing whitespace, ends with a dot.
func isMemberAccess(text string, cursor Position) bool {
	line, ok := source.LineAt(text, toLine(cursor)-1)
	if !ok {
		return false
	}
	prefix := line[:source.UTF16Offset(line, safeInt(cursor.Character))]
	return strings.HasSuffix(strings.TrimRight(prefix, " \t"), ".")
}

func builtinSignature(fn stdlib.Function) string {
	var b strings.Builder
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		writeType(&b, p.Type, 0)
	}
	b.WriteString(") -> ")
	writeType(&b, fn.Return, 0)
	return b.String()
}

// localsAt returns the parameters and let/var/for names of the first
// top-level function whose span covers line (1-based). Names come in first
// occurrence order, parameters first, without duplicates. Scoping is by
// function only, so names declared after the cursor are included too.
func localsAt(program *ast.Program, line int) []string {
	for _, fn := range program.Functions() {
		if !fn.Span.ContainsLine(line) {
			continue
		}
		c := localCollector{seen: make(map[string]bool)}
		for _, p := range fn.Params {
			c.add(p.Name)
		}
		c.stmts(fn.Body, 0)
		return c.names
	}
	return nil
}

type localCollector struct {
	seen  map[string]bool
	names []string
}

func (c *localCollector) add(name string) {
	if name == "" || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *localCollector) stmts(list []ast.Stmt, depth int) {
	if depth > maxScopeDepth {
		return
	}
	for _, st := range list {
		switch st := st.(type) {
		case *ast.LetStmt:
			c.add(st.Name)
		case *ast.ForStmt:
			c.add(st.Var)
			c.stmts(st.Body, depth+1)
		case *ast.IfStmt:
			c.stmts(st.Then, depth+1)
			c.stmts(st.Else, depth+1)
		case *ast.WhileStmt:
			c.stmts(st.Body, depth+1)
		}
	}
}
