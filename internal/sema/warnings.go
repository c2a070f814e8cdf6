package sema

import (
	"sort"
	"strings"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/source"
)

type WarningKind uint8

const (
	UnusedVariable WarningKind = iota + 1
	UnusedFunction
	DeadCode
	UnreachableCode
)

// Warning is a non-fatal finding about a program that type-checks.
type Warning struct {
	Kind WarningKind
	// Name of the unused variable or function.
	Name string
	// Reason explains DeadCode.
	Reason string
	Span   source.Span
}

// Code maps the warning to its diagnostic code.
func (w Warning) Code() diag.Code {
	switch w.Kind {
	case UnusedVariable:
		return diag.WarnUnusedVariable
	case UnusedFunction:
		return diag.WarnUnusedFunction
	case DeadCode:
		return diag.WarnDeadCode
	case UnreachableCode:
		return diag.WarnUnreachableCode
	}
	return diag.UnknownCode
}

// CollectWarnings reports unused variables and functions, dead branches and
// unreachable statements, ordered by position. Usage is tracked by name, not
// by scope: any read of a name anywhere in the enclosing function counts.
func CollectWarnings(prog *ast.Program, ctx *Context) []Warning {
	if prog == nil {
		return nil
	}
	wc := &warningCollector{ctx: ctx}
	wc.unusedFunctions(prog)
	wc.unusedVariables(prog)
	for _, it := range prog.Items {
		switch it := it.(type) {
		case *ast.Function:
			wc.blocks(it.Body)
		case *ast.Class:
			for _, m := range it.Methods {
				wc.blocks(m.Body)
			}
		}
	}
	wc.blocks(prog.Body)

	sort.SliceStable(wc.out, func(i, j int) bool {
		a, b := wc.out[i].Span.Start, wc.out[j].Span.Start
		if a != b {
			return a.Before(b)
		}
		return wc.out[i].Kind < wc.out[j].Kind
	})
	return wc.out
}

type warningCollector struct {
	ctx *Context
	out []Warning
}

func (wc *warningCollector) add(w Warning) {
	wc.out = append(wc.out, w)
}

// reads returns every identifier read under the given nodes.
// A bare identifier on the left of `=` is a write, not a read.
func reads(nodes ...ast.Node) map[string]bool {
	seen := make(map[string]bool)
	for _, n := range nodes {
		ast.Inspect(n, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.AssignStmt:
				if _, ok := n.Target.(*ast.Ident); !ok {
					ast.Inspect(n.Target, func(t ast.Node) bool {
						if id, ok := t.(*ast.Ident); ok {
							seen[id.Name] = true
						}
						return true
					})
				}
				ast.Inspect(n.Value, func(t ast.Node) bool {
					if id, ok := t.(*ast.Ident); ok {
						seen[id.Name] = true
					}
					return true
				})
				return false
			case *ast.Ident:
				seen[n.Name] = true
			}
			return true
		})
	}
	return seen
}

func stmtNodes(stmts []ast.Stmt) []ast.Node {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}

func exempt(name string) bool {
	return strings.HasPrefix(name, "_")
}

func (wc *warningCollector) unusedFunctions(prog *ast.Program) {
	perItem := make([]map[string]bool, len(prog.Items))
	for i, it := range prog.Items {
		perItem[i] = reads(it)
	}
	body := reads(stmtNodes(prog.Body)...)

	for i, it := range prog.Items {
		fn, ok := it.(*ast.Function)
		if !ok || fn.Name == "main" || exempt(fn.Name) || len(fn.Attrs) > 0 {
			continue
		}
		if wc.ctx != nil {
			if registered, ok := wc.ctx.Function(fn.Name); !ok || registered != fn {
				continue
			}
		}
		used := body[fn.Name]
		for j := range prog.Items {
			if j != i && perItem[j][fn.Name] {
				used = true
				break
			}
		}
		if !used {
			wc.add(Warning{Kind: UnusedFunction, Name: fn.Name, Span: fn.NameSpan})
		}
	}
}

func (wc *warningCollector) unusedVariables(prog *ast.Program) {
	for _, it := range prog.Items {
		switch it := it.(type) {
		case *ast.Function:
			wc.unusedLocals(it.Body, reads(it))
		case *ast.Class:
			for _, m := range it.Methods {
				wc.unusedLocals(m.Body, reads(m))
			}
		}
	}

	// переменные модуля видны во всех функциях
	nodes := stmtNodes(prog.Body)
	for _, it := range prog.Items {
		nodes = append(nodes, it)
	}
	wc.unusedLocals(prog.Body, reads(nodes...))
}

// unusedLocals reports let/var bindings declared in stmts (nested functions included) that are never read.
func (wc *warningCollector) unusedLocals(stmts []ast.Stmt, used map[string]bool) {
	for _, st := range stmts {
		ast.Inspect(st, func(n ast.Node) bool {
			if let, ok := n.(*ast.LetStmt); ok && !used[let.Name] && !exempt(let.Name) {
				wc.add(Warning{Kind: UnusedVariable, Name: let.Name, Span: let.NameSpan})
			}
			return true
		})
	}
}

// blocks ищет мёртвые ветки и недостижимый код во всех вложенных блоках.
func (wc *warningCollector) blocks(stmts []ast.Stmt) {
	terminated := false
	for _, st := range stmts {
		if terminated {
			wc.add(Warning{Kind: UnreachableCode, Span: st.NodeSpan()})
			break
		}
		switch st := st.(type) {
		case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
			terminated = true
		case *ast.IfStmt:
			if lit, ok := st.Cond.(*ast.BoolLit); ok {
				switch {
				case !lit.Value:
					wc.add(Warning{Kind: DeadCode, Reason: "condition is always false", Span: st.Cond.NodeSpan()})
				case len(st.Else) > 0:
					wc.add(Warning{Kind: DeadCode, Reason: "else branch is never executed", Span: st.Cond.NodeSpan()})
				}
			}
			wc.blocks(st.Then)
			wc.blocks(st.Else)
		case *ast.WhileStmt:
			if lit, ok := st.Cond.(*ast.BoolLit); ok && !lit.Value {
				wc.add(Warning{Kind: DeadCode, Reason: "loop body never executes", Span: st.Cond.NodeSpan()})
			}
			wc.blocks(st.Body)
		case *ast.ForStmt:
			wc.blocks(st.Body)
		case *ast.FuncDefStmt:
			wc.blocks(st.Fn.Body)
		}
	}
}
