package sema

import (
	"fmt"

	"pain/internal/ast"
	"pain/internal/token"
)

var (
	tInt     = ast.Simple(ast.TypeInt)
	tStr     = ast.Simple(ast.TypeStr)
	tFloat   = ast.Simple(ast.TypeFloat64)
	tBool    = ast.Simple(ast.TypeBool)
	tDynamic = ast.Simple(ast.TypeDynamic)
	tVoid    = ast.Simple(ast.TypeVoid)
	tNone    = ast.Simple(ast.TypeNone)
)

// Check type-checks prog against ctx and returns the first error, or nil.
// Items are checked in declaration order, followed by module-level statements.
func Check(prog *ast.Program, ctx *Context) *TypeError {
	if prog == nil {
		return nil
	}
	if ctx == nil {
		ctx = NewContextFor(prog, nil)
	}
	tc := &typeChecker{ctx: ctx, globals: collectGlobals(prog)}
	for _, it := range prog.Items {
		switch it := it.(type) {
		case *ast.Function:
			tc.checkFunction(it, nil, false)
		case *ast.Class:
			for _, m := range it.Methods {
				tc.checkFunction(m, it, false)
			}
		}
		if tc.err != nil {
			return tc.err
		}
	}

	tc.scopes = scopeStack{}
	tc.scopes.push()
	tc.checkStmts(prog.Body)
	return tc.err
}

type typeChecker struct {
	ctx      *Context
	globals  map[string]binding
	scopes   scopeStack
	fn       *ast.Function // текущая функция, nil на уровне модуля
	err      *TypeError
}

// collectGlobals gathers module-level bindings so functions may refer to them.
func collectGlobals(prog *ast.Program) map[string]binding {
	globals := make(map[string]binding)
	for _, st := range prog.Body {
		if let, ok := st.(*ast.LetStmt); ok {
			typ := let.Type
			if typ == nil {
				typ = tDynamic
			}
			globals[let.Name] = binding{typ: typ, mutable: let.Mutable, span: let.NameSpan}
		}
	}
	return globals
}

func (tc *typeChecker) fail(err *TypeError) {
	if tc.err == nil {
		tc.err = err
	}
}

func (tc *typeChecker) failed() bool { return tc.err != nil }

// checkFunction checks fn in a fresh scope stack; a nested function sees the enclosing locals.
func (tc *typeChecker) checkFunction(fn *ast.Function, owner *ast.Class, nested bool) {
	outerFn, outerScopes := tc.fn, tc.scopes
	tc.fn = fn
	if !nested {
		tc.scopes = scopeStack{}
	}
	tc.scopes.push()
	for i, prm := range fn.Params {
		typ := prm.Type
		if typ == nil {
			typ = tDynamic
			if i == 0 && prm.Name == "self" && owner != nil {
				typ = ast.Named(owner.Name)
			}
		}
		tc.scopes.declare(prm.Name, binding{typ: typ, mutable: true, span: prm.Span})
	}
	tc.checkStmts(fn.Body)
	if nested {
		tc.scopes.pop()
	}
	tc.fn, tc.scopes = outerFn, outerScopes
}

func (tc *typeChecker) checkBlock(stmts []ast.Stmt) {
	tc.scopes.push()
	tc.checkStmts(stmts)
	tc.scopes.pop()
}

func (tc *typeChecker) checkStmts(stmts []ast.Stmt) {
	for _, st := range stmts {
		if tc.failed() {
			return
		}
		tc.checkStmt(st)
	}
}

func (tc *typeChecker) checkStmt(st ast.Stmt) {
	switch st := st.(type) {
	case *ast.LetStmt:
		tc.checkLet(st)
	case *ast.AssignStmt:
		tc.checkAssign(st)
	case *ast.ExprStmt:
		tc.infer(st.X)
	case *ast.ReturnStmt:
		tc.checkReturn(st)
	case *ast.IfStmt:
		tc.infer(st.Cond)
		tc.checkBlock(st.Then)
		tc.checkBlock(st.Else)
	case *ast.WhileStmt:
		tc.infer(st.Cond)
		tc.checkBlock(st.Body)
	case *ast.ForStmt:
		iter := tc.infer(st.Iter)
		if tc.failed() {
			return
		}
		elem, ok := elemType(iter)
		if !ok {
			tc.fail(&TypeError{Kind: InvalidOperation, Span: st.Iter.NodeSpan(), Detail: fmt.Sprintf("cannot iterate over `%s`", iter)})
			return
		}
		tc.scopes.push()
		tc.scopes.declare(st.Var, binding{typ: elem, span: st.VarSpan})
		tc.checkStmts(st.Body)
		tc.scopes.pop()
	case *ast.FuncDefStmt:
		tc.scopes.declare(st.Fn.Name, binding{typ: tDynamic, span: st.Fn.NameSpan})
		tc.checkFunction(st.Fn, nil, true)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.PassStmt:
	}
}

func (tc *typeChecker) checkLet(st *ast.LetStmt) {
	var valueType *ast.Type
	if st.Value != nil {
		valueType = tc.infer(st.Value)
		if tc.failed() {
			return
		}
	}
	declared := st.Type
	switch {
	case declared != nil && valueType != nil:
		if !assignable(declared, valueType) {
			tc.fail(&TypeError{Kind: TypeMismatch, Span: st.Value.NodeSpan(), Expected: declared, Found: valueType})
			return
		}
	case declared == nil && (valueType == nil || valueType.Kind == ast.TypeNone):
		tc.fail(&TypeError{
			Kind: CannotInferType,
			Span: st.NameSpan,
			Name: st.Name,
			Help: fmt.Sprintf("add a type annotation: `%s %s: <type>`", letKeyword(st), st.Name),
		})
		return
	case declared == nil && valueType.Kind == ast.TypeVoid:
		tc.fail(&TypeError{Kind: InvalidOperation, Span: st.Value.NodeSpan(), Detail: fmt.Sprintf("cannot bind `%s` to an expression returning void", st.Name)})
		return
	case declared == nil:
		declared = valueType
	}
	tc.scopes.declare(st.Name, binding{typ: declared, mutable: st.Mutable, span: st.NameSpan})
}

func letKeyword(st *ast.LetStmt) string {
	if st.Mutable {
		return "var"
	}
	return "let"
}

func (tc *typeChecker) checkAssign(st *ast.AssignStmt) {
	if id, ok := st.Target.(*ast.Ident); ok {
		b, found := tc.resolveBinding(id.Name)
		if !found {
			tc.fail(&TypeError{Kind: UndefinedVariable, Span: id.Span, Name: id.Name, Help: tc.suggest(id.Name)})
			return
		}
		if !b.mutable {
			tc.fail(&TypeError{
				Kind:   InvalidOperation,
				Span:   id.Span,
				Detail: fmt.Sprintf("cannot assign twice to immutable variable `%s`", id.Name),
				Help:   fmt.Sprintf("declare it with `var %s` to make it mutable", id.Name),
			})
			return
		}
		value := tc.infer(st.Value)
		if tc.failed() {
			return
		}
		if !assignable(b.typ, value) {
			tc.fail(&TypeError{Kind: TypeMismatch, Span: st.Value.NodeSpan(), Expected: b.typ, Found: value})
		}
		return
	}
	target := tc.infer(st.Target)
	if tc.failed() {
		return
	}
	value := tc.infer(st.Value)
	if tc.failed() {
		return
	}
	if !assignable(target, value) {
		tc.fail(&TypeError{Kind: TypeMismatch, Span: st.Value.NodeSpan(), Expected: target, Found: value})
	}
}

func (tc *typeChecker) checkReturn(st *ast.ReturnStmt) {
	got := tVoid
	if st.Value != nil {
		got = tc.infer(st.Value)
		if tc.failed() {
			return
		}
	}
	if tc.fn == nil || tc.fn.ReturnType == nil {
		return
	}
	want := tc.fn.ReturnType
	if !assignable(want, got) {
		span := st.Span
		if st.Value != nil {
			span = st.Value.NodeSpan()
		}
		tc.fail(&TypeError{Kind: TypeMismatch, Span: span, Expected: want, Found: got})
	}
}

// resolveBinding ищет переменную: локальные области, затем глобальные (только внутри функций).
func (tc *typeChecker) resolveBinding(name string) (binding, bool) {
	if b, ok := tc.scopes.lookup(name); ok {
		return b, true
	}
	if tc.fn != nil {
		if b, ok := tc.globals[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

func (tc *typeChecker) infer(e ast.Expr) *ast.Type {
	if tc.failed() || e == nil {
		return tDynamic
	}
	switch e := e.(type) {
	case *ast.Ident:
		return tc.inferIdent(e)
	case *ast.IntLit:
		return tInt
	case *ast.FloatLit:
		return tFloat
	case *ast.StringLit:
		return tStr
	case *ast.BoolLit:
		return tBool
	case *ast.NoneLit:
		return tNone
	case *ast.ListLit:
		elem := tDynamic
		for i, x := range e.Elems {
			t := tc.infer(x)
			if i == 0 {
				elem = t
			} else if !sameType(elem, t) {
				elem = tDynamic
			}
		}
		return ast.ListOf(elem)
	case *ast.UnaryExpr:
		return tc.inferUnary(e)
	case *ast.BinaryExpr:
		return tc.inferBinary(e)
	case *ast.CallExpr:
		return tc.inferCall(e)
	case *ast.MemberExpr:
		return tc.inferMember(e)
	case *ast.IndexExpr:
		return tc.inferIndex(e)
	}
	return tDynamic
}

func (tc *typeChecker) inferIdent(id *ast.Ident) *ast.Type {
	if b, ok := tc.resolveBinding(id.Name); ok {
		return b.typ
	}
	if _, ok := tc.ctx.Function(id.Name); ok {
		return tDynamic
	}
	if _, ok := tc.ctx.Class(id.Name); ok {
		return ast.Named(id.Name)
	}
	if _, ok := tc.ctx.Builtin(id.Name); ok {
		return tDynamic
	}
	tc.fail(&TypeError{Kind: UndefinedVariable, Span: id.Span, Name: id.Name, Help: tc.suggest(id.Name)})
	return tDynamic
}

func (tc *typeChecker) inferUnary(e *ast.UnaryExpr) *ast.Type {
	x := tc.infer(e.X)
	if tc.failed() {
		return tDynamic
	}
	if e.Op == token.KwNot {
		return tBool
	}
	if x.Kind == ast.TypeDynamic || x.IsNumeric() {
		return x
	}
	tc.fail(&TypeError{Kind: InvalidOperation, Span: e.Span, Detail: fmt.Sprintf("cannot negate `%s`", x)})
	return tDynamic
}

func (tc *typeChecker) inferBinary(e *ast.BinaryExpr) *ast.Type {
	x := tc.infer(e.X)
	y := tc.infer(e.Y)
	if tc.failed() {
		return tDynamic
	}
	switch e.Op {
	case token.KwAnd, token.KwOr, token.EqEq, token.BangEq:
		return tBool
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		if isDynamic(x) || isDynamic(y) || (x.IsNumeric() && y.IsNumeric()) || (x.Kind == ast.TypeStr && y.Kind == ast.TypeStr) {
			return tBool
		}
	case token.Plus:
		if t, ok := arithmetic(x, y); ok {
			return t
		}
		if x.Kind == ast.TypeStr && y.Kind == ast.TypeStr {
			return tStr
		}
		if x.Kind == ast.TypeList && y.Kind == ast.TypeList {
			return x
		}
	case token.Minus, token.Star, token.Slash, token.Percent:
		if t, ok := arithmetic(x, y); ok {
			return t
		}
	}
	tc.fail(&TypeError{
		Kind:   InvalidOperation,
		Span:   e.Span,
		Detail: fmt.Sprintf("cannot apply `%s` to `%s` and `%s`", e.Op, x, y),
	})
	return tDynamic
}

// arithmetic: int op int -> int, любой float -> float, dynamic заражает результат.
func arithmetic(x, y *ast.Type) (*ast.Type, bool) {
	switch {
	case isDynamic(x) || isDynamic(y):
		return tDynamic, true
	case x.Kind == ast.TypeInt && y.Kind == ast.TypeInt:
		return tInt, true
	case x.IsNumeric() && y.IsNumeric():
		if x.IsFloat() {
			return x, true
		}
		return y, true
	}
	return nil, false
}

func (tc *typeChecker) inferCall(e *ast.CallExpr) *ast.Type {
	switch fn := e.Fn.(type) {
	case *ast.Ident:
		if _, ok := tc.resolveBinding(fn.Name); ok {
			tc.inferArgs(e.Args)
			return tDynamic
		}
		if decl, ok := tc.ctx.Function(fn.Name); ok {
			tc.checkArgs(e, fn.Name, paramTypes(decl.Params, false), false, fnSignature(decl))
			return returnType(decl)
		}
		if _, ok := tc.ctx.Class(fn.Name); ok {
			tc.inferArgs(e.Args)
			return ast.Named(fn.Name)
		}
		if b, ok := tc.ctx.Builtin(fn.Name); ok {
			params := make([]*ast.Type, len(b.Params))
			for i := range b.Params {
				params[i] = b.Params[i].Type
			}
			tc.checkArgs(e, fn.Name, params, b.Variadic, b.Signature())
			return b.Return
		}
		tc.fail(&TypeError{Kind: UndefinedVariable, Span: fn.Span, Name: fn.Name, Help: tc.suggest(fn.Name)})
		return tDynamic
	case *ast.MemberExpr:
		return tc.inferMethodCall(e, fn)
	default:
		tc.infer(e.Fn)
		tc.inferArgs(e.Args)
		return tDynamic
	}
}

func (tc *typeChecker) inferMethodCall(e *ast.CallExpr, member *ast.MemberExpr) *ast.Type {
	// Point.new(...) - статический вызов через имя класса
	if id, ok := member.X.(*ast.Ident); ok {
		if _, isVar := tc.resolveBinding(id.Name); !isVar {
			if cls, ok := tc.ctx.Class(id.Name); ok {
				m, ok := cls.Method(member.Name)
				if !ok {
					tc.fail(&TypeError{Kind: InvalidOperation, Span: member.NameSpan, Detail: fmt.Sprintf("class `%s` has no method `%s`", cls.Name, member.Name)})
					return tDynamic
				}
				tc.checkArgs(e, cls.Name+"."+m.Name, paramTypes(m.Params, true), false, fnSignature(m))
				return returnType(m)
			}
		}
	}

	recv := tc.infer(member.X)
	if tc.failed() {
		return tDynamic
	}
	if recv.Kind == ast.TypeNamed {
		if cls, ok := tc.ctx.Class(recv.Name); ok {
			m, ok := cls.Method(member.Name)
			if !ok {
				tc.fail(&TypeError{Kind: InvalidOperation, Span: member.NameSpan, Detail: fmt.Sprintf("`%s` has no method `%s`", cls.Name, member.Name)})
				return tDynamic
			}
			tc.checkArgs(e, cls.Name+"."+m.Name, paramTypes(m.Params, true), false, fnSignature(m))
			return returnType(m)
		}
	}
	tc.inferArgs(e.Args)
	return tDynamic
}

func (tc *typeChecker) inferArgs(args []ast.Expr) {
	for _, a := range args {
		tc.infer(a)
	}
}

// checkArgs проверяет количество и типы аргументов вызова.
func (tc *typeChecker) checkArgs(e *ast.CallExpr, name string, params []*ast.Type, variadic bool, signature string) {
	if len(e.Args) < len(params) || (!variadic && len(e.Args) > len(params)) {
		tc.fail(&TypeError{
			Kind:   InvalidOperation,
			Span:   e.Span,
			Detail: fmt.Sprintf("`%s` expects %s, found %d", name, plural(len(params), "argument"), len(e.Args)),
			Help:   "declared as " + signature,
		})
		return
	}
	for i, a := range e.Args {
		got := tc.infer(a)
		if tc.failed() {
			return
		}
		if i >= len(params) {
			continue
		}
		if !assignable(params[i], got) {
			tc.fail(&TypeError{Kind: TypeMismatch, Span: a.NodeSpan(), Expected: params[i], Found: got, Help: "declared as " + signature})
			return
		}
	}
}

func (tc *typeChecker) inferMember(e *ast.MemberExpr) *ast.Type {
	recv := tc.infer(e.X)
	if tc.failed() || recv.Kind != ast.TypeNamed {
		return tDynamic
	}
	cls, ok := tc.ctx.Class(recv.Name)
	if !ok {
		return tDynamic
	}
	if f, ok := cls.Field(e.Name); ok {
		return f.Type
	}
	if _, ok := cls.Method(e.Name); ok {
		return tDynamic
	}
	tc.fail(&TypeError{Kind: InvalidOperation, Span: e.NameSpan, Detail: fmt.Sprintf("`%s` has no field `%s`", cls.Name, e.Name)})
	return tDynamic
}

func (tc *typeChecker) inferIndex(e *ast.IndexExpr) *ast.Type {
	x := tc.infer(e.X)
	tc.infer(e.Index)
	if tc.failed() {
		return tDynamic
	}
	switch x.Kind {
	case ast.TypeList, ast.TypeArray, ast.TypeTensor:
		if el := x.Elem(); el != nil {
			return el
		}
		return tDynamic
	case ast.TypeMap:
		if len(x.Args) == 2 {
			return x.Args[1]
		}
		return tDynamic
	case ast.TypeStr:
		return tStr
	case ast.TypeDynamic, ast.TypeNamed:
		return tDynamic
	}
	tc.fail(&TypeError{Kind: InvalidOperation, Span: e.Span, Detail: fmt.Sprintf("cannot index into `%s`", x)})
	return tDynamic
}

// elemType returns the loop variable type when iterating over t.
func elemType(t *ast.Type) (*ast.Type, bool) {
	switch t.Kind {
	case ast.TypeList, ast.TypeArray, ast.TypeTensor:
		if el := t.Elem(); el != nil {
			return el, true
		}
		return tDynamic, true
	case ast.TypeMap:
		if el := t.Elem(); el != nil {
			return el, true
		}
		return tDynamic, true
	case ast.TypeStr:
		return tStr, true
	case ast.TypeDynamic, ast.TypeNamed:
		return tDynamic, true
	}
	return nil, false
}

func paramTypes(params []ast.Param, method bool) []*ast.Type {
	if method && len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	out := make([]*ast.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
		if out[i] == nil {
			out[i] = tDynamic
		}
	}
	return out
}

func returnType(fn *ast.Function) *ast.Type {
	if fn.ReturnType == nil {
		return tVoid
	}
	return fn.ReturnType
}

func fnSignature(fn *ast.Function) string {
	s := "fn " + fn.Name + "("
	for i, p := range fn.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name
		if p.Type != nil {
			s += ": " + p.Type.String()
		}
	}
	s += ")"
	if fn.ReturnType != nil {
		s += " -> " + fn.ReturnType.String()
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func isDynamic(t *ast.Type) bool {
	return t == nil || t.Kind == ast.TypeDynamic
}

// assignable reports whether a value of type got may be stored where want is expected.
func assignable(want, got *ast.Type) bool {
	switch {
	case isDynamic(want) || isDynamic(got):
		return true
	case got.Kind == ast.TypeNone:
		return want.Kind != ast.TypeVoid
	case want.IsFloat() && got.IsNumeric():
		return true
	case want.Kind != got.Kind:
		return false
	case want.Kind == ast.TypeNamed:
		return want.Name == got.Name
	}
	if len(want.Args) != len(got.Args) {
		return len(got.Args) == 0
	}
	for i := range want.Args {
		if !assignable(want.Args[i], got.Args[i]) {
			return false
		}
	}
	return true
}

func sameType(a, b *ast.Type) bool {
	return assignable(a, b) && assignable(b, a)
}
