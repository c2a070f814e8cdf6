package ast

// Inspect walks the subtree rooted at n in source order, calling fn for each node.
// Returning false from fn skips the node's children. Nested functions are visited.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Function:
		for i := range n.Attrs {
			for _, a := range n.Attrs[i].Args {
				Inspect(a, fn)
			}
		}
		inspectStmts(n.Body, fn)
	case *Class:
		for _, m := range n.Methods {
			Inspect(m, fn)
		}
	case *LetStmt:
		Inspect(n.Value, fn)
	case *AssignStmt:
		Inspect(n.Target, fn)
		Inspect(n.Value, fn)
	case *ExprStmt:
		Inspect(n.X, fn)
	case *ReturnStmt:
		Inspect(n.Value, fn)
	case *IfStmt:
		Inspect(n.Cond, fn)
		inspectStmts(n.Then, fn)
		inspectStmts(n.Else, fn)
	case *WhileStmt:
		Inspect(n.Cond, fn)
		inspectStmts(n.Body, fn)
	case *ForStmt:
		Inspect(n.Iter, fn)
		inspectStmts(n.Body, fn)
	case *FuncDefStmt:
		Inspect(n.Fn, fn)
	case *ListLit:
		for _, e := range n.Elems {
			Inspect(e, fn)
		}
	case *UnaryExpr:
		Inspect(n.X, fn)
	case *BinaryExpr:
		Inspect(n.X, fn)
		Inspect(n.Y, fn)
	case *CallExpr:
		Inspect(n.Fn, fn)
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *MemberExpr:
		Inspect(n.X, fn)
	case *IndexExpr:
		Inspect(n.X, fn)
		Inspect(n.Index, fn)
	}
}

// InspectProgram walks every item and then every module-level statement.
func InspectProgram(p *Program, fn func(Node) bool) {
	if p == nil {
		return
	}
	for _, it := range p.Items {
		Inspect(it, fn)
	}
	inspectStmts(p.Body, fn)
}

func inspectStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}

