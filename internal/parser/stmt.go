package parser

import (
	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/token"
)

// parseBlock разбирает тело после ':' - либо отступ, либо одну инструкцию на той же строке.
func (p *Parser) parseBlock() []ast.Stmt {
	if !p.at(token.Newline) {
		if stmt, ok := p.parseStmt(); ok {
			return []ast.Stmt{stmt}
		}
		return nil
	}
	p.advance()
	if !p.at(token.Indent) {
		p.errorf(diag.SynExpectBlock, "expected an indented block, found %s", p.peek().Describe())
		return nil
	}
	p.advance()
	if !p.enter() {
		return nil
	}
	defer p.leave()

	var stmts []ast.Stmt
	for !p.atOr(token.Dedent, token.EOF) && !p.failed() {
		switch p.peek().Kind {
		case token.Newline:
			p.advance()
		case token.Indent:
			p.errorf(diag.SynUnexpectedToken, "unexpected indentation")
			p.skipBlock()
		default:
			if stmt, ok := p.parseStmt(); ok {
				stmts = append(stmts, stmt)
			}
		}
	}
	if p.at(token.Dedent) {
		p.advance()
	}
	return stmts
}

// parseStmt разбирает одну инструкцию. При ошибке парсер уже восстановлен до следующей строки.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwLet, token.KwVar:
		return p.parseLetStmt()
	case token.KwIf:
		return p.parseIfStmt(p.advance())
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		tok := p.advance()
		p.endOfStmt()
		return &ast.BreakStmt{Base: ast.Base{Span: tok.Span}}, true
	case token.KwContinue:
		tok := p.advance()
		p.endOfStmt()
		return &ast.ContinueStmt{Base: ast.Base{Span: tok.Span}}, true
	case token.KwPass:
		tok := p.advance()
		p.endOfStmt()
		return &ast.PassStmt{Base: ast.Base{Span: tok.Span}}, true
	case token.KwFn, token.At:
		doc := p.peek().Doc
		attrs := p.parseAttrs()
		if !p.at(token.KwFn) {
			p.errorf(diag.SynUnexpectedToken, "expected 'fn' after attributes, found %s", p.peek().Describe())
			p.syncLine()
			return nil, false
		}
		fn, ok := p.parseFn(doc, attrs)
		if !ok {
			return nil, false
		}
		return &ast.FuncDefStmt{Base: ast.Base{Span: fn.Span}, Fn: fn}, true
	case token.KwElif, token.KwElse:
		p.errorf(diag.SynUnexpectedToken, "%s without matching 'if'", p.peek().Describe())
		p.syncLine()
		return nil, false
	default:
		return p.parseSimpleStmt()
	}
}

// endOfStmt ожидает конец логической строки.
func (p *Parser) endOfStmt() {
	switch p.peek().Kind {
	case token.Newline:
		p.advance()
	case token.Dedent, token.EOF:
	default:
		p.errorf(diag.SynUnexpectedToken, "expected end of line, found %s", p.peek().Describe())
		p.syncLine()
	}
}

func (p *Parser) parseLetStmt() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "variable name")
	if !ok {
		p.syncLine()
		return nil, false
	}
	let := &ast.LetStmt{Name: name.Text, NameSpan: name.Span, Mutable: kw.Kind == token.KwVar}
	if p.at(token.Colon) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			p.syncLine()
			return nil, false
		}
		let.Type = typ
	}
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			p.syncLine()
			return nil, false
		}
		let.Value = value
	}
	let.Span = p.spanFrom(kw.Span)
	p.endOfStmt()
	return let, true
}

// parseIfStmt разбирает if/elif после ключевого слова; elif превращается во вложенный IfStmt.
func (p *Parser) parseIfStmt(kw token.Token) (ast.Stmt, bool) {
	cond, ok := p.parseExpr()
	if !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after condition"); !ok {
		p.syncLine()
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: p.parseBlock()}
	switch p.peek().Kind {
	case token.KwElif:
		elif, ok := p.parseIfStmt(p.advance())
		if ok {
			stmt.Else = []ast.Stmt{elif}
		}
	case token.KwElse:
		p.advance()
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after 'else'"); !ok {
			p.syncLine()
			break
		}
		stmt.Else = p.parseBlock()
	}
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after loop condition"); !ok {
		p.syncLine()
		return nil, false
	}
	stmt := &ast.WhileStmt{Cond: cond, Body: p.parseBlock()}
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "loop variable")
	if !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "'in' after loop variable"); !ok {
		p.syncLine()
		return nil, false
	}
	iter, ok := p.parseExpr()
	if !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after for header"); !ok {
		p.syncLine()
		return nil, false
	}
	stmt := &ast.ForStmt{Var: name.Text, VarSpan: name.Span, Iter: iter, Body: p.parseBlock()}
	stmt.Span = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	kw := p.advance()
	stmt := &ast.ReturnStmt{}
	if !p.atOr(token.Newline, token.Dedent, token.EOF) {
		value, ok := p.parseExpr()
		if !ok {
			p.syncLine()
			return nil, false
		}
		stmt.Value = value
	}
	stmt.Span = p.spanFrom(kw.Span)
	p.endOfStmt()
	return stmt, true
}

// parseSimpleStmt разбирает выражение или присваивание `target = value`.
func (p *Parser) parseSimpleStmt() (ast.Stmt, bool) {
	start := p.peek().Span
	x, ok := p.parseExpr()
	if !ok {
		p.syncLine()
		return nil, false
	}
	if p.at(token.Assign) {
		switch x.(type) {
		case *ast.Ident, *ast.MemberExpr, *ast.IndexExpr:
		default:
			p.errorf(diag.SynUnexpectedToken, "cannot assign to this expression")
			p.syncLine()
			return nil, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			p.syncLine()
			return nil, false
		}
		stmt := &ast.AssignStmt{Target: x, Value: value}
		stmt.Span = p.spanFrom(start)
		p.endOfStmt()
		return stmt, true
	}
	stmt := &ast.ExprStmt{X: x}
	stmt.Span = p.spanFrom(start)
	p.endOfStmt()
	return stmt, true
}
