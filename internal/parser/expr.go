package parser

import (
	"strconv"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/token"
)

// Приоритеты (от слабого к сильному): or, and, not, сравнения, +/-, * / %, унарный минус, постфикс.

var compareOps = []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq}

func (p *Parser) parseExpr() (ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, bool) {
	return p.parseBinary(p.parseAnd, token.KwOr)
}

func (p *Parser) parseAnd() (ast.Expr, bool) {
	return p.parseBinary(p.parseNot, token.KwAnd)
}

func (p *Parser) parseNot() (ast.Expr, bool) {
	if !p.at(token.KwNot) {
		return p.parseCompare()
	}
	op := p.advance()
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	x, ok := p.parseNot()
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{Base: ast.Base{Span: p.spanFrom(op.Span)}, Op: token.KwNot, X: x}, true
}

func (p *Parser) parseCompare() (ast.Expr, bool) {
	return p.parseBinary(p.parseAdditive, compareOps...)
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	return p.parseBinary(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	return p.parseBinary(p.parseUnary, token.Star, token.Slash, token.Percent)
}

// parseBinary - левоассоциативная цепочка операторов одного уровня.
func (p *Parser) parseBinary(next func() (ast.Expr, bool), ops ...token.Kind) (ast.Expr, bool) {
	x, ok := next()
	if !ok {
		return nil, false
	}
	for p.atOr(ops...) {
		op := p.advance()
		y, ok := next()
		if !ok {
			return nil, false
		}
		x = &ast.BinaryExpr{Base: ast.Base{Span: x.NodeSpan().Cover(y.NodeSpan())}, Op: op.Kind, X: x, Y: y}
	}
	return x, true
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	if !p.at(token.Minus) {
		return p.parsePostfix()
	}
	op := p.advance()
	if !p.enter() {
		return nil, false
	}
	defer p.leave()
	x, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{Base: ast.Base{Span: p.spanFrom(op.Span)}, Op: token.Minus, X: x}, true
}

// parsePostfix разбирает вызовы, доступ к полям и индексацию.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	start := x.NodeSpan()
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args := p.parseArgs()
			if p.failed() {
				return nil, false
			}
			x = &ast.CallExpr{Base: ast.Base{Span: p.spanFrom(start)}, Fn: x, Args: args}
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "member name after '.'")
			if !ok {
				return nil, false
			}
			x = &ast.MemberExpr{Base: ast.Base{Span: p.spanFrom(start)}, X: x, Name: name.Text, NameSpan: name.Span}
		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']' after index"); !ok {
				return nil, false
			}
			x = &ast.IndexExpr{Base: ast.Base{Span: p.spanFrom(start)}, X: x, Index: index}
		default:
			return x, true
		}
	}
}

// parseArgs читает аргументы после '(' до ')' включительно.
// Broken arguments are reported and the list is closed at the next ')'.
func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			p.skipUntilCloseParen()
			return args
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close argument list"); !ok {
		p.skipUntilCloseParen()
	}
	return args
}

// skipUntilCloseParen stops after ')' or before the end of the line.
func (p *Parser) skipUntilCloseParen() {
	for !p.atOr(token.Newline, token.Dedent, token.Indent, token.EOF) {
		if p.advance().Kind == token.RParen {
			return
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Ident{Base: ast.Base{Span: tok.Span}, Name: tok.Text}, true
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.addError(diag.LexBadNumber, tok.Span, "integer literal out of range: "+tok.Text)
		}
		return &ast.IntLit{Base: ast.Base{Span: tok.Span}, Value: v}, true
	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.addError(diag.LexBadNumber, tok.Span, "invalid float literal: "+tok.Text)
		}
		return &ast.FloatLit{Base: ast.Base{Span: tok.Span}, Value: v}, true
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Base: ast.Base{Span: tok.Span}, Value: tok.Text}, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.Base{Span: tok.Span}, Value: tok.Kind == token.KwTrue}, true
	case token.KwNone:
		p.advance()
		return &ast.NoneLit{Base: ast.Base{Span: tok.Span}}, true
	case token.LParen:
		p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return nil, false
		}
		return x, true
	case token.LBracket:
		return p.parseListLit()
	default:
		p.errorf(diag.SynExpectExpression, "expected expression, found %s", tok.Describe())
		return nil, false
	}
}

func (p *Parser) parseListLit() (ast.Expr, bool) {
	open := p.advance()
	list := &ast.ListLit{}
	for !p.at(token.RBracket) {
		elem, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list.Elems = append(list.Elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']' to close list"); !ok {
		return nil, false
	}
	list.Span = p.spanFrom(open.Span)
	return list, true
}
