package parser

import (
	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/token"
)

// parseAttrs разбирает последовательность `@name` / `@name(args)`, каждая на своей строке.
func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.At) && !p.failed() {
		at := p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "attribute name")
		if !ok {
			p.syncLine()
			continue
		}
		attr := ast.Attr{Name: name.Text}
		if p.at(token.LParen) {
			p.advance()
			attr.Args = p.parseArgs()
		}
		attr.Span = p.spanFrom(at.Span)
		attrs = append(attrs, attr)
		if p.at(token.Newline) {
			p.advance()
		}
	}
	return attrs
}

// parseFn разбирает `fn name(params) [-> T]: block`.
func (p *Parser) parseFn(doc string, attrs []ast.Attr) (*ast.Function, bool) {
	fnTok := p.advance()
	if doc == "" {
		doc = fnTok.Doc
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "function name")
	if !ok {
		p.syncLine()
		return nil, false
	}
	fn := &ast.Function{Name: name.Text, NameSpan: name.Span, Attrs: attrs, Doc: doc}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after function name"); !ok {
		p.syncLine()
		return nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		p.syncLine()
		return nil, false
	}
	fn.Params = params

	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			p.syncLine()
			return nil, false
		}
		fn.ReturnType = ret
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after function signature"); !ok {
		p.syncLine()
		return nil, false
	}
	fn.Body = p.parseBlock()
	fn.Span = p.spanFrom(fnTok.Span)
	return fn, !p.failed()
}

// parseParams читает параметры до ')' включительно.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	for !p.at(token.RParen) {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		if !ok {
			return nil, false
		}
		param := ast.Param{Name: name.Text}
		if p.at(token.Colon) {
			p.advance()
			typ, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.Type = typ
		}
		param.Span = p.spanFrom(name.Span)
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseClass разбирает `class Name:` с полями и методами.
func (p *Parser) parseClass(doc string) (*ast.Class, bool) {
	classTok := p.advance()
	if doc == "" {
		doc = classTok.Doc
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "class name")
	if !ok {
		p.syncLine()
		return nil, false
	}
	cls := &ast.Class{Name: name.Text, NameSpan: name.Span, Doc: doc}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "':' after class name"); !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.Newline, diag.SynExpectBlock, "newline before class body"); !ok {
		p.syncLine()
		return nil, false
	}
	if _, ok := p.expect(token.Indent, diag.SynExpectBlock, "indented class body"); !ok {
		cls.Span = p.spanFrom(classTok.Span)
		return cls, true
	}
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	for !p.atOr(token.Dedent, token.EOF) && !p.failed() {
		switch p.peek().Kind {
		case token.Newline:
			p.advance()
		case token.KwPass:
			p.advance()
			p.endOfStmt()
		case token.KwLet, token.KwVar:
			if field, ok := p.parseField(); ok {
				cls.Fields = append(cls.Fields, field)
			}
		case token.KwFn, token.At:
			doc := p.peek().Doc
			attrs := p.parseAttrs()
			if !p.at(token.KwFn) {
				p.errorf(diag.SynUnexpectedToken, "expected 'fn' after attributes, found %s", p.peek().Describe())
				p.syncLine()
				continue
			}
			if m, ok := p.parseFn(doc, attrs); ok {
				cls.Methods = append(cls.Methods, m)
			}
		default:
			p.errorf(diag.SynUnexpectedToken, "expected field or method in class body, found %s", p.peek().Describe())
			p.syncLine()
		}
	}
	if p.at(token.Dedent) {
		p.advance()
	}
	cls.Span = p.spanFrom(classTok.Span)
	return cls, !p.failed()
}

// parseField разбирает `let name: T [= value]` внутри класса; значение по умолчанию отбрасывается.
func (p *Parser) parseField() (ast.Field, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "field name")
	if !ok {
		p.syncLine()
		return ast.Field{}, false
	}
	field := ast.Field{Name: name.Text, Mutable: kw.Kind == token.KwVar}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "':' and a type for field"); !ok {
		p.syncLine()
		return ast.Field{}, false
	}
	typ, ok := p.parseType()
	if !ok {
		p.syncLine()
		return ast.Field{}, false
	}
	field.Type = typ
	if p.at(token.Assign) {
		p.advance()
		if _, ok := p.parseExpr(); !ok {
			p.syncLine()
			return ast.Field{}, false
		}
	}
	field.Span = p.spanFrom(kw.Span)
	p.endOfStmt()
	return field, true
}
