package parser

import (
	"strconv"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/token"
)

// parseType разбирает аннотацию типа: int, list[T], map[K, V], Tensor[T, [2, 3]], Name.
func (p *Parser) parseType() (*ast.Type, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	name, ok := p.expect(token.Ident, diag.SynExpectType, "type")
	if !ok {
		return nil, false
	}
	if k, ok := ast.LookupScalarType(name.Text); ok {
		return &ast.Type{Base: ast.Base{Span: name.Span}, Kind: k}, true
	}

	typ := &ast.Type{}
	arity := 0
	switch name.Text {
	case "list":
		typ.Kind, arity = ast.TypeList, 1
	case "array":
		typ.Kind, arity = ast.TypeArray, 1
	case "map":
		typ.Kind, arity = ast.TypeMap, 2
	case "Tensor":
		typ.Kind, arity = ast.TypeTensor, 1
	default:
		typ.Kind, typ.Name = ast.TypeNamed, name.Text
		typ.Span = name.Span
		return typ, true
	}

	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "'[' after "+name.Text); !ok {
		return nil, false
	}
	for i := 0; i < arity; i++ {
		if i > 0 {
			if _, ok := p.expect(token.Comma, diag.SynExpectType, "',' between type arguments"); !ok {
				return nil, false
			}
		}
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		typ.Args = append(typ.Args, arg)
	}
	if typ.Kind == ast.TypeTensor && p.at(token.Comma) {
		p.advance()
		dims, ok := p.parseDims()
		if !ok {
			return nil, false
		}
		typ.Dims = dims
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']' to close type arguments"); !ok {
		return nil, false
	}
	typ.Span = p.spanFrom(name.Span)
	return typ, true
}

// parseDims читает `[d1, d2, ...]` в типе тензора.
func (p *Parser) parseDims() ([]int, bool) {
	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "'[' before tensor dimensions"); !ok {
		return nil, false
	}
	var dims []int
	for !p.at(token.RBracket) {
		tok, ok := p.expect(token.IntLit, diag.SynExpectType, "tensor dimension")
		if !ok {
			return nil, false
		}
		d, err := strconv.Atoi(tok.Text)
		if err != nil {
			p.addError(diag.LexBadNumber, tok.Span, "tensor dimension out of range: "+tok.Text)
		}
		dims = append(dims, d)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']' after tensor dimensions"); !ok {
		return nil, false
	}
	return dims, true
}
