package parser

import (
	"errors"
	"fmt"
	"slices"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/lexer"
	"pain/internal/source"
	"pain/internal/token"
)

const (
	// MaxDepth bounds syntactic nesting (blocks, parentheses, unary chains, types).
	MaxDepth = 200
	// MaxErrors is the number of errors after which parsing gives up.
	MaxErrors = 100
)

var (
	// ErrTooDeep is returned when nesting exceeds MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
	// ErrTooManyErrors is returned when more than MaxErrors errors were found.
	ErrTooManyErrors = errors.New("too many errors")
)

// Error is a recoverable syntax error.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// Parser - состояние парсера на один документ
type Parser struct {
	toks  []token.Token
	pos   int
	prev  token.Token // последний съеденный токен
	errs  *diag.Bag
	depth int
	fatal error
}

// ParseWithRecovery parses text into a best-effort program and the syntax
// errors found along the way. A non-nil error means parsing was abandoned
// (ErrTooDeep, ErrTooManyErrors); the program is nil then, but the errors
// collected so far are still returned.
func ParseWithRecovery(text string) (*ast.Program, []Error, error) {
	p := &Parser{errs: diag.NewBag(0)}
	p.toks = lexer.Tokenize(text, lexer.Options{Reporter: p})
	prog := p.parseProgram()

	p.errs.Sort()
	errs := syntaxErrors(p.errs.Items())
	if p.fatal != nil {
		return nil, errs, p.fatal
	}
	return prog, errs, nil
}

func syntaxErrors(items []diag.Diagnostic) []Error {
	if len(items) == 0 {
		return nil
	}
	out := make([]Error, len(items))
	for i, d := range items {
		out[i] = Error{Code: d.Code, Span: d.Primary, Message: d.Message}
	}
	return out
}

// Report collects lexer errors; it makes Parser a diag.Reporter.
func (p *Parser) Report(code diag.Code, _ diag.Severity, primary source.Span, msg string) {
	p.addError(code, primary, msg)
}

func (p *Parser) addError(code diag.Code, sp source.Span, msg string) {
	if p.fatal != nil {
		return
	}
	if p.errs.Len() >= MaxErrors {
		p.errs.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynTooManyErrors, Primary: sp, Message: "too many errors, giving up"})
		p.fatal = ErrTooManyErrors
		return
	}
	p.errs.Add(diag.Diagnostic{Severity: diag.SevError, Code: code, Primary: sp, Message: msg})
}

// failed reports whether parsing was abandoned.
func (p *Parser) failed() bool {
	return p.fatal != nil
}

// enter увеличивает глубину вложенности; false - предел превышен.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > MaxDepth {
		if p.fatal == nil {
			p.errs.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynNestingTooDeep, Primary: p.peek().Span, Message: "nesting too deep"})
			p.fatal = ErrTooDeep
		}
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен; EOF никогда не съедается.
// prev tracks only real tokens so node spans end on source text.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	switch tok.Kind {
	case token.Newline, token.Indent, token.Dedent:
	default:
		p.prev = tok
	}
	return tok
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(code, "expected %s, found %s", what, p.peek().Describe())
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// errorf репортует ошибку на текущем токене
func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	p.addError(code, p.peek().Span, fmt.Sprintf(format, args...))
}

// spanFrom covers start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.prev.Span)
}

// parseProgram - основной цикл верхнего уровня.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) && !p.failed() {
		switch p.peek().Kind {
		case token.Newline, token.Dedent:
			p.advance()
		case token.Indent:
			p.errorf(diag.SynUnexpectedTopLevel, "unexpected indentation")
			p.skipBlock()
		case token.KwFn, token.KwClass, token.At:
			item, ok := p.parseItem()
			if ok {
				prog.Items = append(prog.Items, item)
			}
		default:
			if stmt, ok := p.parseStmt(); ok {
				prog.Body = append(prog.Body, stmt)
			}
		}
	}
	return prog
}

// parseItem разбирает fn или class вместе с атрибутами и doc-комментарием.
func (p *Parser) parseItem() (ast.Item, bool) {
	doc := p.peek().Doc
	attrs := p.parseAttrs()
	switch p.peek().Kind {
	case token.KwFn:
		fn, ok := p.parseFn(doc, attrs)
		if !ok {
			return nil, false
		}
		return fn, true
	case token.KwClass:
		cls, ok := p.parseClass(doc)
		if !ok {
			return nil, false
		}
		return cls, true
	default:
		p.errorf(diag.SynUnexpectedToken, "expected 'fn' after attributes, found %s", p.peek().Describe())
		p.syncLine()
		return nil, false
	}
}

// syncLine - восстановление после ошибки: до конца логической строки.
// A block opened by the broken line is skipped as well.
func (p *Parser) syncLine() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Newline:
			p.advance()
			if p.at(token.Indent) {
				p.skipBlock()
			}
			return
		case token.Dedent:
			return
		case token.Indent:
			p.skipBlock()
			return
		default:
			p.advance()
		}
	}
}

// skipBlock consumes an Indent and everything up to its matching Dedent.
func (p *Parser) skipBlock() {
	nesting := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.Indent:
			nesting++
		case token.Dedent:
			nesting--
			if nesting <= 0 {
				return
			}
		}
	}
}
