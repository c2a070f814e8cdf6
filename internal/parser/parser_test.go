package parser

import (
	"errors"
	"strings"
	"testing"

	"pain/internal/ast"
	"pain/internal/diag"
	"pain/internal/token"
)

func TestParseFunction(t *testing.T) {
	src := strings.Join([]string{
		"/// Adds two numbers.",
		"@inline",
		"@test(1, 2)",
		"fn add(a: int, b: int) -> int:",
		"    let sum = a + b",
		"    return sum",
	}, "\n")
	prog := mustParse(t, src)
	fns := prog.Functions()
	if len(fns) != 1 {
		t.Fatalf("expected 1 function, got %d", len(fns))
	}
	fn := fns[0]
	if fn.Name != "add" || len(fn.Params) != 2 || fn.ReturnType.String() != "int" {
		t.Fatalf("unexpected signature: %+v", fn)
	}
	if fn.Doc != "Adds two numbers." {
		t.Fatalf("doc = %q", fn.Doc)
	}
	if len(fn.Attrs) != 2 || fn.Attrs[0].Name != "inline" || fn.Attrs[1].Name != "test" || len(fn.Attrs[1].Args) != 2 {
		t.Fatalf("unexpected attrs: %+v", fn.Attrs)
	}
	if fn.Span.Start.Line != 4 || fn.Span.End.Line != 6 {
		t.Fatalf("function span = %s", fn.Span)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
}

func TestParseClass(t *testing.T) {
	src := strings.Join([]string{
		"/// A 2D point.",
		"class Point:",
		"    let x: int",
		"    var y: float64",
		"",
		"    /// Getter.",
		"    fn get_x(self) -> int:",
		"        return self.x",
		"",
		"    @static",
		"    fn new(x: int, y: float64) -> Point:",
		"        let p = Point()",
		"        return p",
	}, "\n")
	prog := mustParse(t, src)
	classes := prog.Classes()
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	cls := classes[0]
	if cls.Name != "Point" || cls.Doc != "A 2D point." {
		t.Fatalf("unexpected class: %s %q", cls.Name, cls.Doc)
	}
	if len(cls.Fields) != 2 || cls.Fields[0].Mutable || !cls.Fields[1].Mutable || cls.Fields[1].Type.String() != "float64" {
		t.Fatalf("unexpected fields: %+v", cls.Fields)
	}
	getX, ok := cls.Method("get_x")
	if !ok || getX.Doc != "Getter." || getX.Params[0].Type != nil {
		t.Fatalf("unexpected get_x: %+v", getX)
	}
	ctor, ok := cls.Method("new")
	if !ok || len(ctor.Attrs) != 1 || ctor.Attrs[0].Name != "static" {
		t.Fatalf("unexpected new: %+v", ctor)
	}
}

func TestParseStatements(t *testing.T) {
	src := strings.Join([]string{
		"fn main():",
		"    var total = 0",
		"    for i in range(10):",
		"        if i % 2 == 0:",
		"            continue",
		"        elif i > 7:",
		"            break",
		"        else:",
		"            total = total + i",
		"    while not done and total < 100: pass",
		"    items[0] = -total",
		"    print(\"done\")",
	}, "\n")
	prog := mustParse(t, src)
	body := prog.Functions()[0].Body
	if len(body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(body))
	}
	forStmt, ok := body[1].(*ast.ForStmt)
	if !ok || forStmt.Var != "i" {
		t.Fatalf("expected for statement, got %T", body[1])
	}
	ifStmt := forStmt.Body[0].(*ast.IfStmt)
	elif, ok := ifStmt.Else[0].(*ast.IfStmt)
	if !ok || len(elif.Else) != 1 {
		t.Fatalf("expected elif chain, got %+v", ifStmt.Else)
	}
	if _, ok := elif.Else[0].(*ast.AssignStmt); !ok {
		t.Fatalf("expected assignment in else, got %T", elif.Else[0])
	}
	while := body[2].(*ast.WhileStmt)
	cond, ok := while.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != token.KwAnd {
		t.Fatalf("expected 'and' condition, got %+v", while.Cond)
	}
	if _, ok := while.Body[0].(*ast.PassStmt); !ok {
		t.Fatalf("expected inline pass, got %T", while.Body[0])
	}
	assign := body[3].(*ast.AssignStmt)
	if _, ok := assign.Target.(*ast.IndexExpr); !ok {
		t.Fatalf("expected index target, got %T", assign.Target)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "let x = 1 + 2 * 3 - 4\n")
	let := prog.Body[0].(*ast.LetStmt)
	sub, ok := let.Value.(*ast.BinaryExpr)
	if !ok || sub.Op != token.Minus {
		t.Fatalf("expected top-level '-', got %+v", let.Value)
	}
	add := sub.X.(*ast.BinaryExpr)
	if add.Op != token.Plus {
		t.Fatalf("expected '+', got %v", add.Op)
	}
	if mul := add.Y.(*ast.BinaryExpr); mul.Op != token.Star {
		t.Fatalf("expected '*', got %v", mul.Op)
	}
}

func TestParseTypes(t *testing.T) {
	cases := []string{
		"int",
		"list[str]",
		"array[float32]",
		"map[str, list[int]]",
		"Tensor[float32, [2, 3]]",
		"Point",
		"dynamic",
	}
	for _, typ := range cases {
		prog := mustParse(t, "let v: "+typ+" = none\n")
		let := prog.Body[0].(*ast.LetStmt)
		if got := let.Type.String(); got != typ {
			t.Fatalf("type %q parsed as %q", typ, got)
		}
	}
}

func TestTopLevelStatementsGoToBody(t *testing.T) {
	prog := mustParse(t, "let x = undefined_variable\nprint(x)\n")
	if len(prog.Items) != 0 || len(prog.Body) != 2 {
		t.Fatalf("items=%d body=%d", len(prog.Items), len(prog.Body))
	}
}

func TestRecoveryKeepsLaterItems(t *testing.T) {
	src := strings.Join([]string{
		"fn broken(:",
		"    return 1",
		"",
		"let = 5",
		"",
		"fn ok() -> int:",
		"    return 2",
	}, "\n")
	prog, errs, err := ParseWithRecovery(src)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %s", errorsSummary(errs))
	}
	if errs[0].Span.Start.Line != 1 || errs[1].Span.Start.Line != 4 {
		t.Fatalf("unexpected error lines: %s", errorsSummary(errs))
	}
	fns := prog.Functions()
	if len(fns) != 1 || fns[0].Name != "ok" {
		t.Fatalf("expected recovered function 'ok', got %+v", fns)
	}
}

func TestUnclosedCallRecovers(t *testing.T) {
	prog, errs, err := ParseWithRecovery("print(1 +)\nlet y = 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Code != diag.SynExpectExpression {
		t.Fatalf("unexpected errors: %s", errorsSummary(errs))
	}
	if len(prog.Body) != 2 {
		t.Fatalf("expected both statements, got %d", len(prog.Body))
	}
}

func TestLexErrorsBecomeParseErrors(t *testing.T) {
	_, errs, err := ParseWithRecovery("let s = \"open\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected errors: %s", errorsSummary(errs))
	}
}

func TestLexAndParseErrorsAreOrderedByPosition(t *testing.T) {
	// лексер отчитывается раньше парсера, порядок задаёт позиция
	_, errs, err := ParseWithRecovery("let = 1\nlet s = \"open\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 2 || errs[0].Span.Start.Line != 1 || errs[1].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected errors: %s", errorsSummary(errs))
	}
}

func TestNestingLimit(t *testing.T) {
	src := "let x = " + strings.Repeat("(", MaxDepth+5) + "1" + strings.Repeat(")", MaxDepth+5) + "\n"
	prog, errs, err := ParseWithRecovery(src)
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
	if prog != nil {
		t.Fatal("expected nil program on fatal error")
	}
	if len(errs) == 0 || errs[len(errs)-1].Code != diag.SynNestingTooDeep {
		t.Fatalf("expected nesting diagnostic, got %s", errorsSummary(errs))
	}
}

func TestErrorLimit(t *testing.T) {
	src := strings.Repeat("let = 1\n", MaxErrors+10)
	prog, errs, err := ParseWithRecovery(src)
	if !errors.Is(err, ErrTooManyErrors) {
		t.Fatalf("expected ErrTooManyErrors, got %v", err)
	}
	if prog != nil || len(errs) != MaxErrors+1 {
		t.Fatalf("prog=%v errors=%d", prog, len(errs))
	}
}

func TestModerateNestingIsFine(t *testing.T) {
	src := "let x = " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + "\n"
	mustParse(t, src)
}
