package parser

import (
	"bella/ast"
	"bella/internals"
	"bella/lexer"
	"bella/semantics"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func parse(code string) (*Parser, *ast.Program, error) {
	tokens, err := lexer.NewLexer("", code).Tokenize()
	if err != nil {
		return nil, nil, err
	}

	p := NewParser(tokens, "")
	program, err := p.Parse()
	return p, program, err
}

func tok(kind lexer.TokenKind, text string, row, col int) lexer.Token {
	return lexer.Token{LiteralToken: lexer.LiteralToken{Kind: kind, Text: text}, Row: row, Col: col}
}

func TestLetDeclaration(t *testing.T) {
	code := `
let x = 1 + 2;
`

	output := &ast.Program{
		Statements: []ast.Statement{
			&ast.LetStatement{
				Token: tok(lexer.TokenLet, "let", 2, 1),
				Name: &ast.Identifier{
					Token: tok(lexer.TokenIdentifier, "x", 2, 5),
					Value: "x",
				},
				Value: &ast.BinaryExpression{
					Token:    tok(lexer.TokenPlus, "+", 2, 11),
					Operator: "+",
					Left:     &ast.IntegerLiteral{Token: tok(lexer.TokenInt, "1", 2, 9), Value: 1},
					Right:    &ast.IntegerLiteral{Token: tok(lexer.TokenInt, "2", 2, 13), Value: 2},
				},
			},
		},
	}

	_, program, err := parse(code)
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}

	if diff := deep.Equal(program, output); diff != nil {
		t.Error(diff)
	}
}

func TestFunctionAndCall(t *testing.T) {
	code := `function add(a, b) = a + b;
print add(1, 2);`

	output := &ast.Program{
		Statements: []ast.Statement{
			&ast.FunctionStatement{
				Token: tok(lexer.TokenFunction, "function", 1, 1),
				Name:  &ast.Identifier{Token: tok(lexer.TokenIdentifier, "add", 1, 10), Value: "add"},
				Params: []*ast.Identifier{
					{Token: tok(lexer.TokenIdentifier, "a", 1, 14), Value: "a"},
					{Token: tok(lexer.TokenIdentifier, "b", 1, 17), Value: "b"},
				},
				Body: &ast.BinaryExpression{
					Token:    tok(lexer.TokenPlus, "+", 1, 24),
					Operator: "+",
					Left:     &ast.Identifier{Token: tok(lexer.TokenIdentifier, "a", 1, 22), Value: "a"},
					Right:    &ast.Identifier{Token: tok(lexer.TokenIdentifier, "b", 1, 26), Value: "b"},
				},
			},
			&ast.PrintStatement{
				Token: tok(lexer.TokenPrint, "print", 2, 1),
				Value: &ast.CallExpression{
					Token:    tok(lexer.TokenIdentifier, "add", 2, 7),
					Function: &ast.Identifier{Token: tok(lexer.TokenIdentifier, "add", 2, 7), Value: "add"},
					Args: []ast.Expression{
						&ast.IntegerLiteral{Token: tok(lexer.TokenInt, "1", 2, 11), Value: 1},
						&ast.IntegerLiteral{Token: tok(lexer.TokenInt, "2", 2, 14), Value: 2},
					},
				},
			},
		},
	}

	_, program, err := parse(code)
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}

	if diff := deep.Equal(program, output); diff != nil {
		t.Error(diff)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"let x = 1 + 2 * 3;", "let x = (1 + (2 * 3));"},
		{"let x = 1 - 2 - 3;", "let x = ((1 - 2) - 3);"},
		{"let x = 2 ** 3 ** 2;", "let x = ((2 ** 3) ** 2);"},
		{"let x = (1 + 2) * 3;", "let x = ((1 + 2) * 3);"},
		{"let b = 1 < 2 && 3 >= 4 || false;", "let b = (((1 < 2) && (3 >= 4)) || false);"},
		{"let x = -5;", "let x = (-5);"},
		{"let b = !true;", "let b = (!true);"},
		{"let y = 1 < 2 ? 1.5 : 2;", "let y = ((1 < 2) ? 1.5 : 2);"},
		{"let a = 1; let b = -(a + 1) ;", "let a = 1; let b = (-(a + 1));"},
		{"while 1 < 2 { print 1; }", "while (1 < 2) { print 1; }"},
		{"if true { } else { print 2.5; }", "if true { } else { print 2.5; }"},
		{"let p = alloc(); free(p);", "let p = alloc(); free(p);"},
		{"let x = 1; // trailing comment\nprint x;", "let x = 1; print x;"},
		{"function f() = 1; print f();", "function f() = 1; print f();"},
	}

	for _, tt := range tests {
		_, program, err := parse(tt.code)
		if err != nil {
			t.Errorf("ERROR: %q: %v", tt.code, err)
			continue
		}

		if got := program.String(); got != tt.expected {
			t.Errorf("ERROR: %q: expected %q, got %q", tt.code, tt.expected, got)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	code := `let p = alloc();
function f(a, b) = a > b ? a : b;
if f(1, 2) { let q = 2 ** 3; print q; } else { print -1; }
while false { print p; }
free(p);`

	_, first, err := parse(code)
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}
	_, second, err := parse(code)
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}

	if diff := deep.Equal(first, second); diff != nil {
		t.Error(diff)
	}
}

func TestDeclaredTypes(t *testing.T) {
	code := `let i = 42;
let f = 4.2;
let b = false;
let c = i;
let s = f * 2.0;
let r = i > 1;
let n = -f;
let t = b ? 1 : 2.0;
let p = alloc();
function g(x) = x;
let h = g(1);`

	expected := map[string]semantics.Type{
		"i": semantics.IntegerType,
		"f": semantics.FloatType,
		"b": semantics.BooleanType,
		"c": semantics.IntegerType,
		"s": semantics.FloatType,
		"r": semantics.BooleanType,
		"n": semantics.FloatType,
		"t": semantics.AnyType,
		"p": semantics.IntegerType,
		"g": semantics.AnyType,
		"h": semantics.AnyType,
	}

	p, _, err := parse(code)
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}

	for name, tp := range expected {
		got, err := p.Symbols().Lookup(name)
		if err != nil {
			t.Errorf("ERROR: %s: %v", name, err)
			continue
		}
		if got != tp {
			t.Errorf("ERROR: %s: expected %s, got %s", name, tp, got)
		}
	}

	// parameters don't outlive the function
	if _, err := p.Symbols().Lookup("x"); !internals.IsKind(err, internals.DeclarationError) {
		t.Errorf("ERROR: expected x to be out of scope, got %v", err)
	}
}

func TestBlockScopesArePopped(t *testing.T) {
	p, _, err := parse("if true { let inner = 1; } let outer = 2;")
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}

	if _, err := p.Symbols().Lookup("inner"); err == nil {
		t.Error("ERROR: inner should not be visible after its block")
	}
	if p.Symbols().Depth() != 0 {
		t.Errorf("ERROR: expected depth 0, got %d", p.Symbols().Depth())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind internals.ErrorKind
		msg  string
	}{
		{"missing semicolon", "let x = 1", internals.SyntaxError, "expected ;"},
		{"missing initializer", "let x;", internals.SyntaxError, "expected ="},
		{"unary as left operand", "let a = 1; let b = 2; let x = -a + b;", internals.SyntaxError, `expected ;, instead got "+"`},
		{"unary as right operand", "let a = 1; let b = 2; let x = a + -b;", internals.SyntaxError, `unexpected token "-"`},
		{"mixed types", "let x = 1 + 2.0;", internals.TypeError, "incompatible types for operation: INTEGER + FLOAT"},
		{"negated boolean", "let x = -true;", internals.TypeError, "incompatible type"},
		{"undeclared identifier", "let x = y + 1;", internals.DeclarationError, `identifier "y" not declared`},
		{"incompatible redeclaration", "let x = 1; let x = true;", internals.DeclarationError, "reassigned to different type (INTEGER to BOOLEAN)"},
		{"trailing comma in call", "function f(a) = a; print f(1,);", internals.SyntaxError, `unexpected token ")"`},
		{"trailing comma in parameters", "function f(a,) = a;", internals.SyntaxError, "expected identifier"},
		{"statement keyword expected", "1 + 2;", internals.SyntaxError, "unexpected input"},
		{"unclosed parenthesis", "print (1 + 2;", internals.SyntaxError, "expected )"},
		{"free needs an identifier", "free(1);", internals.SyntaxError, "expected identifier"},
		{"function not visible in own body", "function f(a) = f(a) + 1;", internals.DeclarationError, `identifier "f" not declared`},
		{"undeclared print argument", "print y;", internals.DeclarationError, `identifier "y" not declared`},
		{"undeclared while condition", "while y { }", internals.DeclarationError, `identifier "y" not declared`},
		{"undeclared if condition", "if y { }", internals.DeclarationError, `identifier "y" not declared`},
		{"undeclared callee", "print g(1);", internals.DeclarationError, `identifier "g" not declared`},
		{"undeclared call argument", "function f(a) = a; print f(z);", internals.DeclarationError, `identifier "z" not declared`},
		{"undeclared name in function body", "function f(a) = b;", internals.DeclarationError, `identifier "b" not declared`},
		{"undeclared ternary branch", "let t = true ? 1 : w;", internals.DeclarationError, `identifier "w" not declared`},
		{"bare block", "{ print 1; }", internals.SyntaxError, `unexpected input "{"`},
		{"negated boolean in print", "print -true;", internals.TypeError, "incompatible type for operation: -BOOLEAN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, program, err := parse(tt.code)
			if err == nil {
				t.Fatalf("ERROR: expected an error, got %s", program.String())
			}
			if kind := internals.KindOf(err); kind != tt.kind {
				t.Errorf("ERROR: expected %s, got %s (%v)", tt.kind, kind, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("ERROR: expected %q in %q", tt.msg, err.Error())
			}
		})
	}
}

func TestIncompleteInput(t *testing.T) {
	for _, code := range []string{"let x = 1", "if true { print 1;", "function f(a, b", "print (1 +"} {
		_, _, err := parse(code)
		if !internals.IsIncomplete(err) {
			t.Errorf("ERROR: %q: expected an incomplete error, got %v", code, err)
		}
	}

	_, _, err := parse("let x = 1 +;")
	if internals.IsIncomplete(err) {
		t.Errorf("ERROR: a misplaced token is not incomplete input: %v", err)
	}
}

func TestErrorPosition(t *testing.T) {
	_, _, err := parse("let a = 1;\nlet b = a + 2.5;")
	if err == nil {
		t.Fatal("ERROR: expected a type error")
	}

	expected := ":2:11: TypeError: incompatible types for operation: INTEGER + FLOAT"
	if err.Error() != expected {
		t.Errorf("ERROR: expected %q, got %q", expected, err.Error())
	}
}

func TestMaxDepth(t *testing.T) {
	code := "let x = " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20) + ";"

	tokens, err := lexer.NewLexer("", code).Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	p := NewParser(tokens, "")
	p.MaxDepth = 10
	if _, err := p.Parse(); err == nil || !strings.Contains(err.Error(), "nesting deeper than 10 levels") {
		t.Errorf("ERROR: expected a nesting error, got %v", err)
	}

	p = NewParser(tokens, "")
	if _, err := p.Parse(); err != nil {
		t.Errorf("ERROR: %v", err)
	}

	// a non positive depth keeps the default bound
	nested := "print " + strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1) + ";"
	tokens, err = lexer.NewLexer("", nested).Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	p = NewParser(tokens, "")
	p.MaxDepth = 0
	if _, err := p.Parse(); err == nil || !strings.Contains(err.Error(), "nesting deeper than 256 levels") {
		t.Errorf("ERROR: expected the default bound, got %v", err)
	}
}

func TestLongOperatorChain(t *testing.T) {
	const terms = 50000

	var b strings.Builder
	b.WriteString("let a = 1; let x = a")
	for range terms - 1 {
		b.WriteString(" + 1")
	}
	b.WriteString(";")

	start := time.Now()
	p, _, err := parse(b.String())
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("ERROR: typing a chain of %d terms took %v, each node should be typed once", terms, elapsed)
	}

	if tp, _ := p.Symbols().Lookup("x"); tp != semantics.IntegerType {
		t.Errorf("ERROR: expected INTEGER, got %s", tp)
	}
}

func TestChainTypeErrorPosition(t *testing.T) {
	_, _, err := parse("let x = 1 + 2 + 3 + 4.5;")
	if err == nil {
		t.Fatal("ERROR: expected a type error")
	}

	expected := ":1:19: TypeError: incompatible types for operation: INTEGER + FLOAT"
	if err.Error() != expected {
		t.Errorf("ERROR: expected %q, got %q", expected, err.Error())
	}
}

func TestCommentTokensAreSkipped(t *testing.T) {
	tokens := []lexer.Token{
		tok(lexer.TokenComment, "// note", 1, 1),
		tok(lexer.TokenPrint, "print", 2, 1),
		tok(lexer.TokenInt, "1", 2, 7),
		tok(lexer.TokenComment, "// again", 2, 9),
		tok(lexer.TokenSemicolon, ";", 3, 1),
	}

	program, err := NewParser(tokens, "").Parse()
	if err != nil {
		t.Fatalf("ERROR: %v", err)
	}
	if program.String() != "print 1;" {
		t.Errorf("ERROR: got %q", program.String())
	}
}
