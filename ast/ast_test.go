package ast

import (
	"bella/lexer"
	"testing"
)

func tok(kind lexer.TokenKind, text string) lexer.Token {
	return lexer.Token{LiteralToken: lexer.LiteralToken{Kind: kind, Text: text}}
}

func ident(name string) *Identifier {
	return &Identifier{Token: tok(lexer.TokenIdentifier, name), Value: name}
}

func sampleProgram() *Program {
	return &Program{
		Statements: []Statement{
			&LetStatement{
				Token: tok(lexer.TokenLet, "let"),
				Name:  ident("x"),
				Value: &BinaryExpression{
					Token:    tok(lexer.TokenPlus, "+"),
					Operator: "+",
					Left:     &IntegerLiteral{Token: tok(lexer.TokenInt, "1"), Value: 1},
					Right:    &FloatLiteral{Token: tok(lexer.TokenFloat, "2.5"), Value: 2.5},
				},
			},
			&IfStatement{
				Token:     tok(lexer.TokenIf, "if"),
				Condition: &BooleanLiteral{Token: tok(lexer.TokenBool, "true"), Value: true},
				Consequence: &BlockStatement{
					Token: tok(lexer.TokenCurlyBraceOpen, "{"),
					Body: []Statement{
						&FreeStatement{Token: tok(lexer.TokenFree, "free"), Target: ident("p")},
					},
				},
			},
		},
	}
}

func TestProgramString(t *testing.T) {
	expected := "let x = (1 + 2.5); if true { free(p); }"
	if actual := sampleProgram().String(); actual != expected {
		t.Errorf("expected=%q, got=%q", expected, actual)
	}
}

func TestDump(t *testing.T) {
	expected := "Program: program\n" +
		"|\tDeclaration: let\n" +
		"|\t|\tId: x\n" +
		"|\t|\tOperator: +\n" +
		"|\t|\t|\tInt: 1\n" +
		"|\t|\t|\tFloat: 2.5\n" +
		"|\tBranch: if\n" +
		"|\t|\tKeyword: true\n" +
		"|\t|\tBlock: block\n" +
		"|\t|\t|\tFree: free\n" +
		"|\t|\t|\t|\tId: p\n"

	if actual := Dump(sampleProgram()); actual != expected {
		t.Errorf("expected=\n%s\ngot=\n%s", expected, actual)
	}
}
