package lexer

import "regexp"

type Operator = string

var (
	Keywords = map[string]TokenKind{
		"let":      TokenLet,
		"function": TokenFunction,
		"while":    TokenWhile,
		"if":       TokenIf,
		"else":     TokenElse,
		"print":    TokenPrint,
		"free":     TokenFree,
		"true":     TokenBool,
		"false":    TokenBool,
	}

	ArithmeticOperators = map[TokenKind]Operator{
		TokenPlus:     "+",
		TokenMinus:    "-",
		TokenMultiply: "*",
		TokenSlash:    "/",
		TokenModule:   "%",
		TokenPower:    "**",
	}

	BooleanOperators = map[TokenKind]Operator{
		TokenEquals:         "==",
		TokenNotEquals:      "!=",
		TokenGreater:        ">",
		TokenGreaterOrEqual: ">=",
		TokenLess:           "<",
		TokenLessOrEqual:    "<=",
		TokenAnd:            "&&",
		TokenOr:             "||",
	}

	UnaryOperators = map[TokenKind]Operator{
		TokenExclamation: "!",
		TokenMinus:       "-",
	}
)

type rule struct {
	kind    TokenKind
	pattern *regexp.Regexp
	skip    bool
}

// rules are tried in order, the first one matching at the cursor wins.
// every multi char operator sits above the single char operators it starts with.
var rules = []rule{
	{kind: "whitespace", pattern: regexp.MustCompile(`^\s+`), skip: true},
	{kind: TokenComment, pattern: regexp.MustCompile(`^//[^\n]*`), skip: true},
	{kind: TokenFloat, pattern: regexp.MustCompile(`^\d+\.\d+([eE][+-]?\d+)?`)},
	{kind: TokenInt, pattern: regexp.MustCompile(`^\d+`)},
	{kind: TokenIdentifier, pattern: regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*`)},

	{kind: TokenPower, pattern: regexp.MustCompile(`^\*\*`)},
	{kind: TokenLessOrEqual, pattern: regexp.MustCompile(`^<=`)},
	{kind: TokenGreaterOrEqual, pattern: regexp.MustCompile(`^>=`)},
	{kind: TokenEquals, pattern: regexp.MustCompile(`^==`)},
	{kind: TokenNotEquals, pattern: regexp.MustCompile(`^!=`)},
	{kind: TokenAnd, pattern: regexp.MustCompile(`^&&`)},
	{kind: TokenOr, pattern: regexp.MustCompile(`^\|\|`)},

	{kind: TokenBraceOpen, pattern: regexp.MustCompile(`^\(`)},
	{kind: TokenBraceClose, pattern: regexp.MustCompile(`^\)`)},
	{kind: TokenCurlyBraceOpen, pattern: regexp.MustCompile(`^\{`)},
	{kind: TokenCurlyBraceClose, pattern: regexp.MustCompile(`^\}`)},
	{kind: TokenSemicolon, pattern: regexp.MustCompile(`^;`)},
	{kind: TokenComma, pattern: regexp.MustCompile(`^,`)},
	{kind: TokenQuestion, pattern: regexp.MustCompile(`^\?`)},
	{kind: TokenColon, pattern: regexp.MustCompile(`^:`)},
	{kind: TokenPlus, pattern: regexp.MustCompile(`^\+`)},
	{kind: TokenMinus, pattern: regexp.MustCompile(`^-`)},
	{kind: TokenMultiply, pattern: regexp.MustCompile(`^\*`)},
	{kind: TokenSlash, pattern: regexp.MustCompile(`^/`)},
	{kind: TokenModule, pattern: regexp.MustCompile(`^%`)},
	{kind: TokenLess, pattern: regexp.MustCompile(`^<`)},
	{kind: TokenGreater, pattern: regexp.MustCompile(`^>`)},
	{kind: TokenExclamation, pattern: regexp.MustCompile(`^!`)},
	{kind: TokenAssign, pattern: regexp.MustCompile(`^=`)},
}
