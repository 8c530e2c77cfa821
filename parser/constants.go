package parser

import "bella/lexer"

// binary precedence levels, lowest first. unary operators and the ternary have no
// level of their own: both are only recognised at the entry of an expression.
const (
	_ int = iota
	OR         // ||
	AND        // &&
	COMPARISON // == != < <= > >=
	SUM        // + -
	PRODUCT    // * / %
	POWER      // **
)

var precedences = map[lexer.TokenKind]int{
	lexer.TokenOr:             OR,
	lexer.TokenAnd:            AND,
	lexer.TokenEquals:         COMPARISON,
	lexer.TokenNotEquals:      COMPARISON,
	lexer.TokenLess:           COMPARISON,
	lexer.TokenLessOrEqual:    COMPARISON,
	lexer.TokenGreater:        COMPARISON,
	lexer.TokenGreaterOrEqual: COMPARISON,
	lexer.TokenPlus:           SUM,
	lexer.TokenMinus:          SUM,
	lexer.TokenMultiply:       PRODUCT,
	lexer.TokenSlash:          PRODUCT,
	lexer.TokenModule:         PRODUCT,
	lexer.TokenPower:          POWER,
}

// DefaultMaxDepth bounds how deep blocks and nested expressions may go
const DefaultMaxDepth = 256
