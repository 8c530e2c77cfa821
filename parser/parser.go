package parser

import (
	"bella/ast"
	"bella/internals"
	"bella/lexer"
	"bella/semantics"
	"fmt"
	"slices"
	"strconv"
)

type Parser struct {
	Tokens   []lexer.Token
	FilePath string
	Pos      int
	// blocks and nested expressions deeper than this are rejected,
	// DefaultMaxDepth applies when it isn't positive
	MaxDepth int

	depth     int
	symbols   *semantics.SymbolTable
	checker   *semantics.TypeChecker
	inference *semantics.TypeInference
}

func NewParser(tokens []lexer.Token, filePath string) *Parser {
	symbols := semantics.NewSymbolTable()
	checker := semantics.NewTypeChecker()

	return &Parser{
		// comments carry nothing the parser needs
		Tokens: slices.DeleteFunc(slices.Clone(tokens), func(tok lexer.Token) bool {
			return tok.Kind == lexer.TokenComment
		}),
		FilePath:  filePath,
		Pos:       0,
		MaxDepth:  DefaultMaxDepth,
		symbols:   symbols,
		checker:   checker,
		inference: semantics.NewTypeInference(checker, symbols),
	}
}

// Symbols exposes the table, after Parse only the root scope is left on it
func (p *Parser) Symbols() *semantics.SymbolTable {
	return p.symbols
}

func (p *Parser) curToken() lexer.Token {
	if p.Pos < len(p.Tokens) {
		return p.Tokens[p.Pos]
	}

	// streams without a trailing EOF token end here
	eof := lexer.Token{LiteralToken: lexer.LiteralToken{Kind: lexer.TokenEOF}}
	if len(p.Tokens) > 0 {
		last := p.Tokens[len(p.Tokens)-1]
		eof.Row = last.Row
		eof.Col = last.Col + len(last.Text)
	}
	return eof
}

func (p *Parser) nextToken() {
	if p.Pos < len(p.Tokens) {
		p.Pos++
	}
}

func (p *Parser) curTokenKindIs(kind lexer.TokenKind) bool {
	return p.curToken().Kind == kind
}

func (p *Parser) error(tok lexer.Token, kind internals.ErrorKind, msg ...interface{}) error {
	err := internals.NewError(kind, p.FilePath, tok.Row, tok.Col, msg...)
	if tok.Kind == lexer.TokenEOF {
		err.Msg = "unexpected end of input, " + err.Msg
		err.Incomplete = true
	}
	return err
}

// at positions errors raised by the symbol table and the type checker
func (p *Parser) at(tok lexer.Token, err error) error {
	return internals.At(err, p.FilePath, tok.Row, tok.Col)
}

// expect consumes the current token if it is of the given kind
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	tok := p.curToken()
	if tok.Kind != kind {
		return tok, p.error(tok, internals.SyntaxError, "expected ", kind, ", instead got ", describe(tok))
	}
	p.nextToken()
	return tok, nil
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.TokenEOF {
		return tok.Kind
	}
	return strconv.Quote(tok.Text)
}

func (p *Parser) enter(tok lexer.Token) error {
	p.depth++
	limit := p.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if p.depth > limit {
		return p.error(tok, internals.SyntaxError, fmt.Sprintf("nesting deeper than %d levels", limit))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Parse builds the program, stopping at the first syntax, type or declaration error
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{
		Statements: []ast.Statement{},
	}

	for !p.curTokenKindIs(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken().Kind {
	case lexer.TokenLet:
		return p.parseLetStatement()
	case lexer.TokenFunction:
		return p.parseFunctionStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenPrint:
		return p.parsePrintStatement()
	case lexer.TokenFree:
		return p.parseFreeStatement()
	default:
		tok := p.curToken()
		return nil, p.error(tok, internals.SyntaxError, "unexpected input ", describe(tok))
	}
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Value: tok.Text}, nil
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	tok, err := p.expect(lexer.TokenCurlyBraceOpen)
	if err != nil {
		return nil, err
	}
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()

	block := &ast.BlockStatement{Token: tok, Body: []ast.Statement{}}

	p.symbols.EnterScope()
	for !p.curTokenKindIs(lexer.TokenCurlyBraceClose) && !p.curTokenKindIs(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}

	if _, err := p.expect(lexer.TokenCurlyBraceClose); err != nil {
		return nil, err
	}
	if err := p.symbols.ExitScope(); err != nil {
		return nil, p.at(tok, err)
	}

	return block, nil
}

// let <id> = <expr>;
func (p *Parser) parseLetStatement() (*ast.LetStatement, error) {
	stmt := &ast.LetStatement{Token: p.curToken()}
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	// declarations must include an initializer
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}

	if stmt.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}

	tp, err := p.inference.InferAssociatedValueType(stmt.Value)
	if err != nil {
		return nil, p.at(stmt.Value.GetToken(), err)
	}
	if err := p.symbols.Add(name.Value, tp, true); err != nil {
		return nil, p.at(name.Token, err)
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// function <id>(<params>) = <expr>;
func (p *Parser) parseFunctionStatement() (*ast.FunctionStatement, error) {
	stmt := &ast.FunctionStatement{Token: p.curToken(), Params: []*ast.Identifier{}}
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	p.symbols.EnterScope()

	if _, err := p.expect(lexer.TokenBraceOpen); err != nil {
		return nil, err
	}

	for !p.curTokenKindIs(lexer.TokenBraceClose) {
		param, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.symbols.Add(param.Value, semantics.AnyType, false); err != nil {
			return nil, p.at(param.Token, err)
		}
		stmt.Params = append(stmt.Params, param)

		if !p.curTokenKindIs(lexer.TokenComma) {
			break
		}
		p.nextToken()

		// no trailing comma
		if p.curTokenKindIs(lexer.TokenBraceClose) {
			tok := p.curToken()
			return nil, p.error(tok, internals.SyntaxError, "expected ", lexer.TokenIdentifier, ", instead got ", describe(tok))
		}
	}

	if _, err := p.expect(lexer.TokenBraceClose); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	if err := p.symbols.ExitScope(); err != nil {
		return nil, p.at(stmt.Token, err)
	}

	// the function only becomes visible once its body is parsed, and only to the enclosing scope
	if err := p.symbols.Add(name.Value, semantics.AnyType, true); err != nil {
		return nil, p.at(name.Token, err)
	}

	return stmt, nil
}

// while <expr> <block>
func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	stmt := &ast.WhileStatement{Token: p.curToken()}
	p.nextToken()

	var err error
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// if <expr> <block> [else <block>]
func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	stmt := &ast.IfStatement{Token: p.curToken()}
	p.nextToken()

	var err error
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if stmt.Consequence, err = p.parseBlockStatement(); err != nil {
		return nil, err
	}

	// check if there is an else block
	if p.curTokenKindIs(lexer.TokenElse) {
		p.nextToken()
		if stmt.Alternative, err = p.parseBlockStatement(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// print <expr>;
func (p *Parser) parsePrintStatement() (*ast.PrintStatement, error) {
	stmt := &ast.PrintStatement{Token: p.curToken()}
	p.nextToken()

	var err error
	if stmt.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// free(<id>);
func (p *Parser) parseFreeStatement() (*ast.FreeStatement, error) {
	stmt := &ast.FreeStatement{Token: p.curToken()}
	p.nextToken()

	if _, err := p.expect(lexer.TokenBraceOpen); err != nil {
		return nil, err
	}

	target, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Target = target

	if _, err := p.expect(lexer.TokenBraceClose); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseExpression is the entry point of every expression.
//
// A leading - or ! is only recognised here, and applies to the primary right
// after it: "-a + b" stops after "-a", leaving "+ b" to the caller, and
// "a + -b" is rejected because the right operand of + is parsed as a primary.
// A ternary is also only recognised here, after a full logical-or operand.
func (p *Parser) parseExpression() (ast.Expression, error) {
	expr, _, err := p.parseTypedExpression()
	return expr, err
}

// parseTypedExpression returns the expression with its type, every sub
// expression is typed once, on the way up.
func (p *Parser) parseTypedExpression() (ast.Expression, semantics.Type, error) {
	tok := p.curToken()
	if err := p.enter(tok); err != nil {
		return nil, "", err
	}
	defer p.leave()

	if op, ok := lexer.UnaryOperators[tok.Kind]; ok {
		p.nextToken()
		right, operand, err := p.parsePrimary()
		if err != nil {
			return nil, "", err
		}

		expr := &ast.UnaryExpression{Token: tok, Operator: op, Right: right}
		tp, err := p.checker.ResultTypeOfUnary(expr, operand)
		if err != nil {
			return nil, "", p.at(tok, err)
		}
		return expr, tp, nil
	}

	left, tp, err := p.parseBinary(OR)
	if err != nil {
		return nil, "", err
	}

	if !p.curTokenKindIs(lexer.TokenQuestion) {
		return left, tp, nil
	}

	expr := &ast.TernaryExpression{Token: p.curToken(), Condition: left}
	p.nextToken()

	if expr.Consequence, _, err = p.parseBinary(OR); err != nil {
		return nil, "", err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, "", err
	}
	if expr.Alternative, _, err = p.parseBinary(OR); err != nil {
		return nil, "", err
	}

	// ternaries are never resolved statically
	return expr, semantics.AnyType, nil
}

// parseBinary parses a left associative chain of operators of the given
// precedence, each operand being a chain of the next higher precedence.
// every binary node is type checked as soon as it is built, from the types
// its operands were already given.
func (p *Parser) parseBinary(precedence int) (ast.Expression, semantics.Type, error) {
	if precedence > POWER {
		return p.parsePrimary()
	}

	left, leftType, err := p.parseBinary(precedence + 1)
	if err != nil {
		return nil, "", err
	}

	for precedences[p.curToken().Kind] == precedence {
		tok := p.curToken()
		p.nextToken()

		right, rightType, err := p.parseBinary(precedence + 1)
		if err != nil {
			return nil, "", err
		}

		expr := &ast.BinaryExpression{
			Token:    tok,
			Operator: tok.Text,
			Left:     left,
			Right:    right,
		}
		tp, err := p.checker.ResultTypeOfOp(expr, leftType, rightType)
		if err != nil {
			return nil, "", p.at(tok, err)
		}

		left, leftType = expr, tp
	}

	return left, leftType, nil
}

// lookup resolves a read of name, undeclared names are a DeclarationError
func (p *Parser) lookup(tok lexer.Token, name string) (semantics.Type, error) {
	tp, err := p.symbols.Lookup(name)
	if err != nil {
		return "", p.at(tok, err)
	}
	return tp, nil
}

func (p *Parser) parsePrimary() (ast.Expression, semantics.Type, error) {
	tok := p.curToken()

	switch tok.Kind {
	case lexer.TokenBraceOpen:
		p.nextToken()
		expr, tp, err := p.parseTypedExpression()
		if err != nil {
			return nil, "", err
		}
		if _, err := p.expect(lexer.TokenBraceClose); err != nil {
			return nil, "", err
		}
		return expr, tp, nil

	case lexer.TokenInt:
		p.nextToken()
		num, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, "", p.error(tok, internals.SyntaxError, "invalid integer literal ", describe(tok))
		}
		return &ast.IntegerLiteral{Token: tok, Value: num}, semantics.IntegerType, nil

	case lexer.TokenFloat:
		p.nextToken()
		num, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, "", p.error(tok, internals.SyntaxError, "invalid float literal ", describe(tok))
		}
		return &ast.FloatLiteral{Token: tok, Value: num}, semantics.FloatType, nil

	case lexer.TokenBool:
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Text == "true"}, semantics.BooleanType, nil

	case lexer.TokenIdentifier:
		ident, err := p.parseIdentifier()
		if err != nil {
			return nil, "", err
		}
		// a call has the type its callee was registered with
		tp, err := p.lookup(tok, ident.Value)
		if err != nil {
			return nil, "", err
		}
		if !p.curTokenKindIs(lexer.TokenBraceOpen) {
			return ident, tp, nil
		}

		args, err := p.parseCallArguments()
		if err != nil {
			return nil, "", err
		}
		return &ast.CallExpression{Token: tok, Function: ident, Args: args}, tp, nil

	default:
		return nil, "", p.error(tok, internals.SyntaxError, "unexpected token ", describe(tok))
	}
}

// parseCallArguments parses "(" [expr {"," expr}] ")", a trailing comma is rejected
func (p *Parser) parseCallArguments() ([]ast.Expression, error) {
	args := make([]ast.Expression, 0)

	if _, err := p.expect(lexer.TokenBraceOpen); err != nil {
		return nil, err
	}

	if p.curTokenKindIs(lexer.TokenBraceClose) {
		p.nextToken()
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.curTokenKindIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}

	if _, err := p.expect(lexer.TokenBraceClose); err != nil {
		return nil, err
	}

	return args, nil
}
