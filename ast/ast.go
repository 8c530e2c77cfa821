package ast

import (
	"bella/lexer"
	"bytes"
	"strings"
)

type Node interface {
	TokenLiteral() string
	String() string
	GetToken() lexer.Token
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}

func (p *Program) GetToken() lexer.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return lexer.Token{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for idx, s := range p.Statements {
		out.WriteString(s.String())
		if idx+1 <= len(p.Statements)-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

type BlockStatement struct {
	Token lexer.Token // the { token
	Body  []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Text }
func (nt *BlockStatement) GetToken() lexer.Token { return nt.Token }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Body {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

type LetStatement struct {
	Token lexer.Token // the let token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Text }
func (nt *LetStatement) GetToken() lexer.Token { return nt.Token }
func (ls *LetStatement) String() string {
	var out bytes.Buffer
	out.WriteString(ls.TokenLiteral() + " ")
	out.WriteString(ls.Name.String())
	out.WriteString(" = ")
	if ls.Value != nil {
		out.WriteString(ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

type FunctionStatement struct {
	Token  lexer.Token // the function token
	Name   *Identifier
	Params []*Identifier
	Body   Expression
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Text }
func (nt *FunctionStatement) GetToken() lexer.Token { return nt.Token }
func (fs *FunctionStatement) String() string {
	var out bytes.Buffer
	params := []string{}
	for _, p := range fs.Params {
		params = append(params, p.String())
	}
	out.WriteString(fs.TokenLiteral() + " ")
	out.WriteString(fs.Name.String())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") = ")
	out.WriteString(fs.Body.String())
	out.WriteString(";")
	return out.String()
}

type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Text }
func (nt *WhileStatement) GetToken() lexer.Token { return nt.Token }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("while ")
	out.WriteString(ws.Condition.String())
	out.WriteString(" ")
	out.WriteString(ws.Body.String())
	return out.String()
}

type IfStatement struct {
	Token       lexer.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil without an else branch
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Text }
func (nt *IfStatement) GetToken() lexer.Token { return nt.Token }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

type PrintStatement struct {
	Token lexer.Token
	Value Expression
}

func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Text }
func (nt *PrintStatement) GetToken() lexer.Token { return nt.Token }
func (ps *PrintStatement) String() string {
	return ps.TokenLiteral() + " " + ps.Value.String() + ";"
}

type FreeStatement struct {
	Token  lexer.Token
	Target *Identifier
}

func (fs *FreeStatement) statementNode()        {}
func (fs *FreeStatement) TokenLiteral() string  { return fs.Token.Text }
func (nt *FreeStatement) GetToken() lexer.Token { return nt.Token }
func (fs *FreeStatement) String() string {
	return fs.TokenLiteral() + "(" + fs.Target.String() + ");"
}

type Identifier struct {
	Token lexer.Token // the identifier token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Text }
func (nt *Identifier) GetToken() lexer.Token { return nt.Token }
func (i *Identifier) String() string         { return i.Value }

type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Text }
func (nt *IntegerLiteral) GetToken() lexer.Token { return nt.Token }
func (il *IntegerLiteral) String() string        { return il.Token.Text }

type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Text }
func (nt *FloatLiteral) GetToken() lexer.Token { return nt.Token }
func (fl *FloatLiteral) String() string        { return fl.Token.Text }

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Text }
func (nt *BooleanLiteral) GetToken() lexer.Token { return nt.Token }
func (bl *BooleanLiteral) String() string        { return bl.Token.Text }

type CallExpression struct {
	Token    lexer.Token // the callee identifier token
	Function *Identifier
	Args     []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Text }
func (nt *CallExpression) GetToken() lexer.Token { return nt.Token }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	args := []string{}
	for _, a := range ce.Args {
		args = append(args, a.String())
	}
	out.WriteString(ce.Function.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

type UnaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()        {}
func (u *UnaryExpression) TokenLiteral() string   { return u.Token.Text }
func (nt *UnaryExpression) GetToken() lexer.Token { return nt.Token }
func (u *UnaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(u.Operator)
	out.WriteString(u.Right.String())
	out.WriteString(")")
	return out.String()
}

type BinaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()        {}
func (b *BinaryExpression) TokenLiteral() string   { return b.Token.Text }
func (nt *BinaryExpression) GetToken() lexer.Token { return nt.Token }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

type TernaryExpression struct {
	Token       lexer.Token // the ? token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (te *TernaryExpression) expressionNode()       {}
func (te *TernaryExpression) TokenLiteral() string  { return te.Token.Text }
func (nt *TernaryExpression) GetToken() lexer.Token { return nt.Token }
func (te *TernaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(te.Condition.String())
	out.WriteString(" ? ")
	out.WriteString(te.Consequence.String())
	out.WriteString(" : ")
	out.WriteString(te.Alternative.String())
	out.WriteString(")")
	return out.String()
}
