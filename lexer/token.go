package lexer

type TokenKind = string

const (

	// Keywords
	TokenLet      TokenKind = "let"
	TokenFunction TokenKind = "function"
	TokenWhile    TokenKind = "while"
	TokenIf       TokenKind = "if"
	TokenElse     TokenKind = "else"

	// Builtin functions
	TokenPrint TokenKind = "print"
	TokenFree  TokenKind = "free"

	// Units
	TokenCurlyBraceOpen  TokenKind = "{"
	TokenCurlyBraceClose TokenKind = "}"
	TokenBraceOpen       TokenKind = "("
	TokenBraceClose      TokenKind = ")"
	TokenSemicolon       TokenKind = ";"
	TokenComma           TokenKind = ","
	TokenQuestion        TokenKind = "?"
	TokenColon           TokenKind = ":"

	// Arithmetic Operators
	TokenMinus    TokenKind = "-"
	TokenPlus     TokenKind = "+"
	TokenMultiply TokenKind = "*"
	TokenSlash    TokenKind = "/"
	TokenModule   TokenKind = "%"
	TokenPower    TokenKind = "**"

	// Comparison Operators
	TokenEquals         TokenKind = "=="
	TokenNotEquals      TokenKind = "!="
	TokenGreater        TokenKind = ">"
	TokenLess           TokenKind = "<"
	TokenGreaterOrEqual TokenKind = ">="
	TokenLessOrEqual    TokenKind = "<="

	// Logical Operators
	TokenAnd         TokenKind = "&&"
	TokenOr          TokenKind = "||"
	TokenExclamation TokenKind = "!"

	// Bind Operators
	TokenAssign TokenKind = "="

	// Comment
	TokenComment TokenKind = "comment"

	// Var Naming
	TokenIdentifier TokenKind = "identifier"

	// Literals
	TokenInt   TokenKind = "int"
	TokenFloat TokenKind = "float"
	TokenBool  TokenKind = "bool"

	// EOF
	TokenEOF TokenKind = "end of file"
)

type LiteralToken struct {
	Text string
	Kind TokenKind
}

type Token struct {
	LiteralToken
	Row int
	Col int
}

type Lexer struct {
	Content string
	// help mainly in error detection when having multi file execution
	FilePath string
	Row      int
	Col      int
	Cur      int
}
