package lexer

import (
	"bella/internals"
	"fmt"
)

func NewLexer(filePath string, content string) *Lexer {
	lexer := Lexer{
		Content:  content,
		FilePath: filePath,
		Row:      1,
		Col:      1,
		Cur:      0,
	}
	return &lexer
}

// advance moves the cursor over text, keeping row and col in sync
func (l *Lexer) advance(text string) {
	for _, char := range text {
		switch char {
		case '\n':
			l.Row++
			l.Col = 1
		default:
			l.Col++
		}
	}

	l.Cur += len(text)
}

// NextToken returns the next non skipped token, or an EOF token once the input is consumed
func (l *Lexer) NextToken() (Token, error) {
	for {
		token := Token{
			Row: l.Row,
			Col: l.Col,
		}

		if l.Cur >= len(l.Content) {
			token.LiteralToken = LiteralToken{
				Kind: TokenEOF,
				Text: "",
			}
			return token, nil
		}

		remaining := l.Content[l.Cur:]
		matched := false

		for _, r := range rules {
			text := r.pattern.FindString(remaining)
			if text == "" {
				continue
			}

			matched = true
			l.advance(text)

			if r.skip {
				break
			}

			kind := r.kind
			if kind == TokenIdentifier {
				if keywordKind, isKeyword := Keywords[text]; isKeyword {
					kind = keywordKind
				}
			}

			token.LiteralToken = LiteralToken{
				Kind: kind,
				Text: text,
			}
			return token, nil
		}

		if !matched {
			return Token{}, internals.NewError(
				internals.LexError, l.FilePath, l.Row, l.Col,
				fmt.Sprintf("unexpected character %q", []rune(remaining)[0]),
			)
		}
	}
}

// Tokenize consumes the whole input, the returned slice always ends with an EOF token
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens, nil
}
