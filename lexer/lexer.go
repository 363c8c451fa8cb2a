package lexer

import "strings"

// Lexer tokenizes expression source text.
//
// Unlike a full template lexer it has no statefulness beyond the cursor:
// expressions arrive with their embedding delimiters already stripped by
// the structural reader, so the whole input is one expression.
type Lexer struct {
	source string
	pos    int
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	return &Lexer{source: input}
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) ([]Token, error) {
	return New(input).All()
}

// All collects all tokens into a slice.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		tokens = append(tokens, *tok)
	}
	return tokens, nil
}

// Next returns the next token, or nil at end of input.
func (l *Lexer) Next() (*Token, error) {
	l.skipWhitespace()
	if l.atEnd() {
		return nil, nil
	}

	start := l.pos
	c := l.source[l.pos]

	switch {
	case isIdentStart(c):
		return l.lexIdent(start), nil
	case isDigit(c):
		return l.lexNumber(start)
	case c == '\'' || c == '"':
		return l.lexString(start)
	}

	// Operators and punctuation, longest match first.
	two := ""
	if l.pos+1 < len(l.source) {
		two = l.source[l.pos : l.pos+2]
	}
	switch two {
	case "==":
		return l.emit(TokenEq, two, start), nil
	case "!=":
		return l.emit(TokenNe, two, start), nil
	case "<=":
		return l.emit(TokenLe, two, start), nil
	case ">=":
		return l.emit(TokenGe, two, start), nil
	case "&&":
		return l.emit(TokenAnd, two, start), nil
	case "||":
		return l.emit(TokenOr, two, start), nil
	case "??":
		return l.emit(TokenCoalesce, two, start), nil
	}

	switch c {
	case '+':
		return l.emit(TokenPlus, "+", start), nil
	case '-':
		return l.emit(TokenMinus, "-", start), nil
	case '*':
		return l.emit(TokenMul, "*", start), nil
	case '/':
		return l.emit(TokenDiv, "/", start), nil
	case '<':
		return l.emit(TokenLt, "<", start), nil
	case '>':
		return l.emit(TokenGt, ">", start), nil
	case '!':
		return l.emit(TokenNot, "!", start), nil
	case '|':
		return l.emit(TokenPipe, "|", start), nil
	case ':':
		return l.emit(TokenColon, ":", start), nil
	case '.':
		return l.emit(TokenDot, ".", start), nil
	case '(':
		return l.emit(TokenParenOpen, "(", start), nil
	case ')':
		return l.emit(TokenParenClose, ")", start), nil
	case '[':
		return l.emit(TokenBracketOpen, "[", start), nil
	case ']':
		return l.emit(TokenBracketClose, "]", start), nil
	}

	return nil, &Error{
		Message:  "unknown token",
		Fragment: l.source[start:min(start+1, len(l.source))],
		Pos:      start,
	}
}

func (l *Lexer) emit(typ TokenType, text string, start int) *Token {
	l.pos += len(text)
	return &Token{Type: typ, Value: text, Pos: start}
}

func (l *Lexer) lexIdent(start int) *Token {
	for !l.atEnd() && isIdentPart(l.source[l.pos]) {
		l.pos++
	}
	text := l.source[start:l.pos]

	// Keywords match only a full identifier token; `trueName` stays an
	// identifier.
	typ := TokenIdent
	switch text {
	case "true":
		typ = TokenTrue
	case "false":
		typ = TokenFalse
	case "null":
		typ = TokenNull
	}
	return &Token{Type: typ, Value: text, Pos: start}
}

func (l *Lexer) lexNumber(start int) (*Token, error) {
	for !l.atEnd() && isDigit(l.source[l.pos]) {
		l.pos++
	}
	if !l.atEnd() && l.source[l.pos] == '.' &&
		l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]) {
		l.pos++
		for !l.atEnd() && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}
	return &Token{Type: TokenNumber, Value: l.source[start:l.pos], Pos: start}, nil
}

func (l *Lexer) lexString(start int) (*Token, error) {
	quote := l.source[l.pos]
	l.pos++

	var sb strings.Builder
	for {
		if l.atEnd() {
			return nil, &Error{
				Message:  "unterminated string literal",
				Fragment: l.source[start:],
				Pos:      start,
			}
		}
		c := l.source[l.pos]
		switch c {
		case quote:
			l.pos++
			return &Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
		case '\\':
			if l.pos+1 >= len(l.source) {
				return nil, &Error{
					Message:  "unterminated string literal",
					Fragment: l.source[start:],
					Pos:      start,
				}
			}
			esc := l.source[l.pos+1]
			switch esc {
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return nil, &Error{
					Message:  "invalid escape sequence",
					Fragment: l.source[l.pos : l.pos+2],
					Pos:      l.pos,
				}
			}
			l.pos += 2
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
