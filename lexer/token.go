// Package lexer provides tokenization for Etiket template expressions.
package lexer

import "fmt"

// TokenType represents the type of a token.
type TokenType int

const (
	// Literals
	TokenIdent  TokenType = iota // identifier
	TokenNumber                  // 123 or 123.45
	TokenString                  // "string" or 'string'

	// Operators
	TokenPlus  // +
	TokenMinus // -
	TokenMul   // *
	TokenDiv   // /

	// Comparison
	TokenEq // ==
	TokenNe // !=
	TokenLt // <
	TokenLe // <=
	TokenGt // >
	TokenGe // >=

	// Logic
	TokenAnd      // &&
	TokenOr       // ||
	TokenNot      // !
	TokenCoalesce // ??

	// Punctuation
	TokenPipe         // |
	TokenColon        // :
	TokenDot          // .
	TokenParenOpen    // (
	TokenParenClose   // )
	TokenBracketOpen  // [
	TokenBracketClose // ]

	// Keywords (detected from identifiers; whole-token match only)
	TokenTrue
	TokenFalse
	TokenNull
)

func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenPlus:
		return "`+`"
	case TokenMinus:
		return "`-`"
	case TokenMul:
		return "`*`"
	case TokenDiv:
		return "`/`"
	case TokenEq:
		return "`==`"
	case TokenNe:
		return "`!=`"
	case TokenLt:
		return "`<`"
	case TokenLe:
		return "`<=`"
	case TokenGt:
		return "`>`"
	case TokenGe:
		return "`>=`"
	case TokenAnd:
		return "`&&`"
	case TokenOr:
		return "`||`"
	case TokenNot:
		return "`!`"
	case TokenCoalesce:
		return "`??`"
	case TokenPipe:
		return "`|`"
	case TokenColon:
		return "`:`"
	case TokenDot:
		return "`.`"
	case TokenParenOpen:
		return "`(`"
	case TokenParenClose:
		return "`)`"
	case TokenBracketOpen:
		return "`[`"
	case TokenBracketClose:
		return "`]`"
	case TokenTrue:
		return "`true`"
	case TokenFalse:
		return "`false`"
	case TokenNull:
		return "`null`"
	default:
		return "unknown token"
	}
}

// Token is a single lexed token.
//
// Value holds the token text: for strings it is the unescaped content
// without quotes, for every other type the raw source text.
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte offset into the source
}

// IsComparison reports whether the token is one of the six comparison
// operators. The parser uses it to reject chained comparisons.
func (t Token) IsComparison() bool {
	switch t.Type {
	case TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe:
		return true
	}
	return false
}

// Error is a tokenization error carrying the offending fragment.
type Error struct {
	Message  string
	Fragment string
	Pos      int
}

func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%s in %q at offset %d", e.Message, e.Fragment, e.Pos)
	}
	return fmt.Sprintf("%s at offset %d", e.Message, e.Pos)
}
