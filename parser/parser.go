package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/etiket/etiket-go/lexer"
)

const maxRecursion = 100

// Error is a syntax error carrying the offending fragment.
type Error struct {
	Message  string
	Fragment string
	Pos      int
}

func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("syntax error: %s (near %q)", e.Message, e.Fragment)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// Parser parses a single expression from a token stream.
type Parser struct {
	source string
	tokens []lexer.Token
	pos    int
	depth  int
}

// Parse parses expression source text into an AST.
//
// The input is the inner expression substring only; the embedding
// delimiter convention ({{ ... }} or otherwise) belongs to the structural
// reader and never reaches this parser.
func Parse(source string) (Expr, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, &Error{Message: le.Message, Fragment: le.Fragment, Pos: le.Pos}
		}
		return nil, err
	}

	p := &Parser{source: source, tokens: tokens}
	expr, perr := p.parsePipeline()
	if perr != nil {
		return nil, perr
	}
	if tok := p.current(); tok != nil {
		return nil, p.unexpected(tok)
	}
	return expr, nil
}

// IsBarePath reports whether the source text is a single path reference
// with no operators: `name`, `user.name`, `items[0].name`. Such
// expressions are cheap enough to parse on every call; the engine skips
// the cache for them.
func IsBarePath(source string) bool {
	i := 0
	n := len(source)

	readIdent := func() bool {
		if i >= n || !isIdentStart(source[i]) {
			return false
		}
		for i < n && isIdentPart(source[i]) {
			i++
		}
		return true
	}

	start := i
	if !readIdent() {
		return false
	}
	// A lone keyword is a literal, not a path.
	switch source[start:i] {
	case "true", "false", "null":
		if i == n {
			return false
		}
	}

	for i < n {
		switch source[i] {
		case '.':
			i++
			if !readIdent() {
				return false
			}
		case '[':
			i++
			digits := 0
			for i < n && source[i] >= '0' && source[i] <= '9' {
				i++
				digits++
			}
			if digits == 0 || i >= n || source[i] != ']' {
				return false
			}
			i++
		default:
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *Parser) current() *lexer.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) advance() *lexer.Token {
	tok := p.current()
	if tok != nil {
		p.pos++
	}
	return tok
}

func (p *Parser) matches(typ lexer.TokenType) bool {
	tok := p.current()
	return tok != nil && tok.Type == typ
}

func (p *Parser) skip(typ lexer.TokenType) bool {
	if p.matches(typ) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expect(typ lexer.TokenType) (*lexer.Token, *Error) {
	tok := p.current()
	if tok == nil {
		return nil, p.unexpectedEOF(typ.String())
	}
	if tok.Type != typ {
		return nil, p.syntaxErrorAt(fmt.Sprintf("expected %s, got %s", typ, tok.Type), tok)
	}
	p.pos++
	return tok, nil
}

func (p *Parser) syntaxError(msg string) *Error {
	return &Error{Message: msg, Fragment: p.source}
}

func (p *Parser) syntaxErrorAt(msg string, tok *lexer.Token) *Error {
	return &Error{Message: msg, Fragment: tok.Value, Pos: tok.Pos}
}

func (p *Parser) unexpected(tok *lexer.Token) *Error {
	return p.syntaxErrorAt(fmt.Sprintf("unexpected %s", tok.Type), tok)
}

func (p *Parser) unexpectedEOF(expected string) *Error {
	return &Error{Message: fmt.Sprintf("unexpected end of expression, expected %s", expected), Fragment: p.source}
}

// parsePipeline parses the loosest band: filter application. Filters
// chain left to right, so `a | f | g` pipes f's output into g.
func (p *Parser) parsePipeline() (Expr, *Error) {
	expr, err := p.parseCoalesce()
	if err != nil {
		return nil, err
	}
	for p.skip(lexer.TokenPipe) {
		expr, err = p.parseFilter(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseFilter parses `name[:arg] [named:value | flag]*` after a pipe.
func (p *Parser) parseFilter(input Expr) (Expr, *Error) {
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}

	f := &Filter{Name: name.Value, Input: input}

	if p.skip(lexer.TokenColon) {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		f.Arg = arg
	}

	// Space-separated trailing tokens are named arguments (key:value) or
	// bare flags (key alone).
	for p.matches(lexer.TokenIdent) {
		key := p.advance()
		named := NamedArg{Name: key.Value}
		if p.skip(lexer.TokenColon) {
			val, err := p.namedArgValue()
			if err != nil {
				return nil, err
			}
			named.Value = val
			named.HasValue = true
		}
		f.Named = append(f.Named, named)
	}

	return f, nil
}

// namedArgValue reads a single raw token as the text of a named argument.
func (p *Parser) namedArgValue() (string, *Error) {
	tok := p.current()
	if tok == nil {
		return "", p.unexpectedEOF("a filter argument value")
	}
	switch tok.Type {
	case lexer.TokenString, lexer.TokenNumber, lexer.TokenIdent,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull:
		p.pos++
		return tok.Value, nil
	default:
		return "", p.syntaxErrorAt(fmt.Sprintf("expected a filter argument value, got %s", tok.Type), tok)
	}
}

func (p *Parser) parseCoalesce() (Expr, *Error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.skip(lexer.TokenCoalesce) {
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &Coalesce{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseOr() (Expr, *Error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.skip(lexer.TokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalOr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, *Error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.skip(lexer.TokenAnd) {
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		left = &LogicalAnd{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseCompare() (Expr, *Error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	tok := p.current()
	if tok == nil || !tok.IsComparison() {
		return left, nil
	}
	p.pos++

	var op CmpOp
	switch tok.Type {
	case lexer.TokenEq:
		op = OpEq
	case lexer.TokenNe:
		op = OpNe
	case lexer.TokenLt:
		op = OpLt
	case lexer.TokenLe:
		op = OpLe
	case lexer.TokenGt:
		op = OpGt
	case lexer.TokenGe:
		op = OpGe
	}

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	// Comparison does not associate: `a < b < c` has no sensible meaning
	// in a boolean-producing binary comparison, so it is rejected rather
	// than silently grouped.
	if next := p.current(); next != nil && next.IsComparison() {
		return nil, p.syntaxErrorAt("chained comparisons are not supported", next)
	}

	return &Comparison{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseAdditive() (Expr, *Error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		if p.skip(lexer.TokenPlus) {
			op = OpAdd
		} else if p.skip(lexer.TokenMinus) {
			op = OpSub
		} else {
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Arithmetic{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (Expr, *Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		if p.skip(lexer.TokenMul) {
			op = OpMul
		} else if p.skip(lexer.TokenDiv) {
			op = OpDiv
		} else {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Arithmetic{Op: op, Left: left, Right: right}
	}
}

// parseUnary parses prefix `-` and `!`. A minus here has no completed
// left operand, which is exactly what makes it negation rather than
// subtraction.
func (p *Parser) parseUnary() (Expr, *Error) {
	p.depth++
	if p.depth > maxRecursion {
		return nil, p.syntaxError("expression exceeds maximum nesting depth")
	}
	defer func() { p.depth-- }()

	if p.skip(lexer.TokenMinus) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Negate{Operand: operand}, nil
	}
	if p.skip(lexer.TokenNot) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any number of `.name` and
// `[key]` accesses. Dotted names and literal integer indexes fold into a
// single Path node; anything computed becomes an Index node.
func (p *Parser) parsePostfix() (Expr, *Error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	path, isPath := expr.(*Path)
	for {
		switch {
		case p.skip(lexer.TokenDot):
			name, err := p.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			if isPath {
				path.Name += "." + name.Value
			} else {
				expr = &Index{Base: expr, Key: &StringLit{Value: name.Value}}
			}

		case p.skip(lexer.TokenBracketOpen):
			key, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenBracketClose); err != nil {
				return nil, err
			}
			if isPath && isLiteralIndex(key) {
				path.Name += "[" + key.(*NumberLit).Value.String() + "]"
				continue
			}
			if isPath {
				expr = &Index{Base: path, Key: key}
				isPath = false
			} else {
				expr = &Index{Base: expr, Key: key}
			}

		default:
			return expr, nil
		}
	}
}

// isLiteralIndex reports whether key is a plain non-negative integer
// literal, the only index form that folds into a Path.
func isLiteralIndex(key Expr) bool {
	n, ok := key.(*NumberLit)
	return ok && n.Value.IsInteger() && n.Value.Sign() >= 0
}

func (p *Parser) parsePrimary() (Expr, *Error) {
	tok := p.current()
	if tok == nil {
		return nil, p.unexpectedEOF("an expression")
	}

	switch tok.Type {
	case lexer.TokenNumber:
		p.pos++
		d, err := decimal.NewFromString(tok.Value)
		if err != nil {
			return nil, p.syntaxErrorAt("invalid number literal", tok)
		}
		return &NumberLit{Value: d}, nil

	case lexer.TokenString:
		p.pos++
		return &StringLit{Value: tok.Value}, nil

	case lexer.TokenTrue:
		p.pos++
		return &BoolLit{Value: true}, nil

	case lexer.TokenFalse:
		p.pos++
		return &BoolLit{Value: false}, nil

	case lexer.TokenNull:
		p.pos++
		return &NullLit{}, nil

	case lexer.TokenIdent:
		p.pos++
		return &Path{Name: tok.Value}, nil

	case lexer.TokenParenOpen:
		p.pos++
		expr, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenParenClose); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.unexpected(tok)
	}
}
