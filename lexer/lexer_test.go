package lexer

import "testing"

func types(t *testing.T, src string) []TokenType {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestOperators(t *testing.T) {
	got := types(t, "a + b - c * d / e")
	want := []TokenType{TokenIdent, TokenPlus, TokenIdent, TokenMinus, TokenIdent, TokenMul, TokenIdent, TokenDiv, TokenIdent}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTwoByteOperators(t *testing.T) {
	got := types(t, "a == b != c <= d >= e && f || g ?? h")
	want := []TokenType{
		TokenIdent, TokenEq, TokenIdent, TokenNe, TokenIdent, TokenLe,
		TokenIdent, TokenGe, TokenIdent, TokenAnd, TokenIdent, TokenOr,
		TokenIdent, TokenCoalesce, TokenIdent,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	tokens, err := Tokenize("42 10.5")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Value != "42" || tokens[1].Value != "10.5" {
		t.Errorf("got %q %q, want 42 10.5", tokens[0].Value, tokens[1].Value)
	}
}

func TestNumberDotNotFraction(t *testing.T) {
	// The dot only starts a fraction between digits; `items.0` lexes as
	// identifier, dot, number.
	got := types(t, "items.0")
	want := []TokenType{TokenIdent, TokenDot, TokenNumber}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"double"`, "double"},
		{`'single'`, "single"},
		{`'it\'s'`, "it's"},
		{`"a\"b"`, `a"b`},
		{`'back\\slash'`, `back\slash`},
		{`'line\nbreak'`, "line\nbreak"},
		{`'tab\there'`, "tab\there"},
	}
	for _, c := range cases {
		tokens, err := Tokenize(c.src)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", c.src, err)
		}
		if len(tokens) != 1 || tokens[0].Type != TokenString {
			t.Fatalf("Tokenize(%q): expected one string token", c.src)
		}
		if tokens[0].Value != c.want {
			t.Errorf("Tokenize(%q) = %q, want %q", c.src, tokens[0].Value, c.want)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, src := range []string{`'open`, `"open`, `'trail\`} {
		_, err := Tokenize(src)
		if err == nil {
			t.Fatalf("Tokenize(%q): expected error", src)
		}
		le, ok := err.(*Error)
		if !ok {
			t.Fatalf("Tokenize(%q): expected *Error, got %T", src, err)
		}
		if le.Message != "unterminated string literal" {
			t.Errorf("Tokenize(%q): message %q", src, le.Message)
		}
	}
}

func TestInvalidEscape(t *testing.T) {
	_, err := Tokenize(`'bad\q'`)
	if err == nil {
		t.Fatal("expected error for invalid escape")
	}
}

func TestKeywordsWholeTokenOnly(t *testing.T) {
	tokens, err := Tokenize("true trueName false null nullable")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	want := []TokenType{TokenTrue, TokenIdent, TokenFalse, TokenNull, TokenIdent}
	for i := range want {
		if tokens[i].Type != want[i] {
			t.Errorf("token %d (%q) = %v, want %v", i, tokens[i].Value, tokens[i].Type, want[i])
		}
	}
}

func TestUnknownToken(t *testing.T) {
	_, err := Tokenize("a # b")
	if err == nil {
		t.Fatal("expected error for unknown token")
	}
	le, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if le.Fragment != "#" {
		t.Errorf("fragment = %q, want #", le.Fragment)
	}
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("a  + b")
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	wantPos := []int{0, 3, 5}
	for i, p := range wantPos {
		if tokens[i].Pos != p {
			t.Errorf("token %d pos = %d, want %d", i, tokens[i].Pos, p)
		}
	}
}
