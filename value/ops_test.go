package value

import "testing"

func TestArithmetic(t *testing.T) {
	a := FromFloat(10.5)
	b := FromInt(3)

	if got := a.Add(b).String(); got != "13.5" {
		t.Errorf("10.5 + 3 = %q, want 13.5", got)
	}
	if got := a.Sub(b).String(); got != "7.5" {
		t.Errorf("10.5 - 3 = %q, want 7.5", got)
	}
	if got := a.Mul(b).String(); got != "31.5" {
		t.Errorf("10.5 * 3 = %q, want 31.5", got)
	}
	if got := a.Div(b).String(); got != "3.5" {
		t.Errorf("10.5 / 3 = %q, want 3.5", got)
	}
}

func TestArithmeticExactDecimals(t *testing.T) {
	// The classic float trap: 0.1 + 0.2 must be exactly 0.3.
	if got := FromFloat(0.1).Add(FromFloat(0.2)).String(); got != "0.3" {
		t.Errorf("0.1 + 0.2 = %q, want 0.3", got)
	}
}

func TestArithmeticTypeMismatch(t *testing.T) {
	num := FromInt(1)
	cases := []Value{FromString("2"), Null(), True(), FromArray(nil), FromObject(nil)}
	for _, other := range cases {
		if !num.Add(other).IsNull() {
			t.Errorf("1 + %s should be null", other.Kind())
		}
		if !other.Add(num).IsNull() {
			t.Errorf("%s + 1 should be null", other.Kind())
		}
		if !num.Mul(other).IsNull() {
			t.Errorf("1 * %s should be null", other.Kind())
		}
	}
	// No implicit string concatenation.
	if !FromString("a").Add(FromString("b")).IsNull() {
		t.Errorf("'a' + 'b' should be null, not concatenation")
	}
}

func TestDivisionByZero(t *testing.T) {
	if !FromInt(5).Div(FromInt(0)).IsNull() {
		t.Errorf("5 / 0 should be null")
	}
	if !FromInt(0).Div(FromInt(0)).IsNull() {
		t.Errorf("0 / 0 should be null")
	}
}

func TestNeg(t *testing.T) {
	if got := FromFloat(1.5).Neg().String(); got != "-1.5" {
		t.Errorf("-1.5 = %q", got)
	}
	if !FromString("x").Neg().IsNull() {
		t.Errorf("negating a string should be null")
	}
	if !Null().Neg().IsNull() {
		t.Errorf("negating null should be null")
	}
}

func TestEqualSameKind(t *testing.T) {
	if !FromInt(3).Equal(FromFloat(3.0)) {
		t.Errorf("3 == 3.0 (both numbers) should be true")
	}
	if !FromString("a").Equal(FromString("a")) {
		t.Errorf("'a' == 'a' should be true")
	}
	if !Null().Equal(Null()) {
		t.Errorf("null == null should be true")
	}
	if FromString("a").Equal(FromString("b")) {
		t.Errorf("'a' == 'b' should be false")
	}
}

func TestEqualDeep(t *testing.T) {
	a := FromArray([]Value{FromInt(1), FromObject(map[string]Value{"k": FromString("v")})})
	b := FromArray([]Value{FromInt(1), FromObject(map[string]Value{"k": FromString("v")})})
	c := FromArray([]Value{FromInt(1), FromObject(map[string]Value{"k": FromString("w")})})

	if !a.Equal(b) {
		t.Errorf("deep-equal arrays should be equal")
	}
	if a.Equal(c) {
		t.Errorf("arrays differing in a nested value should not be equal")
	}
}

func TestEqualCrossKind(t *testing.T) {
	vals := []Value{Null(), True(), FromInt(1), FromString("1"), FromArray(nil), FromObject(nil)}
	for i, a := range vals {
		for j, b := range vals {
			if i == j {
				continue
			}
			if a.Equal(b) {
				t.Errorf("%s == %s should be false", a.Kind(), b.Kind())
			}
		}
	}
}

func TestCompare(t *testing.T) {
	if cmp, ok := FromInt(1).Compare(FromInt(2)); !ok || cmp >= 0 {
		t.Errorf("1 < 2 failed: cmp=%d ok=%v", cmp, ok)
	}
	if cmp, ok := FromString("b").Compare(FromString("a")); !ok || cmp <= 0 {
		t.Errorf("'b' > 'a' failed: cmp=%d ok=%v", cmp, ok)
	}
	if _, ok := FromInt(1).Compare(FromString("1")); ok {
		t.Errorf("number/string ordering should not be defined")
	}
	if _, ok := True().Compare(False()); ok {
		t.Errorf("bool ordering should not be defined")
	}
}
