package value

import "github.com/shopspring/decimal"

// Arithmetic is defined only between two numbers. Every other operand
// pairing yields Null so that a bad data field degrades a single property
// instead of failing the whole render. There is no implicit string
// concatenation.

// Add performs exact decimal addition.
func (v Value) Add(other Value) Value {
	a, ok := v.AsDecimal()
	if !ok {
		return Null()
	}
	b, ok := other.AsDecimal()
	if !ok {
		return Null()
	}
	return FromDecimal(a.Add(b))
}

// Sub performs exact decimal subtraction.
func (v Value) Sub(other Value) Value {
	a, ok := v.AsDecimal()
	if !ok {
		return Null()
	}
	b, ok := other.AsDecimal()
	if !ok {
		return Null()
	}
	return FromDecimal(a.Sub(b))
}

// Mul performs exact decimal multiplication.
func (v Value) Mul(other Value) Value {
	a, ok := v.AsDecimal()
	if !ok {
		return Null()
	}
	b, ok := other.AsDecimal()
	if !ok {
		return Null()
	}
	return FromDecimal(a.Mul(b))
}

// Div performs decimal division. Division by zero yields Null.
func (v Value) Div(other Value) Value {
	a, ok := v.AsDecimal()
	if !ok {
		return Null()
	}
	b, ok := other.AsDecimal()
	if !ok {
		return Null()
	}
	if b.IsZero() {
		return Null()
	}
	return FromDecimal(a.Div(b))
}

// Neg performs unary negation. Non-numbers yield Null.
func (v Value) Neg() Value {
	d, ok := v.AsDecimal()
	if !ok {
		return Null()
	}
	return FromDecimal(d.Neg())
}

// Equal reports deep value equality.
//
// Values of different kinds are never equal; this is intentional so data
// typos surface as "not equal" rather than as an error.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch d := v.data.(type) {
	case nullType, nil:
		return true
	case bool:
		b, _ := other.AsBool()
		return d == b
	case decimal.Decimal:
		b, _ := other.AsDecimal()
		return d.Equal(b)
	case string:
		b, _ := other.AsString()
		return d == b
	case []Value:
		b, _ := other.AsArray()
		if len(d) != len(b) {
			return false
		}
		for i := range d {
			if !d[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case map[string]Value:
		b, _ := other.AsObject()
		if len(d) != len(b) {
			return false
		}
		for k, item := range d {
			o, ok := b[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values.
//
// Ordering is defined between two numbers (numeric order) and between two
// strings (byte order). Any other pairing reports ok == false; ordered
// comparisons on such pairs evaluate to false.
func (v Value) Compare(other Value) (int, bool) {
	if a, ok := v.AsDecimal(); ok {
		if b, ok := other.AsDecimal(); ok {
			return a.Cmp(b), true
		}
		return 0, false
	}
	if a, ok := v.AsString(); ok {
		if b, ok := other.AsString(); ok {
			switch {
			case a < b:
				return -1, true
			case a > b:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}
