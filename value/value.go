// Package value provides the dynamic value type for the expression engine.
//
// The value package implements Etiket's dynamic type system, which allows
// template expressions to work with values of different types (strings,
// numbers, arrays, objects) without compile-time type information.
//
// # Type System
//
// Etiket supports the following value kinds:
//   - Null: the absence of a value
//   - Bool: boolean true/false
//   - Number: arbitrary-precision decimal numbers
//   - String: UTF-8 text
//   - Array: ordered sequences
//   - Object: key-value mappings
//
// Numbers are backed by decimal arithmetic rather than floating point so
// that monetary amounts on receipts never accumulate rounding drift.
//
// # Example Usage
//
//	// Create values from Go types
//	name := value.FromString("World")
//	count := value.FromInt(42)
//	items := value.FromArray([]value.Value{
//	    value.FromString("apple"),
//	    value.FromString("banana"),
//	})
//
//	// Create an object value
//	context := value.FromObject(map[string]value.Value{
//	    "name":  name,
//	    "count": count,
//	    "items": items,
//	})
//
//	// Type checking
//	if name.Kind() == value.KindString {
//	    fmt.Println("It's a string!")
//	}
//
//	// Conversion
//	if s, ok := name.AsString(); ok {
//	    fmt.Println("String value:", s)
//	}
//
// Values are immutable once constructed: the evaluator never mutates a
// value coming from a data context, so a context may be shared read-only
// across any number of concurrent renders.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind describes the type of a Value.
//
// Kind is used to determine what type of data a Value contains without
// performing type assertions. The set of kinds is closed: every consumer
// (evaluator, filters, stringification) switches exhaustively over it.
type Kind int

const (
	// KindNull represents the absence of a value.
	//
	// Null is what missing context keys, failed traversals and
	// type-mismatched operations resolve to.
	KindNull Kind = iota

	// KindBool represents a boolean value (true or false).
	KindBool

	// KindNumber represents a numeric value.
	//
	// Numbers are arbitrary-precision decimals and support exact
	// arithmetic.
	KindNumber

	// KindString represents a text string.
	KindString

	// KindArray represents an ordered sequence of values.
	KindArray

	// KindObject represents a key-value mapping.
	//
	// Key order is irrelevant; dotted-path lookup is case-insensitive.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value represents a dynamically typed value in the expression engine.
//
// Values are typically created using constructor functions:
//
//	str := value.FromString("hello")
//	num := value.FromInt(42)
//	arr := value.FromArray([]value.Value{str, num})
//	obj := value.FromObject(map[string]value.Value{"key": str})
//
// Arbitrary Go data (such as a decoded YAML document) can be converted
// with FromAny.
//
// Use Kind() or the Is*/As* methods for type checking and conversion:
//
//	if s, ok := str.AsString(); ok {
//	    fmt.Println(s)
//	}
type Value struct {
	data any
}

type nullType struct{}

var nullVal = nullType{}

// Null returns the null value.
func Null() Value {
	return Value{data: nullVal}
}

// True returns the boolean true value.
func True() Value {
	return Value{data: true}
}

// False returns the boolean false value.
func False() Value {
	return Value{data: false}
}

// FromBool creates a Value from a boolean.
func FromBool(b bool) Value {
	return Value{data: b}
}

// FromDecimal creates a Value from a decimal number.
func FromDecimal(d decimal.Decimal) Value {
	return Value{data: d}
}

// FromInt creates a Value from an integer.
func FromInt(i int64) Value {
	return Value{data: decimal.NewFromInt(i)}
}

// FromFloat creates a Value from a float64.
//
// The float is converted to the shortest decimal that round-trips, so
// FromFloat(10.5) holds exactly 10.5.
func FromFloat(f float64) Value {
	return Value{data: decimal.NewFromFloat(f)}
}

// FromString creates a Value from a string.
func FromString(s string) Value {
	return Value{data: s}
}

// FromArray creates a Value from a slice of values.
func FromArray(items []Value) Value {
	return Value{data: items}
}

// FromObject creates a Value from a map of values.
func FromObject(fields map[string]Value) Value {
	return Value{data: fields}
}

// FromAny converts an arbitrary Go value.
//
// It understands the types produced by YAML/JSON decoding: nil, bool,
// integer and float types, strings, []any and map[string]any, plus
// already-constructed Values. Unrecognized types are stringified.
func FromAny(v any) Value {
	switch d := v.(type) {
	case nil:
		return Null()
	case Value:
		return d
	case bool:
		return FromBool(d)
	case int:
		return FromInt(int64(d))
	case int32:
		return FromInt(int64(d))
	case int64:
		return FromInt(d)
	case uint:
		return FromDecimal(decimal.NewFromUint64(uint64(d)))
	case uint64:
		return FromDecimal(decimal.NewFromUint64(d))
	case float32:
		return FromFloat(float64(d))
	case float64:
		return FromFloat(d)
	case decimal.Decimal:
		return FromDecimal(d)
	case string:
		return FromString(d)
	case []any:
		items := make([]Value, len(d))
		for i, item := range d {
			items[i] = FromAny(item)
		}
		return FromArray(items)
	case []Value:
		return FromArray(d)
	case map[string]any:
		fields := make(map[string]Value, len(d))
		for k, item := range d {
			fields[k] = FromAny(item)
		}
		return FromObject(fields)
	case map[string]Value:
		return FromObject(d)
	case map[any]any:
		fields := make(map[string]Value, len(d))
		for k, item := range d {
			fields[fmt.Sprint(k)] = FromAny(item)
		}
		return FromObject(fields)
	default:
		return FromString(fmt.Sprint(d))
	}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	switch v.data.(type) {
	case nil, nullType:
		return KindNull
	case bool:
		return KindBool
	case decimal.Decimal:
		return KindNumber
	case string:
		return KindString
	case []Value:
		return KindArray
	case map[string]Value:
		return KindObject
	default:
		return KindNull
	}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok
}

// AsDecimal returns the numeric payload.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	d, ok := v.data.(decimal.Decimal)
	return d, ok
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	s, ok := v.data.(string)
	return s, ok
}

// AsArray returns the array payload.
func (v Value) AsArray() ([]Value, bool) {
	a, ok := v.data.([]Value)
	return a, ok
}

// AsObject returns the object payload.
func (v Value) AsObject() (map[string]Value, bool) {
	o, ok := v.data.(map[string]Value)
	return o, ok
}

// IsTrue returns the truthiness of the value.
//
// Null is false; booleans are themselves; numbers are true when nonzero;
// strings, arrays and objects are true when non-empty.
func (v Value) IsTrue() bool {
	switch d := v.data.(type) {
	case nullType, nil:
		return false
	case bool:
		return d
	case decimal.Decimal:
		return !d.IsZero()
	case string:
		return d != ""
	case []Value:
		return len(d) > 0
	case map[string]Value:
		return len(d) > 0
	default:
		return false
	}
}

// Get looks up a key on an object value.
//
// An exact match wins; otherwise the lookup falls back to a
// case-insensitive scan. Missing keys and non-object values yield Null.
// This is the lookup dotted-path traversal uses.
func (v Value) Get(key string) Value {
	obj, ok := v.AsObject()
	if !ok {
		return Null()
	}
	if item, ok := obj[key]; ok {
		return item
	}
	for k, item := range obj {
		if strings.EqualFold(k, key) {
			return item
		}
	}
	return Null()
}

// GetExact looks up a key on an object value with case-sensitive
// matching. This is the lookup computed index access uses.
func (v Value) GetExact(key string) Value {
	obj, ok := v.AsObject()
	if !ok {
		return Null()
	}
	if item, ok := obj[key]; ok {
		return item
	}
	return Null()
}

// Index returns the item at position i of an array value.
//
// Out-of-range indices and non-array values yield Null.
func (v Value) Index(i int) Value {
	arr, ok := v.AsArray()
	if !ok || i < 0 || i >= len(arr) {
		return Null()
	}
	return arr[i]
}

// String renders the value as raw property text.
//
// Numbers render without a fixed decimal count, booleans lowercase, null
// as empty text. Arrays and objects render in a bracketed display form.
func (v Value) String() string {
	switch d := v.data.(type) {
	case nullType, nil:
		return ""
	case bool:
		if d {
			return "true"
		}
		return "false"
	case decimal.Decimal:
		return d.String()
	case string:
		return d
	case []Value:
		parts := make([]string, len(d))
		for i, item := range d {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Value:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + d[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(d)
	}
}
