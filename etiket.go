// Package etiket provides the inline expression engine of the Etiket
// receipt and label templating system.
//
// Template element properties may hold either literal text or a small
// typed expression (`{{price * qty | currency}}`, `status == "paid"`,
// `name ?? "Guest"`). This package parses and evaluates those
// expressions against a per-render data context and converts the results
// back into validated, strongly typed property values.
//
// # Quick Start
//
//	engine := etiket.New()
//	ctx := value.FromAny(map[string]any{
//	    "price":    10.5,
//	    "quantity": 3,
//	})
//	result, err := engine.Evaluate("price * quantity | currency", ctx, language.English)
//	// result.String() == "31.50"
//
// # Expression Language
//
// Expressions combine context paths, literals, arithmetic, comparisons,
// logic and filters:
//
//   - Paths: `name`, `user.name`, `items[0].price`
//   - Literals: `42`, `10.5`, `'text'`, `true`, `false`, `null`
//   - Arithmetic: `+ - * /` (exact decimal, numbers only)
//   - Comparison: `== != < > <= >=` (strictly binary)
//   - Logic: `&& || !` with value-returning short circuit
//   - Defaulting: `name ?? 'Guest'` (null-only fallback)
//   - Filters: `total | currency`, `title | truncate:20 suffix:'…'`
//
// The language degrades instead of failing: a missing path, a
// type-mismatched operation or a division by zero evaluates to null so a
// single bad data field never aborts a receipt render.
//
// # Custom Filters
//
// Filters transform values in pipelines and may be registered before
// concurrent use begins:
//
//	engine.AddFilter("reverse", func(val value.Value, args etiket.FilterArgs, locale language.Tag) (value.Value, error) {
//	    s, ok := val.AsString()
//	    if !ok {
//	        return val, nil
//	    }
//	    runes := []rune(s)
//	    for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
//	        runes[i], runes[j] = runes[j], runes[i]
//	    }
//	    return value.FromString(string(runes)), nil
//	})
//
// # Deferred Properties
//
// The prop subpackage carries an element attribute through the resolve
// and materialize phases of a render pass; see its documentation.
package etiket

import (
	"golang.org/x/text/language"

	"github.com/etiket/etiket-go/value"
)

// Version is the version of the etiket expression engine.
const Version = "0.3.0"

// Eval evaluates a single expression on a fresh engine with the baseline
// filters. It is a convenience for one-off evaluation; renders that
// evaluate many expressions should hold an Engine to reuse its cache.
func Eval(source string, ctx value.Value, locale language.Tag) (value.Value, error) {
	return New().Evaluate(source, ctx, locale)
}
