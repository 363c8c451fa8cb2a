// Package prop implements deferred property values.
//
// Every attribute of a template element is a property slot that may hold
// either a literal or an unresolved expression. A slot goes through a
// two-phase lifecycle on each render pass:
//
//   - Resolve evaluates the embedded expression against the current data
//     context and stringifies the result back into raw text.
//   - Materialize parses the raw text into the slot's target type.
//
// After both phases the attribute is a plain typed value with no
// remaining knowledge of whether it originated as a literal or as an
// expression.
//
//	qty := prop.Expression(
//	    "item.quantity ?? 1",
//	    prop.Int(),
//	)
//	if err := qty.Resolve(engine.Evaluate, ctx, language.English); err != nil { ... }
//	if err := qty.Materialize("quantity", language.English); err != nil { ... }
//	n := qty.Value()
//
// Materialize is idempotent; calling it a second time is a no-op.
// A slot in expression state must pass through Resolve before
// Materialize: materializing unresolved expression text parses the
// expression source as whatever literal syntax happens to match. That is
// a contract precondition on the caller, not a condition the engine
// checks for.
package prop

import (
	"strings"

	"golang.org/x/text/language"

	etiket "github.com/etiket/etiket-go"
	"github.com/etiket/etiket-go/value"
)

// EvalFunc evaluates expression source text against a data context.
// (*etiket.Engine).Evaluate satisfies it.
type EvalFunc func(source string, ctx value.Value, locale language.Tag) (value.Value, error)

// Kind is an optional semantic hint for Materialize, e.g. "this raw text
// is a color" or "a size with a unit". It is accepted for stricter
// validation in later versions; today every kind is permissive.
type Kind string

const (
	KindColor Kind = "color"
	KindSize  Kind = "size"
)

type state int

const (
	stateLiteral state = iota
	stateExpression
	stateRaw
	stateMaterialized
)

// Prop is a deferred property value with target type T.
type Prop[T any] struct {
	state state
	val   T
	raw   string
	shape Shape[T]
}

// Literal creates a property that already holds a typed value. Resolve
// and Materialize are no-ops on it.
func Literal[T any](v T) *Prop[T] {
	return &Prop[T]{state: stateLiteral, val: v}
}

// Expression creates a property holding unresolved expression source.
// The text is the inner expression only, without embedding delimiters.
func Expression[T any](source string, shape Shape[T]) *Prop[T] {
	return &Prop[T]{state: stateExpression, raw: source, shape: shape}
}

// Raw creates a property holding raw text that still needs
// materializing.
func Raw[T any](text string, shape Shape[T]) *Prop[T] {
	return &Prop[T]{state: stateRaw, raw: text, shape: shape}
}

// New creates a property from raw attribute text as delivered by the
// structural reader, which also decides whether the text embeds
// expression syntax.
func New[T any](raw string, isExpression bool, shape Shape[T]) *Prop[T] {
	if isExpression {
		return Expression(raw, shape)
	}
	return Raw(raw, shape)
}

// Detect reports whether raw attribute text embeds expression syntax
// under the conventional {{ ... }} markers. The structural reader owns
// the convention; this helper exists for readers that follow it.
func Detect(raw string) bool {
	open := strings.Index(raw, "{{")
	return open >= 0 && strings.Contains(raw[open:], "}}")
}

// IsExpression reports whether the property still holds unresolved
// expression text.
func (p *Prop[T]) IsExpression() bool {
	return p.state == stateExpression
}

// RawText returns the currently held raw text. It is empty for a
// literal-state property.
func (p *Prop[T]) RawText() string {
	return p.raw
}

// Value returns the typed value. It is meaningful after Materialize, or
// immediately for a literal-state property.
func (p *Prop[T]) Value() T {
	return p.val
}

// Resolve evaluates the embedded expression against ctx and stores the
// stringified result as raw text. It is a no-op unless the property is
// in expression state.
//
// Stringification follows the property-text rules: numbers render
// without a fixed decimal count, booleans lowercase, null as empty text.
func (p *Prop[T]) Resolve(eval EvalFunc, ctx value.Value, locale language.Tag) error {
	if p.state != stateExpression {
		return nil
	}
	result, err := eval(p.raw, ctx, locale)
	if err != nil {
		return err
	}
	p.raw = result.String()
	p.state = stateRaw
	return nil
}

// Materialize parses the held raw text into the target type. It is a
// no-op when the property is already materialized or was constructed
// from a literal. On failure it returns an engine error naming the
// property and the offending text.
func (p *Prop[T]) Materialize(name string, locale language.Tag, kind ...Kind) error {
	switch p.state {
	case stateLiteral, stateMaterialized:
		return nil
	}
	_ = kind // semantic hints are accepted but not yet enforced

	v, err := p.shape(p.raw, locale)
	if err != nil {
		return etiket.NewError(etiket.ErrInvalidProperty, err.Error()).
			WithName(name).
			WithDetail(p.raw).
			WithCause(err)
	}
	p.val = v
	p.state = stateMaterialized
	return nil
}
