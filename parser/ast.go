// Package parser provides parsing for Etiket template expressions.
package parser

import "github.com/shopspring/decimal"

// Expr is the interface implemented by all AST nodes.
//
// The node set is closed: nodes are created by the parser, cached per
// distinct source text, and shared read-only across evaluations. They are
// never mutated after construction.
type Expr interface {
	expr()
}

// Path references a value in the data context by dotted/indexed
// traversal, e.g. `user.name` or `items[0].price`.
type Path struct {
	Name string
}

func (p *Path) expr() {}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value decimal.Decimal
}

func (n *NumberLit) expr() {}

// StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

func (s *StringLit) expr() {}

// BoolLit is a `true` or `false` literal.
type BoolLit struct {
	Value bool
}

func (b *BoolLit) expr() {}

// NullLit is the `null` literal.
type NullLit struct{}

func (n *NullLit) expr() {}

// ArithOp is the kind of an arithmetic operation.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// Arithmetic is a binary arithmetic operation.
type Arithmetic struct {
	Op    ArithOp
	Left  Expr
	Right Expr
}

func (a *Arithmetic) expr() {}

// Negate is unary numeric negation.
type Negate struct {
	Operand Expr
}

func (n *Negate) expr() {}

// Not is logical negation over truthiness.
type Not struct {
	Operand Expr
}

func (n *Not) expr() {}

// CmpOp is the kind of a comparison operation.
type CmpOp int

const (
	OpEq CmpOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op CmpOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	}
	return "?"
}

// Comparison is a binary comparison. Comparison is strictly binary;
// chains like `a < b < c` are rejected at parse time.
type Comparison struct {
	Op    CmpOp
	Left  Expr
	Right Expr
}

func (c *Comparison) expr() {}

// LogicalAnd is short-circuit `&&`. It yields the left operand when that
// operand is falsy, otherwise the evaluated right operand.
type LogicalAnd struct {
	Left  Expr
	Right Expr
}

func (l *LogicalAnd) expr() {}

// LogicalOr is short-circuit `||`. It yields the left operand when that
// operand is truthy, otherwise the evaluated right operand.
type LogicalOr struct {
	Left  Expr
	Right Expr
}

func (l *LogicalOr) expr() {}

// Coalesce is the `??` operator: it yields the right operand only when
// the left evaluates to null. Falsy-but-present values (false, 0, "") are
// kept.
type Coalesce struct {
	Left  Expr
	Right Expr
}

func (c *Coalesce) expr() {}

// Index is computed element access, `base[key]`.
type Index struct {
	Base Expr
	Key  Expr
}

func (i *Index) expr() {}

// NamedArg is one `name:value` or bare-flag argument of a filter.
//
// A bare flag has HasValue == false; a named key with an explicit empty
// value keeps HasValue == true. The two are deliberately distinguishable.
type NamedArg struct {
	Name     string
	Value    string
	HasValue bool
}

// Filter applies a named filter to its input: `input | name:arg k:v flag`.
//
// Arg is the optional positional argument (nil when absent); Named holds
// the ordered named/flag arguments.
type Filter struct {
	Name  string
	Input Expr
	Arg   Expr
	Named []NamedArg
}

func (f *Filter) expr() {}
