package etiket

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/etiket/etiket-go/parser"
	"github.com/etiket/etiket-go/value"
)

// Evaluate parses and evaluates expression source text against a data
// context.
//
// Evaluation is pure given the source, the context and the registered
// filter set. Data-shape mismatches never fail: missing paths, bad
// arithmetic operands and division by zero all evaluate to null. The only
// evaluation-time error is a reference to an unregistered filter, which
// indicates a template-authoring defect rather than a data problem.
func (e *Engine) Evaluate(source string, ctx value.Value, locale language.Tag) (value.Value, error) {
	node, err := e.Parse(source)
	if err != nil {
		return value.Null(), err
	}
	return e.EvalNode(node, ctx, locale)
}

// EvalNode evaluates an already-parsed AST node against a data context.
func (e *Engine) EvalNode(node parser.Expr, ctx value.Value, locale language.Tag) (value.Value, error) {
	ev := &evaluator{engine: e, ctx: ctx, locale: locale}
	return ev.eval(node)
}

type evaluator struct {
	engine *Engine
	ctx    value.Value
	locale language.Tag
}

func (ev *evaluator) eval(node parser.Expr) (value.Value, error) {
	switch n := node.(type) {
	case *parser.Path:
		return resolvePath(ev.ctx, n.Name), nil

	case *parser.NumberLit:
		return value.FromDecimal(n.Value), nil

	case *parser.StringLit:
		return value.FromString(n.Value), nil

	case *parser.BoolLit:
		return value.FromBool(n.Value), nil

	case *parser.NullLit:
		return value.Null(), nil

	case *parser.Arithmetic:
		return ev.evalArithmetic(n)

	case *parser.Negate:
		operand, err := ev.eval(n.Operand)
		if err != nil {
			return value.Null(), err
		}
		return operand.Neg(), nil

	case *parser.Not:
		operand, err := ev.eval(n.Operand)
		if err != nil {
			return value.Null(), err
		}
		return value.FromBool(!operand.IsTrue()), nil

	case *parser.Comparison:
		return ev.evalComparison(n)

	case *parser.LogicalAnd:
		left, err := ev.eval(n.Left)
		if err != nil {
			return value.Null(), err
		}
		if !left.IsTrue() {
			return left, nil
		}
		return ev.eval(n.Right)

	case *parser.LogicalOr:
		left, err := ev.eval(n.Left)
		if err != nil {
			return value.Null(), err
		}
		if left.IsTrue() {
			return left, nil
		}
		return ev.eval(n.Right)

	case *parser.Coalesce:
		left, err := ev.eval(n.Left)
		if err != nil {
			return value.Null(), err
		}
		// Only null triggers the fallback; false, 0 and "" are kept.
		if left.IsNull() {
			return ev.eval(n.Right)
		}
		return left, nil

	case *parser.Index:
		return ev.evalIndex(n)

	case *parser.Filter:
		return ev.evalFilter(n)

	default:
		return value.Null(), fmt.Errorf("unsupported expression type: %T", node)
	}
}

func (ev *evaluator) evalArithmetic(n *parser.Arithmetic) (value.Value, error) {
	left, err := ev.eval(n.Left)
	if err != nil {
		return value.Null(), err
	}
	right, err := ev.eval(n.Right)
	if err != nil {
		return value.Null(), err
	}

	switch n.Op {
	case parser.OpAdd:
		return left.Add(right), nil
	case parser.OpSub:
		return left.Sub(right), nil
	case parser.OpMul:
		return left.Mul(right), nil
	case parser.OpDiv:
		return left.Div(right), nil
	default:
		return value.Null(), fmt.Errorf("unknown arithmetic operator")
	}
}

func (ev *evaluator) evalComparison(n *parser.Comparison) (value.Value, error) {
	left, err := ev.eval(n.Left)
	if err != nil {
		return value.Null(), err
	}
	right, err := ev.eval(n.Right)
	if err != nil {
		return value.Null(), err
	}

	switch n.Op {
	case parser.OpEq:
		return value.FromBool(left.Equal(right)), nil
	case parser.OpNe:
		return value.FromBool(!left.Equal(right)), nil
	}

	cmp, ok := left.Compare(right)
	if !ok {
		return value.False(), nil
	}
	switch n.Op {
	case parser.OpLt:
		return value.FromBool(cmp < 0), nil
	case parser.OpGt:
		return value.FromBool(cmp > 0), nil
	case parser.OpLe:
		return value.FromBool(cmp <= 0), nil
	case parser.OpGe:
		return value.FromBool(cmp >= 0), nil
	default:
		return value.Null(), fmt.Errorf("unknown comparison operator")
	}
}

func (ev *evaluator) evalIndex(n *parser.Index) (value.Value, error) {
	base, err := ev.eval(n.Base)
	if err != nil {
		return value.Null(), err
	}
	key, err := ev.eval(n.Key)
	if err != nil {
		return value.Null(), err
	}
	return indexValue(base, key), nil
}

// indexValue implements computed `base[key]` access.
//
// Arrays take non-negative integer keys; fractional indices truncate
// toward zero and negative ones yield null. Objects take the key coerced
// to text with case-sensitive matching. Anything else yields null.
func indexValue(base, key value.Value) value.Value {
	switch base.Kind() {
	case value.KindArray:
		d, ok := key.AsDecimal()
		if !ok {
			return value.Null()
		}
		i := d.IntPart() // truncates toward zero
		if i < 0 {
			return value.Null()
		}
		return base.Index(int(i))

	case value.KindObject:
		return base.GetExact(key.String())

	default:
		return value.Null()
	}
}

// resolvePath traverses a dotted/indexed path like `items[0].name`
// through the context. Any missing key, out-of-range index or traversal
// through a non-container yields null.
func resolvePath(ctx value.Value, path string) value.Value {
	current := ctx
	rest := path
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return value.Null()
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return value.Null()
			}
			current = current.Index(idx)
			rest = rest[end+1:]
		default:
			end := len(rest)
			if i := strings.IndexAny(rest, ".["); i >= 0 {
				end = i
			}
			current = current.Get(rest[:end])
			rest = rest[end:]
		}
	}
	return current
}

func (ev *evaluator) evalFilter(n *parser.Filter) (value.Value, error) {
	input, err := ev.eval(n.Input)
	if err != nil {
		return value.Null(), err
	}

	fn := ev.engine.Filter(n.Name)
	if fn == nil {
		return value.Null(), NewError(ErrUnknownFilter, "no filter registered under this name").
			WithName(n.Name)
	}

	args := FilterArgs{named: n.Named}
	if n.Arg != nil {
		arg, err := ev.eval(n.Arg)
		if err != nil {
			return value.Null(), err
		}
		args.positional = arg
		args.hasPositional = true
	}

	return fn(input, args, ev.locale)
}
