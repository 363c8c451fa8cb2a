package etiket

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/etiket/etiket-go/parser"
	"github.com/etiket/etiket-go/value"
)

// FilterFunc is the signature for filter functions.
//
// A filter receives the upstream value, its arguments and the locale the
// render runs under. Filters never error on bad input shape — they
// degrade to returning null or the input unchanged, documented per
// filter. The error return exists for custom filters with genuine
// failure modes of their own.
type FilterFunc func(val value.Value, args FilterArgs, locale language.Tag) (value.Value, error)

// FilterArgs carries the arguments of one filter application: at most one
// positional argument plus ordered named/flag arguments.
type FilterArgs struct {
	positional    value.Value
	hasPositional bool
	named         []parser.NamedArg
}

// Positional returns the evaluated positional argument, if one was
// supplied: `truncate:8` carries the number 8.
func (a FilterArgs) Positional() (value.Value, bool) {
	if !a.hasPositional {
		return value.Null(), false
	}
	return a.positional, true
}

// GetNamed returns the raw text of the named argument, or def when the
// name is absent or was supplied as a bare flag. A named key with an
// explicit empty value returns "" rather than def; flag presence and
// empty value are distinct states.
func (a FilterArgs) GetNamed(name, def string) string {
	for _, n := range a.named {
		if n.Name == name && n.HasValue {
			return n.Value
		}
	}
	return def
}

// HasFlag reports whether name was supplied bare, with no value attached.
func (a FilterArgs) HasFlag(name string) bool {
	for _, n := range a.named {
		if n.Name == name && !n.HasValue {
			return true
		}
	}
	return false
}

// Built-in filter implementations. These cover the formatting needs of
// receipt and label rendering.

// filterCurrency implements the built-in `currency` filter.
//
// It formats a number as a monetary amount with two fraction digits
// (override with `digits:N`). With an ISO code — positional `'EUR'` or
// named `code:EUR` — the locale's symbol is printed. Non-number input
// yields null.
func filterCurrency(val value.Value, args FilterArgs, locale language.Tag) (value.Value, error) {
	d, ok := val.AsDecimal()
	if !ok {
		return value.Null(), nil
	}
	f, _ := d.Float64()
	p := message.NewPrinter(locale)

	code := args.GetNamed("code", "")
	if arg, ok := args.Positional(); ok {
		if s, ok := arg.AsString(); ok {
			code = s
		}
	}
	if code != "" {
		if unit, err := currency.ParseISO(code); err == nil {
			return value.FromString(p.Sprintf("%v", currency.Symbol(unit.Amount(f)))), nil
		}
	}

	digits := atoiDefault(args.GetNamed("digits", ""), 2)
	return value.FromString(p.Sprintf("%v", number.Decimal(f, number.Scale(digits)))), nil
}

// filterNumber implements the built-in `number` filter: fixed-point
// formatting with a positional decimal count (`number:3`, default 2).
// Non-number input yields null.
func filterNumber(val value.Value, args FilterArgs, locale language.Tag) (value.Value, error) {
	d, ok := val.AsDecimal()
	if !ok {
		return value.Null(), nil
	}
	digits := 2
	if arg, ok := args.Positional(); ok {
		if n, ok := arg.AsDecimal(); ok && n.Sign() >= 0 {
			digits = int(n.IntPart())
		}
	}
	f, _ := d.Float64()
	p := message.NewPrinter(locale)
	return value.FromString(p.Sprintf("%v", number.Decimal(f, number.Scale(digits)))), nil
}

// filterFormat implements the built-in `format` filter: generic
// format-string application.
//
// Numbers take a numeric pattern (`format:'0.00'`); date strings take a
// date pattern (`format:'dd/MM/yyyy'`). Input that is neither a number
// nor a parseable date string yields null.
func filterFormat(val value.Value, args FilterArgs, locale language.Tag) (value.Value, error) {
	pattern := ""
	if arg, ok := args.Positional(); ok {
		if s, ok := arg.AsString(); ok {
			pattern = s
		}
	}

	if d, ok := val.AsDecimal(); ok {
		digits := 0
		if i := strings.IndexByte(pattern, '.'); i >= 0 {
			digits = len(pattern) - i - 1
		}
		f, _ := d.Float64()
		p := message.NewPrinter(locale)
		return value.FromString(p.Sprintf("%v", number.Decimal(f, number.Scale(digits)))), nil
	}

	if s, ok := val.AsString(); ok {
		if t, ok := parseDate(s); ok {
			return value.FromString(t.Format(dateLayout(pattern))), nil
		}
	}

	return value.Null(), nil
}

var dateInputLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateLayout translates a pattern like `dd/MM/yyyy HH:mm:ss` into a Go
// time layout. Unrecognized runs pass through verbatim.
func dateLayout(pattern string) string {
	r := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"mm", "04",
		"ss", "05",
	)
	return r.Replace(pattern)
}

// filterUpper implements the built-in `upper` filter. Non-string input is
// returned unchanged.
func filterUpper(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
	if s, ok := val.AsString(); ok {
		return value.FromString(strings.ToUpper(s)), nil
	}
	return val, nil
}

// filterLower implements the built-in `lower` filter. Non-string input is
// returned unchanged.
func filterLower(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
	if s, ok := val.AsString(); ok {
		return value.FromString(strings.ToLower(s)), nil
	}
	return val, nil
}

// filterCapitalize implements the built-in `capitalize` filter.
func filterCapitalize(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
	if s, ok := val.AsString(); ok && s != "" {
		runes := []rune(s)
		return value.FromString(strings.ToUpper(string(runes[0])) + string(runes[1:])), nil
	}
	return val, nil
}

// filterTrim implements the built-in `trim` filter. Non-string input is
// returned unchanged.
func filterTrim(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
	if s, ok := val.AsString(); ok {
		return value.FromString(strings.TrimSpace(s)), nil
	}
	return val, nil
}

// defaultTruncateSuffix marks elided text. Receipt printers are narrow;
// a single-rune marker wastes the least width.
const defaultTruncateSuffix = "…"

// filterTruncate implements the built-in `truncate` filter: fixed-width
// truncation to the positional width.
//
// `suffix:TEXT` overrides the elision marker; the `fromEnd` flag anchors
// the kept text at the end of the string instead of the start. Input
// already within the width, non-string input, and a missing width all
// pass through unchanged.
func filterTruncate(val value.Value, args FilterArgs, _ language.Tag) (value.Value, error) {
	s, ok := val.AsString()
	if !ok {
		return val, nil
	}
	width := 0
	if arg, ok := args.Positional(); ok {
		if n, ok := arg.AsDecimal(); ok {
			width = int(n.IntPart())
		}
	}
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return val, nil
	}

	suffix := []rune(args.GetNamed("suffix", defaultTruncateSuffix))
	keep := width - len(suffix)
	if keep < 0 {
		keep = 0
	}

	if args.HasFlag("fromEnd") {
		return value.FromString(string(suffix) + string(runes[len(runes)-keep:])), nil
	}
	return value.FromString(string(runes[:keep]) + string(suffix)), nil
}

// filterPad implements the built-in `pad` filter: pads to the positional
// width for column alignment. Numbers are stringified first. By default
// text is right-aligned (padded on the left); the `left` flag left-aligns
// instead. `char:X` overrides the pad character.
func filterPad(val value.Value, args FilterArgs, _ language.Tag) (value.Value, error) {
	var s string
	switch val.Kind() {
	case value.KindString, value.KindNumber:
		s = val.String()
	default:
		return val, nil
	}

	width := 0
	if arg, ok := args.Positional(); ok {
		if n, ok := arg.AsDecimal(); ok {
			width = int(n.IntPart())
		}
	}
	runes := []rune(s)
	if width <= len(runes) {
		return value.FromString(s), nil
	}

	pad := args.GetNamed("char", " ")
	if pad == "" {
		pad = " "
	}
	fill := strings.Repeat(string([]rune(pad)[0]), width-len(runes))

	if args.HasFlag("left") {
		return value.FromString(s + fill), nil
	}
	return value.FromString(fill + s), nil
}

// filterReplace implements the built-in `replace` filter:
// `replace old:',' new:';'`. Non-string input is returned unchanged.
func filterReplace(val value.Value, args FilterArgs, _ language.Tag) (value.Value, error) {
	if s, ok := val.AsString(); ok {
		old := args.GetNamed("old", "")
		if old == "" {
			return val, nil
		}
		return value.FromString(strings.ReplaceAll(s, old, args.GetNamed("new", ""))), nil
	}
	return val, nil
}

// filterDefault implements the built-in `default` filter: substitutes the
// positional argument when the input is null. The `??` operator covers
// the same idiom inside expressions; the filter form composes inside
// pipelines.
func filterDefault(val value.Value, args FilterArgs, _ language.Tag) (value.Value, error) {
	if !val.IsNull() {
		return val, nil
	}
	if arg, ok := args.Positional(); ok {
		return arg, nil
	}
	return value.FromString(""), nil
}

// filterAbs implements the built-in `abs` filter. Non-number input yields
// null.
func filterAbs(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
	d, ok := val.AsDecimal()
	if !ok {
		return value.Null(), nil
	}
	return value.FromDecimal(d.Abs()), nil
}

// filterRound implements the built-in `round` filter: rounds to the
// positional number of decimals (default 0, half away from zero).
// Non-number input yields null.
func filterRound(val value.Value, args FilterArgs, _ language.Tag) (value.Value, error) {
	d, ok := val.AsDecimal()
	if !ok {
		return value.Null(), nil
	}
	digits := 0
	if arg, ok := args.Positional(); ok {
		if n, ok := arg.AsDecimal(); ok {
			digits = int(n.IntPart())
		}
	}
	return value.FromDecimal(d.Round(int32(digits))), nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
