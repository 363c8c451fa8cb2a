// Comparison benchmarks against expr-lang, which covers a similar
// expression surface (paths, arithmetic, boolean logic, coalescing)
// over a different value model. The point of comparison is the hot
// render-loop shape: parse once, evaluate many times against changing
// line-item contexts.
//
//	go test -bench=BenchmarkEvaluate -benchmem .
package etiket

import (
	"fmt"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/language"

	"github.com/etiket/etiket-go/value"
)

var benchContext = map[string]any{
	"price":    12.5,
	"quantity": 3,
	"customer": map[string]any{
		"name": "Ada",
		"vip":  true,
	},
	"items": []any{
		map[string]any{"sku": "A-100", "total": 10.0},
		map[string]any{"sku": "B-200", "total": 20.0},
		map[string]any{"sku": "C-300", "total": 30.0},
	},
}

var benchCases = []struct {
	name   string
	source string
}{
	{"Path", "customer.name"},
	{"Arithmetic", "price * quantity + 1"},
	{"Logic", "quantity > 2 && customer.vip"},
	{"Coalesce", "discount ?? price"},
	{"Index", "items[1].total"},
}

func BenchmarkEvaluateNative(b *testing.B) {
	e := New()
	ctx := value.FromAny(benchContext)
	for _, c := range benchCases {
		b.Run(c.name, func(b *testing.B) {
			// Warm the cache so the loop measures evaluation only.
			if _, err := e.Evaluate(c.source, ctx, language.English); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Evaluate(c.source, ctx, language.English); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEvaluateExprLang(b *testing.B) {
	for _, c := range benchCases {
		b.Run(c.name, func(b *testing.B) {
			program, err := expr.Compile(c.source, expr.AllowUndefinedVariables())
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := vm.Run(program, benchContext); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFilterPipeline(b *testing.B) {
	e := New()
	ctx := value.FromAny(benchContext)
	sources := []string{
		"price * quantity | currency",
		"customer.name | upper | truncate:16",
		"price | format:'0.00'",
	}
	for _, src := range sources {
		b.Run(src, func(b *testing.B) {
			if _, err := e.Evaluate(src, ctx, language.English); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Evaluate(src, ctx, language.English); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	source := "items[0].total + items[1].total > 25 && customer.vip | upper"
	b.Run("Cold", func(b *testing.B) {
		e := New()
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			e.ClearCache()
			if _, err := e.Parse(source); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("Cached", func(b *testing.B) {
		e := New()
		if _, err := e.Parse(source); err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := e.Parse(source); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkParseManyDistinct(b *testing.B) {
	e := New()
	sources := make([]string, 64)
	for i := range sources {
		sources[i] = fmt.Sprintf("items[%d].total * %d | currency", i%3, i+1)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Parse(sources[i%len(sources)]); err != nil {
			b.Fatal(err)
		}
	}
}
