package etiket

import (
	"fmt"
	"sync"
	"testing"

	"golang.org/x/text/language"

	"github.com/etiket/etiket-go/parser"
	"github.com/etiket/etiket-go/value"
)

func TestParseCachesIdenticalSource(t *testing.T) {
	e := New()
	first, err := e.Parse("price * quantity")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	second, err := e.Parse("price * quantity")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if first != second {
		t.Error("second parse of identical source should return the cached node")
	}
	if e.CacheCount() != 1 {
		t.Errorf("cache count = %d, want 1", e.CacheCount())
	}
}

func TestBarePathBypassesCache(t *testing.T) {
	e := New()
	first, err := e.Parse("items[0].name")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, ok := first.(*parser.Path); !ok {
		t.Fatalf("bare path should parse to *parser.Path, got %T", first)
	}
	second, _ := e.Parse("items[0].name")
	if first == second {
		t.Error("bare paths should be rebuilt per call, not cached")
	}
	if e.CacheCount() != 0 {
		t.Errorf("cache count = %d, want 0", e.CacheCount())
	}
}

func TestParseErrorsNotCached(t *testing.T) {
	e := New()
	if _, err := e.Parse("a <"); err == nil {
		t.Fatal("expected parse error")
	}
	if e.CacheCount() != 0 {
		t.Errorf("failed parses must not populate the cache")
	}
}

func TestClearCache(t *testing.T) {
	e := New()
	if _, err := e.Parse("a + b"); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := e.Parse("a - b"); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if e.CacheCount() != 2 {
		t.Fatalf("cache count = %d, want 2", e.CacheCount())
	}
	e.ClearCache()
	if e.CacheCount() != 0 {
		t.Errorf("cache count after clear = %d, want 0", e.CacheCount())
	}
}

func TestConcurrentParseAndEvaluate(t *testing.T) {
	e := New()
	ctx := value.FromAny(map[string]any{"price": 10.5, "quantity": 3})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				// Half the goroutines race on one expression, the rest
				// insert distinct ones.
				src := "price * quantity"
				if n%2 == 0 {
					src = fmt.Sprintf("price + %d", j)
				}
				if _, err := e.Evaluate(src, ctx, language.English); err != nil {
					t.Errorf("Evaluate(%q) error: %v", src, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestFilterNamesCaseInsensitive(t *testing.T) {
	e := New()
	ctx := value.FromAny(map[string]any{"name": "john"})
	result, err := e.Evaluate("name | UPPER", ctx, language.English)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if got := result.String(); got != "JOHN" {
		t.Errorf("name | UPPER = %q", got)
	}
}

func TestFilterOverride(t *testing.T) {
	e := New()
	e.AddFilter("upper", func(val value.Value, _ FilterArgs, _ language.Tag) (value.Value, error) {
		return value.FromString("overridden"), nil
	})
	result, err := e.Evaluate("name | upper", value.FromAny(map[string]any{"name": "x"}), language.English)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}
	if got := result.String(); got != "overridden" {
		t.Errorf("last registration should win, got %q", got)
	}
}

func TestEmptyEngineHasNoFilters(t *testing.T) {
	e := Empty()
	_, err := e.Evaluate("name | upper", value.FromAny(map[string]any{"name": "x"}), language.English)
	if err == nil {
		t.Error("an empty engine should not resolve builtin filter names")
	}
}
