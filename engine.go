package etiket

import (
	"strings"
	"sync"

	"github.com/etiket/etiket-go/parser"
)

// Engine holds the filter registry and the expression cache.
//
// An Engine is safe for concurrent use by any number of renders once
// configuration is complete. Filters are expected to be registered before
// concurrent evaluation begins; the expression cache synchronizes itself.
type Engine struct {
	mu      sync.RWMutex
	cache   map[string]parser.Expr
	filters map[string]FilterFunc
}

// New creates an engine with the baseline filter set registered.
func New() *Engine {
	e := Empty()
	registerDefaultFilters(e)
	return e
}

// Empty creates an engine with no filters registered.
func Empty() *Engine {
	return &Engine{
		cache:   make(map[string]parser.Expr),
		filters: make(map[string]FilterFunc),
	}
}

// AddFilter registers a filter under the given name.
//
// Names are matched case-insensitively and a later registration replaces
// an earlier one of the same name.
func (e *Engine) AddFilter(name string, fn FilterFunc) {
	e.filters[strings.ToLower(name)] = fn
}

// Filter returns the filter registered under name, or nil.
func (e *Engine) Filter(name string) FilterFunc {
	return e.filters[strings.ToLower(name)]
}

// Parse parses expression source text, memoizing the AST per distinct
// source string.
//
// A second parse of byte-identical source returns the cached node. Bare
// single-path expressions bypass the cache entirely: a simple path is
// cheaper to reparse than to look up.
func (e *Engine) Parse(source string) (parser.Expr, error) {
	if parser.IsBarePath(source) {
		return &parser.Path{Name: source}, nil
	}

	e.mu.RLock()
	cached, ok := e.cache[source]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	expr, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	// A concurrent parse of the same source may have stored its own node
	// already; either tree is equivalent, so last write wins.
	e.mu.Lock()
	e.cache[source] = expr
	e.mu.Unlock()
	return expr, nil
}

// CacheCount returns the number of cached expressions.
func (e *Engine) CacheCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// ClearCache drops all cached expressions. Intended for test isolation;
// the key space is bounded by the distinct expressions of a template set,
// so production use never needs eviction.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]parser.Expr)
}
