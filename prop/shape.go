package prop

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Shape parses raw property text into a target type.
//
// The set of supported target shapes is closed and explicit: text,
// integer, float, bool, nullable of each, and enum-by-name. Numeric and
// boolean parsing is locale-invariant; the locale parameter exists for
// shapes that genuinely need it (date-valued properties).
type Shape[T any] func(raw string, locale language.Tag) (T, error)

// Text is the passthrough shape for string properties.
func Text() Shape[string] {
	return func(raw string, _ language.Tag) (string, error) {
		return raw, nil
	}
}

// Int parses an integer property.
func Int() Shape[int] {
	return func(raw string, _ language.Tag) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("not an integer")
		}
		return n, nil
	}
}

// Float parses a floating-point property with locale-invariant rules
// (`.` decimal separator, no grouping).
func Float() Shape[float64] {
	return func(raw string, _ language.Tag) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number")
		}
		return f, nil
	}
}

// Bool parses a boolean property: true/false in any case, or 1/0.
func Bool() Shape[bool] {
	return func(raw string, _ language.Tag) (bool, error) {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		default:
			return false, fmt.Errorf("not a boolean")
		}
	}
}

// Nullable wraps a shape so that empty text parses as the absent value.
func Nullable[T any](shape Shape[T]) Shape[*T] {
	return func(raw string, locale language.Tag) (*T, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		v, err := shape(raw, locale)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// Enum parses a variant by case-insensitive name from a known variant
// list. Each call site supplies its own mapping:
//
//	align := prop.Enum(map[string]Alignment{
//	    "left":   AlignLeft,
//	    "center": AlignCenter,
//	    "right":  AlignRight,
//	})
func Enum[T any](variants map[string]T) Shape[T] {
	return func(raw string, _ language.Tag) (T, error) {
		name := strings.TrimSpace(raw)
		for k, v := range variants {
			if strings.EqualFold(k, name) {
				return v, nil
			}
		}
		var zero T
		names := make([]string, 0, len(variants))
		for k := range variants {
			names = append(names, k)
		}
		sort.Strings(names)
		return zero, fmt.Errorf("not one of %s", strings.Join(names, ", "))
	}
}
