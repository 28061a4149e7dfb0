package piwik

import (
	"strconv"
	"strings"
)

// Value is a query parameter value: either a single scalar or an ordered
// list of scalars. The zero Value is absent.
type Value struct {
	scalar string
	list   []string
	many   bool
}

// String wraps a scalar string value.
func String(s string) Value { return Value{scalar: s} }

// Int wraps a scalar integer value.
func Int(n int) Value { return Value{scalar: strconv.Itoa(n)} }

// Bool wraps a boolean flag; it serializes as "1" or "0".
func Bool(b bool) Value {
	if b {
		return Value{scalar: "1"}
	}
	return Value{scalar: "0"}
}

// List wraps an ordered list of string values.
func List(vs ...string) Value {
	return Value{list: append([]string(nil), vs...), many: true}
}

// Ints wraps an ordered list of integer values.
func Ints(ns ...int) Value {
	vs := make([]string, len(ns))
	for i, n := range ns {
		vs[i] = strconv.Itoa(n)
	}
	return Value{list: vs, many: true}
}

// IsList reports whether the value holds a list rather than a scalar.
func (v Value) IsList() bool { return v.many }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return !v.many && v.scalar == "" }

// Scalar returns the scalar form; for a list it returns the first element.
func (v Value) Scalar() string {
	if v.many {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// List returns the list form; a scalar yields a single-element list.
func (v Value) List() []string {
	if v.many {
		return v.list
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

// Join folds a list into one string; scalars pass through unchanged.
// Order is preserved and no de-duplication happens.
func (v Value) Join(sep string) string {
	if v.many {
		return strings.Join(v.list, sep)
	}
	return v.scalar
}

// True reports the loose truthiness used for flag parameters such as
// secure, api_test, and dnt.
func (v Value) True() bool {
	s := strings.ToLower(strings.TrimSpace(v.Scalar()))
	switch s {
	case "", "0", "false", "no":
		return false
	}
	return true
}
