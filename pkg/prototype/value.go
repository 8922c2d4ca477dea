// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type valueKind int

const (
	valueNone valueKind = iota
	valueLiteral
	valueExpression
)

// DefaultValue is the default of a property, constant, or parameter: none,
// a Go literal exported as PHP source, or a raw PHP expression.
type DefaultValue struct {
	kind  valueKind
	value any
	expr  string
}

// NoDefault returns the absent default.
func NoDefault() DefaultValue {
	return DefaultValue{}
}

// DefaultOf wraps a literal. Supported values are nil, bool, integers,
// floats, strings, []any and map[string]any; anything else exports through
// fmt as a quoted string.
func DefaultOf(v any) DefaultValue {
	return DefaultValue{kind: valueLiteral, value: v}
}

// DefaultExpression wraps raw PHP source such as `self::LIMIT`.
func DefaultExpression(src string) DefaultValue {
	src = strings.TrimSpace(src)
	if src == "" {
		return NoDefault()
	}
	return DefaultValue{kind: valueExpression, expr: src}
}

// IsNone reports whether no default is set.
func (d DefaultValue) IsNone() bool {
	return d.kind == valueNone
}

// NotNone reports whether a default is set.
func (d DefaultValue) NotNone() bool {
	return d.kind != valueNone
}

// Value returns the wrapped literal, or nil for none and expressions.
func (d DefaultValue) Value() any {
	return d.value
}

// Export renders the default as PHP source text. None exports as "".
func (d DefaultValue) Export() string {
	switch d.kind {
	case valueLiteral:
		return exportValue(d.value)
	case valueExpression:
		return d.expr
	default:
		return ""
	}
}

func (d DefaultValue) String() string {
	return d.Export()
}

func exportValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return exportFloat(float64(x))
	case float64:
		return exportFloat(x)
	case string:
		return quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = exportValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = quote(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = quote(k) + " => " + exportValue(x[k])
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return quote(fmt.Sprint(x))
	}
}

func exportFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// quote produces a single-quoted PHP string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
