// Package options implements the per-panel option store resolved into final
// pgfplots axis options.
//
// Option values form a small tagged union ([Value]) instead of a dynamic
// map of mixed types: every merge or append operation is an exhaustive
// switch over [Kind] rather than runtime type inspection. The [Store] keeps
// insertion order so rendered option blocks are deterministic and stable
// across passes.
//
// Layout passes frequently do not know whether a given key was already set
// by an earlier pass (an explicit user option vs. a computed default). The
// merge/append operations let every pass apply its own default only if
// nothing else already claimed the slot, while still being able to force an
// override where policy requires it.
package options

import (
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the option value union.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindFlag        // key present with no value, e.g. "xmajorgrids"
	KindNumber
	KindText
	KindList
	KindMap
	KindPaired // value applies in two argument groups, e.g. view={0}{90}
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFlag:
		return "flag"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindPaired:
		return "paired"
	}
	return "unknown"
}

// Value is one option value. The zero Value is Absent.
type Value struct {
	kind Kind
	num  float64
	text string
	list []Value
	m    map[string]Value
	pair []Value // len 2 when kind == KindPaired
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Flag returns a value rendered as a bare key.
func Flag() Value { return Value{kind: KindFlag} }

// Number returns a numeric scalar value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a textual scalar value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// List returns a list value holding the given elements.
func List(vs ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), vs...)}
}

// MapOf returns a map value. The map is used as-is; callers must not
// mutate it afterwards.
func MapOf(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, m: m}
}

// Paired returns a two-group value rendered as {a}{b}.
func Paired(a, b Value) Value {
	return Value{kind: KindPaired, pair: []Value{a, b}}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsScalar reports whether the value is a flag or a scalar (number or text).
func (v Value) IsScalar() bool {
	return v.kind == KindFlag || v.kind == KindNumber || v.kind == KindText
}

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsText returns the textual payload.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsList returns the list elements. The returned slice must not be mutated.
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// AsMap returns the map payload. The returned map must not be mutated.
func (v Value) AsMap() (map[string]Value, bool) {
	return v.m, v.kind == KindMap
}

// AsPair returns the two components of a paired value.
func (v Value) AsPair() (Value, Value, bool) {
	if v.kind != KindPaired {
		return Value{}, Value{}, false
	}
	return v.pair[0], v.pair[1], true
}

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent, KindFlag:
		return true
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, a := range v.m {
			b, ok := o.m[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	case KindPaired:
		return v.pair[0].Equal(o.pair[0]) && v.pair[1].Equal(o.pair[1])
	}
	return false
}

// String renders the value in pgfplots option syntax. Flags and absent
// values render empty; the key-only form is the store's concern.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent, KindFlag:
		return ""
	case KindNumber:
		return FormatNumber(v.num)
	case KindText:
		return v.text
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindMap:
		return "{" + renderMapBody(v.m) + "}"
	case KindPaired:
		return "{" + v.pair[0].String() + "}{" + v.pair[1].String() + "}"
	}
	return ""
}

// renderMapBody renders map entries as "k=v" pairs, flags as bare keys,
// sorted by key for deterministic output.
func renderMapBody(m map[string]Value) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, renderEntry(k, m[k]))
	}
	return strings.Join(parts, ", ")
}

// renderEntry renders a single key/value pair in option syntax.
func renderEntry(key string, v Value) string {
	switch v.kind {
	case KindAbsent, KindFlag:
		return key
	default:
		return key + "=" + v.String()
	}
}

// FormatNumber renders a float the way pgfplots expects: shortest exact
// decimal form, no exponent for typical magnitudes.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
