// Package value implements the open-ended value model stored under tags: a
// closed variant over scalars, lists, nested tag maps and category maps, and
// the codec that maps it to and from the transport model.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattsolo1/grove-tagstore/pkg/tag"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
	KindCategories
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindCategories:
		return "categories"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Map is a nested tag-keyed mapping.
type Map map[tag.Tag]Value

// Value is a tagged union. The zero Value is Null.
type Value struct {
	kind Kind

	s    string
	i    int64
	f    float64
	b    bool
	list []Value
	m    Map
	cat  CategoryMap
}

func Null() Value { return Value{} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List wraps items. A nil list is stored as an empty one.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// MapOf wraps a nested tag map. A nil map is stored as an empty one.
func MapOf(m Map) Value {
	if m == nil {
		m = Map{}
	}
	return Value{kind: KindMap, m: m}
}

// Categories wraps a category map.
func Categories(c CategoryMap) Value {
	return Value{kind: KindCategories, cat: c}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }
func (v Value) AsMap() (Map, bool) { return v.m, v.kind == KindMap }

func (v Value) AsCategories() (CategoryMap, bool) {
	return v.cat, v.kind == KindCategories
}

// Equal reports deep equality. Lists compare in order; maps compare by tag.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == other.s
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(other.m)
	case KindCategories:
		return v.cat.Equal(other.cat)
	default:
		return false
	}
}

// String renders a short human readable form, used by the CLI and as the
// textual fallback of Of.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		tags := v.m.Tags()
		parts := make([]string, len(tags))
		for i, t := range tags {
			parts[i] = t.Name() + ": " + v.m[t].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindCategories:
		return v.cat.String()
	default:
		return ""
	}
}

// Tags returns the keys of m sorted by name.
func (m Map) Tags() []tag.Tag {
	tags := make([]tag.Tag, 0, len(m))
	for t := range m {
		tags = append(tags, t)
	}
	tag.Sort(tags)
	return tags
}

// Equal reports whether both maps hold equal values under the same tags.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for t, v := range m {
		o, ok := other[t]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}
