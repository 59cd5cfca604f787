package project

import (
	"fmt"
	"reflect"

	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

// FieldKind is the declared shape of a node field.
type FieldKind uint8

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindStringList
	KindIntList
	KindList
	KindCategories
	KindValue
	KindTagMap
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStringList:
		return "string-list"
	case KindIntList:
		return "int-list"
	case KindList:
		return "list"
	case KindCategories:
		return "categories"
	case KindValue:
		return "value"
	case KindTagMap:
		return "tag-map"
	default:
		return fmt.Sprintf("field-kind(%d)", uint8(k))
	}
}

// Field describes one serialized field of a node type: its name on the wire,
// its declared shape and how to read and assign it. Fields are built with the
// typed constructors below and are bound to the node type they were declared
// for.
type Field struct {
	Name string
	Kind FieldKind

	owner   reflect.Type
	get     func(node any) value.Value
	set     func(node any, v value.Value) error
	getTags func(node any) value.Map
	setTags func(node any, m value.Map)
}

func newField[N any](name string, kind FieldKind, get func(*N) value.Value, set func(*N, value.Value) error) Field {
	return Field{
		Name:  name,
		Kind:  kind,
		owner: reflect.TypeOf((*N)(nil)).Elem(),
		get:   func(node any) value.Value { return get(node.(*N)) },
		set:   func(node any, v value.Value) error { return set(node.(*N), v) },
	}
}

func StringField[N any](name string, get func(*N) string, set func(*N, string)) Field {
	return newField(name, KindString,
		func(n *N) value.Value { return value.String(get(n)) },
		func(n *N, v value.Value) error {
			s, err := coerceString(v)
			if err != nil {
				return err
			}
			set(n, s)
			return nil
		})
}

func IntField[N any](name string, get func(*N) int64, set func(*N, int64)) Field {
	return newField(name, KindInt,
		func(n *N) value.Value { return value.Int(get(n)) },
		func(n *N, v value.Value) error {
			i, err := coerceInt(v)
			if err != nil {
				return err
			}
			set(n, i)
			return nil
		})
}

func FloatField[N any](name string, get func(*N) float64, set func(*N, float64)) Field {
	return newField(name, KindFloat,
		func(n *N) value.Value { return value.Float(get(n)) },
		func(n *N, v value.Value) error {
			f, err := coerceFloat(v)
			if err != nil {
				return err
			}
			set(n, f)
			return nil
		})
}

func BoolField[N any](name string, get func(*N) bool, set func(*N, bool)) Field {
	return newField(name, KindBool,
		func(n *N) value.Value { return value.Bool(get(n)) },
		func(n *N, v value.Value) error {
			b, err := coerceBool(v)
			if err != nil {
				return err
			}
			set(n, b)
			return nil
		})
}

func StringListField[N any](name string, get func(*N) []string, set func(*N, []string)) Field {
	return newField(name, KindStringList,
		func(n *N) value.Value { return value.Of(get(n)) },
		func(n *N, v value.Value) error {
			strs, err := coerceStringList(v)
			if err != nil {
				return err
			}
			set(n, strs)
			return nil
		})
}

func IntListField[N any](name string, get func(*N) []int64, set func(*N, []int64)) Field {
	return newField(name, KindIntList,
		func(n *N) value.Value { return value.Of(get(n)) },
		func(n *N, v value.Value) error {
			nums, err := coerceIntList(v)
			if err != nil {
				return err
			}
			set(n, nums)
			return nil
		})
}

// ListField holds an untyped list of values.
func ListField[N any](name string, get func(*N) []value.Value, set func(*N, []value.Value)) Field {
	return newField(name, KindList,
		func(n *N) value.Value { return value.List(get(n)...) },
		func(n *N, v value.Value) error {
			if v.IsNull() {
				set(n, nil)
				return nil
			}
			items, ok := v.AsList()
			if !ok {
				return coerceError(v, KindList)
			}
			set(n, items)
			return nil
		})
}

func CategoryField[N any](name string, get func(*N) value.CategoryMap, set func(*N, value.CategoryMap)) Field {
	return newField(name, KindCategories,
		func(n *N) value.Value { return value.Categories(get(n)) },
		func(n *N, v value.Value) error {
			c, err := coerceCategories(v)
			if err != nil {
				return err
			}
			set(n, c)
			return nil
		})
}

// ValueField holds any value and performs no coercion.
func ValueField[N any](name string, get func(*N) value.Value, set func(*N, value.Value)) Field {
	return newField(name, KindValue, get, func(n *N, v value.Value) error {
		set(n, v)
		return nil
	})
}

// TagMapField declares the node's nested tag map. It is encoded through the
// tag-map codec rather than as an opaque value. A node type has at most one.
func TagMapField[N any](name string, get func(*N) value.Map, set func(*N, value.Map)) Field {
	f := newField(name, KindTagMap,
		func(n *N) value.Value { return value.MapOf(get(n)) },
		func(n *N, v value.Value) error {
			m, ok := v.AsMap()
			if !ok && !v.IsNull() {
				return coerceError(v, KindTagMap)
			}
			set(n, m)
			return nil
		})
	f.getTags = func(node any) value.Map { return get(node.(*N)) }
	f.setTags = func(node any, m value.Map) { set(node.(*N), m) }
	return f
}
