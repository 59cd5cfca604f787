package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/mattsolo1/grove-tagstore/pkg/tag"
)

// ErrTypeMismatch is returned when a value cannot be converted to the
// requested Go type.
var ErrTypeMismatch = errors.New("value: type mismatch")

// Of converts a Go runtime value into the closed variant. Values with no
// matching variant are stored as their textual representation; that path is
// lossy and logged as a data-quality warning.
func Of(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case Map:
		return MapOf(v)
	case CategoryMap:
		return Categories(v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return Int(int64(v))
		}
		return Float(float64(v))
	case uint64:
		if v <= math.MaxInt64 {
			return Int(int64(v))
		}
		return Float(float64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case []Value:
		return List(v...)
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = Of(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = String(item)
		}
		return List(items...)
	case []int64:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = Int(item)
		}
		return List(items...)
	case map[string]any:
		m := make(Map, len(v))
		for k, item := range v {
			m[tag.Generate(k)] = Of(item)
		}
		return MapOf(m)
	case map[tag.Tag]any:
		m := make(Map, len(v))
		for k, item := range v {
			m[k] = Of(item)
		}
		return MapOf(m)
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = Of(rv.Index(i).Interface())
		}
		return List(items...)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null()
		}
	}

	valueLog.WithField("type", fmt.Sprintf("%T", x)).Warn("storing unsupported value as text")
	return String(fmt.Sprint(x))
}

// ToNative projects v onto plain Go values: nil, string, int64, float64,
// bool, []any and map[string]any. Category maps become maps keyed by category
// name holding int64 or []any.
func ToNative(v Value) any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = ToNative(item)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for t, item := range v.m {
			out[t.Name()] = ToNative(item)
		}
		return out
	case KindCategories:
		out := make(map[string]any, v.cat.Len())
		for _, cat := range v.cat.Categories() {
			if v.cat.shape == ShapeList {
				nums := make([]any, len(v.cat.lists[cat]))
				for i, n := range v.cat.lists[cat] {
					nums[i] = n
				}
				out[cat.String()] = nums
				continue
			}
			out[cat.String()] = v.cat.scalars[cat]
		}
		return out
	default:
		return nil
	}
}

// As converts v to T. Integers widen to floats and narrow to smaller integer
// types when in range; no other coercion happens. Null only converts to
// Value.
func As[T any](v Value) (T, error) {
	var out T
	ok := false

	switch p := any(&out).(type) {
	case *Value:
		*p, ok = v, true
	case *string:
		*p, ok = v.AsString()
	case *int64:
		*p, ok = v.AsInt()
	case *int:
		if i, isInt := v.AsInt(); isInt && i >= math.MinInt && i <= math.MaxInt {
			*p, ok = int(i), true
		}
	case *int32:
		if i, isInt := v.AsInt(); isInt && i >= math.MinInt32 && i <= math.MaxInt32 {
			*p, ok = int32(i), true
		}
	case *float64:
		*p, ok = asFloat(v)
	case *float32:
		if f, isFloat := asFloat(v); isFloat {
			*p, ok = float32(f), true
		}
	case *bool:
		*p, ok = v.AsBool()
	case *[]Value:
		*p, ok = v.AsList()
	case *Map:
		*p, ok = v.AsMap()
	case *CategoryMap:
		*p, ok = v.AsCategories()
	case *[]string:
		if list, isList := v.AsList(); isList {
			strs := make([]string, 0, len(list))
			ok = true
			for _, item := range list {
				s, isString := item.AsString()
				if !isString {
					ok = false
					break
				}
				strs = append(strs, s)
			}
			if ok {
				*p = strs
			}
		}
	case *[]int64:
		if list, isList := v.AsList(); isList {
			nums := make([]int64, 0, len(list))
			ok = true
			for _, item := range list {
				n, isInt := item.AsInt()
				if !isInt {
					ok = false
					break
				}
				nums = append(nums, n)
			}
			if ok {
				*p = nums
			}
		}
	default:
		return out, fmt.Errorf("%w: unsupported target type %T", ErrTypeMismatch, out)
	}

	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: cannot use %s value as %T", ErrTypeMismatch, v.kind, zero)
	}
	return out, nil
}

func asFloat(v Value) (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}
