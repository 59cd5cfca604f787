package project

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

// ErrCoerce is wrapped when a document value does not fit a field's declared
// shape.
var ErrCoerce = errors.New("project: value does not fit field")

func coerceError(v value.Value, kind FieldKind) error {
	return fmt.Errorf("%w: cannot use %s value %s as %s", ErrCoerce, v.Kind(), v, kind)
}

func isScalar(v value.Value) bool {
	switch v.Kind() {
	case value.KindString, value.KindInt, value.KindFloat, value.KindBool:
		return true
	default:
		return false
	}
}

func coerceString(v value.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !isScalar(v) {
		return "", coerceError(v, KindString)
	}
	s, err := cast.ToStringE(value.ToNative(v))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoerce, err)
	}
	return s, nil
}

func coerceInt(v value.Value) (int64, error) {
	switch v.Kind() {
	case value.KindNull:
		return 0, nil
	case value.KindInt:
		i, _ := v.AsInt()
		return i, nil
	case value.KindFloat:
		f, _ := v.AsFloat()
		i, ok := integral(f)
		if !ok {
			return 0, coerceError(v, KindInt)
		}
		return i, nil
	case value.KindString:
		s, _ := v.AsString()
		s = strings.TrimSpace(s)
		// Decimal only: leading zeros never select another base.
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, coerceError(v, KindInt)
		}
		i, ok := integral(f)
		if !ok {
			return 0, coerceError(v, KindInt)
		}
		return i, nil
	default:
		return 0, coerceError(v, KindInt)
	}
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func coerceFloat(v value.Value) (float64, error) {
	switch v.Kind() {
	case value.KindNull:
		return 0, nil
	case value.KindInt, value.KindFloat, value.KindString:
		f, err := cast.ToFloat64E(value.ToNative(v))
		if err != nil {
			return 0, coerceError(v, KindFloat)
		}
		return f, nil
	default:
		return 0, coerceError(v, KindFloat)
	}
}

func coerceBool(v value.Value) (bool, error) {
	switch v.Kind() {
	case value.KindNull:
		return false, nil
	case value.KindBool, value.KindInt, value.KindString:
		b, err := cast.ToBoolE(value.ToNative(v))
		if err != nil {
			return false, coerceError(v, KindBool)
		}
		return b, nil
	default:
		return false, coerceError(v, KindBool)
	}
}

func coerceStringList(v value.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil, coerceError(v, KindStringList)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, err := coerceString(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func coerceIntList(v value.Value) ([]int64, error) {
	if v.IsNull() {
		return nil, nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil, coerceError(v, KindIntList)
	}
	out := make([]int64, len(items))
	for i, item := range items {
		n, err := coerceInt(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// coerceCategories accepts a decoded category map, null, or an empty object
// (an empty category map is written as {} and reads back as an empty tag map).
func coerceCategories(v value.Value) (value.CategoryMap, error) {
	if v.IsNull() {
		return value.NewScalarCategories(nil), nil
	}
	if c, ok := v.AsCategories(); ok {
		return c, nil
	}
	if m, ok := v.AsMap(); ok && len(m) == 0 {
		return value.NewScalarCategories(nil), nil
	}
	return value.CategoryMap{}, coerceError(v, KindCategories)
}
