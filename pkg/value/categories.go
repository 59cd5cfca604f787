package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattsolo1/grove-tagstore/pkg/transport"
)

// EncodeCategories converts a category map into a transport object keyed by
// canonical category name, in declaration order.
func EncodeCategories(c CategoryMap) *transport.Element {
	obj := transport.Object()
	for _, cat := range c.Categories() {
		if c.shape == ShapeList {
			nums := c.lists[cat]
			items := make([]*transport.Element, len(nums))
			for i, n := range nums {
				items[i] = transport.Int(n)
			}
			obj.Set(cat.String(), transport.Array(items...))
			continue
		}
		obj.Set(cat.String(), transport.Int(c.scalars[cat]))
	}
	return obj
}

// DecodeCategories recognizes an object shaped like a category map: at least
// one member, every name a canonical category, every value an integer or an
// array of integer-like elements. When any value is an array the whole map is
// decoded list-valued and scalar entries become singleton lists.
//
// The shape is inferred, so a map that needs a list for a single category
// turns list-valued everywhere; callers that want scalars must read with
// CategoryMap.Values.
func DecodeCategories(e *transport.Element) (CategoryMap, bool) {
	if e == nil || e.Kind != transport.KindObject || len(e.Members) == 0 {
		return CategoryMap{}, false
	}

	anyList := false
	for _, m := range e.Members {
		if _, ok := ParseCategory(m.Name); !ok {
			return CategoryMap{}, false
		}
		switch {
		case m.Value == nil:
			return CategoryMap{}, false
		case m.Value.Kind == transport.KindInt:
		case m.Value.Kind == transport.KindArray:
			for _, item := range m.Value.Items {
				if _, ok := integerLike(item); !ok {
					return CategoryMap{}, false
				}
			}
			anyList = true
		default:
			return CategoryMap{}, false
		}
	}

	if !anyList {
		scalars := make(map[Category]int64, len(e.Members))
		for _, m := range e.Members {
			cat, _ := ParseCategory(m.Name)
			scalars[cat] = m.Value.Int
		}
		return CategoryMap{shape: ShapeScalar, scalars: scalars}, true
	}

	lists := make(map[Category][]int64, len(e.Members))
	for _, m := range e.Members {
		cat, _ := ParseCategory(m.Name)
		if m.Value.Kind == transport.KindInt {
			lists[cat] = []int64{m.Value.Int}
			continue
		}
		nums := make([]int64, 0, len(m.Value.Items))
		for _, item := range m.Value.Items {
			n, _ := integerLike(item)
			nums = append(nums, n)
		}
		lists[cat] = nums
	}
	return CategoryMap{shape: ShapeList, lists: lists}, true
}

// integerLike accepts integers, finite floats within int64 range (rounded)
// and numeric strings (parsed, then rounded).
func integerLike(e *transport.Element) (int64, bool) {
	if e == nil {
		return 0, false
	}
	switch e.Kind {
	case transport.KindInt:
		return e.Int, true
	case transport.KindFloat:
		return roundToInt(e.Float)
	case transport.KindString:
		s := strings.TrimSpace(e.Str)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return roundToInt(f)
	default:
		return 0, false
	}
}

func roundToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	r := math.Round(f)
	if r < math.MinInt64 || r >= math.MaxInt64 {
		return 0, false
	}
	return int64(r), true
}
