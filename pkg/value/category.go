package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Category is a member of the closed set of category codes used as keys of a
// CategoryMap.
type Category uint8

const (
	CategoryAbility Category = iota
	CategoryEffect
	CategoryAttribute
	CategoryCue
	CategoryModifier
	CategoryCost
	CategoryCooldown
	CategoryRequirement
	CategoryImmunity

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryAbility:     "Ability",
	CategoryEffect:      "Effect",
	CategoryAttribute:   "Attribute",
	CategoryCue:         "Cue",
	CategoryModifier:    "Modifier",
	CategoryCost:        "Cost",
	CategoryCooldown:    "Cooldown",
	CategoryRequirement: "Requirement",
	CategoryImmunity:    "Immunity",
}

// String returns the canonical name used on the wire.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	return c < categoryCount
}

// ParseCategory resolves a canonical category name. Matching is exact.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	all := make([]Category, categoryCount)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

// Shape tells whether a CategoryMap holds one integer or a list of integers
// per category.
type Shape uint8

const (
	ShapeScalar Shape = iota
	ShapeList
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "scalar"
}

// CategoryMap maps category codes to either a single integer or a list of
// integers. One instance never mixes the two.
type CategoryMap struct {
	shape   Shape
	scalars map[Category]int64
	lists   map[Category][]int64
}

// NewScalarCategories builds a scalar-valued map. Invalid categories are
// dropped.
func NewScalarCategories(values map[Category]int64) CategoryMap {
	scalars := make(map[Category]int64, len(values))
	for c, v := range values {
		if c.Valid() {
			scalars[c] = v
		}
	}
	return CategoryMap{shape: ShapeScalar, scalars: scalars}
}

// NewListCategories builds a list-valued map. Invalid categories are dropped
// and nil lists are stored as empty ones.
func NewListCategories(values map[Category][]int64) CategoryMap {
	lists := make(map[Category][]int64, len(values))
	for c, v := range values {
		if !c.Valid() {
			continue
		}
		lists[c] = append([]int64{}, v...)
	}
	return CategoryMap{shape: ShapeList, lists: lists}
}

func (c CategoryMap) Shape() Shape { return c.shape }

func (c CategoryMap) Len() int {
	if c.shape == ShapeList {
		return len(c.lists)
	}
	return len(c.scalars)
}

// Categories returns the present categories in declaration order.
func (c CategoryMap) Categories() []Category {
	out := make([]Category, 0, c.Len())
	if c.shape == ShapeList {
		for cat := range c.lists {
			out = append(out, cat)
		}
	} else {
		for cat := range c.scalars {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Scalar returns the integer for cat on a scalar-valued map.
func (c CategoryMap) Scalar(cat Category) (int64, bool) {
	if c.shape != ShapeScalar {
		return 0, false
	}
	v, ok := c.scalars[cat]
	return v, ok
}

// List returns the integers for cat on a list-valued map.
func (c CategoryMap) List(cat Category) ([]int64, bool) {
	if c.shape != ShapeList {
		return nil, false
	}
	v, ok := c.lists[cat]
	return v, ok
}

// Values returns the integers for cat regardless of shape; a scalar entry
// comes back as a one-element slice.
func (c CategoryMap) Values(cat Category) []int64 {
	if c.shape == ShapeList {
		return append([]int64(nil), c.lists[cat]...)
	}
	if v, ok := c.scalars[cat]; ok {
		return []int64{v}
	}
	return nil
}

// Promote converts a scalar-valued map into the equivalent list-valued map,
// wrapping every entry in a singleton list.
func (c CategoryMap) Promote() CategoryMap {
	if c.shape == ShapeList {
		return c
	}
	lists := make(map[Category][]int64, len(c.scalars))
	for cat, v := range c.scalars {
		lists[cat] = []int64{v}
	}
	return CategoryMap{shape: ShapeList, lists: lists}
}

// Equal compares shape and entries.
func (c CategoryMap) Equal(other CategoryMap) bool {
	if c.shape != other.shape || c.Len() != other.Len() {
		return false
	}
	if c.shape == ShapeScalar {
		for cat, v := range c.scalars {
			o, ok := other.scalars[cat]
			if !ok || o != v {
				return false
			}
		}
		return true
	}
	for cat, v := range c.lists {
		o, ok := other.lists[cat]
		if !ok || len(o) != len(v) {
			return false
		}
		for i := range v {
			if v[i] != o[i] {
				return false
			}
		}
	}
	return true
}

func (c CategoryMap) String() string {
	cats := c.Categories()
	parts := make([]string, len(cats))
	for i, cat := range cats {
		if c.shape == ShapeList {
			nums := make([]string, len(c.lists[cat]))
			for j, n := range c.lists[cat] {
				nums[j] = strconv.FormatInt(n, 10)
			}
			parts[i] = cat.String() + ": [" + strings.Join(nums, ", ") + "]"
		} else {
			parts[i] = cat.String() + ": " + strconv.FormatInt(c.scalars[cat], 10)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
