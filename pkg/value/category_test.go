package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, ok := ParseCategory(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}

	_, ok := ParseCategory("Nope")
	assert.False(t, ok)
	assert.False(t, Category(200).Valid())
	assert.Equal(t, "Category(200)", Category(200).String())
}

func TestCategoryMapAccessors(t *testing.T) {
	scalar := NewScalarCategories(map[Category]int64{CategoryCost: 4, Category(99): 1})
	assert.Equal(t, 1, scalar.Len())
	assert.Equal(t, []int64{4}, scalar.Values(CategoryCost))
	assert.Nil(t, scalar.Values(CategoryCue))
	_, ok := scalar.List(CategoryCost)
	assert.False(t, ok)

	promoted := scalar.Promote()
	assert.Equal(t, ShapeList, promoted.Shape())
	list, ok := promoted.List(CategoryCost)
	assert.True(t, ok)
	assert.Equal(t, []int64{4}, list)
	assert.False(t, promoted.Equal(scalar))

	lists := NewListCategories(map[Category][]int64{CategoryCue: nil, CategoryAbility: {1}})
	assert.Equal(t, []Category{CategoryAbility, CategoryCue}, lists.Categories())
	assert.Equal(t, "{Ability: [1], Cue: []}", lists.String())
	_, ok = lists.Scalar(CategoryAbility)
	assert.False(t, ok)
}

func TestCategoryMapEqual(t *testing.T) {
	a := NewListCategories(map[Category][]int64{CategoryCost: {1, 2}})
	b := NewListCategories(map[Category][]int64{CategoryCost: {1, 2}})
	c := NewListCategories(map[Category][]int64{CategoryCost: {2, 1}})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
