package value

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
)

func assertValueEqual(t *testing.T, want, got Value) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "want %s (%s), got %s (%s)", want, want.Kind(), got, got.Kind())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{name: "null", v: Null()},
		{name: "string", v: String("fireball")},
		{name: "numeric looking string", v: String("12")},
		{name: "int", v: Int(-42)},
		{name: "float", v: Float(0.5)},
		{name: "integral float", v: Float(3)},
		{name: "bool", v: Bool(true)},
		{name: "empty list", v: List()},
		{name: "mixed list", v: List(Int(1), String("two"), Float(3.5), Null(), List(Bool(false)))},
		{name: "empty map", v: MapOf(nil)},
		{name: "nested map", v: MapOf(Map{
			tag.Generate("Health"): Int(100),
			tag.Generate("Stats"): MapOf(Map{
				tag.Generate("Armor"): Float(1.25),
				tag.Generate("Tags"):  List(String("a"), String("b")),
			}),
		})},
		{name: "scalar categories", v: Categories(NewScalarCategories(map[Category]int64{
			CategoryCost: 5, CategoryCooldown: 2,
		}))},
		{name: "list categories", v: Categories(NewListCategories(map[Category][]int64{
			CategoryEffect: {1, 2, 3}, CategoryCue: {},
		}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValueEqual(t, tt.v, Decode(Encode(tt.v)))
		})
	}
}

func TestCategoryScalarRoundTrip(t *testing.T) {
	in := NewScalarCategories(map[Category]int64{CategoryAbility: 1, CategoryEffect: 2})

	out := Decode(Encode(Categories(in)))

	cat, ok := out.AsCategories()
	require.True(t, ok, "expected categories, got %s", out.Kind())
	assert.Equal(t, ShapeScalar, cat.Shape())
	a, _ := cat.Scalar(CategoryAbility)
	b, _ := cat.Scalar(CategoryEffect)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
}

func TestCategoryNormalization(t *testing.T) {
	doc := transport.Object().
		Set("Ability", transport.Array(transport.Int(1), transport.Int(2))).
		Set("Effect", transport.Int(3))

	out := Decode(doc)

	cat, ok := out.AsCategories()
	require.True(t, ok)
	assert.Equal(t, ShapeList, cat.Shape())
	a, _ := cat.List(CategoryAbility)
	b, _ := cat.List(CategoryEffect)
	assert.Equal(t, []int64{1, 2}, a)
	assert.Equal(t, []int64{3}, b)

	want := NewListCategories(map[Category][]int64{CategoryAbility: {1, 2}, CategoryEffect: {3}})
	assert.True(t, want.Equal(cat))
}

func TestEmptyObjectIsNotCategoryMap(t *testing.T) {
	out := Decode(transport.Object())

	require.Equal(t, KindMap, out.Kind())
	m, _ := out.AsMap()
	assert.Empty(t, m)
}

func TestCategoryRecognitionDeclines(t *testing.T) {
	tests := []struct {
		name string
		obj  *transport.Element
	}{
		{name: "unknown name", obj: transport.Object().Set("Cost", transport.Int(1)).Set("Mana", transport.Int(2))},
		{name: "wrong case", obj: transport.Object().Set("cost", transport.Int(1))},
		{name: "float scalar", obj: transport.Object().Set("Cost", transport.Float(1.5))},
		{name: "string scalar", obj: transport.Object().Set("Cost", transport.String("1"))},
		{name: "non numeric element", obj: transport.Object().Set("Cost", transport.Array(transport.String("x")))},
		{name: "nested object", obj: transport.Object().Set("Cost", transport.Object())},
		{name: "null", obj: transport.Object().Set("Cost", transport.Null())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeCategories(tt.obj)
			assert.False(t, ok)
			assert.Equal(t, KindMap, Decode(tt.obj).Kind())
		})
	}
}

func TestCategoryIntegerLikeElements(t *testing.T) {
	obj := transport.Object().Set("Modifier", transport.Array(
		transport.Int(1),
		transport.Float(2.6),
		transport.String("3"),
		transport.String(" 4.4 "),
	))

	cat, ok := DecodeCategories(obj)
	require.True(t, ok)
	got, _ := cat.List(CategoryModifier)
	assert.Equal(t, []int64{1, 3, 3, 4}, got)
}

func TestEncodeCategoriesOrder(t *testing.T) {
	cat := NewScalarCategories(map[Category]int64{CategoryImmunity: 1, CategoryAbility: 2, CategoryCost: 3})
	obj := EncodeCategories(cat)

	var names []string
	for _, m := range obj.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Ability", "Cost", "Immunity"}, names)
}

func TestEncodeMapSorted(t *testing.T) {
	obj := EncodeMap(Map{tag.Generate("b"): Int(1), tag.Generate("a"): Int(2)})
	require.Len(t, obj.Members, 2)
	assert.Equal(t, "a", obj.Members[0].Name)
	assert.Equal(t, "b", obj.Members[1].Name)
}

func TestDecodeMap(t *testing.T) {
	m, err := DecodeMap(transport.Object().Set(" Speed ", transport.Int(3)))
	require.NoError(t, err)
	assertValueEqual(t, Int(3), m[tag.Generate("Speed")])

	// Category-shaped members still decode as categories one level down.
	m, err = DecodeMap(transport.Object().Set("Costs", transport.Object().Set("Cost", transport.Int(2))))
	require.NoError(t, err)
	assert.Equal(t, KindCategories, m[tag.Generate("Costs")].Kind())

	m, err = DecodeMap(transport.Null())
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = DecodeMap(transport.Array())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDecodeMapKeepsCategoryNamesAsTags(t *testing.T) {
	m, err := DecodeMap(transport.Object().Set("Cost", transport.Int(2)))
	require.NoError(t, err)
	assertValueEqual(t, Int(2), m[tag.Generate("Cost")])
}

func TestDecodeMapCollidingKeys(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	obj := transport.Object().
		Set("Health", transport.Int(1)).
		Set(" Health ", transport.Int(2))

	m, err := DecodeMap(obj)
	require.NoError(t, err)
	require.Len(t, m, 1)
	assertValueEqual(t, Int(2), m[tag.Generate("Health")])

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, " Health ", hook.LastEntry().Data["key"])
}
