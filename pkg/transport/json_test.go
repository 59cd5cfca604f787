package transport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	root, err := ParseJSON(strings.NewReader(`{
		"Zeta": 1,
		"Alpha": 2.5,
		"Flag": true,
		"Name": "fire",
		"Nothing": null,
		"List": [1, 2.0, "x"],
		"Nested": {"b": 1, "a": 2}
	}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, root.Kind)

	var names []string
	for _, m := range root.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Flag", "Name", "Nothing", "List", "Nested"}, names)

	zeta, _ := root.Get("Zeta")
	assert.Equal(t, KindInt, zeta.Kind)
	assert.Equal(t, int64(1), zeta.Int)

	alpha, _ := root.Get("Alpha")
	assert.Equal(t, KindFloat, alpha.Kind)
	assert.Equal(t, 2.5, alpha.Float)

	list, _ := root.Get("List")
	require.Len(t, list.Items, 3)
	assert.Equal(t, KindInt, list.Items[0].Kind)
	assert.Equal(t, KindFloat, list.Items[1].Kind)
	assert.Equal(t, KindString, list.Items[2].Kind)

	nested, _ := root.Get("Nested")
	assert.Equal(t, "b", nested.Members[0].Name)

	nothing, ok := root.Get("Nothing")
	require.True(t, ok)
	assert.True(t, nothing.IsNull())
}

func TestParseJSONNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{in: "0", kind: KindInt},
		{in: "-12", kind: KindInt},
		{in: "1.0", kind: KindFloat},
		{in: "1e3", kind: KindFloat},
		{in: "99999999999999999999", kind: KindFloat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := ParseJSON(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, e.Kind)
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "unterminated object", in: `{"a": 1`},
		{name: "missing colon", in: `{"a" 1}`},
		{name: "trailing data", in: `{} {}`},
		{name: "trailing brace", in: `{}}`},
		{name: "bare word", in: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseJSONBlank(t *testing.T) {
	root, err := ParseJSON(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, KindObject, root.Kind)
	assert.Zero(t, root.Len())
}

func TestWriteJSON(t *testing.T) {
	root := Object().
		Set("Level", Int(3)).
		Set("Scale", Float(2)).
		Set("Label", String("<fire> & ice")).
		Set("Empty", Array()).
		Set("Nested", Object().Set("On", Bool(true)).Set("Off", Null()))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, root))

	want := `{
  "Level": 3,
  "Scale": 2.0,
  "Label": "<fire> & ice",
  "Empty": [],
  "Nested": {
    "On": true,
    "Off": null
  }
}
`
	assert.Equal(t, want, buf.String())

	back, err := ParseJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, root, back)
}

func TestWriteJSONRejectsNaN(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, Object().Set("Bad", Float(nan())))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestSetReplacesInPlace(t *testing.T) {
	obj := Object().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))
	require.Len(t, obj.Members, 2)
	assert.Equal(t, "a", obj.Members[0].Name)
	assert.Equal(t, int64(3), obj.Members[0].Value.Int)
}
