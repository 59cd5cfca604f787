package transport

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

func TestParseYAML(t *testing.T) {
	root, err := ParseYAML(strings.NewReader(`
Level: 3
Scale: 1.5
Whole: 2.0
Enabled: yes-but-a-string
On: true
Name: fire
Missing: ~
Costs:
  Cost: [1, 2]
base: &base
  a: 1
copy: *base
`))
	require.NoError(t, err)

	level, _ := root.Get("Level")
	assert.Equal(t, Int(3), level)
	scale, _ := root.Get("Scale")
	assert.Equal(t, Float(1.5), scale)
	whole, _ := root.Get("Whole")
	assert.Equal(t, Float(2), whole)
	enabled, _ := root.Get("Enabled")
	assert.Equal(t, String("yes-but-a-string"), enabled)
	on, _ := root.Get("On")
	assert.Equal(t, Bool(true), on)
	missing, _ := root.Get("Missing")
	assert.True(t, missing.IsNull())

	costs, _ := root.Get("Costs")
	cost, _ := costs.Get("Cost")
	assert.Equal(t, Array(Int(1), Int(2)), cost)

	copied, _ := root.Get("copy")
	a, ok := copied.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(1), a)
}

func TestParseYAMLEmpty(t *testing.T) {
	root, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, KindObject, root.Kind)
}

func TestParseYAMLError(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("a: [1, 2\nb: c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestYAMLRoundTrip(t *testing.T) {
	root := Object().
		Set("Level", Int(3)).
		Set("Scale", Float(2)).
		Set("Looks like bool", String("true")).
		Set("Looks like int", String("12")).
		Set("Nothing", Null()).
		Set("Empty list", Array()).
		Set("Empty map", Object()).
		Set("Items", Array(Int(1), Float(0.25), String("x")))

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, root))

	back, err := ParseYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, root, back)
}

func TestWriteYAMLRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{nan(), math.Inf(1), math.Inf(-1)} {
		var buf bytes.Buffer
		err := WriteYAML(&buf, Object().Set("Nested", Array(Float(f))))
		assert.Error(t, err, "%v", f)
		assert.Empty(t, buf.String())
	}
}

func TestFormatForKey(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForKey("settings.json"))
	assert.Equal(t, FormatYAML, FormatForKey("dir/settings.yaml"))
	assert.Equal(t, FormatYAML, FormatForKey("SETTINGS.YML"))
	assert.Equal(t, FormatJSON, FormatForKey("settings"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestParseWriteDispatch(t *testing.T) {
	root := Object().Set("a", Int(1))
	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, root, format))
		back, err := Parse(&buf, format)
		require.NoError(t, err)
		assert.Equal(t, root, back, format)
	}
}
