package tag

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// UnnamedName is the name given to tags generated from empty or blank input.
const UnnamedName = "Unnamed"

// Unnamed is the canonical sentinel tag.
var Unnamed = Tag{name: UnnamedName}

// Tag is an interned symbolic key. Two tags are equal when their normalized
// names are equal, so a Tag can be used directly as a map key no matter where
// it was constructed.
type Tag struct {
	name string
}

// Generate returns the tag for name. Surrounding whitespace is trimmed and the
// name is NFC-normalized; a blank result yields Unnamed.
func Generate(name string) Tag {
	normalized := normalize(name)
	if normalized == "" {
		return Unnamed
	}
	return Tag{name: normalized}
}

// FromNodeName is the file-naming variant of Generate: characters that are
// invalid in a map key or file path are replaced with '_'.
func FromNodeName(name string) Tag {
	normalized := normalize(name)
	if normalized == "" {
		return Unnamed
	}
	return Tag{name: strings.Map(replaceInvalid, normalized)}
}

func normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func replaceInvalid(r rune) rune {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return '_'
	}
	if unicode.IsControl(r) {
		return '_'
	}
	return r
}

// Name returns the normalized name.
func (t Tag) Name() string {
	return t.name
}

func (t Tag) String() string {
	return t.name
}

// IsUnnamed reports whether t is the sentinel tag.
func (t Tag) IsUnnamed() bool {
	return t.name == UnnamedName
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text goes through
// Generate so decoded tags are normalized like any other.
func (t *Tag) UnmarshalText(text []byte) error {
	*t = Generate(string(text))
	return nil
}

// Compare orders tags by name.
func Compare(a, b Tag) int {
	return strings.Compare(a.name, b.name)
}

// Sort orders tags by name in place.
func Sort(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].name < tags[j].name
	})
}
