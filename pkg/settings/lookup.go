package settings

import (
	"fmt"

	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

// Lookup returns the value stored for t converted to T. It fails with
// ErrNotFound when t is absent and value.ErrTypeMismatch when the stored
// value does not convert.
func Lookup[T any](d *Document, t tag.Tag) (T, error) {
	var zero T
	v, ok := d.Value(t)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, t)
	}
	out, err := value.As[T](v)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", t, err)
	}
	return out, nil
}

// TryGet returns the converted value and true, or fallback and false when
// the tag is absent or holds a value of another shape.
func TryGet[T any](d *Document, t tag.Tag, fallback T) (T, bool) {
	out, err := Lookup[T](d, t)
	if err != nil {
		return fallback, false
	}
	return out, true
}

// Get is TryGet without the report.
func Get[T any](d *Document, t tag.Tag, fallback T) T {
	out, _ := TryGet(d, t, fallback)
	return out
}
