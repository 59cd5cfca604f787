package project

import (
	"fmt"
	"reflect"
)

// NodeType is the explicit schema of one node record: how to allocate a
// default instance and the ordered list of its serialized fields.
type NodeType struct {
	name     string
	goType   reflect.Type
	newNode  func() any
	fields   []Field
	tagIndex int
}

// NewNodeType declares the node type N. Field names must be unique, at most
// one field may be a tag map, and every field must have been declared for N.
func NewNodeType[N any](name string, fields ...Field) (*NodeType, error) {
	goType := reflect.TypeOf((*N)(nil)).Elem()
	t := &NodeType{
		name:     name,
		goType:   goType,
		newNode:  func() any { return new(N) },
		fields:   append([]Field(nil), fields...),
		tagIndex: -1,
	}
	if name == "" {
		return nil, fmt.Errorf("node type for %s needs a name", goType)
	}

	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("node type %s: field %d has no name", name, i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("node type %s: duplicate field %q", name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.owner != goType {
			return nil, fmt.Errorf("node type %s: field %q is declared for %v, not %v", name, f.Name, f.owner, goType)
		}
		if f.Kind == KindTagMap {
			if t.tagIndex >= 0 {
				return nil, fmt.Errorf("node type %s: more than one tag map field (%q and %q)", name, fields[t.tagIndex].Name, f.Name)
			}
			t.tagIndex = i
		}
	}
	return t, nil
}

// MustNodeType is NewNodeType for package-level declarations.
func MustNodeType[N any](name string, fields ...Field) *NodeType {
	t, err := NewNodeType[N](name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *NodeType) Name() string { return t.name }

// Fields returns the fields in serialization order.
func (t *NodeType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// TagField returns the designated tag map field, if any.
func (t *NodeType) TagField() (Field, bool) {
	if t.tagIndex < 0 {
		return Field{}, false
	}
	return t.fields[t.tagIndex], true
}

// New allocates a default instance (a pointer to the zero N).
func (t *NodeType) New() any {
	return t.newNode()
}

// Accepts reports whether node is a *N for this type.
func (t *NodeType) Accepts(node any) bool {
	return node != nil && reflect.TypeOf(node) == reflect.PointerTo(t.goType) && !reflect.ValueOf(node).IsNil()
}

// Equal compares two nodes field by field through their descriptors.
func (t *NodeType) Equal(a, b any) bool {
	if !t.Accepts(a) || !t.Accepts(b) {
		return false
	}
	for _, f := range t.fields {
		if f.Kind == KindTagMap {
			if !f.getTags(a).Equal(f.getTags(b)) {
				return false
			}
			continue
		}
		if !f.get(a).Equal(f.get(b)) {
			return false
		}
	}
	return true
}
