package project

import "fmt"

// Metadata property names of a project document.
const (
	PropVersion    = "Version"
	PropMetaName   = "MetaName"
	PropMetaAuthor = "MetaAuthor"
)

// ListBinding declares one node-list field of a project and the type of its
// elements.
type ListBinding struct {
	Field string
	Type  *NodeType
}

// Schema is the ordered set of node-list fields a project document carries.
type Schema struct {
	bindings []ListBinding
	byField  map[string]*NodeType
}

// NewSchema validates and orders bindings. List fields may not reuse the
// metadata property names.
func NewSchema(bindings ...ListBinding) (*Schema, error) {
	s := &Schema{
		bindings: append([]ListBinding(nil), bindings...),
		byField:  make(map[string]*NodeType, len(bindings)),
	}
	for _, b := range bindings {
		switch b.Field {
		case "":
			return nil, fmt.Errorf("schema: list field needs a name")
		case PropVersion, PropMetaName, PropMetaAuthor:
			return nil, fmt.Errorf("schema: list field %q collides with project metadata", b.Field)
		}
		if b.Type == nil {
			return nil, fmt.Errorf("schema: list field %q has no node type", b.Field)
		}
		if _, dup := s.byField[b.Field]; dup {
			return nil, fmt.Errorf("schema: duplicate list field %q", b.Field)
		}
		s.byField[b.Field] = b.Type
	}
	return s, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema(bindings ...ListBinding) *Schema {
	s, err := NewSchema(bindings...)
	if err != nil {
		panic(err)
	}
	return s
}

// Bindings returns the list fields in document order.
func (s *Schema) Bindings() []ListBinding {
	return append([]ListBinding(nil), s.bindings...)
}

// Lookup returns the node type bound to field.
func (s *Schema) Lookup(field string) (*NodeType, bool) {
	t, ok := s.byField[field]
	return t, ok
}
