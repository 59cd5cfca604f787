// Package transport holds the generic tree-shaped document model shared by
// every on-disk format: ordered objects, arrays and typed scalars.
package transport

import "fmt"

// Kind identifies the shape of an Element.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Member is one named property of an object.
type Member struct {
	Name  string
	Value *Element
}

// Element is one node of a transport document. Only the payload matching
// Kind is meaningful.
type Element struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Items   []*Element
	Members []Member
}

func Null() *Element { return &Element{Kind: KindNull} }
func Bool(b bool) *Element { return &Element{Kind: KindBool, Bool: b} }
func Int(i int64) *Element { return &Element{Kind: KindInt, Int: i} }
func Float(f float64) *Element { return &Element{Kind: KindFloat, Float: f} }
func String(s string) *Element { return &Element{Kind: KindString, Str: s} }
func Object() *Element { return &Element{Kind: KindObject} }
func Array(items ...*Element) *Element {
	if items == nil {
		items = []*Element{}
	}
	return &Element{Kind: KindArray, Items: items}
}

// IsNull reports whether e is nil or a null element.
func (e *Element) IsNull() bool {
	return e == nil || e.Kind == KindNull
}

// Set assigns a property, replacing an existing one with the same name in
// place so the original order is kept.
func (e *Element) Set(name string, v *Element) *Element {
	if v == nil {
		v = Null()
	}
	for i := range e.Members {
		if e.Members[i].Name == name {
			e.Members[i].Value = v
			return e
		}
	}
	e.Members = append(e.Members, Member{Name: name, Value: v})
	return e
}

// Get returns the property called name.
func (e *Element) Get(name string) (*Element, bool) {
	if e == nil || e.Kind != KindObject {
		return nil, false
	}
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Len returns the number of items or members.
func (e *Element) Len() int {
	if e == nil {
		return 0
	}
	switch e.Kind {
	case KindArray:
		return len(e.Items)
	case KindObject:
		return len(e.Members)
	default:
		return 0
	}
}
