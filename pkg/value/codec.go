package value

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
)

var valueLog = logrus.WithField("component", "tagstore.value")

// Encode converts v into its transport representation. Nested maps are
// emitted with members sorted by tag name so output is deterministic.
func Encode(v Value) *transport.Element {
	switch v.kind {
	case KindNull:
		return transport.Null()
	case KindMap:
		return EncodeMap(v.m)
	case KindCategories:
		return EncodeCategories(v.cat)
	case KindList:
		items := make([]*transport.Element, len(v.list))
		for i, item := range v.list {
			items[i] = Encode(item)
		}
		return transport.Array(items...)
	case KindString:
		return transport.String(v.s)
	case KindInt:
		return transport.Int(v.i)
	case KindBool:
		return transport.Bool(v.b)
	case KindFloat:
		return transport.Float(v.f)
	default:
		valueLog.WithField("kind", v.kind).Warn("encoding value of unknown kind as text")
		return transport.String(v.String())
	}
}

// EncodeMap converts a tag map into a transport object keyed by tag name.
func EncodeMap(m Map) *transport.Element {
	obj := transport.Object()
	for _, t := range m.Tags() {
		obj.Set(t.Name(), Encode(m[t]))
	}
	return obj
}

// Decode rebuilds a Value from its transport representation. Objects are
// first offered to the category recognizer and otherwise become tag maps.
func Decode(e *transport.Element) Value {
	if e == nil {
		return Null()
	}

	switch e.Kind {
	case transport.KindNull:
		return Null()
	case transport.KindObject:
		if cat, ok := DecodeCategories(e); ok {
			return Categories(cat)
		}
		return MapOf(decodeMembers(e))
	case transport.KindArray:
		items := make([]Value, len(e.Items))
		for i, item := range e.Items {
			items[i] = Decode(item)
		}
		return List(items...)
	case transport.KindInt:
		return Int(e.Int)
	case transport.KindFloat:
		return Float(e.Float)
	case transport.KindBool:
		return Bool(e.Bool)
	default:
		return String(e.Str)
	}
}

// DecodeMap decodes an object as a tag map without attempting category
// recognition on the object itself. Null decodes to an empty map.
func DecodeMap(e *transport.Element) (Map, error) {
	if e.IsNull() {
		return Map{}, nil
	}
	if e.Kind != transport.KindObject {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrTypeMismatch, e.Kind)
	}
	return decodeMembers(e), nil
}

func decodeMembers(e *transport.Element) Map {
	m := make(Map, len(e.Members))
	for _, member := range e.Members {
		t := tag.Generate(member.Name)
		if _, dup := m[t]; dup {
			valueLog.WithFields(logrus.Fields{"tag": t.Name(), "key": member.Name}).
				Warn("document keys collide after normalization; keeping the last")
		}
		m[t] = Decode(member.Value)
	}
	return m
}
