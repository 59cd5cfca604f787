package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/mattsolo1/grove-tagstore/pkg/storage"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

var projectLog = logrus.WithField("component", "tagstore.project")

// ErrNotObject is returned when a project document, or one of its nodes, is
// not an object.
var ErrNotObject = errors.New("project: not an object")

// FieldError reports a node field whose stored value could not be decoded
// into the field's declared shape.
type FieldError struct {
	List  string
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s[%d].%s: %v", e.List, e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Encode converts p into a transport object: metadata first, then each list
// declared in schema, each node's fields in declaration order.
func Encode(p *Project, schema *Schema) (*transport.Element, error) {
	root := transport.Object()
	root.Set(PropVersion, transport.String(p.Version))
	root.Set(PropMetaName, transport.String(p.MetaName))
	root.Set(PropMetaAuthor, transport.String(p.MetaAuthor))

	for _, field := range p.Fields() {
		if _, ok := schema.Lookup(field); !ok && len(p.lists[field]) > 0 {
			return nil, fmt.Errorf("encode project: list %q is not declared in the schema", field)
		}
	}

	for _, binding := range schema.bindings {
		nodes := p.lists[binding.Field]
		items := make([]*transport.Element, len(nodes))
		for i, node := range nodes {
			if !binding.Type.Accepts(node) {
				return nil, fmt.Errorf("encode project: %s[%d] is %T, want %s", binding.Field, i, node, binding.Type.Name())
			}
			items[i] = encodeNode(binding.Type, node)
		}
		root.Set(binding.Field, transport.Array(items...))
	}
	return root, nil
}

func encodeNode(t *NodeType, node any) *transport.Element {
	obj := transport.Object()
	for _, f := range t.fields {
		if f.Kind == KindTagMap {
			obj.Set(f.Name, value.EncodeMap(f.getTags(node)))
			continue
		}
		obj.Set(f.Name, value.Encode(f.get(node)))
	}
	return obj
}

// Decode rebuilds a project from a transport object. Lists that are absent
// decode as empty; properties the schema does not name are ignored.
func Decode(root *transport.Element, schema *Schema) (*Project, error) {
	if root.Kind != transport.KindObject {
		return nil, fmt.Errorf("%w: top level is %s", ErrNotObject, root.Kind)
	}

	p := New("", "", "")
	p.Version = metadata(root, PropVersion)
	p.MetaName = metadata(root, PropMetaName)
	p.MetaAuthor = metadata(root, PropMetaAuthor)

	for _, member := range root.Members {
		switch member.Name {
		case PropVersion, PropMetaName, PropMetaAuthor:
			continue
		}
		if _, ok := schema.Lookup(member.Name); !ok {
			projectLog.WithField("property", member.Name).Debug("ignoring unknown project property")
		}
	}

	for _, binding := range schema.bindings {
		list, ok := root.Get(binding.Field)
		if !ok || list.IsNull() {
			p.lists[binding.Field] = []any{}
			continue
		}
		if list.Kind != transport.KindArray {
			return nil, fmt.Errorf("decode project: list %q is %s, not an array", binding.Field, list.Kind)
		}

		nodes := make([]any, len(list.Items))
		for i, item := range list.Items {
			node, err := decodeNode(binding, i, item)
			if err != nil {
				return nil, err
			}
			nodes[i] = node
		}
		p.lists[binding.Field] = nodes
	}
	return p, nil
}

func decodeNode(binding ListBinding, index int, e *transport.Element) (any, error) {
	if e.Kind != transport.KindObject {
		return nil, fmt.Errorf("decode project: %s[%d]: %w (got %s)", binding.Field, index, ErrNotObject, e.Kind)
	}

	node := binding.Type.New()
	for _, f := range binding.Type.fields {
		member, ok := e.Get(f.Name)
		if !ok {
			continue
		}

		if f.Kind == KindTagMap {
			m, err := value.DecodeMap(member)
			if err != nil {
				return nil, &FieldError{List: binding.Field, Index: index, Field: f.Name, Err: err}
			}
			f.setTags(node, m)
			continue
		}

		if err := f.set(node, value.Decode(member)); err != nil {
			return nil, &FieldError{List: binding.Field, Index: index, Field: f.Name, Err: err}
		}
	}
	return node, nil
}

// metadata reads a top-level scalar as text. Floats keep their fractional
// marker, so a numeric 1.0 reads as "1.0". Missing, null and non-scalar values
// read as empty.
func metadata(root *transport.Element, name string) string {
	e, ok := root.Get(name)
	if !ok {
		return ""
	}
	var raw any
	switch e.Kind {
	case transport.KindString:
		return e.Str
	case transport.KindInt:
		raw = e.Int
	case transport.KindFloat:
		return transport.FormatFloat(e.Float)
	case transport.KindBool:
		raw = e.Bool
	default:
		if !e.IsNull() {
			projectLog.WithField("property", name).Warnf("ignoring %s metadata value", e.Kind)
		}
		return ""
	}
	return cast.ToString(raw)
}

// Write encodes p to w.
func Write(w io.Writer, p *Project, schema *Schema, format transport.Format) error {
	root, err := Encode(p, schema)
	if err != nil {
		return err
	}
	return transport.Write(w, root, format)
}

// Read decodes a project from r.
func Read(r io.Reader, schema *Schema, format transport.Format) (*Project, error) {
	root, err := transport.Parse(r, format)
	if err != nil {
		return nil, err
	}
	return Decode(root, schema)
}

// Save encodes p in full and writes it under key.
func Save(store storage.Store, key string, p *Project, schema *Schema) error {
	var buf bytes.Buffer
	if err := Write(&buf, p, schema, transport.FormatForKey(key)); err != nil {
		return fmt.Errorf("encode project %s: %w", key, err)
	}

	w, err := store.Create(key)
	if err != nil {
		return fmt.Errorf("create project %s: %w", key, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("write project %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write project %s: %w", key, err)
	}
	return nil
}

// Load reads the project stored under key. The boolean is false, with a nil
// error, when nothing is stored there.
func Load(store storage.Store, key string, schema *Schema) (*Project, bool, error) {
	exists, err := store.Exists(key)
	if err != nil {
		return nil, false, fmt.Errorf("check project %s: %w", key, err)
	}
	if !exists {
		return nil, false, nil
	}

	r, err := store.Open(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open project %s: %w", key, err)
	}
	defer r.Close()

	p, err := Read(r, schema, transport.FormatForKey(key))
	if err != nil {
		return nil, false, fmt.Errorf("load project %s: %w", key, err)
	}
	return p, true, nil
}
