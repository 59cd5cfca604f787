// Package settings implements the tag-keyed settings document: a mapping from
// tags to values with typed lookups and a load/save round trip through a
// storage.Store.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-tagstore/pkg/storage"
	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

var (
	// ErrNotFound is returned by Lookup when no value is stored for a tag.
	ErrNotFound = errors.New("settings: tag not found")
	// ErrNotObject is returned when a document's top level is not an object.
	ErrNotObject = errors.New("settings: document is not an object")
)

// Document maps tags to values. It is not safe for concurrent mutation.
type Document struct {
	entries value.Map
}

// New returns an empty document.
func New() *Document {
	return &Document{entries: value.Map{}}
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Tags returns every tag in the document sorted by name.
func (d *Document) Tags() []tag.Tag {
	return d.entries.Tags()
}

// Value returns the raw value stored for t.
func (d *Document) Value(t tag.Tag) (value.Value, bool) {
	v, ok := d.entries[t]
	return v, ok
}

// Set stores v under t, replacing whatever was there.
func (d *Document) Set(t tag.Tag, v value.Value) {
	if d.entries == nil {
		d.entries = value.Map{}
	}
	d.entries[t] = v
}

// Entries returns a shallow copy of the document's map.
func (d *Document) Entries() value.Map {
	out := make(value.Map, len(d.entries))
	for t, v := range d.entries {
		out[t] = v
	}
	return out
}

// Equal reports whether both documents hold equal values under the same tags.
func (d *Document) Equal(other *Document) bool {
	return d.entries.Equal(other.entries)
}

// Load reads the document stored under key. A missing document is not an
// error and yields an empty document; a malformed one is.
func Load(store storage.Store, key string) (*Document, error) {
	exists, err := store.Exists(key)
	if err != nil {
		return nil, fmt.Errorf("check settings %s: %w", key, err)
	}
	if !exists {
		return New(), nil
	}

	r, err := store.Open(key)
	if errors.Is(err, storage.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open settings %s: %w", key, err)
	}
	defer r.Close()

	doc, err := Read(r, transport.FormatForKey(key))
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", key, err)
	}
	return doc, nil
}

// LoadOrEmpty is Load for callers that treat settings as advisory: any
// failure is logged and an empty document returned.
func LoadOrEmpty(store storage.Store, key string, logger logrus.FieldLogger) *Document {
	doc, err := Load(store, key)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("key", key).Warn("using default settings")
		}
		return New()
	}
	return doc
}

// Read decodes a document from r.
func Read(r io.Reader, format transport.Format) (*Document, error) {
	root, err := transport.Parse(r, format)
	if err != nil {
		return nil, err
	}
	if root.Kind != transport.KindObject {
		return nil, fmt.Errorf("%w: top level is %s", ErrNotObject, root.Kind)
	}

	entries, err := value.DecodeMap(root)
	if err != nil {
		return nil, err
	}
	return &Document{entries: entries}, nil
}

// Write encodes the document to w.
func (d *Document) Write(w io.Writer, format transport.Format) error {
	return transport.Write(w, value.EncodeMap(d.entries), format)
}

// Save encodes the document in full and then writes it under key in one
// pass, so an encoding failure never truncates an existing document.
func (d *Document) Save(store storage.Store, key string) error {
	var buf bytes.Buffer
	if err := d.Write(&buf, transport.FormatForKey(key)); err != nil {
		return fmt.Errorf("encode settings %s: %w", key, err)
	}

	w, err := store.Create(key)
	if err != nil {
		return fmt.Errorf("create settings %s: %w", key, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("write settings %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write settings %s: %w", key, err)
	}
	return nil
}
