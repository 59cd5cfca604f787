// Package storage resolves logical document keys to byte streams. The codecs
// only ever ask whether a document exists, for a reader, or for a writer;
// where documents live is decided here.
package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Open when no document is stored under a key.
var ErrNotFound = errors.New("storage: document not found")

// Store is the byte-stream collaborator used by the settings and project
// codecs. Readers and writers are scoped to a single load or save and must be
// closed by the caller.
type Store interface {
	Exists(key string) (bool, error)
	Open(key string) (io.ReadCloser, error)
	Create(key string) (io.WriteCloser, error)
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFS     Backend = "fs"
	BackendSQLite Backend = "sqlite"
)

// Open builds the store for backend rooted at dataDir. Document files live
// directly under dataDir; the sqlite backend keeps them in dataDir/documents.db.
func Open(backend Backend, dataDir string) (Store, error) {
	switch backend {
	case BackendFS, "":
		return NewFSStore(afero.NewOsFs(), dataDir), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, "documents.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close releases s when it holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
