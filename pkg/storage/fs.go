package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FSStore keeps one file per key under a root directory.
type FSStore struct {
	fs   afero.Fs
	root string
}

// NewFSStore creates a store over fs rooted at root.
func NewFSStore(fs afero.Fs, root string) *FSStore {
	return &FSStore{fs: fs, root: root}
}

// Resolve maps a slash-separated logical key to a file path under the root.
// Keys with ".." elements are rejected.
func (s *FSStore) Resolve(key string) (string, error) {
	slashed := filepath.ToSlash(strings.TrimSpace(key))
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("document key %q escapes the data directory", key)
		}
	}
	cleaned := path.Clean("/" + slashed)
	if cleaned == "/" {
		return "", fmt.Errorf("empty document key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned[1:])), nil
}

func (s *FSStore) Exists(key string) (bool, error) {
	p, err := s.Resolve(key)
	if err != nil {
		return false, err
	}
	info, err := s.fs.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

func (s *FSStore) Open(key string) (io.ReadCloser, error) {
	p, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return f, nil
}

// Create truncates or creates the file for key, making parent directories as
// needed.
func (s *FSStore) Create(key string) (io.WriteCloser, error) {
	p, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", key, err)
	}
	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", p, err)
	}
	return f, nil
}
