// Package service ties the stores, codecs and evaluator together for the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-tagstore/pkg/models"
	"github.com/mattsolo1/grove-tagstore/pkg/project"
	"github.com/mattsolo1/grove-tagstore/pkg/query"
	"github.com/mattsolo1/grove-tagstore/pkg/settings"
	"github.com/mattsolo1/grove-tagstore/pkg/storage"
	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/transport"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

var (
	// ErrWatchUnsupported is returned by WatchSettings for stores that are
	// not backed by files.
	ErrWatchUnsupported = errors.New("service: watching requires the fs backend")
	// ErrProjectExists is returned by InitProject when a project is stored.
	ErrProjectExists = errors.New("service: project already exists")
)

// Default document keys.
const (
	DefaultSettingsKey = "settings.json"
	DefaultProjectKey  = "project.json"
)

// Config holds service configuration
type Config struct {
	DataDir     string
	Backend     storage.Backend
	SettingsKey string
	ProjectKey  string
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = storage.BackendFS
	}
	if c.SettingsKey == "" {
		c.SettingsKey = DefaultSettingsKey
	}
	if c.ProjectKey == "" {
		c.ProjectKey = DefaultProjectKey
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is not set")
	}
	switch c.Backend {
	case storage.BackendFS, storage.BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	if c.SettingsKey == c.ProjectKey {
		return fmt.Errorf("settings and project keys must differ (both %q)", c.SettingsKey)
	}
	return nil
}

// Service is the core document service
type Service struct {
	Config *Config

	store     storage.Store
	schema    *project.Schema
	evaluator *query.Evaluator
	logger    *logrus.Logger
}

// New opens the configured store. Empty keys and backend take defaults.
func New(config *Config, logger *logrus.Logger) (*Service, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.Open(config.Backend, config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return NewWithStore(config, store, logger), nil
}

// NewWithStore builds a service over an already opened store.
func NewWithStore(config *Config, store storage.Store, logger *logrus.Logger) *Service {
	config.applyDefaults()
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Config:    config,
		store:     store,
		schema:    models.DefaultSchema(),
		evaluator: query.NewEvaluator(),
		logger:    logger,
	}
}

// Close releases the store.
func (s *Service) Close() error {
	return storage.Close(s.store)
}

// Store exposes the underlying document store.
func (s *Service) Store() storage.Store {
	return s.store
}

// Schema returns the project schema used for project documents.
func (s *Service) Schema() *project.Schema {
	return s.schema
}

// LoadSettings returns the settings document. Settings are advisory: a
// missing or unreadable document yields an empty one and a logged warning.
func (s *Service) LoadSettings() *settings.Document {
	return settings.LoadOrEmpty(s.store, s.Config.SettingsKey, s.logger)
}

// SaveSettings writes doc to the settings key.
func (s *Service) SaveSettings(doc *settings.Document) error {
	s.logger.WithField("key", s.Config.SettingsKey).Debug("saving settings")
	return doc.Save(s.store, s.Config.SettingsKey)
}

// SetSetting stores v under t. Unlike LoadSettings, an unreadable document
// is an error so it is never overwritten.
func (s *Service) SetSetting(t tag.Tag, v value.Value) error {
	doc, err := settings.Load(s.store, s.Config.SettingsKey)
	if err != nil {
		return err
	}
	doc.Set(t, v)
	return s.SaveSettings(doc)
}

// Evaluate runs expression against the current settings.
func (s *Service) Evaluate(expression string) (value.Value, error) {
	return s.evaluator.Evaluate(s.LoadSettings(), expression)
}

// Convert re-encodes the settings document stored under srcKey into the
// format implied by dstKey.
func (s *Service) Convert(srcKey, dstKey string) error {
	exists, err := s.store.Exists(srcKey)
	if err != nil {
		return fmt.Errorf("check %s: %w", srcKey, err)
	}
	if !exists {
		return fmt.Errorf("convert %s: %w", srcKey, storage.ErrNotFound)
	}

	doc, err := settings.Load(s.store, srcKey)
	if err != nil {
		return err
	}
	if err := doc.Save(s.store, dstKey); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"from":   srcKey,
		"to":     dstKey,
		"format": transport.FormatForKey(dstKey),
	}).Info("converted settings")
	return nil
}

// WatchSettings calls fn with a freshly loaded document each time the
// settings file changes, until ctx is cancelled.
func (s *Service) WatchSettings(ctx context.Context, fn func(*settings.Document)) error {
	fsStore, ok := s.store.(*storage.FSStore)
	if !ok {
		return ErrWatchUnsupported
	}
	path, err := fsStore.Resolve(s.Config.SettingsKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	s.logger.WithField("path", path).Debug("watching settings")
	return storage.Watch(ctx, path, func() {
		fn(s.LoadSettings())
	})
}

// DocumentInfo describes one stored document. Revision is empty for stores
// that do not track revisions.
type DocumentInfo struct {
	Key      string
	Revision string
}

// Documents lists the stored documents. The sqlite backend reports every key
// with its current revision; the fs backend reports the configured settings
// and project keys that exist.
func (s *Service) Documents() ([]DocumentInfo, error) {
	if db, ok := s.store.(*storage.SQLiteStore); ok {
		keys, err := db.List()
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		docs := make([]DocumentInfo, 0, len(keys))
		for _, key := range keys {
			revision, err := db.Revision(key)
			if err != nil {
				return nil, fmt.Errorf("revision of %s: %w", key, err)
			}
			docs = append(docs, DocumentInfo{Key: key, Revision: revision})
		}
		return docs, nil
	}

	var docs []DocumentInfo
	for _, key := range []string{s.Config.SettingsKey, s.Config.ProjectKey} {
		exists, err := s.store.Exists(key)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", key, err)
		}
		if exists {
			docs = append(docs, DocumentInfo{Key: key})
		}
	}
	return docs, nil
}
