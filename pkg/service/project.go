package service

import (
	"fmt"

	"github.com/mattsolo1/grove-tagstore/pkg/models"
	"github.com/mattsolo1/grove-tagstore/pkg/project"
)

// LoadProject reads the project document. Unlike settings, any failure is
// returned to the caller. The boolean is false when no project is stored.
func (s *Service) LoadProject() (*project.Project, bool, error) {
	return project.Load(s.store, s.Config.ProjectKey, s.schema)
}

// SaveProject writes p to the project key.
func (s *Service) SaveProject(p *project.Project) error {
	s.logger.WithField("key", s.Config.ProjectKey).Debug("saving project")
	return project.Save(s.store, s.Config.ProjectKey, p, s.schema)
}

// InitProject creates and saves an empty project. It refuses to replace an
// existing one.
func (s *Service) InitProject(name, author, version string) (*project.Project, error) {
	exists, err := s.store.Exists(s.Config.ProjectKey)
	if err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, s.Config.ProjectKey)
	}

	if version == "" {
		version = models.DefaultVersion
	}
	p := project.New(name, author, version)
	for _, b := range s.schema.Bindings() {
		p.SetNodes(b.Field)
	}
	if err := s.SaveProject(p); err != nil {
		return nil, err
	}
	return p, nil
}
