//go:build integration
// +build integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-tagstore/pkg/models"
	"github.com/mattsolo1/grove-tagstore/pkg/project"
	"github.com/mattsolo1/grove-tagstore/pkg/service"
	"github.com/mattsolo1/grove-tagstore/pkg/settings"
	"github.com/mattsolo1/grove-tagstore/pkg/storage"
	"github.com/mattsolo1/grove-tagstore/pkg/tag"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	for _, backend := range []storage.Backend{storage.BackendFS, storage.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			dataDir := filepath.Join(t.TempDir(), "data")

			// Test 1: Settings survive a restart
			t.Run("Settings", func(t *testing.T) {
				svc, err := service.New(&service.Config{DataDir: dataDir, Backend: backend}, nil)
				if err != nil {
					t.Fatalf("Failed to create service: %v", err)
				}
				if err := svc.SetSetting(tag.Generate("Volume"), value.Float(0.8)); err != nil {
					t.Fatalf("Failed to set value: %v", err)
				}
				svc.Close()

				svc, err = service.New(&service.Config{DataDir: dataDir, Backend: backend}, nil)
				if err != nil {
					t.Fatalf("Failed to reopen service: %v", err)
				}
				defer svc.Close()

				if got := settings.Get(svc.LoadSettings(), tag.Generate("Volume"), 0.0); got != 0.8 {
					t.Errorf("Expected volume 0.8, got %v", got)
				}
			})

			// Test 2: Project round trip
			t.Run("Project", func(t *testing.T) {
				svc, err := service.New(&service.Config{DataDir: dataDir, Backend: backend}, nil)
				if err != nil {
					t.Fatalf("Failed to create service: %v", err)
				}
				defer svc.Close()

				p, err := svc.InitProject("Integration", "CI", "")
				if err != nil {
					t.Fatalf("Failed to init project: %v", err)
				}
				p.Append(models.ListAbilities, &models.Ability{Name: "Dash", Cooldown: 2})
				if err := svc.SaveProject(p); err != nil {
					t.Fatalf("Failed to save project: %v", err)
				}

				loaded, ok, err := svc.LoadProject()
				if err != nil || !ok {
					t.Fatalf("Failed to load project: ok=%v err=%v", ok, err)
				}
				if !project.Equal(p, loaded, svc.Schema()) {
					t.Error("Loaded project differs from saved project")
				}
			})
		})
	}
}
