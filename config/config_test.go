package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/resources/config"
	"github.com/tailored-agentic-units/resources/resource"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "slog", cfg.Observer)
	assert.Equal(t, "resources", cfg.Hub.Name)
	assert.Equal(t, 30*time.Second, cfg.Transport.Timeout)
	require.Len(t, cfg.Resources, 3)
	require.NoError(t, cfg.Validate())

	project, ok := cfg.Resource(resource.KindProject)
	require.True(t, ok)
	assert.Equal(t, "/organizations/:org/projects/:slug", project.Template)
	assert.Equal(t, "project", project.Form)
}

func TestMerge_ZeroValuesPreserveDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Merge(&config.Config{})

	assert.Equal(t, config.Default().Resources, cfg.Resources)
	assert.Equal(t, "slog", cfg.Observer)
}

func TestMerge(t *testing.T) {
	cfg := config.Default()
	cfg.Merge(&config.Config{
		Observer: "zap",
		Resources: []config.ResourceConfig{
			{Kind: resource.KindSite, Template: "/sites/:slug"},
		},
	})

	assert.Equal(t, "zap", cfg.Observer)
	assert.Equal(t, []config.ResourceConfig{{Kind: resource.KindSite, Template: "/sites/:slug"}}, cfg.Resources)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.yaml")
	content := `
observer: noop
hub:
  name: dashboard
  default_timeout: 5s
transport:
  base_url: https://api.example.com
resources:
  - kind: project
    template: /projects/:slug
    service: presslabs.dashboard.projects.v1.ProjectsService
    form: project
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "noop", cfg.Observer)
	assert.Equal(t, "dashboard", cfg.Hub.Name)
	assert.Equal(t, 5*time.Second, cfg.Hub.DefaultTimeout)
	assert.NotNil(t, cfg.Hub.Logger, "default logger survives merge")
	assert.Equal(t, "https://api.example.com", cfg.Transport.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Transport.Timeout)
	require.Len(t, cfg.Resources, 1)
	assert.Equal(t, resource.KindProject, cfg.Resources[0].Kind, "singular kind is normalized")
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.json")
	content := `{"observer": "zap", "resources": [{"kind": "sites", "template": "/sites/{slug}"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zap", cfg.Observer)
	assert.Equal(t, resource.KindSite, cfg.Resources[0].Kind)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "resources:\n  - kind: widgets\n    template: /widgets/:slug\n"},
		{"bad template", "resources:\n  - kind: projects\n    template: /projects/*\n"},
		{"duplicate kind", "resources:\n  - kind: projects\n    template: /p/:slug\n  - kind: project\n    template: /q/:slug\n"},
		{"duplicate form", "resources:\n  - kind: projects\n    template: /p/:slug\n    form: f\n  - kind: sites\n    template: /s/:slug\n    form: f\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.content))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err = config.Parse([]byte("resources: [unterminated"))
	assert.Error(t, err)
}
