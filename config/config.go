// Package config loads the configuration of a resource-state runtime from
// YAML or JSON.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/naming"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/transport"
)

var ErrInvalidConfig = errors.New("invalid config")

// ResourceConfig declares one managed resource kind.
type ResourceConfig struct {
	// Kind is the plural noun of the resource; singular nouns are accepted
	// and normalized by Validate.
	Kind resource.Kind `json:"kind" yaml:"kind"`

	// Template is the naming path template, e.g. "/organizations/:slug".
	Template string `json:"template" yaml:"template"`

	// Service is the fully qualified RPC service serving the kind.
	Service string `json:"service,omitempty" yaml:"service,omitempty"`

	// Form names the form whose submissions create and update the kind.
	// Empty disables the form workflow.
	Form string `json:"form,omitempty" yaml:"form,omitempty"`
}

// Config holds initialization parameters for every runtime subsystem.
type Config struct {
	// Observer names the registered observers events go to, comma separated:
	// "slog", "zap", "noop" or e.g. "slog,zap".
	Observer  string           `json:"observer,omitempty" yaml:"observer,omitempty"`
	Hub       hub.Config       `json:"hub" yaml:"hub"`
	Transport transport.Config `json:"transport" yaml:"transport"`
	Resources []ResourceConfig `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Default returns the configuration of the dashboard's three resources.
func Default() Config {
	h := hub.DefaultConfig()
	h.Name = "resources"

	return Config{
		Observer:  "slog",
		Hub:       h,
		Transport: transport.DefaultConfig(),
		Resources: []ResourceConfig{
			{
				Kind:     resource.KindOrganization,
				Template: "/organizations/:slug",
				Service:  "presslabs.dashboard.organizations.v1.OrganizationsService",
				Form:     "organization",
			},
			{
				Kind:     resource.KindProject,
				Template: "/organizations/:org/projects/:slug",
				Service:  "presslabs.dashboard.projects.v1.ProjectsService",
				Form:     "project",
			},
			{
				Kind:     resource.KindSite,
				Template: "/organizations/:org/projects/:project/sites/:slug",
				Service:  "presslabs.dashboard.sites.v1.SitesService",
				Form:     "site",
			},
		},
	}
}

// Merge applies non-zero values from source into c. A non-empty resource
// list replaces c's list as a whole.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	c.Hub.Merge(&source.Hub)
	c.Transport.Merge(&source.Transport)

	if len(source.Resources) > 0 {
		c.Resources = source.Resources
	}
}

// Validate normalizes resource kinds to their registered plural form and
// checks templates and uniqueness.
func (c *Config) Validate() error {
	kinds := make(map[resource.Kind]bool, len(c.Resources))
	forms := make(map[string]bool, len(c.Resources))

	for i := range c.Resources {
		rc := &c.Resources[i]

		kind, err := resource.Lookup(string(rc.Kind))
		if err != nil {
			return fmt.Errorf("%w: resources[%d]: %w", ErrInvalidConfig, i, err)
		}
		rc.Kind = kind

		if kinds[kind] {
			return fmt.Errorf("%w: resources[%d]: duplicate kind %s", ErrInvalidConfig, i, kind)
		}
		kinds[kind] = true

		if _, err := naming.New(rc.Template); err != nil {
			return fmt.Errorf("%w: resources[%d]: %w", ErrInvalidConfig, i, err)
		}

		if rc.Form != "" {
			if forms[rc.Form] {
				return fmt.Errorf("%w: resources[%d]: duplicate form %q", ErrInvalidConfig, i, rc.Form)
			}
			forms[rc.Form] = true
		}
	}

	return nil
}

// Resource returns the configuration of kind.
func (c *Config) Resource(kind resource.Kind) (ResourceConfig, bool) {
	for _, rc := range c.Resources {
		if rc.Kind == kind {
			return rc, true
		}
	}
	return ResourceConfig{}, false
}

// Load reads a YAML or JSON config file, merges it over Default and
// validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load for in-memory config documents.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
