package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/resources/naming"
	"github.com/tailored-agentic-units/resources/resource"
)

func TestNew_InvalidTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"empty", ""},
		{"root only", "/"},
		{"empty segment", "/organizations//:slug"},
		{"empty parameter", "/organizations/:"},
		{"duplicate parameter", "/organizations/:slug/projects/:slug"},
		{"wildcard", "/organizations/*"},
		{"bad parameter name", "/organizations/:my-slug"},
		{"unclosed brace", "/organizations/{slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := naming.New(tt.template)
			assert.ErrorIs(t, err, naming.ErrInvalidTemplate)
		})
	}
}

func TestParseName_Organization(t *testing.T) {
	codec := naming.MustNew("/organizations/:slug")

	got := codec.ParseName("/organizations/acme")

	assert.Equal(t, naming.ParsedName{
		Name:   "organizations/acme",
		Parent: "",
		URL:    "/organizations/acme",
		Slug:   "acme",
		Params: map[string]string{"slug": "acme"},
	}, got)
	assert.True(t, got.Matched())
}

func TestParseName(t *testing.T) {
	project := naming.MustNew("/organizations/:org/projects/:slug")

	tests := []struct {
		name  string
		codec *naming.Codec
		input string
		want  naming.ParsedName
	}{
		{
			name:  "nested name has a parent",
			codec: project,
			input: "/organizations/acme/projects/web",
			want: naming.ParsedName{
				Name:   "organizations/acme/projects/web",
				Parent: "organizations/acme",
				URL:    "/organizations/acme/projects/web",
				Slug:   "web",
				Params: map[string]string{"org": "acme", "slug": "web"},
			},
		},
		{
			name:  "bare name",
			codec: project,
			input: "organizations/acme/projects/web",
			want: naming.ParsedName{
				Name:   "organizations/acme/projects/web",
				Parent: "organizations/acme",
				URL:    "/organizations/acme/projects/web",
				Slug:   "web",
				Params: map[string]string{"org": "acme", "slug": "web"},
			},
		},
		{
			name:  "child url matches by prefix",
			codec: project,
			input: "https://dashboard.example.com/organizations/acme/projects/web/sites/blog?tab=settings",
			want: naming.ParsedName{
				Name:   "organizations/acme/projects/web",
				Parent: "organizations/acme",
				URL:    "/organizations/acme/projects/web",
				Slug:   "web",
				Params: map[string]string{"org": "acme", "slug": "web"},
			},
		},
		{
			name:  "trailing slash",
			codec: naming.MustNew("/organizations/{slug}"),
			input: "/organizations/acme/",
			want: naming.ParsedName{
				Name:   "organizations/acme",
				URL:    "/organizations/acme",
				Slug:   "acme",
				Params: map[string]string{"slug": "acme"},
			},
		},
		{
			name:  "no match",
			codec: project,
			input: "/organizations/acme",
			want:  naming.ParsedName{Params: map[string]string{}},
		},
		{
			name:  "other literal",
			codec: project,
			input: "/organizations/acme/sites/web",
			want:  naming.ParsedName{Params: map[string]string{}},
		},
		{
			name:  "unparseable",
			codec: project,
			input: "%zz",
			want:  naming.ParsedName{Params: map[string]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.codec.ParseName(tt.input))
		})
	}
}

func TestParseName_WithoutSlugParameter(t *testing.T) {
	codec := naming.MustNew("/organizations/:org")

	got := codec.ParseName("/organizations/acme")
	assert.True(t, got.Matched())
	assert.Empty(t, got.Slug)
	assert.Equal(t, map[string]string{"org": "acme"}, got.Params)
}

func TestBuildName(t *testing.T) {
	codec := naming.MustNew("/organizations/:org/projects/:project/sites/:slug")
	assert.Equal(t, []string{"org", "project", "slug"}, codec.Params())

	name, ok := codec.BuildName(map[string]string{"org": "acme", "project": "web", "slug": "blog"})
	require.True(t, ok)
	assert.Equal(t, "organizations/acme/projects/web/sites/blog", name)

	_, ok = codec.BuildName(map[string]string{"org": "acme", "slug": "blog"})
	assert.False(t, ok)

	_, ok = codec.BuildName(map[string]string{"org": "acme", "project": "", "slug": "blog"})
	assert.False(t, ok)

	name, ok = codec.BuildName(map[string]string{"org": "a/b", "project": "web", "slug": "blog"})
	require.True(t, ok)
	assert.Equal(t, "organizations/a%2Fb/projects/web/sites/blog", name)
}

func TestBuildName_RoundTrip(t *testing.T) {
	codec := naming.MustNew("/organizations/:org/projects/:slug")
	params := map[string]string{"org": "acme", "slug": "web"}

	name, ok := codec.BuildName(params)
	require.True(t, ok)
	assert.Equal(t, params, codec.ParseName(name).Params)
}

func TestBuildName_RoundTripKeepsEscaping(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
	}{
		{"space", "/organizations/:slug", map[string]string{"slug": "a b"}, "organizations/a%20b"},
		{"slash", "/organizations/:org/projects/:slug", map[string]string{"org": "a/b", "slug": "web"}, "organizations/a%2Fb/projects/web"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := naming.MustNew(tt.template)

			name, ok := codec.BuildName(tt.params)
			require.True(t, ok)
			assert.Equal(t, tt.want, name)

			parsed := codec.ParseName(name)
			assert.Equal(t, tt.want, parsed.Name)
			assert.Equal(t, "/"+tt.want, parsed.URL)

			parsed = codec.ParseName("https://dashboard.example.com/" + name + "?tab=1")
			assert.Equal(t, tt.want, parsed.Name)
		})
	}
}

func TestRouteForEntry(t *testing.T) {
	assert.Equal(t, "/projects/abc", naming.RouteForEntry(resource.Entry{"name": "projects/abc"}))
	assert.Empty(t, naming.RouteForEntry(resource.Entry{}))
}
