// Package naming converts between resource names and the URL paths that
// address them.
//
// A Codec is built from a path template such as
// "/organizations/:org/projects/:slug". ParseName extracts the resource
// name, its parent and the template parameters from a URL, a path or a
// bare name; BuildName renders a name from parameters.
package naming

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tailored-agentic-units/resources/resource"
)

// SlugParam is the template parameter holding the resource's own
// identifier.
const SlugParam = "slug"

// ParsedName is the result of ParseName. Empty strings stand for absent
// values.
type ParsedName struct {
	Name   string            `json:"name" yaml:"name"`
	Parent string            `json:"parent" yaml:"parent"`
	URL    string            `json:"url" yaml:"url"`
	Slug   string            `json:"slug" yaml:"slug"`
	Params map[string]string `json:"params" yaml:"params"`
}

// Matched reports whether the input matched the template.
func (p ParsedName) Matched() bool {
	return p.Name != ""
}

// Codec parses and builds resource names for one path template.
type Codec struct {
	template string
	segments []segment
	mux      *chi.Mux
}

func New(template string) (*Codec, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	pattern := routePattern(segments)
	matched := func(http.ResponseWriter, *http.Request) {}

	mux := chi.NewMux()
	mux.Get(pattern, matched)
	mux.Get(pattern+"/*", matched)

	return &Codec{
		template: template,
		segments: segments,
		mux:      mux,
	}, nil
}

// MustNew is New for templates known to be valid.
func MustNew(template string) *Codec {
	c, err := New(template)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) Template() string {
	return c.template
}

// Params returns the template's parameter names in path order.
func (c *Codec) Params() []string {
	params := make([]string, 0, len(c.segments))
	for _, s := range c.segments {
		if s.param != "" {
			params = append(params, s.param)
		}
	}
	return params
}

// ParseName matches the escaped path of nameOrURL against the template, so
// names from BuildName round-trip with their escaping intact. The match
// is by whole-segment prefix, so a child resource's URL parses to its
// ancestor's name under the ancestor's template. Inputs that do not match
// yield a zero ParsedName with empty Params.
func (c *Codec) ParseName(nameOrURL string) ParsedName {
	parsed := ParsedName{Params: map[string]string{}}

	u, err := url.Parse(nameOrURL)
	if err != nil {
		return parsed
	}
	path := strings.TrimPrefix(u.EscapedPath(), "/")

	rctx := chi.NewRouteContext()
	if !c.mux.Match(rctx, http.MethodGet, "/"+path) {
		return parsed
	}

	params := make(map[string]string, len(c.segments))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		if rctx.URLParams.Values[i] == "" {
			return parsed
		}
		params[key] = rctx.URLParams.Values[i]
	}

	segments := strings.Split(path, "/")[:len(c.segments)]

	parsed.Name = strings.Join(segments, "/")
	parsed.URL = "/" + parsed.Name
	if len(segments) > 2 {
		parsed.Parent = strings.Join(segments[:len(segments)-2], "/")
	}
	parsed.Slug = params[SlugParam]
	parsed.Params = params

	return parsed
}

// BuildName renders the resource name of params. It reports false when a
// template parameter is missing or empty. Values are path-escaped.
func (c *Codec) BuildName(params map[string]string) (string, bool) {
	parts := make([]string, len(c.segments))
	for i, s := range c.segments {
		if s.param == "" {
			parts[i] = s.literal
			continue
		}

		value := params[s.param]
		if value == "" {
			return "", false
		}
		parts[i] = url.PathEscape(value)
	}
	return strings.Join(parts, "/"), true
}

// RouteForEntry returns the canonical route of an entry, or an empty string
// when the entry has no name.
func RouteForEntry(entry resource.Entry) string {
	name, ok := entry.Name()
	if !ok {
		return ""
	}
	return "/" + name
}
