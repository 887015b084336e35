package store

import (
	"net/url"
	"strings"

	"github.com/tailored-agentic-units/resources/resource"
)

// Selectors are the read views of one resource kind over a root snapshot.
// Returned maps and slices are shared between calls and must not be
// modified.
type Selectors struct {
	kind resource.Kind

	list  *memo[[]resource.Entry]
	names *memo[[]string]
}

func NewSelectors(kind resource.Kind) *Selectors {
	return &Selectors{
		kind: kind,
		list: newMemo(func(s *State) []resource.Entry {
			names := s.Names()
			entries := make([]resource.Entry, len(names))
			for i, name := range names {
				entries[i] = s.Entries[name]
			}
			return entries
		}),
		names: newMemo((*State).Names),
	}
}

func (s *Selectors) Kind() resource.Kind {
	return s.kind
}

func (s *Selectors) GetState(root *Root) *State {
	return root.State(s.kind)
}

// GetAll returns the entries keyed by name.
func (s *Selectors) GetAll(root *Root) map[string]resource.Entry {
	return s.GetState(root).Entries
}

// List returns the entries in ascending name order.
func (s *Selectors) List(root *Root) []resource.Entry {
	return s.list.get(s.GetState(root))
}

func (s *Selectors) CountAll(root *Root) int {
	return s.GetState(root).Len()
}

func (s *Selectors) GetByName(root *Root, name string) (resource.Entry, bool) {
	return s.GetState(root).Get(name)
}

// GetForURL returns the entry whose name prefixes the path of rawURL.
// Names are tried in ascending order, so when several stored names are
// prefixes of the path the lexically smallest wins.
func (s *Selectors) GetForURL(root *Root, rawURL string) (resource.Entry, bool) {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.EscapedPath()
	}
	path = strings.TrimPrefix(path, "/")

	state := s.GetState(root)
	for _, name := range s.names.get(state) {
		if strings.HasPrefix(path, name) {
			return state.Entries[name], true
		}
	}
	return nil, false
}
