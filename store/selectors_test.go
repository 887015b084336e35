package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/store"
)

func rootWith(entries ...resource.Entry) *store.Root {
	return store.NewRoot(map[resource.Kind]*store.State{
		resource.KindProject: store.EmptyState().Merge(entries...),
	})
}

func TestSelectors_Reads(t *testing.T) {
	sel := store.NewSelectors(resource.KindProject)
	root := rootWith(
		resource.Entry{"name": "projects/b"},
		resource.Entry{"name": "projects/a", "display_name": "A"},
	)

	assert.Equal(t, resource.KindProject, sel.Kind())
	assert.Equal(t, 2, sel.CountAll(root))
	assert.Len(t, sel.GetAll(root), 2)

	entry, ok := sel.GetByName(root, "projects/a")
	require.True(t, ok)
	assert.Equal(t, "A", entry["display_name"])

	_, ok = sel.GetByName(root, "projects/zzz")
	assert.False(t, ok)

	list := sel.List(root)
	require.Len(t, list, 2)
	assert.Equal(t, "projects/a", list[0]["name"])
	assert.Equal(t, "projects/b", list[1]["name"])
}

func TestSelectors_MemoizedOnState(t *testing.T) {
	sel := store.NewSelectors(resource.KindProject)
	root := rootWith(resource.Entry{"name": "projects/a"})

	first := sel.List(root)
	second := sel.List(store.NewRoot(map[resource.Kind]*store.State{
		resource.KindProject: root.State(resource.KindProject),
	}))
	assert.Same(t, &first[0], &second[0], "same state yields the cached slice")

	changed := rootWith(resource.Entry{"name": "projects/a"}, resource.Entry{"name": "projects/b"})
	assert.Len(t, sel.List(changed), 2)
}

func TestSelectors_GetForURL(t *testing.T) {
	sel := store.NewSelectors(resource.KindProject)

	_, ok := sel.GetForURL(rootWith(), "/projects/abc")
	assert.False(t, ok, "empty store")

	root := rootWith(
		resource.Entry{"name": "projects/abc"},
		resource.Entry{"name": "projects/xyz"},
	)

	entry, ok := sel.GetForURL(root, "/projects/abc")
	require.True(t, ok)
	assert.Equal(t, "projects/abc", entry["name"])

	entry, ok = sel.GetForURL(root, "https://dashboard.example.com/projects/xyz/settings?tab=1")
	require.True(t, ok)
	assert.Equal(t, "projects/xyz", entry["name"])

	_, ok = sel.GetForURL(root, "/projects/other")
	assert.False(t, ok)
}

func TestSelectors_GetForURL_SmallestPrefixWins(t *testing.T) {
	sel := store.NewSelectors(resource.KindProject)
	root := rootWith(
		resource.Entry{"name": "projects/abc/sites/s"},
		resource.Entry{"name": "projects/abc"},
	)

	for range 5 {
		entry, ok := sel.GetForURL(root, "/projects/abc/sites/s")
		require.True(t, ok)
		assert.Equal(t, "projects/abc", entry["name"])
	}
}

func TestSelectors_GetForURL_EscapedName(t *testing.T) {
	sel := store.NewSelectors(resource.KindProject)
	root := rootWith(resource.Entry{"name": "projects/a%20b"})

	entry, ok := sel.GetForURL(root, "/projects/a%20b")
	require.True(t, ok)
	assert.Equal(t, "projects/a%20b", entry["name"])

	entry, ok = sel.GetForURL(root, "https://dashboard.example.com/projects/a%20b/sites")
	require.True(t, ok)
	assert.Equal(t, "projects/a%20b", entry["name"])
}

func TestSelectors_MissingKind(t *testing.T) {
	sel := store.NewSelectors(resource.KindSite)
	root := rootWith(resource.Entry{"name": "projects/a"})

	assert.Zero(t, sel.CountAll(root))
	assert.Empty(t, sel.List(root))
}
