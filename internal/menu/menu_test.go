package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/types"
)

func item(id, parent string, sort int) types.MenuItem {
	return types.MenuItem{ID: id, ParentID: parent, SortOrder: sort, Caption: "item " + id}
}

func TestInitialize_ForestShape(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.MenuItem{
		item("b", "", 2),
		item("a", "", 1),
		item("a2", "a", 20),
		item("a1", "a", 10),
		item("a1x", "a1", 1),
	})

	require.Equal(t, 5, s.Count())
	roots := s.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "b", roots[1].ID)

	a := roots[0]
	require.Len(t, a.Children, 2)
	assert.Equal(t, "a1", a.Children[0].ID)
	assert.Equal(t, "a2", a.Children[1].ID)

	assert.Equal(t, 0, a.Depth)
	assert.Equal(t, 1, a.Children[0].Depth)
	assert.Equal(t, 2, a.Children[0].Children[0].Depth)
}

func TestInitialize_RootClassification(t *testing.T) {
	tests := []struct {
		name   string
		parent string
	}{
		{"empty parent", ""},
		{"whitespace parent", "   \t"},
		{"unknown parent", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			s.Initialize([]types.MenuItem{item("x", tt.parent, 1)})
			roots := s.Roots()
			require.Len(t, roots, 1)
			assert.Equal(t, 0, roots[0].Depth)
		})
	}
}

func TestInitialize_SiblingOrderStable(t *testing.T) {
	// Equal sort orders keep input order; repeated builds from the same
	// list yield the identical sequence.
	items := []types.MenuItem{
		item("first", "", 5),
		item("second", "", 5),
		item("third", "", 1),
	}
	s := New(nil)
	for i := 0; i < 3; i++ {
		s.Initialize(items)
		roots := s.Roots()
		require.Len(t, roots, 3)
		assert.Equal(t, "third", roots[0].ID)
		assert.Equal(t, "first", roots[1].ID)
		assert.Equal(t, "second", roots[2].ID)
	}
}

func TestInitialize_CountPreservedAndCyclesDropped(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.MenuItem{
		item("r", "", 1),
		item("c1", "r", 1),
		// Two items pointing at each other never reach a root.
		item("loop1", "loop2", 1),
		item("loop2", "loop1", 1),
	})

	assert.Equal(t, 2, s.Count())
	assert.NotNil(t, s.Find("r"))
	assert.NotNil(t, s.Find("c1"))
	assert.Nil(t, s.Find("loop1"))
}

func TestInitialize_ReplacesPreviousTree(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.MenuItem{item("old", "", 1)})
	s.Initialize([]types.MenuItem{item("new", "", 1)})

	assert.Nil(t, s.Find("old"))
	assert.NotNil(t, s.Find("new"))
	assert.Equal(t, 1, s.Count())
}

func TestClear(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.MenuItem{item("x", "", 1)})
	s.Clear()
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Roots())
	assert.Nil(t, s.Find("x"))
}

func TestItems_RenderOrder(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.MenuItem{
		item("b", "", 2),
		item("a", "", 1),
		item("a1", "a", 1),
	})

	var ids []string
	for _, n := range s.Items() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"a", "a1", "b"}, ids)
}
