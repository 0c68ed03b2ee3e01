package images

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesdesk/internal/types"
)

func catalog() []types.UIImageItem {
	return []types.UIImageItem{
		{Identifier: "icon:supplier", ImageData: "aGVsbG8=", DataURL: "data:image/png;base64,aGVsbG8="},
		{Identifier: "ICON_POS", ImageData: "cG9z", DataURL: "data:image/png;base64,cG9z"},
	}
}

func TestGet_StrictLookup(t *testing.T) {
	s := New(nil, "")
	s.Initialize(catalog())

	assert.Equal(t, "data:image/png;base64,aGVsbG8=", s.Get("icon:supplier"))
	assert.Empty(t, s.Get("icon:unknown"))
	assert.Empty(t, s.Get(""))
}

func TestGet_PlaceholderNeverResolvable(t *testing.T) {
	s := New(nil, "")
	// Even a hostile snapshot that stores the sentinel as an identifier
	// must not make it resolvable.
	s.Initialize([]types.UIImageItem{
		{Identifier: types.ImagePlaceholder, ImageData: "x", DataURL: "data:image/png;base64,x"},
		{Identifier: "icon:real", ImageData: types.ImagePlaceholder, DataURL: "unused"},
	})

	assert.Empty(t, s.Get(types.ImagePlaceholder))
	assert.Empty(t, s.Get("icon:real")) // placeholder payload is dropped
	assert.Empty(t, s.Resolve(types.ImagePlaceholder))
}

func TestResolve_Variants(t *testing.T) {
	s := New(nil, "")
	s.Initialize(catalog())

	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"exact", "icon:supplier", "data:image/png;base64,aGVsbG8="},
		{"uppercase input", "ICON:SUPPLIER", "data:image/png;base64,aGVsbG8="},
		{"separator flipped", "icon_supplier", "data:image/png;base64,aGVsbG8="},
		{"stored with underscore", "icon:pos", "data:image/png;base64,cG9z"},
		{"unknown falls to asset path", "icon:order", "/assets/icons/icon_order.png"},
		{"empty exhausts every layer", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Resolve(tt.identifier))
		})
	}
}

func TestResolveMenuIcon(t *testing.T) {
	s := New(nil, "")
	s.Initialize(catalog())

	t.Run("caption synonym hits cache", func(t *testing.T) {
		got := s.ResolveMenuIcon(types.MenuItem{Caption: "Suppliers"})
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", got)
	})

	t.Run("german caption synonym", func(t *testing.T) {
		got := s.ResolveMenuIcon(types.MenuItem{Caption: "Lieferanten"})
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", got)
	})

	t.Run("interaction id when caption unknown", func(t *testing.T) {
		got := s.ResolveMenuIcon(types.MenuItem{Caption: "Einkauf", InteractionID: "GET_POS_LIST"})
		assert.Equal(t, "data:image/png;base64,cG9z", got)
	})

	t.Run("action synonym falls to asset path", func(t *testing.T) {
		got := s.ResolveMenuIcon(types.MenuItem{Caption: "Sonstiges", Action: "NAVIGATE"})
		assert.Equal(t, "/assets/icons/icon_navigate.png", got)
	})

	t.Run("nothing recognized", func(t *testing.T) {
		assert.Empty(t, s.ResolveMenuIcon(types.MenuItem{Caption: "???"}))
	})
}

func TestInitialize_Replaces(t *testing.T) {
	s := New(nil, "")
	s.Initialize(catalog())
	s.Initialize([]types.UIImageItem{{Identifier: "icon:new", DataURL: "data:image/png;base64,bg=="}})

	assert.Empty(t, s.Get("icon:supplier"))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
}
