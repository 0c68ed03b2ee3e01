package text

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salesdesk/internal/types"
)

func TestGet_BeforeInitialize(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "fallback", s.Get("X", "fallback", nil))
	assert.Equal(t, "X", s.Get("X", "", nil))
}

func TestGet_AfterInitialize(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.UIText{{Name: "X", Caption: "Hello"}})
	assert.Equal(t, "Hello", s.Get("X", "fallback", nil))
	assert.Equal(t, "fallback", s.Get("Y", "fallback", nil))
}

func TestInitialize_LastWriteWinsAndReplaces(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.UIText{
		{Name: "X", Caption: "first"},
		{Name: "X", Caption: "second"},
	})
	assert.Equal(t, "second", s.Get("X", "", nil))
	assert.Equal(t, 1, s.Len())

	// A new Initialize fully replaces the previous dictionary.
	s.Initialize([]types.UIText{{Name: "Y", Caption: "only"}})
	assert.Equal(t, "X", s.Get("X", "", nil))
	assert.Equal(t, "only", s.Get("Y", "", nil))
}

func TestGet_ParameterSubstitution(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.UIText{
		{Name: "MESSAGE.DELETE:OM", Caption: "Really delete ##DISPLAYNAME##? This removes ##COUNT## rows."},
	})

	got := s.Get("MESSAGE.DELETE:OM", "", map[string]string{"DISPLAYNAME": "Jane"})
	assert.Equal(t, "Really delete Jane? This removes ##COUNT## rows.", got)
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		params  map[string]string
		want    string
	}{
		{
			name:    "case-insensitive parameter key",
			caption: "Hello ##DISPLAYNAME##",
			params:  map[string]string{"displayName": "Jane"},
			want:    "Hello Jane",
		},
		{
			name:    "case-insensitive placeholder spelling",
			caption: "Hello ##DisplayName##",
			params:  map[string]string{"DISPLAYNAME": "Jane"},
			want:    "Hello Jane",
		},
		{
			name:    "unresolved placeholder stays verbatim",
			caption: "##WHO## deleted ##WHAT##",
			params:  map[string]string{"WHO": "Jane"},
			want:    "Jane deleted ##WHAT##",
		},
		{
			name:    "no params",
			caption: "plain ##X##",
			params:  nil,
			want:    "plain ##X##",
		},
		{
			name:    "multiple occurrences",
			caption: "##N## and ##N##",
			params:  map[string]string{"N": "2"},
			want:    "2 and 2",
		},
		{
			name:    "multibyte text around placeholder",
			caption: "Straße löschen: ##NAME##?",
			params:  map[string]string{"NAME": "Markt"},
			want:    "Straße löschen: Markt?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.caption, tt.params))
		})
	}
}

func TestClear(t *testing.T) {
	s := New(nil)
	s.Initialize([]types.UIText{{Name: "X", Caption: "Hello"}})
	s.Clear()
	assert.Equal(t, "fallback", s.Get("X", "fallback", nil))
	assert.Zero(t, s.Len())
}
