package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, in := range []string{"text", "Video", " IMAGE ", "file"} {
		_, err := ParseKind(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseKind("audio")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewItemMatchesKind(t *testing.T) {
	for _, kind := range Kinds {
		item, err := NewItem(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, item.Kind())
		assert.NotNil(t, item.Base())
	}
	_, err := NewItem("audio")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestModuleString(t *testing.T) {
	m := Module{Title: "Intro"}
	assert.Equal(t, "Intro", m.String())

	m.SetOrderValue(3)
	assert.Equal(t, "3. Intro", m.String())
	order, ok := m.OrderValue()
	assert.True(t, ok)
	assert.Equal(t, 3, order)
}
