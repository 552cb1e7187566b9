package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("articulation cards")
		b := IDFromContent("articulation cards")
		assert.Equal(t, a, b)
	})

	t.Run("different content produces different IDs", func(t *testing.T) {
		a := IDFromContent("articulation cards")
		b := IDFromContent("minimal pairs")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		a := IDFromContent("")
		b := IDFromContent("")
		assert.Equal(t, a, b)
	})
}

func TestIDFromBytes(t *testing.T) {
	t.Run("matches IDFromContent for identical bytes", func(t *testing.T) {
		assert.Equal(t, IDFromContent("pdf bytes"), IDFromBytes([]byte("pdf bytes")))
	})
}

func TestResourceHasFile(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		r := &Resource{Title: "Cards", Description: "Drill cards"}
		assert.False(t, r.HasFile())
	})

	t.Run("with file", func(t *testing.T) {
		r := &Resource{Title: "Cards", Description: "Drill cards", FileId: IDFromBytes([]byte("data"))}
		assert.True(t, r.HasFile())
	})
}
