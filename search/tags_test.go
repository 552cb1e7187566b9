package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveLetterTags(t *testing.T) {
	t.Run("emits three forms per distinct letter", func(t *testing.T) {
		tags := DeriveLetterTags("Ss")
		assert.Equal(t, []string{"s", "/s/", "letter-s"}, tags)
	})

	t.Run("first appearance order", func(t *testing.T) {
		tags := DeriveLetterTags("Cab")
		assert.Equal(t, []string{
			"c", "/c/", "letter-c",
			"a", "/a/", "letter-a",
			"b", "/b/", "letter-b",
		}, tags)
	})

	t.Run("case insensitive dedup", func(t *testing.T) {
		tags := DeriveLetterTags("aAaA")
		assert.Equal(t, []string{"a", "/a/", "letter-a"}, tags)
	})

	t.Run("non-letters ignored", func(t *testing.T) {
		assert.Empty(t, DeriveLetterTags("123 /!/ 456"))
	})

	t.Run("empty title", func(t *testing.T) {
		assert.Empty(t, DeriveLetterTags(""))
	})
}
