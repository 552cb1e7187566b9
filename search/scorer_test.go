package search

import (
	"testing"

	"github.com/poiesic/soundshelf/core"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Run("exact token match scores raw plus stem plus phrase", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "Practice pack"}
		// "drill" hits the raw set (+2), its own stem (+1), and the phrase
		// check (+1).
		assert.Equal(t, 4, Score("drill", r))
	})

	t.Run("stem-only match scores one", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "Practice pack"}
		// "drills" stems to "drill" but never appears verbatim.
		assert.Equal(t, 1, Score("drills", r))
	})

	t.Run("no overlap scores zero", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "Practice pack"}
		assert.Equal(t, 0, Score("zzz qqq", r))
	})

	t.Run("tag substring counts once per query token", func(t *testing.T) {
		oneTag := &core.Resource{
			Title:       "Cards",
			Description: "pack",
			Tags:        []string{"s-sounds"},
		}
		twoTags := &core.Resource{
			Title:       "Cards",
			Description: "pack",
			Tags:        []string{"s-sounds", "s-blends"},
		}
		assert.Equal(t, Score("s", oneTag), Score("s", twoTags))
	})

	t.Run("phrase bonus requires contiguous match", func(t *testing.T) {
		inOrder := &core.Resource{Title: "Drill Cards", Description: "pack"}
		reversed := &core.Resource{Title: "Cards Drill", Description: "pack"}
		assert.Equal(t, Score("drill cards", inOrder), Score("drill cards", reversed)+1)
	})

	t.Run("duplicate query tokens score independently", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "pack"}
		assert.Greater(t, Score("drill drill", r), Score("drill", r))
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "pack"}
		assert.Equal(t, 0, Score("", r))
		assert.Equal(t, 0, Score("!!!", r))
	})

	t.Run("deterministic", func(t *testing.T) {
		r := &core.Resource{
			Title:         "Articulation Drill Cards /s/",
			Description:   "Printable drill cards for initial s practice",
			Tags:          []string{"articulation", "printable"},
			ExtractedText: "say the sound slowly",
		}
		first := Score("drill cards for s sound", r)
		for range 10 {
			assert.Equal(t, first, Score("drill cards for s sound", r))
		}
	})

	t.Run("single letter query reaches letter tags", func(t *testing.T) {
		r := &core.Resource{Title: "Sss Practice", Description: "hiss drills"}
		// The derived letter tag "s" lands in the corpus token set.
		assert.GreaterOrEqual(t, Score("s", r), exactMatchWeight)
	})
}
