package search

import (
	"testing"

	"github.com/poiesic/soundshelf/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildCorpus(t *testing.T) {
	t.Run("includes all resource fields", func(t *testing.T) {
		r := &core.Resource{
			Title:         "Minimal Pairs",
			Description:   "Worksheet pack",
			Tags:          []string{"phonology", "worksheet"},
			ExtractedText: "pin bin pat bat",
		}
		corpus := BuildCorpus(r)
		assert.Contains(t, corpus, "Minimal Pairs")
		assert.Contains(t, corpus, "Worksheet pack")
		assert.Contains(t, corpus, "phonology")
		assert.Contains(t, corpus, "/m/")
		assert.Contains(t, corpus, "letter-p")
		assert.Contains(t, corpus, "pin bin pat bat")
	})

	t.Run("deterministic", func(t *testing.T) {
		r := &core.Resource{
			Title:       "Drill Cards",
			Description: "Practice pack",
			Tags:        []string{"articulation"},
		}
		assert.Equal(t, BuildCorpus(r), BuildCorpus(r))
	})

	t.Run("reflects edits immediately", func(t *testing.T) {
		r := &core.Resource{Title: "Drill Cards", Description: "Practice pack"}
		before := BuildCorpus(r)
		r.ExtractedText = "new extracted text"
		after := BuildCorpus(r)
		assert.NotEqual(t, before, after)
		assert.Contains(t, after, "new extracted text")
	})
}
