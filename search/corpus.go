package search

import (
	"strings"

	"github.com/poiesic/soundshelf/core"
)

// BuildCorpus flattens a resource into the single searchable string every
// scoring signal operates on. The corpus is the space-joined concatenation of
// the title, the description, every stored tag, every letter tag derived from
// the title, and the extracted file text. Extracted text is always included,
// even when stored tags or derived tags already cover the same letters.
//
// The corpus is rebuilt from the live resource on every call and never cached,
// so an edit is reflected in ranking immediately.
func BuildCorpus(r *core.Resource) string {
	parts := make([]string, 0, 4+len(r.Tags))
	parts = append(parts, r.Title, r.Description)
	parts = append(parts, r.Tags...)
	parts = append(parts, DeriveLetterTags(r.Title)...)
	parts = append(parts, r.ExtractedText)
	return strings.Join(parts, " ")
}
