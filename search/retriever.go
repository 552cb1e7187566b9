package search

import (
	"log/slog"
	"slices"

	"github.com/poiesic/soundshelf/core"
)

// ShortlistLimit caps how many ranked resources a retrieval pass returns.
// Five keeps the downstream chat prompt small enough that every entry can be
// briefed to the language model without crowding out the conversation.
const ShortlistLimit = 5

// Retriever ranks resource snapshots against free-text queries.
type Retriever struct {
	logger *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger used for retrieval diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		r.logger = logger
	}
}

// NewRetriever creates a retriever. Without options it logs through
// slog.Default.
func NewRetriever(opts ...Option) *Retriever {
	r := &Retriever{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve scores every resource in the snapshot against the query and
// returns at most ShortlistLimit results, ordered by descending score.
// Resources scoring zero or below are dropped. Ties preserve the snapshot
// order, so with a most-recent-first snapshot the newer resource wins the
// tie. A query that tokenizes to nothing returns an empty shortlist without
// scoring anything.
func (r *Retriever) Retrieve(query string, resources []*core.Resource) []*core.RankedResource {
	if len(Tokenize(query)) == 0 {
		r.logger.Debug("query produced no tokens, skipping retrieval", "query", query)
		return []*core.RankedResource{}
	}

	ranked := make([]*core.RankedResource, 0, len(resources))
	for _, resource := range resources {
		score := Score(query, resource)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, &core.RankedResource{
			Resource: resource,
			Score:    score,
		})
	}

	slices.SortStableFunc(ranked, func(a, b *core.RankedResource) int {
		return b.Score - a.Score
	})

	if len(ranked) > ShortlistLimit {
		ranked = ranked[:ShortlistLimit]
	}

	r.logger.Debug("retrieval complete",
		"query", query,
		"candidates", len(resources),
		"shortlisted", len(ranked))

	return ranked
}
