package search

import (
	"strings"

	"github.com/poiesic/soundshelf/core"
)

// Signal weights. Exact token matches dominate; the remaining signals each
// contribute a single point so fuzzy evidence can break ties but never
// outweigh a literal hit.
const (
	exactMatchWeight  = 2
	stemMatchWeight   = 1
	tagMatchWeight    = 1
	phraseMatchWeight = 1
)

// Score computes the relevance of a resource to a query. The score is the sum
// of four additive signals over the resource corpus:
//
//  1. +2 for each query token present verbatim in the corpus token set.
//  2. +1 for each query token whose stem appears in the corpus stem set.
//     This stacks with signal 1: an exact match is also a stem match.
//  3. +1 for each query token that appears as a substring of any stored tag,
//     counted at most once per token no matter how many tags contain it.
//  4. +1 if the whole query, lowercased, is a substring of the lowercased
//     corpus.
//
// Duplicate query tokens score independently on every signal. A query that
// tokenizes to nothing scores 0 against everything.
func Score(query string, r *core.Resource) int {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}

	corpus := BuildCorpus(r)
	corpusTokens := Tokenize(corpus)

	rawSet := make(map[string]struct{}, len(corpusTokens))
	stemSet := make(map[string]struct{}, len(corpusTokens))
	for _, token := range corpusTokens {
		rawSet[token] = struct{}{}
		stemSet[Stem(token)] = struct{}{}
	}

	score := 0
	for _, token := range queryTokens {
		if _, ok := rawSet[token]; ok {
			score += exactMatchWeight
		}
		if _, ok := stemSet[Stem(token)]; ok {
			score += stemMatchWeight
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), token) {
				score += tagMatchWeight
				break
			}
		}
	}

	if strings.Contains(strings.ToLower(corpus), strings.ToLower(query)) {
		score += phraseMatchWeight
	}

	return score
}
