package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/soundshelf/ai/mock"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/search"
	"github.com/poiesic/soundshelf/storage"
	"github.com/poiesic/soundshelf/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponder(t *testing.T, gen *mock.MockGenerator) (*Responder, storage.ResourceRepository) {
	t.Helper()

	resourceRepo, blobRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		blobRepo.Close()
		resourceRepo.Close()
		backend.Close()
	})

	responder, err := NewResponder(resourceRepo, gen)
	require.NoError(t, err)
	return responder, resourceRepo
}

func TestResponderRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("grounds reply in matching resources", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		var replyPrompt string
		gen.GenerateTextFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			if strings.Contains(userPrompt, "usage note") {
				return "1. Start with slow initial-position drills", nil
			}
			replyPrompt = userPrompt
			return "Try the Articulation Drill Cards.", nil
		}
		responder, repo := newTestResponder(t, gen)

		_, err := repo.AddResources(ctx,
			&core.Resource{
				Title:       "Articulation Drill Cards /s/",
				Description: "Printable drill cards for initial s practice",
				Tags:        []string{"articulation", "s", "/s/", "letter-s"},
			},
			&core.Resource{
				Title:       "R Vocalic Worksheets",
				Description: "Worksheets for vocalic r",
				Tags:        []string{"r"},
			},
		)
		require.NoError(t, err)

		result, err := responder.Respond(ctx, "drill cards for s sound", nil)
		require.NoError(t, err)

		assert.Equal(t, "Try the Articulation Drill Cards.", result.Reply)
		assert.False(t, result.RankingEmpty)
		require.NotEmpty(t, result.Shortlist)
		assert.Equal(t, "Articulation Drill Cards /s/", result.Shortlist[0].Resource.Title)
		assert.Equal(t, "Start with slow initial-position drills", result.Shortlist[0].Insight)
		assert.Contains(t, replyPrompt, "1. Articulation Drill Cards /s/")
	})

	t.Run("shortlist capped at limit", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		responder, repo := newTestResponder(t, gen)

		for range 8 {
			_, err := repo.AddResources(ctx, &core.Resource{
				Title:       "Drill Cards",
				Description: "Printable drill cards",
			})
			require.NoError(t, err)
		}

		result, err := responder.Respond(ctx, "drill cards", nil)
		require.NoError(t, err)
		assert.Len(t, result.Shortlist, search.ShortlistLimit)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		responder, _ := newTestResponder(t, mock.NewMockGenerator())

		_, err := responder.Respond(ctx, "   ", nil)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("no matches still generates a reply", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateTextFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "Nothing in the library matched, but here is a thought.", nil
		}
		responder, repo := newTestResponder(t, gen)

		_, err := repo.AddResources(ctx, &core.Resource{
			Title:       "R Vocalic Worksheets",
			Description: "Worksheets",
		})
		require.NoError(t, err)

		result, err := responder.Respond(ctx, "qqq zzz", nil)
		require.NoError(t, err)
		assert.True(t, result.RankingEmpty)
		assert.Empty(t, result.Shortlist)
		assert.NotEmpty(t, result.Reply)
		// One call for the reply, none for notes
		assert.Equal(t, 1, gen.CallCount())
	})

	t.Run("reply failure is a hard error", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateTextFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("connection refused")
		}
		responder, repo := newTestResponder(t, gen)

		_, err := repo.AddResources(ctx, &core.Resource{
			Title:       "Drill Cards",
			Description: "Printable drill cards",
		})
		require.NoError(t, err)

		_, err = responder.Respond(ctx, "drill cards", nil)
		assert.ErrorIs(t, err, ErrReplyGeneration)
	})

	t.Run("note failure degrades softly", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateTextFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			if strings.Contains(userPrompt, "usage note") {
				return "", errors.New("model offline")
			}
			return "Here is the reply.", nil
		}
		responder, repo := newTestResponder(t, gen)

		_, err := repo.AddResources(ctx, &core.Resource{
			Title:       "Drill Cards",
			Description: "Printable drill cards",
		})
		require.NoError(t, err)

		result, err := responder.Respond(ctx, "drill cards", nil)
		require.NoError(t, err)
		assert.Equal(t, "Here is the reply.", result.Reply)
		require.NotEmpty(t, result.Shortlist)
		assert.Empty(t, result.Shortlist[0].Insight)
	})

	t.Run("nil collaborators rejected", func(t *testing.T) {
		_, err := NewResponder(nil, mock.NewMockGenerator())
		assert.ErrorIs(t, err, ErrResourceRepositoryRequired)

		resourceRepo, blobRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

		_, err = NewResponder(resourceRepo, nil)
		assert.ErrorIs(t, err, ErrGeneratorRequired)
	})
}
