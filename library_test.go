package soundshelf

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/soundshelf/ai/mock"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLibrary(t *testing.T, opts ...LibraryOption) *Library {
	t.Helper()
	lib, err := OpenLibrary("", append([]LibraryOption{WithInMemory()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestLibraryCRUD(t *testing.T) {
	ctx := context.Background()
	lib := openTestLibrary(t)

	added, err := lib.AddResource(ctx, ingestion.AddResourceRequest{
		Title:       "Articulation Drill Cards /s/",
		Description: "Printable drill cards for initial s practice",
		Tags:        []string{"articulation"},
	})
	require.NoError(t, err)
	require.NotZero(t, added.Id)

	got, err := lib.GetResource(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added.Title, got.Title)

	listed, err := lib.ListResources(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	updated, err := lib.UpdateResource(ctx, added.Id, ingestion.AddResourceRequest{
		Title:       "Articulation Drill Cards /s/",
		Description: "Updated description",
		Tags:        []string{"articulation"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated description", updated.Description)

	require.NoError(t, lib.DeleteResource(ctx, added.Id))
	listed, err = lib.ListResources(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLibrarySearch(t *testing.T) {
	ctx := context.Background()
	lib := openTestLibrary(t)

	_, err := lib.AddResource(ctx, ingestion.AddResourceRequest{
		Title:       "Articulation Drill Cards /s/",
		Description: "Printable drill cards for initial s practice",
	})
	require.NoError(t, err)
	_, err = lib.AddResource(ctx, ingestion.AddResourceRequest{
		Title:       "R Vocalic Workbook",
		Description: "Workbook for vocalic r",
	})
	require.NoError(t, err)

	results, err := lib.Search(ctx, "drill cards for s sound")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Articulation Drill Cards /s/", results[0].Resource.Title)
	assert.Positive(t, results[0].Score)

	// Single-sound lookup lands via derived letter tags
	results, err = lib.Search(ctx, "s")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Articulation Drill Cards /s/", results[0].Resource.Title)

	results, err = lib.Search(ctx, "qqq zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLibraryChat(t *testing.T) {
	ctx := context.Background()

	t.Run("without generator", func(t *testing.T) {
		lib := openTestLibrary(t)
		_, err := lib.Chat(ctx, "anything", nil)
		assert.ErrorIs(t, err, ErrGeneratorNotConfigured)
	})

	t.Run("with generator", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateTextFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			if strings.Contains(userPrompt, "usage note") {
				return "1. Use in warm-ups", nil
			}
			return "Try the drill cards.", nil
		}
		lib := openTestLibrary(t, WithTextGenerator(gen))

		_, err := lib.AddResource(ctx, ingestion.AddResourceRequest{
			Title:       "Articulation Drill Cards /s/",
			Description: "Printable drill cards for initial s practice",
		})
		require.NoError(t, err)

		result, err := lib.Chat(ctx, "drill cards for s sound", []core.ChatTurn{
			{Speaker: core.SpeakerTypeHuman, Contents: "hi"},
			{Speaker: core.SpeakerTypeAI, Contents: "hello"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Try the drill cards.", result.Reply)
		require.NotEmpty(t, result.Shortlist)
		assert.Equal(t, "Use in warm-ups", result.Shortlist[0].Insight)
	})
}
