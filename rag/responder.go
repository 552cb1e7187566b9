package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/soundshelf/ai"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/search"
	"github.com/poiesic/soundshelf/storage"
)

// snapshotLimit bounds how many recent resources a chat turn considers.
// Ranking is linear over the snapshot, so this also bounds scoring work.
const snapshotLimit = 200

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	// Reply is the model's answer, grounded in the shortlist.
	Reply string

	// Shortlist holds the ranked resources the reply was grounded in,
	// best match first, with usage notes attached where available.
	Shortlist []*core.RankedResource

	// RankingEmpty reports that no resource scored above zero, so the
	// reply was generated without grounding.
	RankingEmpty bool
}

// Responder handles chat turns over the resource library.
type Responder struct {
	resourceRepository storage.ResourceRepository
	generator          ai.TextGenerator
	retriever          *search.Retriever
	annotator          *Annotator
	logger             *slog.Logger
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithLogger sets the logger used by the responder and its annotator.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		r.logger = logger
	}
}

// NewResponder creates a chat responder. The repository and generator are
// required; everything else defaults.
func NewResponder(repo storage.ResourceRepository, generator ai.TextGenerator, opts ...ResponderOption) (*Responder, error) {
	if repo == nil {
		return nil, ErrResourceRepositoryRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	r := &Responder{
		resourceRepository: repo,
		generator:          generator,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.retriever = search.NewRetriever(search.WithLogger(r.logger))

	annotator, err := NewAnnotator(generator, r.logger)
	if err != nil {
		return nil, err
	}
	r.annotator = annotator

	return r, nil
}

// Respond handles one chat turn. It ranks recent resources against the
// query, generates a grounded reply, and attaches usage notes to the
// shortlist. Storage and reply-generation failures are hard errors; note
// generation failures degrade to a shortlist without notes.
func (r *Responder) Respond(ctx context.Context, query string, history []core.ChatTurn) (*ChatResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	snapshot, err := r.resourceRepository.GetRecentResources(ctx, snapshotLimit)
	if err != nil {
		return nil, fmt.Errorf("loading resource snapshot: %w", err)
	}

	shortlist := r.retriever.Retrieve(query, snapshot)

	prompt := buildReplyPrompt(query, history, shortlist)
	reply, err := r.generator.GenerateText(ctx, replySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReplyGeneration, err)
	}

	notes, err := r.annotator.Annotate(ctx, query, shortlist)
	if err != nil {
		r.logger.Warn("usage note generation failed, returning shortlist without notes", "err", err)
	} else {
		for i := range shortlist {
			if i < len(notes) {
				shortlist[i].Insight = notes[i]
			}
		}
	}

	return &ChatResult{
		Reply:        reply,
		Shortlist:    shortlist,
		RankingEmpty: len(shortlist) == 0,
	}, nil
}
