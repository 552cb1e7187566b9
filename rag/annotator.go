package rag

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/soundshelf/ai"
	"github.com/poiesic/soundshelf/core"
)

// notesLinePattern strips leading list numbering like "1. ", "2) ", "3: ".
var notesLinePattern = regexp.MustCompile(`^\s*\d+[).:]?\s*`)

// Annotator asks the model for a one-line usage note per shortlisted
// resource. Notes are decorative: every failure here degrades to empty notes
// rather than failing the chat.
type Annotator struct {
	generator ai.TextGenerator
	logger    *slog.Logger
}

// NewAnnotator creates an annotator backed by the given generator.
func NewAnnotator(generator ai.TextGenerator, logger *slog.Logger) (*Annotator, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Annotator{
		generator: generator,
		logger:    logger,
	}, nil
}

// Annotate returns one note per shortlist entry, positionally aligned.
// An empty shortlist returns an empty slice without calling the model.
// If the model returns fewer lines than resources, the tail notes are empty.
func (a *Annotator) Annotate(ctx context.Context, query string, shortlist []*core.RankedResource) ([]string, error) {
	if len(shortlist) == 0 {
		return []string{}, nil
	}

	prompt := buildNotesPrompt(query, shortlist)
	response, err := a.generator.GenerateText(ctx, notesSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	return parseNumberedNotes(response, len(shortlist)), nil
}

// parseNumberedNotes maps the model's numbered lines onto want note slots.
// Lines map positionally: the first non-blank line is the note for the first
// resource, and so on. Shortfall leaves trailing notes empty; surplus lines
// are dropped.
func parseNumberedNotes(response string, want int) []string {
	notes := make([]string, want)

	i := 0
	for _, line := range strings.Split(response, "\n") {
		if i >= want {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		notes[i] = strings.TrimSpace(notesLinePattern.ReplaceAllString(line, ""))
		i++
	}

	return notes
}
