// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package soundshelf is a searchable library of speech-sound teaching
// resources with an optional chat interface grounded in the library contents.
package soundshelf

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/soundshelf/ai"
	"github.com/poiesic/soundshelf/ai/openai"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/ingestion"
	"github.com/poiesic/soundshelf/rag"
	"github.com/poiesic/soundshelf/search"
	"github.com/poiesic/soundshelf/storage"
	"github.com/poiesic/soundshelf/storage/badger"
)

// ErrGeneratorNotConfigured indicates a chat was attempted without a model.
var ErrGeneratorNotConfigured = errors.New("no text generator configured")

// snapshotLimit bounds the resource snapshot for direct Search calls.
const snapshotLimit = 200

// Library is the top-level facade over storage, ingestion, retrieval, and
// chat. All operations are safe for concurrent use.
type Library struct {
	backend      *badger.Backend
	resourceRepo storage.ResourceRepository
	blobRepo     storage.BlobRepository
	pipeline     *ingestion.Pipeline
	retriever    *search.Retriever
	responder    *rag.Responder
	generator    ai.TextGenerator
	logger       *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	inMemory  bool
	aiConfig  *ai.Config
	generator ai.TextGenerator
	logger    *slog.Logger
}

// WithInMemory opens the backing store in memory, discarding data on close.
func WithInMemory() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

// WithAIConfig connects an OpenAI-compatible chat model for the Chat
// operation and tag suggestion.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// WithTextGenerator injects a generator directly, bypassing WithAIConfig.
// Mainly useful for tests.
func WithTextGenerator(generator ai.TextGenerator) LibraryOption {
	return func(o *libraryOptions) {
		o.generator = generator
	}
}

// WithLogger sets the logger for the library and its components.
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(o *libraryOptions) {
		o.logger = logger
	}
}

// OpenLibrary opens (creating if needed) a resource library at filePath.
// Without WithAIConfig or WithTextGenerator the library works fully except
// for Chat and tag suggestion.
func OpenLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	resourceRepo, err := badger.NewResourceRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	blobRepo := badger.NewBlobRepository(backend)

	generator := options.generator
	if generator == nil && options.aiConfig != nil {
		generator, err = openai.NewGenerator(options.aiConfig)
		if err != nil {
			resourceRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	pipelineOpts := []ingestion.Option{ingestion.WithLogger(options.logger)}
	if generator != nil {
		pipelineOpts = append(pipelineOpts, ingestion.WithGenerator(generator))
	}
	pipeline, err := ingestion.NewPipeline(resourceRepo, blobRepo, pipelineOpts...)
	if err != nil {
		resourceRepo.Close()
		backend.Close()
		return nil, err
	}

	lib := &Library{
		backend:      backend,
		resourceRepo: resourceRepo,
		blobRepo:     blobRepo,
		pipeline:     pipeline,
		retriever:    search.NewRetriever(search.WithLogger(options.logger)),
		generator:    generator,
		logger:       options.logger,
	}

	if generator != nil {
		responder, err := rag.NewResponder(resourceRepo, generator, rag.WithLogger(options.logger))
		if err != nil {
			lib.Close()
			return nil, err
		}
		lib.responder = responder
	}

	return lib, nil
}

// Close releases the worker pools and the backing store.
func (l *Library) Close() error {
	l.pipeline.Release()

	if err := l.blobRepo.Close(); err != nil {
		l.logger.Error("error closing blob repository", "err", err)
		return err
	}
	if err := l.resourceRepo.Close(); err != nil {
		l.logger.Error("error closing resource repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// AddResource validates and stores a new resource. Attachment text
// extraction and tag suggestion continue in the background.
func (l *Library) AddResource(ctx context.Context, req ingestion.AddResourceRequest) (*core.Resource, error) {
	return l.pipeline.AddResource(ctx, req)
}

// UpdateResource replaces the mutable fields of an existing resource.
func (l *Library) UpdateResource(ctx context.Context, id core.ID, req ingestion.AddResourceRequest) (*core.Resource, error) {
	return l.pipeline.UpdateResource(ctx, id, req)
}

// DeleteResource removes a resource and its attachment.
func (l *Library) DeleteResource(ctx context.Context, id core.ID) error {
	return l.pipeline.DeleteResource(ctx, id)
}

// GetResource fetches a single resource by ID.
func (l *Library) GetResource(ctx context.Context, id core.ID) (*core.Resource, error) {
	return l.resourceRepo.GetResource(ctx, id)
}

// GetBlob fetches attachment bytes by file ID.
func (l *Library) GetBlob(ctx context.Context, id core.ID) ([]byte, error) {
	return l.blobRepo.GetBlob(ctx, id)
}

// ListResources returns up to limit resources, most recently added first.
func (l *Library) ListResources(ctx context.Context, limit int) ([]*core.Resource, error) {
	return l.resourceRepo.GetRecentResources(ctx, limit)
}

// Search ranks recent resources against the query and returns the shortlist,
// best match first. Works without a configured model.
func (l *Library) Search(ctx context.Context, query string) ([]*core.RankedResource, error) {
	snapshot, err := l.resourceRepo.GetRecentResources(ctx, snapshotLimit)
	if err != nil {
		return nil, err
	}
	return l.retriever.Retrieve(query, snapshot), nil
}

// Chat answers a question grounded in the library. Requires a model
// configured via WithAIConfig or WithTextGenerator.
func (l *Library) Chat(ctx context.Context, query string, history []core.ChatTurn) (*rag.ChatResult, error) {
	if l.responder == nil {
		return nil, ErrGeneratorNotConfigured
	}
	return l.responder.Respond(ctx, query, history)
}

// ReextractAll synchronously re-runs attachment text extraction for up to
// limit recent resources. Returns how many were re-extracted.
func (l *Library) ReextractAll(ctx context.Context, limit int) (int, error) {
	return l.pipeline.ReextractAll(ctx, limit)
}
