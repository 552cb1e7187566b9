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

package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/soundshelf/ai"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/search"
	"github.com/poiesic/soundshelf/storage"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	maxSuggestedTags  = 5
)

const tagSuggestionSystemPrompt = `You suggest short lowercase tags for speech
teaching resources. Reply with a comma-separated list of at most five tags and
nothing else.`

// Pipeline orchestrates resource ingestion. Persisting the resource is
// synchronous; text extraction and tag suggestion run on worker pools and
// their failures are logged, never surfaced to the caller.
type Pipeline struct {
	resourceRepository storage.ResourceRepository
	blobRepository     storage.BlobRepository
	extractor          TextExtractor
	generator          ai.TextGenerator
	extractionPool     *ants.Pool
	suggestionPool     *ants.Pool
	maxRetries         int
	retryDelay         time.Duration
	logger             *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.extractionPool != nil {
			p.extractionPool.Release()
		}
		if p.suggestionPool != nil {
			p.suggestionPool.Release()
		}

		extractionPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		suggestionPool, err := ants.NewPool(size)
		if err != nil {
			extractionPool.Release()
			return err
		}

		p.extractionPool = extractionPool
		p.suggestionPool = suggestionPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithGenerator enables tag suggestion through the given generator.
// Without it, suggestion is skipped entirely.
func WithGenerator(generator ai.TextGenerator) Option {
	return func(p *Pipeline) error {
		p.generator = generator
		return nil
	}
}

// WithExtractor replaces the default text extractor.
func WithExtractor(extractor TextExtractor) Option {
	return func(p *Pipeline) error {
		if extractor == nil {
			extractor = NewDefaultExtractor()
		}
		p.extractor = extractor
		return nil
	}
}

// WithRetry sets the retry policy for extraction passes.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	resourceRepository storage.ResourceRepository,
	blobRepository storage.BlobRepository,
	opts ...Option,
) (*Pipeline, error) {
	if resourceRepository == nil {
		return nil, ErrResourceRepositoryRequired
	}
	if blobRepository == nil {
		return nil, ErrBlobRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	extractionPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	suggestionPool, err := ants.NewPool(poolSize)
	if err != nil {
		extractionPool.Release()
		return nil, err
	}

	p := &Pipeline{
		resourceRepository: resourceRepository,
		blobRepository:     blobRepository,
		extractor:          NewDefaultExtractor(),
		extractionPool:     extractionPool,
		suggestionPool:     suggestionPool,
		maxRetries:         defaultMaxRetries,
		retryDelay:         defaultRetryDelay,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// AddResourceRequest carries the fields for a new resource.
type AddResourceRequest struct {
	Title       string
	Description string
	Tags        []string
	AgeRange    string
	Type        string

	// FileMime and FileData describe an optional attachment.
	FileMime string
	FileData []byte
}

// AddResource validates and persists a new resource, then kicks off
// asynchronous text extraction and tag suggestion. The returned resource has
// its ID and timestamps populated but may not yet carry extracted text or
// suggested tags.
func (p *Pipeline) AddResource(ctx context.Context, req AddResourceRequest) (*core.Resource, error) {
	resource := &core.Resource{
		Title:       req.Title,
		Description: req.Description,
		Tags:        unionLetterTags(req.Title, req.Tags),
		AgeRange:    req.AgeRange,
		Type:        req.Type,
	}

	if err := core.ValidateResource(resource); err != nil {
		return nil, err
	}

	if req.FileMime != "" && len(req.FileData) == 0 {
		return nil, ErrFileDataRequired
	}

	if len(req.FileData) > 0 {
		fileID, err := p.blobRepository.PutBlob(ctx, req.FileData)
		if err != nil {
			return nil, err
		}
		resource.FileId = fileID
		resource.FileMime = req.FileMime
	}

	added, err := p.resourceRepository.AddResources(ctx, resource)
	if err != nil {
		return nil, err
	}
	resource = added[0]

	if resource.HasFile() {
		p.submitExtraction(resource.Id)
	}
	if p.generator != nil {
		p.submitSuggestion(resource.Id)
	}

	return resource, nil
}

// UpdateResource replaces the mutable fields of an existing resource. A new
// attachment replaces the old blob and triggers re-extraction; a changed
// title re-derives letter tags.
func (p *Pipeline) UpdateResource(ctx context.Context, id core.ID, req AddResourceRequest) (*core.Resource, error) {
	resource, err := p.resourceRepository.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}

	oldFileID := resource.FileId

	resource.Title = req.Title
	resource.Description = req.Description
	resource.Tags = unionLetterTags(req.Title, req.Tags)
	resource.AgeRange = req.AgeRange
	resource.Type = req.Type

	if err := core.ValidateResource(resource); err != nil {
		return nil, err
	}

	if req.FileMime != "" && len(req.FileData) == 0 {
		return nil, ErrFileDataRequired
	}

	newFile := false
	if len(req.FileData) > 0 {
		fileID, err := p.blobRepository.PutBlob(ctx, req.FileData)
		if err != nil {
			return nil, err
		}
		newFile = fileID != oldFileID
		resource.FileId = fileID
		resource.FileMime = req.FileMime
		if newFile {
			resource.ExtractedText = ""
		}
	}

	updated, err := p.resourceRepository.UpdateResources(ctx, resource)
	if err != nil {
		return nil, err
	}
	resource = updated[0]

	if newFile && oldFileID != 0 {
		if err := p.blobRepository.DeleteBlob(ctx, oldFileID); err != nil {
			p.logger.Warn("failed to delete replaced blob", "fileId", oldFileID, "err", err)
		}
	}

	if newFile {
		p.submitExtraction(resource.Id)
	}

	return resource, nil
}

// DeleteResource removes a resource and its attachment. Blob cleanup
// failures are logged; the resource deletion itself is what matters.
func (p *Pipeline) DeleteResource(ctx context.Context, id core.ID) error {
	resource, err := p.resourceRepository.GetResource(ctx, id)
	if err != nil {
		return err
	}

	if err := p.resourceRepository.DeleteResources(ctx, id); err != nil {
		return err
	}

	if resource.HasFile() {
		if err := p.blobRepository.DeleteBlob(ctx, resource.FileId); err != nil {
			p.logger.Warn("failed to delete blob for removed resource", "fileId", resource.FileId, "err", err)
		}
	}

	return nil
}

// ReextractAll synchronously re-runs text extraction for up to limit recent
// resources that carry a file. Each resource is retried with backoff; a
// resource that still fails is skipped and counted, not fatal. Returns how
// many resources were re-extracted.
func (p *Pipeline) ReextractAll(ctx context.Context, limit int) (int, error) {
	resources, err := p.resourceRepository.GetRecentResources(ctx, limit)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, resource := range resources {
		if !resource.HasFile() {
			continue
		}

		err := RetryWithBackoff(ctx, func() error {
			return p.extractAndStore(ctx, resource.Id)
		}, p.maxRetries, p.retryDelay)
		if err != nil {
			if ctx.Err() != nil {
				return updated, ctx.Err()
			}
			p.logger.Warn("re-extraction failed", "id", resource.Id, "err", err)
			continue
		}
		updated++
	}

	return updated, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.extractionPool != nil {
		p.extractionPool.Release()
	}
	if p.suggestionPool != nil {
		p.suggestionPool.Release()
	}
}

func (p *Pipeline) submitExtraction(id core.ID) {
	err := p.extractionPool.Submit(func() {
		ctx := context.Background()
		err := RetryWithBackoff(ctx, func() error {
			return p.extractAndStore(ctx, id)
		}, p.maxRetries, p.retryDelay)
		if err != nil {
			p.logger.Error("error extracting resource text", "id", id, "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error submitting extraction job", "id", id, "err", err)
	}
}

func (p *Pipeline) submitSuggestion(id core.ID) {
	err := p.suggestionPool.Submit(func() {
		ctx := context.Background()
		err := RetryWithBackoff(ctx, func() error {
			return p.suggestAndStore(ctx, id)
		}, p.maxRetries, p.retryDelay)
		if err != nil {
			p.logger.Error("error suggesting resource tags", "id", id, "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error submitting suggestion job", "id", id, "err", err)
	}
}

// extractAndStore re-reads the resource so concurrent edits are not clobbered
// with stale fields, extracts the attachment text, and stores it.
func (p *Pipeline) extractAndStore(ctx context.Context, id core.ID) error {
	resource, err := p.resourceRepository.GetResource(ctx, id)
	if err != nil {
		return err
	}
	if !resource.HasFile() {
		return nil
	}

	data, err := p.blobRepository.GetBlob(ctx, resource.FileId)
	if err != nil {
		return err
	}

	text, err := p.extractor.ExtractText(ctx, resource.FileMime, data)
	if err != nil {
		return err
	}

	resource.ExtractedText = text
	_, err = p.resourceRepository.UpdateResources(ctx, resource)
	return err
}

// suggestAndStore asks the model for extra tags and merges them in.
func (p *Pipeline) suggestAndStore(ctx context.Context, id core.ID) error {
	resource, err := p.resourceRepository.GetResource(ctx, id)
	if err != nil {
		return err
	}

	prompt := "Title: " + resource.Title + "\nDescription: " + resource.Description
	response, err := p.generator.GenerateText(ctx, tagSuggestionSystemPrompt, prompt)
	if err != nil {
		return err
	}

	suggested := parseSuggestedTags(response)
	if len(suggested) == 0 {
		return nil
	}

	merged := resource.Tags
	for _, tag := range suggested {
		if !slices.Contains(merged, tag) {
			merged = append(merged, tag)
		}
	}
	if len(merged) == len(resource.Tags) {
		return nil
	}

	resource.Tags = merged
	_, err = p.resourceRepository.UpdateResources(ctx, resource)
	return err
}

// parseSuggestedTags normalizes a comma-separated model response into at most
// maxSuggestedTags lowercase tags.
func parseSuggestedTags(response string) []string {
	var tags []string
	for _, part := range strings.Split(response, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.Trim(tag, ".\"'`")
		if tag == "" || strings.ContainsAny(tag, "\n:") {
			continue
		}
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
		if len(tags) == maxSuggestedTags {
			break
		}
	}
	return tags
}

// unionLetterTags appends the letter tags derived from title that are not
// already present in tags. Stored tags carrying the letter forms make
// single-sound lookups hit the tag-match signal as well as the corpus.
func unionLetterTags(title string, tags []string) []string {
	merged := slices.Clone(tags)
	for _, tag := range search.DeriveLetterTags(title) {
		if !slices.Contains(merged, tag) {
			merged = append(merged, tag)
		}
	}
	return merged
}
