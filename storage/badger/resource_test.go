package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/storage"
)

func TestResourceBasics(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		blobRepo.Close()
		resourceRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	resource := &core.Resource{
		Title:       "Articulation Drill Cards /s/",
		Description: "Printable drill cards for initial s practice",
		Tags:        []string{"articulation", "printable"},
	}

	added, err := resourceRepo.AddResources(ctx, resource)
	if err != nil {
		t.Fatalf("Failed to add resource: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 resource, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() || added[0].UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be populated")
	}

	retrieved, err := resourceRepo.GetResource(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get resource: %v", err)
	}

	if retrieved.Title != "Articulation Drill Cards /s/" {
		t.Fatalf("Unexpected title '%s'", retrieved.Title)
	}

	if len(retrieved.Tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(retrieved.Tags))
	}
}

func TestResourceUpdate(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := resourceRepo.AddResources(ctx, &core.Resource{
		Title:       "Drill Cards",
		Description: "First version",
	})
	if err != nil {
		t.Fatalf("Failed to add resource: %v", err)
	}
	original := added[0]
	insertedAt := original.InsertedAt

	original.Description = "Second version"
	updated, err := resourceRepo.UpdateResources(ctx, original)
	if err != nil {
		t.Fatalf("Failed to update resource: %v", err)
	}

	if !updated[0].InsertedAt.Equal(insertedAt) {
		t.Fatal("InsertedAt must not change on update")
	}
	if updated[0].UpdatedAt.Before(insertedAt) {
		t.Fatal("UpdatedAt must advance on update")
	}

	retrieved, err := resourceRepo.GetResource(ctx, original.Id)
	if err != nil {
		t.Fatalf("Failed to get resource: %v", err)
	}
	if retrieved.Description != "Second version" {
		t.Fatalf("Unexpected description '%s'", retrieved.Description)
	}
}

func TestResourceUpdateMissing(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	_, err = resourceRepo.UpdateResources(context.Background(), &core.Resource{
		Id:          core.ID(9999),
		Title:       "Ghost",
		Description: "Does not exist",
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestResourceDelete(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := resourceRepo.AddResources(ctx, &core.Resource{
		Title:       "Drill Cards",
		Description: "To be deleted",
	})
	if err != nil {
		t.Fatalf("Failed to add resource: %v", err)
	}

	if err := resourceRepo.DeleteResources(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete resource: %v", err)
	}

	if _, err := resourceRepo.GetResource(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleted resources must not surface via the recency index
	recent, err := resourceRepo.GetRecentResources(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to get recent resources: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("Expected no recent resources, got %d", len(recent))
	}

	if err := resourceRepo.DeleteResources(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestGetResources(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := resourceRepo.AddResources(ctx,
		&core.Resource{Title: "One", Description: "First"},
		&core.Resource{Title: "Two", Description: "Second"},
	)
	if err != nil {
		t.Fatalf("Failed to add resources: %v", err)
	}

	// Missing IDs are silently skipped
	results, err := resourceRepo.GetResources(ctx, added[0].Id, core.ID(9999), added[1].Id)
	if err != nil {
		t.Fatalf("Failed to get resources: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 resources, got %d", len(results))
	}
}

func TestGetRecentResources(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	titles := []string{"First", "Second", "Third", "Fourth", "Fifth"}
	for _, title := range titles {
		_, err := resourceRepo.AddResources(ctx, &core.Resource{
			Title:       title,
			Description: "resource " + title,
		})
		if err != nil {
			t.Fatalf("Failed to add resource %s: %v", title, err)
		}
	}

	results, err := resourceRepo.GetRecentResources(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to get recent resources: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 resources, got %d", len(results))
	}

	// Most recent first
	for i := 1; i < len(results); i++ {
		if results[i].InsertedAt.After(results[i-1].InsertedAt) {
			t.Fatal("Expected descending insertion order")
		}
	}
	if results[0].Title != "Fifth" {
		t.Fatalf("Expected most recent resource first, got '%s'", results[0].Title)
	}

	// Limit larger than stored count returns everything
	all, err := resourceRepo.GetRecentResources(ctx, 100)
	if err != nil {
		t.Fatalf("Failed to get recent resources: %v", err)
	}
	if len(all) != len(titles) {
		t.Fatalf("Expected %d resources, got %d", len(titles), len(all))
	}
}
