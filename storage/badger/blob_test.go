package badger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/poiesic/soundshelf/storage"
)

func TestBlobBasics(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()
	data := []byte("%PDF-1.4 fake pdf payload")

	id, err := blobRepo.PutBlob(ctx, data)
	if err != nil {
		t.Fatalf("Failed to put blob: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected non-zero blob ID")
	}

	retrieved, err := blobRepo.GetBlob(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get blob: %v", err)
	}
	if !bytes.Equal(retrieved, data) {
		t.Fatal("Retrieved blob differs from stored bytes")
	}
}

func TestBlobContentAddressing(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first, err := blobRepo.PutBlob(ctx, []byte("same bytes"))
	if err != nil {
		t.Fatalf("Failed to put blob: %v", err)
	}
	second, err := blobRepo.PutBlob(ctx, []byte("same bytes"))
	if err != nil {
		t.Fatalf("Failed to put blob: %v", err)
	}
	if first != second {
		t.Fatal("Identical bytes must map to the same ID")
	}

	other, err := blobRepo.PutBlob(ctx, []byte("different bytes"))
	if err != nil {
		t.Fatalf("Failed to put blob: %v", err)
	}
	if other == first {
		t.Fatal("Different bytes must map to different IDs")
	}
}

func TestBlobDelete(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	ctx := context.Background()

	id, err := blobRepo.PutBlob(ctx, []byte("ephemeral"))
	if err != nil {
		t.Fatalf("Failed to put blob: %v", err)
	}

	if err := blobRepo.DeleteBlob(ctx, id); err != nil {
		t.Fatalf("Failed to delete blob: %v", err)
	}

	if _, err := blobRepo.GetBlob(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := blobRepo.DeleteBlob(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestBlobEmpty(t *testing.T) {
	resourceRepo, blobRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { blobRepo.Close(); resourceRepo.Close(); backend.Close() }()

	if _, err := blobRepo.PutBlob(context.Background(), nil); !errors.Is(err, storage.ErrEmptyBlob) {
		t.Fatalf("Expected ErrEmptyBlob, got %v", err)
	}
}
