package storage

import (
	"context"

	"github.com/poiesic/soundshelf/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ResourceRepository provides operations for managing teaching resources.
type ResourceRepository interface {
	Repository
	// AddResources adds one or more resources to storage.
	// Generates new IDs from the sequence and sets InsertedAt/UpdatedAt.
	// Returns the resources with generated IDs and timestamps populated.
	AddResources(ctx context.Context, resources ...*core.Resource) ([]*core.Resource, error)

	// UpdateResources updates existing resources.
	// Updates the UpdatedAt timestamp automatically; InsertedAt is immutable.
	// Returns ErrNotFound if any resource doesn't exist.
	UpdateResources(ctx context.Context, resources ...*core.Resource) ([]*core.Resource, error)

	// DeleteResources removes resources by their IDs, along with their
	// recency index entries. Returns ErrNotFound if any resource doesn't
	// exist.
	DeleteResources(ctx context.Context, ids ...core.ID) error

	// GetResource retrieves a single resource by ID.
	// Returns ErrNotFound if the resource doesn't exist.
	GetResource(ctx context.Context, id core.ID) (*core.Resource, error)

	// GetResources retrieves multiple resources by their IDs.
	// Returns only the resources that exist (no error for missing ones).
	GetResources(ctx context.Context, ids ...core.ID) ([]*core.Resource, error)

	// GetRecentResources retrieves up to limit resources ordered by
	// insertion time descending, most recent first.
	GetRecentResources(ctx context.Context, limit int) ([]*core.Resource, error)
}

// BlobRepository provides content-addressed storage for attached file bytes.
type BlobRepository interface {
	// PutBlob stores raw bytes and returns their content-derived ID.
	// Storing the same bytes twice yields the same ID.
	PutBlob(ctx context.Context, data []byte) (core.ID, error)

	// GetBlob retrieves blob bytes by ID.
	// Returns ErrNotFound if no blob exists for the ID.
	GetBlob(ctx context.Context, id core.ID) ([]byte, error)

	// DeleteBlob removes a blob by ID.
	// Returns ErrNotFound if no blob exists for the ID.
	DeleteBlob(ctx context.Context, id core.ID) error

	// Close releases resources held by the repository.
	Close() error
}
