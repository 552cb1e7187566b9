package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/storage"
)

// ResourceRepository implements storage.ResourceRepository for BadgerDB.
type ResourceRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ResourceRepository = (*ResourceRepository)(nil)

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(backend *Backend) (*ResourceRepository, error) {
	idSeq, err := backend.GetSequence(resourceIDSeq)
	if err != nil {
		return nil, err
	}

	return &ResourceRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ResourceRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ResourceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddResources adds one or more resources to storage.
func (r *ResourceRepository) AddResources(ctx context.Context, resources ...*core.Resource) ([]*core.Resource, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, resource := range resources {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			resource.Id = core.ID(nextID)

			resource.InsertedAt = time.Now().UTC()
			resource.UpdatedAt = resource.InsertedAt

			key := makeResourceKey(resource.Id)
			value := storage.MarshalResource(resource)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Recency index keyed on InsertedAt, which never changes
			dateKey := makeResourceDateKey(resource.InsertedAt, resource.Id)
			if err := tx.Set(dateKey, storage.MarshalID(resource.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return resources, err
}

// UpdateResources updates existing resources. InsertedAt is preserved from
// the stored record, so the recency index needs no maintenance here.
func (r *ResourceRepository) UpdateResources(ctx context.Context, resources ...*core.Resource) ([]*core.Resource, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, resource := range resources {
			key := makeResourceKey(resource.Id)

			old, err := r.readResource(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			resource.InsertedAt = old.InsertedAt
			resource.UpdatedAt = time.Now().UTC()

			value := storage.MarshalResource(resource)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return resources, err
}

// DeleteResources removes resources by their IDs.
func (r *ResourceRepository) DeleteResources(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResourceKey(id)

			resource, err := r.readResource(tx, key)
			if err != nil {
				return err
			}
			if resource == nil {
				return storage.ErrNotFound
			}

			dateKey := makeResourceDateKey(resource.InsertedAt, resource.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetResource retrieves a single resource by ID.
func (r *ResourceRepository) GetResource(ctx context.Context, id core.ID) (*core.Resource, error) {
	var result *core.Resource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResourceKey(id)
		var err error
		result, err = r.readResource(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetResources retrieves multiple resources by their IDs.
func (r *ResourceRepository) GetResources(ctx context.Context, ids ...core.ID) ([]*core.Resource, error) {
	var result []*core.Resource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeResourceKey(id)
			resource, err := r.readResource(tx, key)
			if err != nil {
				return err
			}
			if resource != nil {
				result = append(result, resource)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetRecentResources retrieves up to limit resources, most recent first.
func (r *ResourceRepository) GetRecentResources(ctx context.Context, limit int) ([]*core.Resource, error) {
	var results []*core.Resource
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent records first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the recency index
		startKey := makePartialResourceDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(resourceDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var resourceID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				resourceID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			resourceKey := makeResourceKey(resourceID)
			resource, err := r.readResource(tx, resourceKey)
			if err != nil {
				return err
			}
			if resource != nil {
				results = append(results, resource)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readResource reads a resource from the transaction.
// Returns (nil, nil) when the key does not exist.
func (r *ResourceRepository) readResource(tx *badger.Txn, key []byte) (*core.Resource, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var resource *core.Resource
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		resource, unmarshalErr = storage.UnmarshalResource(val)
		return unmarshalErr
	})
	return resource, err
}
