package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/soundshelf/core"
	"github.com/poiesic/soundshelf/storage"
)

// BlobRepository implements storage.BlobRepository for BadgerDB. Blobs are
// content-addressed: the key is derived from a hash of the bytes, so storing
// identical files twice is a no-op.
type BlobRepository struct {
	backend *Backend
}

var _ storage.BlobRepository = (*BlobRepository)(nil)

// NewBlobRepository creates a new BlobRepository.
func NewBlobRepository(backend *Backend) *BlobRepository {
	return &BlobRepository{backend: backend}
}

// Close releases resources. Blobs hold no sequence, so this is a no-op.
func (r *BlobRepository) Close() error {
	return nil
}

// PutBlob stores raw bytes under their content-derived ID.
func (r *BlobRepository) PutBlob(ctx context.Context, data []byte) (core.ID, error) {
	if len(data) == 0 {
		return 0, storage.ErrEmptyBlob
	}

	id := core.IDFromBytes(data)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeBlobKey(id), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetBlob retrieves blob bytes by ID.
func (r *BlobRepository) GetBlob(ctx context.Context, id core.ID) ([]byte, error) {
	var data []byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeBlobKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DeleteBlob removes a blob by ID.
func (r *BlobRepository) DeleteBlob(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeBlobKey(id)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
