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


package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/yamlmend/core"
	"github.com/poiesic/yamlmend/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// newRecordRepository is an internal constructor that returns the concrete type.
func newRecordRepository(backend *Backend) *RecordRepository {
	return &RecordRepository{backend: backend}
}

// NewRecordRepository creates a new record repository on backend.
//
// Returns storage.RecordRepository interface to enforce abstraction.
func NewRecordRepository(backend *Backend) storage.RecordRepository {
	return newRecordRepository(backend)
}

// Close is a no-op; the backend is owned and closed by the caller.
func (r *RecordRepository) Close() error {
	return nil
}

// SaveRecord inserts or replaces a record.
func (r *RecordRepository) SaveRecord(ctx context.Context, record *core.FormatRecord) (*core.FormatRecord, error) {
	if record.Id == 0 {
		record.Id = core.IDFromContent(record.Input)
	}
	if err := core.ValidateRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(record.Id)

		old, err := r.readRecord(tx, key)
		if err != nil {
			return err
		}

		// Stored timestamps have microsecond precision.
		now := time.Now().UTC().Truncate(time.Microsecond)
		if old != nil {
			record.CreatedAt = old.CreatedAt
			if err := tx.Delete(makeUpdatedKey(old.UpdatedAt, old.Id)); err != nil {
				return err
			}
		} else if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		} else {
			record.CreatedAt = record.CreatedAt.UTC().Truncate(time.Microsecond)
		}
		record.UpdatedAt = now

		if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
			return err
		}
		if err := tx.Set(makeUpdatedKey(record.UpdatedAt, record.Id), storage.MarshalID(record.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetRecord retrieves a single record by ID.
func (r *RecordRepository) GetRecord(ctx context.Context, id core.ID) (*core.FormatRecord, error) {
	var result *core.FormatRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRecord(tx, makeRecordKey(id))
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

// ListRecords returns up to limit records, most recently updated first.
func (r *RecordRepository) ListRecords(ctx context.Context, limit int) ([]*core.FormatRecord, error) {
	var results []*core.FormatRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(recordUpdatedPrefix + ":")
		for iter.Seek(updatedIndexEnd()); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}

			var id core.ID
			if err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record == nil {
				// Stale index entry
				continue
			}
			results = append(results, record)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteRecord removes a record and its index entry.
func (r *RecordRepository) DeleteRecord(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(id)
		record, err := r.readRecord(tx, key)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeUpdatedKey(record.UpdatedAt, record.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readRecord reads a record within a transaction.
// Returns nil, nil if the key does not exist.
func (r *RecordRepository) readRecord(tx *badger.Txn, key []byte) (*core.FormatRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.FormatRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalRecord(val)
		return unmarshalErr
	})
	return record, err
}
