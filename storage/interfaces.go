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


package storage

import (
	"context"

	"github.com/poiesic/yamlmend/core"
)

// RecordRepository provides operations for managing format records.
type RecordRepository interface {
	// SaveRecord inserts or replaces a record.
	// A zero ID is derived from the record input with core.IDFromContent.
	// CreatedAt is kept from an existing record with the same ID, or set to
	// now for new records. UpdatedAt is always set to now.
	// Returns the stored record.
	SaveRecord(ctx context.Context, record *core.FormatRecord) (*core.FormatRecord, error)

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.FormatRecord, error)

	// ListRecords returns up to limit records, most recently updated first.
	// A limit <= 0 returns every record.
	ListRecords(ctx context.Context, limit int) ([]*core.FormatRecord, error)

	// DeleteRecord removes a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteRecord(ctx context.Context, id core.ID) error

	// Close releases resources held by the repository.
	Close() error
}
