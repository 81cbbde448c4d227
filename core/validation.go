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


package core

import (
	"fmt"
	"time"
)

// ValidateRecord validates a FormatRecord according to domain rules.
//
// Validation rules:
//   - Input must not be empty
//   - Status must be valid (Succeeded or Failed)
//   - A succeeded record must carry output
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - ID (0 is filled in from the input content by the store)
//   - Source and Model (optional labels)
func ValidateRecord(record *FormatRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Input == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyInput)
	}

	if err := ValidateStatus(record.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	if record.Status == StatusSucceeded && record.Output == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingOutput)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateStatus validates that a Status has a valid value.
func ValidateStatus(status Status) error {
	if status != StatusSucceeded && status != StatusFailed {
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
