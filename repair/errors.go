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


package repair

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecoverable indicates the oracle rejected the text both before and
	// after repair.
	ErrUnrecoverable = errors.New("yaml could not be repaired")

	// ErrUnknownOracle indicates NewOracle was given an unsupported name.
	ErrUnknownOracle = errors.New("unknown oracle")
)

// Error is returned when repaired text still fails validation.
type Error struct {
	// Err is the parse failure of the repaired text.
	Err error
	// Original is the parse failure of the text before repair. It is not part
	// of the message.
	Original error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to fix YAML: %v", e.Err)
}

// Unwrap returns the post-repair parse failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUnrecoverable.
func (e *Error) Is(target error) bool {
	return target == ErrUnrecoverable
}
