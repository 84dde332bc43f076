// Copyright 2025 The Rivaas Authors
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

package kvlist

import (
	"errors"
	"fmt"
)

// Static errors for codec operations.
var (
	// ErrSequenceUnsupported is returned when a sequence (or a lone string)
	// is decoded for an entry type that has no token form.
	ErrSequenceUnsupported = errors.New("entry type cannot be decoded from a sequence")

	// ErrUnexpectedShape is returned when the input is neither a mapping,
	// a sequence nor a string.
	ErrUnexpectedShape = errors.New("expected a mapping or a sequence")
)

// EntryError reports an entry that could not be converted to its domain type.
// Key is set for mapping entries, Index for sequence elements.
type EntryError struct {
	Key   string
	Index int
	Err   error
}

// Error returns a formatted error message.
func (e *EntryError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("entry %q: %v", e.Key, e.Err)
	}

	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *EntryError) Unwrap() error {
	return e.Err
}

func shapeError(got string) error {
	return fmt.Errorf("%w, got %s", ErrUnexpectedShape, got)
}
