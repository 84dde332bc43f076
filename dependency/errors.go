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

package dependency

import (
	"errors"
	"fmt"
)

// ErrConstraintParse is the sentinel matched by every [ConstraintParseError].
var ErrConstraintParse = errors.New("invalid version constraint")

// ConstraintParseError reports an operator or constraint that could not be
// parsed. Text is the offending input.
type ConstraintParseError struct {
	Text string
}

// Error returns a formatted error message.
func (e *ConstraintParseError) Error() string {
	return fmt.Sprintf("invalid version constraint: '%s'", e.Text)
}

// Is reports whether target is [ErrConstraintParse].
func (e *ConstraintParseError) Is(target error) bool {
	return target == ErrConstraintParse
}

func parseError(text string) error {
	return &ConstraintParseError{Text: text}
}
