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

package keyvalue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAllowed is returned by [EnumConverter] for a value outside the allowed set.
var ErrNotAllowed = errors.New("value not allowed")

// EnumConverter creates a converter for single-token tags with a closed set
// of values. Matching is exact: package metadata is case-sensitive.
//
// Example:
//
//	type FileType string
//
//	dec := keyvalue.MustNew(
//	    keyvalue.WithConverter(keyvalue.EnumConverter[FileType]("r", "d", "l")),
//	)
func EnumConverter[T ~string](allowed ...T) func(string) (T, error) {
	set := make(map[string]T, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, val := range allowed {
		set[string(val)] = val
		names = append(names, string(val))
	}

	return func(s string) (T, error) {
		if val, ok := set[s]; ok {
			return val, nil
		}

		return T(""), fmt.Errorf("%w: %q (must be one of: %s)",
			ErrNotAllowed, s, strings.Join(names, ", "))
	}
}

// BoolConverter creates a boolean converter with custom truthy and falsy
// values, compared case-insensitively.
func BoolConverter(truthy, falsy []string) func(string) (bool, error) {
	truthySet := make(map[string]bool, len(truthy))
	for _, val := range truthy {
		truthySet[strings.ToLower(val)] = true
	}
	falsySet := make(map[string]bool, len(falsy))
	for _, val := range falsy {
		falsySet[strings.ToLower(val)] = true
	}

	return func(s string) (bool, error) {
		lower := strings.ToLower(strings.TrimSpace(s))
		if truthySet[lower] {
			return true, nil
		}
		if falsySet[lower] {
			return false, nil
		}

		accepted := make([]string, 0, len(truthy)+len(falsy))
		accepted = append(accepted, truthy...)
		accepted = append(accepted, falsy...)

		return false, fmt.Errorf("%w: %q (accepted values: %s)",
			ErrInvalidBooleanValue, s, strings.Join(accepted, ", "))
	}
}
