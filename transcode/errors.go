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

package transcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for a format name that is not one of
	// the [Format] constants.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrOutMustBePointer is returned when a decode target is not a non-nil pointer.
	ErrOutMustBePointer = errors.New("output must be a non-nil pointer")
)

// Error reports a failed decode, encode or validation of a document.
type Error struct {
	Format Format
	Op     string // "decode", "encode" or "validate"
	Err    error
}

// Error returns "<format> <op>: <cause>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// UnknownFieldError is returned in strict mode when a document has keys
// that no field of the target decodes.
type UnknownFieldError struct {
	Fields []string
}

// Error lists the unknown keys.
func (e *UnknownFieldError) Error() string {
	return "unknown fields: " + strings.Join(e.Fields, ", ")
}

// asUnknownField turns a decoder's unknown field error, prefix followed by
// the quoted key, into an [*UnknownFieldError]. Other errors pass through.
func asUnknownField(err error, prefix string) error {
	if err == nil {
		return nil
	}

	quoted, ok := strings.CutPrefix(err.Error(), prefix)
	if !ok {
		return err
	}
	name, uerr := strconv.Unquote(quoted)
	if uerr != nil {
		name = quoted
	}

	return &UnknownFieldError{Fields: []string{name}}
}
