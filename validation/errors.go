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

package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrValidation is the sentinel every validation failure unwraps to.
// Decode failures never match it.
var ErrValidation = errors.New("validation")

var (
	// ErrCannotValidateNilValue is returned when Validate receives nil or a nil pointer.
	ErrCannotValidateNilValue = errors.New("cannot validate nil value")

	// ErrInvalidType is returned when Validate receives something other than a struct.
	ErrInvalidType = errors.New("invalid type")

	// ErrUnknownSchema is returned by ValidateJSON for a schema name that is not embedded.
	ErrUnknownSchema = errors.New("unknown schema")
)

// FieldError describes one violated rule.
type FieldError struct {
	// Path locates the value, e.g. "depends.1.name" or "secfixes.1.2-r0".
	Path string `json:"path"`

	// Code identifies the rule: "tag.<name>" for struct tags,
	// "schema.<keyword>" for JSON Schema keywords.
	Code string `json:"code"`

	// Value is the offending value as text, if known.
	Value string `json:"value,omitempty"`

	Message string `json:"message"`
}

// Error returns "path: message", or just the message when there is no path.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns [ErrValidation].
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// Error collects the [FieldError]s of one validation run.
//
//	var verr *validation.Error
//	if errors.As(err, &verr) {
//	    for _, f := range verr.Fields {
//	        fmt.Println(f.Path, f.Message)
//	    }
//	}
//
//nolint:recvcheck // value receivers for the error interface, pointer receivers to mutate
type Error struct {
	Fields []FieldError `json:"errors"`

	// Truncated is set when the limit from WithMaxErrors was reached.
	Truncated bool `json:"truncated,omitempty"`
}

// Error joins the field errors with "; ".
func (v Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return ""
	case 1:
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}

	suffix := ""
	if v.Truncated {
		suffix = " (truncated)"
	}

	return fmt.Sprintf("validation failed: %s%s", strings.Join(msgs, "; "), suffix)
}

// Unwrap returns [ErrValidation].
func (v Error) Unwrap() error {
	return ErrValidation
}

// Add appends a field error.
func (v *Error) Add(path, code, value, message string) {
	v.Fields = append(v.Fields, FieldError{
		Path:    path,
		Code:    code,
		Value:   value,
		Message: message,
	})
}

// HasErrors reports whether any field error was recorded.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// HasCode reports whether any field error has the given code.
func (v Error) HasCode(code string) bool {
	return slices.ContainsFunc(v.Fields, func(f FieldError) bool {
		return f.Code == code
	})
}

// Has reports whether the value at path failed any rule.
func (v Error) Has(path string) bool {
	return v.GetField(path) != nil
}

// GetField returns the first error for path, or nil.
func (v Error) GetField(path string) *FieldError {
	for i := range v.Fields {
		if v.Fields[i].Path == path {
			return &v.Fields[i]
		}
	}

	return nil
}

// Sort orders the errors by path, then code.
func (v *Error) Sort() {
	slices.SortStableFunc(v.Fields, func(a, b FieldError) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}

		return strings.Compare(a.Code, b.Code)
	})
}

// full reports whether limit errors have been collected. A limit of zero means
// no limit. It marks v truncated when full.
func (v *Error) full(limit int) bool {
	if limit > 0 && len(v.Fields) >= limit {
		v.Truncated = true
		return true
	}

	return false
}
