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
	"reflect"
	"strings"
)

// Static errors for decode and encode operations.
var (
	ErrOutMustBePointer      = errors.New("out must be a pointer to struct")
	ErrOutPointerNil         = errors.New("out pointer is nil")
	ErrInMustBeStruct        = errors.New("value must be a struct or a pointer to struct")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrInvalidBooleanValue   = errors.New("invalid boolean value")
	ErrDuplicateScalar       = errors.New("repeated key for a single-valued field")
	ErrSliceExceedsMaxLength = errors.New("slice exceeds max length")
	ErrInvalidTag            = errors.New("invalid struct tag")
)

// MissingFieldError is returned when a required field has no corresponding
// key in the input.
//
// Use [errors.As] to check for MissingFieldError:
//
//	var missing *MissingFieldError
//	if errors.As(err, &missing) {
//	    fmt.Println("missing:", missing.Field)
//	}
type MissingFieldError struct {
	Field string // Input key of the missing field
}

// Error returns a formatted error message.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// FieldError reports a value that could not be coerced into its field.
// The cause is kept in Err and exposed through Unwrap, so
// errors.Is and errors.As see through it.
type FieldError struct {
	Field string       // Input key of the field
	Value string       // Raw value(s) that failed, space separated for sequences
	Type  reflect.Type // Declared Go type of the field
	Err   error        // Underlying error
}

// Error returns a formatted error message with a contextual hint when one applies.
func (e *FieldError) Error() string {
	typeName := "unknown"
	if e.Type != nil {
		typeName = e.Type.String()
	}
	base := fmt.Sprintf("invalid field %q: cannot decode %q as %s: %v",
		e.Field, e.Value, typeName, e.Err)

	if hint := e.hint(); hint != "" {
		base += " (hint: " + hint + ")"
	}

	return base
}

// hint suggests a fix for the common producer mistakes.
func (e *FieldError) hint() string {
	if e.Type == nil {
		return ""
	}
	if errors.Is(e.Err, ErrDuplicateScalar) {
		return "declare the field as a slice to accept repeated keys"
	}

	t := e.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if isIntType(t) && strings.Contains(e.Value, ".") {
		return "use a float type for decimal values"
	}
	if t.Kind() == reflect.Bool {
		return "accepted values: true/false, yes/no, 1/0, on/off"
	}

	return ""
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// isIntType reports whether t is any signed or unsigned integer type.
func isIntType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
