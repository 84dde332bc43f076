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
	"encoding"
	"reflect"
)

// fieldInfo stores cached information about a struct field.
type fieldInfo struct {
	index     []int        // Field index path (supports embedded structs)
	name      string       // Struct field name
	key       string       // Primary input key (e.g., "pkgname" from `kv:"pkgname"`)
	aliases   []string     // Additional input keys
	fieldType reflect.Type // Declared type, pointer not unwrapped
	isPtr     bool         // Whether field is a pointer type
	isSlice   bool         // Whether field receives a sequence of values
	optional  bool         // Whether a missing key is accepted
}

// structInfo holds cached parsing information for a struct type.
type structInfo struct {
	fields []fieldInfo
	byKey  map[string]int // input key or alias -> index into fields
}

// Type references for special type handling.
var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
)

// isScalarType reports whether t decodes from a single string even though
// its kind may be a slice (e.g. net.IP).
func isScalarType(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}
