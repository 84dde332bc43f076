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

// Package keyvalue decodes ordered, non-self-describing key/value pairs into
// tagged structs, and encodes such structs back into pairs.
//
// The input is a [Pairs] list. There is no container markup: a key that occurs
// several times in a row is a sequence, a key that occurs once is a scalar,
// and the declared Go type of the target field has the last word. A slice
// field that receives a single pair still yields a one-element slice.
//
// # Quick Start
//
//	type Package struct {
//	    Name    string   `kv:"pkgname"`
//	    Release uint32   `kv:"pkgrel"`
//	    Depends []string `kv:"depend,optional"`
//	    Origin  *string  `kv:"origin"`
//	}
//
//	pkg, err := keyvalue.Decode[Package](keyvalue.Pairs{
//	    keyvalue.P("pkgname", "foo"),
//	    keyvalue.P("pkgrel", "2"),
//	    keyvalue.P("depend", "bar"),
//	    keyvalue.P("depend", "baz"),
//	})
//
// # Struct Tags
//
// The kv tag names the input key, followed by comma-separated options:
//
//	`kv:"name"`               required
//	`kv:"name,optional"`      may be absent
//	`kv:"name,optional,alt"`  also accept key "alt"
//	`kv:"-"`                  never decoded or encoded
//
// Pointer fields are always optional. Untagged fields are ignored, and so
// are input keys that match no field.
//
// # Ordering
//
// Sequences are formed from adjacent pairs only. Producers that cannot
// guarantee adjacency use [FromPairs], which stably sorts by key first.
// Producers whose field order is already grouped use [FromOrderedPairs].
//
// # Value Coercion
//
// Each value is converted by, in order: a converter registered with
// [WithConverter] or [WithTypeConverter], the field type's
// encoding.TextUnmarshaler implementation, or the built-in rule for string,
// bool, integer and float kinds.
//
// # Errors
//
// A required field with no key yields [MissingFieldError]. A value that fails
// coercion yields [FieldError] naming the input key and wrapping the cause.
// The first error aborts the decode.
package keyvalue
