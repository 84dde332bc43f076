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

// Package kvlist converts collections of entries between two external shapes:
// a mapping of unique keys to values, and a sequence of self-contained tokens.
//
// An entry type describes itself with a [Codec]: how it projects to a
// (key, value) pair and, optionally, how it parses from a single token.
// The codec then decodes either shape from JSON, YAML, TOML and MessagePack
// and always encodes the mapping shape.
//
// # Quick Start
//
//	var depCodec = kvlist.Codec[Dependency, string]{
//	    KeyValue:     func(d Dependency) (string, string) { return d.Name, d.Value() },
//	    FromKeyValue: DependencyFromKeyValue,
//	    ParseToken:   ParseDependency,
//	}
//
//	func (ds *Dependencies) UnmarshalJSON(data []byte) error {
//	    items, err := depCodec.UnmarshalJSON(data)
//	    if err != nil {
//	        return err
//	    }
//	    *ds = items
//	    return nil
//	}
//
// # Lone Strings
//
// Some producers cannot tell a scalar from a one-element list. A bare string
// where a collection is expected is therefore decoded as a one-element
// sequence. Entry types without a token form reject it with
// [ErrSequenceUnsupported].
//
// # Ordering
//
// JSON, YAML and MessagePack keep the input order of mapping entries. TOML
// tables are unordered once decoded, so their entries are decoded in key order.
package kvlist
