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

// Package dependency models package dependencies and their version
// constraints: the operator ([Op]), the operator plus version ([Constraint]),
// and the named entry ([Dependency]) with its conflict flag and repository pin.
//
// # Token Form
//
// A dependency parses from and formats to a single token:
//
//	[!]<name>[<op><version>][@<pin>]
//
// for example "ruby>=3.0", "!sample-legacy" or "foo@testing".
//
// # Mapping Form
//
// In structured documents a [Dependencies] collection is written as a mapping
// from name to "<op> <version>", "*" (any version), "!" (conflict) or
// "!<op> <version>" (conflict with a version). The repository pin is not
// carried by the mapping form. Decoding also accepts a sequence of tokens.
//
//	{"ruby": ">= 3.0", "sample-legacy": "!"}
package dependency
