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
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"alpkit.dev/kvlist"
)

// Codec converts dependency collections between the mapping and token forms.
var Codec = kvlist.Codec[Dependency, string]{
	KeyValue:     Dependency.KeyValue,
	FromKeyValue: FromKeyValue,
	ParseToken:   Parse,
}

// Dependencies is an ordered collection of dependencies.
//
// In JSON, YAML, TOML and MessagePack documents it encodes as a mapping and
// decodes from either a mapping or a sequence of tokens.
type Dependencies []Dependency

// ParseDependencies parses each token with [Parse].
func ParseDependencies(tokens ...string) (Dependencies, error) {
	return Codec.FromTokens(tokens)
}

// Add appends d.
func (ds *Dependencies) Add(d Dependency) {
	*ds = append(*ds, d)
}

// Remove deletes every dependency equal to d and reports whether any was found.
func (ds *Dependencies) Remove(d Dependency) bool {
	n := len(*ds)
	*ds = slices.DeleteFunc(*ds, d.Equal)

	return len(*ds) != n
}

// Names returns the dependency names in order.
func (ds Dependencies) Names() []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}

	return names
}

// Find returns the first dependency named name.
func (ds Dependencies) Find(name string) (Dependency, bool) {
	i := slices.IndexFunc(ds, func(d Dependency) bool { return d.Name == name })
	if i < 0 {
		return Dependency{}, false
	}

	return ds[i], true
}

// Duplicates returns the names that occur more than once, ignoring the
// conflict flag, in the order their second occurrence appears.
func (ds Dependencies) Duplicates() []string {
	seen := make(map[string]int, len(ds))
	var dups []string
	for _, d := range ds {
		seen[d.Name]++
		if seen[d.Name] == 2 {
			dups = append(dups, d.Name)
		}
	}

	return dups
}

// Strings returns the token form of each dependency.
func (ds Dependencies) Strings() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}

	return out
}

// MarshalJSON implements [json.Marshaler].
func (ds Dependencies) MarshalJSON() ([]byte, error) {
	return Codec.MarshalJSON(ds)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (ds *Dependencies) UnmarshalJSON(data []byte) error {
	return ds.set(Codec.UnmarshalJSON(data))
}

// MarshalYAML implements [yaml.Marshaler].
func (ds Dependencies) MarshalYAML() (any, error) {
	return Codec.MarshalYAML(ds)
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (ds *Dependencies) UnmarshalYAML(node *yaml.Node) error {
	return ds.set(Codec.UnmarshalYAML(node))
}

// MarshalTOML implements [toml.Marshaler].
func (ds Dependencies) MarshalTOML() ([]byte, error) {
	return Codec.MarshalTOML(ds)
}

// UnmarshalTOML implements [toml.Unmarshaler].
func (ds *Dependencies) UnmarshalTOML(data any) error {
	return ds.set(Codec.UnmarshalTOML(data))
}

// EncodeMsgpack implements [msgpack.CustomEncoder].
func (ds Dependencies) EncodeMsgpack(enc *msgpack.Encoder) error {
	return Codec.EncodeMsgpack(enc, ds)
}

// DecodeMsgpack implements [msgpack.CustomDecoder].
func (ds *Dependencies) DecodeMsgpack(dec *msgpack.Decoder) error {
	return ds.set(Codec.DecodeMsgpack(dec))
}

func (ds *Dependencies) set(items []Dependency, err error) error {
	if err != nil {
		return err
	}
	*ds = items

	return nil
}

var (
	_ yaml.Marshaler        = Dependencies(nil)
	_ toml.Marshaler        = Dependencies(nil)
	_ msgpack.CustomEncoder = Dependencies(nil)
	_ yaml.Unmarshaler      = (*Dependencies)(nil)
	_ toml.Unmarshaler      = (*Dependencies)(nil)
	_ msgpack.CustomDecoder = (*Dependencies)(nil)
)
