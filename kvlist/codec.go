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

package kvlist

// Codec describes how entries of type T map to (key, value) pairs with
// values of type V, and optionally how they parse from a single token.
//
// A Codec is a plain value and safe for concurrent use.
type Codec[T, V any] struct {
	// KeyValue projects an entry to its mapping key and value.
	KeyValue func(T) (string, V)

	// FromKeyValue rebuilds an entry from a mapping key and value.
	FromKeyValue func(key string, value V) (T, error)

	// ParseToken parses an entry from a sequence element.
	// A nil ParseToken makes the sequence shape unsupported.
	ParseToken func(token string) (T, error)
}

// Entry is a single mapping entry.
type Entry[V any] struct {
	Key   string
	Value V
}

// Entries projects items to mapping entries. Keys are unique: a repeated
// key keeps its first position and takes the last value.
func (c Codec[T, V]) Entries(items []T) []Entry[V] {
	out := make([]Entry[V], 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		k, v := c.KeyValue(item)
		if i, ok := index[k]; ok {
			out[i].Value = v
			continue
		}
		index[k] = len(out)
		out = append(out, Entry[V]{Key: k, Value: v})
	}

	return out
}

// FromEntries rebuilds entries from the mapping shape, in the given order.
func (c Codec[T, V]) FromEntries(entries []Entry[V]) ([]T, error) {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		item, err := c.FromKeyValue(e.Key, e.Value)
		if err != nil {
			return nil, &EntryError{Key: e.Key, Err: err}
		}
		out = append(out, item)
	}

	return out, nil
}

// FromTokens rebuilds entries from the sequence shape, in the given order.
func (c Codec[T, V]) FromTokens(tokens []string) ([]T, error) {
	if c.ParseToken == nil {
		return nil, ErrSequenceUnsupported
	}

	out := make([]T, 0, len(tokens))
	for i, tok := range tokens {
		item, err := c.ParseToken(tok)
		if err != nil {
			return nil, &EntryError{Index: i, Err: err}
		}
		out = append(out, item)
	}

	return out, nil
}

// decodeScalar handles a lone string where a collection was expected.
// It is read as a one-element sequence.
func (c Codec[T, V]) decodeScalar(s string) ([]T, error) {
	return c.FromTokens([]string{s})
}
