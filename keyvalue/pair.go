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
	"iter"
	"slices"
	"strings"
)

// Pair is a single key/value tuple. Keys need not be unique within [Pairs].
type Pair struct {
	Key   string
	Value string
}

// P is shorthand for constructing a [Pair].
func P(key, value string) Pair {
	return Pair{Key: key, Value: value}
}

// String returns the pair in "key=value" form.
func (p Pair) String() string {
	return p.Key + "=" + p.Value
}

// Pairs is an ordered list of key/value tuples.
// The relative order of pairs with the same key is significant.
type Pairs []Pair

// FromSeq collects key/value pairs from an iterator.
func FromSeq(seq iter.Seq2[string, string]) Pairs {
	var out Pairs
	for k, v := range seq {
		out = append(out, Pair{Key: k, Value: v})
	}

	return out
}

// All returns an iterator over the pairs in order.
func (ps Pairs) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range ps {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Add appends one pair.
func (ps *Pairs) Add(key, value string) {
	*ps = append(*ps, Pair{Key: key, Value: value})
}

// AddFields splits value on whitespace and appends one pair per word.
// Nothing is appended for a blank value.
func (ps *Pairs) AddFields(key, value string) {
	for _, word := range strings.Fields(value) {
		*ps = append(*ps, Pair{Key: key, Value: word})
	}
}

// Get returns the value of the first pair with the given key.
func (ps Pairs) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}

	return "", false
}

// GetAll returns the values of every pair with the given key, in order.
func (ps Pairs) GetAll(key string) []string {
	var out []string
	for _, p := range ps {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}

	return out
}

// Sorted returns a copy sorted by key. The sort is stable, so pairs sharing
// a key keep their relative order and become adjacent.
func (ps Pairs) Sorted() Pairs {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Pair) int {
		return strings.Compare(a.Key, b.Key)
	})

	return out
}

// Stream is a peekable cursor over [Pairs].
// A Stream is not safe for concurrent use.
type Stream struct {
	pairs Pairs
	pos   int
}

// NewStream returns a stream positioned at the first pair.
func NewStream(pairs Pairs) *Stream {
	return &Stream{pairs: pairs}
}

// Peek returns the next pair without consuming it.
func (s *Stream) Peek() (Pair, bool) {
	if s.pos >= len(s.pairs) {
		return Pair{}, false
	}

	return s.pairs[s.pos], true
}

// Next consumes and returns the next pair.
func (s *Stream) Next() (Pair, bool) {
	p, ok := s.Peek()
	if ok {
		s.pos++
	}

	return p, ok
}

// Remaining reports how many pairs have not been consumed yet.
func (s *Stream) Remaining() int {
	return len(s.pairs) - s.pos
}

// NextGroup consumes the next pair together with every immediately following
// pair that has the same key. Only adjacency counts: a later pair with the
// same key, separated by a different key, starts a new group.
func (s *Stream) NextGroup() (key string, values []string, ok bool) {
	first, ok := s.Next()
	if !ok {
		return "", nil, false
	}

	values = []string{first.Value}
	for {
		next, more := s.Peek()
		if !more || next.Key != first.Key {
			break
		}
		s.pos++
		values = append(values, next.Value)
	}

	return first.Key, values, true
}
