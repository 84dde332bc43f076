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

//go:build !integration

package keyvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs_Sorted(t *testing.T) {
	t.Parallel()

	in := Pairs{P("b", "1"), P("a", "1"), P("b", "2"), P("a", "2"), P("c", "1")}
	out := in.Sorted()

	assert.Equal(t, Pairs{P("a", "1"), P("a", "2"), P("b", "1"), P("b", "2"), P("c", "1")}, out)
	assert.Equal(t, P("b", "1"), in[0], "input must not be modified")
}

func TestPairs_Accessors(t *testing.T) {
	t.Parallel()

	var ps Pairs
	ps.Add("name", "foo")
	ps.AddFields("arch", "  x86_64\taarch64 ")
	ps.AddFields("empty", "   ")

	require.Len(t, ps, 3)

	v, ok := ps.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)

	_, ok = ps.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"x86_64", "aarch64"}, ps.GetAll("arch"))
	assert.Equal(t, "name=foo", ps[0].String())
}

func TestPairs_AllAndFromSeq(t *testing.T) {
	t.Parallel()

	in := Pairs{P("a", "1"), P("b", "2"), P("a", "3")}
	assert.Equal(t, in, FromSeq(in.All()))

	var keys []string
	for k := range in.All() {
		keys = append(keys, k)
		if len(keys) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestStream_NextGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pairs  Pairs
		groups [][]string
		keys   []string
	}{
		{
			name:   "empty",
			pairs:  nil,
			groups: nil,
			keys:   nil,
		},
		{
			name:   "adjacent keys are grouped in order",
			pairs:  Pairs{P("k", "v1"), P("k", "v2"), P("k", "v3")},
			groups: [][]string{{"v1", "v2", "v3"}},
			keys:   []string{"k"},
		},
		{
			name:   "single pair",
			pairs:  Pairs{P("k", "v1")},
			groups: [][]string{{"v1"}},
			keys:   []string{"k"},
		},
		{
			name:   "interleaved keys are not merged",
			pairs:  Pairs{P("a", "1"), P("b", "2"), P("a", "3")},
			groups: [][]string{{"1"}, {"2"}, {"3"}},
			keys:   []string{"a", "b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStream(tt.pairs)
			var keys []string
			var groups [][]string
			for {
				key, values, ok := s.NextGroup()
				if !ok {
					break
				}
				keys = append(keys, key)
				groups = append(groups, values)
			}

			assert.Equal(t, tt.keys, keys)
			assert.Equal(t, tt.groups, groups)
			assert.Zero(t, s.Remaining())
		})
	}
}

func TestStream_PeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := NewStream(Pairs{P("a", "1"), P("b", "2")})

	p, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, P("a", "1"), p)
	assert.Equal(t, 2, s.Remaining())

	p, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, P("a", "1"), p)

	p, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, P("b", "2"), p)

	_, ok = s.Peek()
	assert.False(t, ok)
	_, ok = s.Next()
	assert.False(t, ok)
}
