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

package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Dependency
	}{
		{
			input: "ruby>=3.0",
			want:  Dependency{Name: "ruby", Constraint: NewConstraint(Greater|Equal, "3.0")},
		},
		{
			input: "!sample-legacy",
			want:  Dependency{Name: "sample-legacy", Conflict: true},
		},
		{
			input: "foo@testing",
			want:  Dependency{Name: "foo", RepoPin: "testing"},
		},
		{
			input: "!foo~1.2@edge",
			want:  Dependency{Name: "foo", Constraint: NewConstraint(Fuzzy|Equal, "1.2"), Conflict: true, RepoPin: "edge"},
		},
		{
			input: "so:libc.musl-x86_64.so.1",
			want:  Dependency{Name: "so:libc.musl-x86_64.so.1"},
		},
		{
			input: "cmd:busybox=1.36.1-r2",
			want:  Dependency{Name: "cmd:busybox", Constraint: NewConstraint(Equal, "1.36.1-r2")},
		},
		{
			input: "py3-foo><0123abcd",
			want:  Dependency{Name: "py3-foo", Constraint: NewConstraint(Checksum, "0123abcd")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())

			again, err := Parse(got.String())
			require.NoError(t, err)
			assert.True(t, got.Equal(again))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"foo>=", "foo=", "foo<=>1.0", "foo= @pin"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(input)
			require.ErrorIs(t, err, ErrConstraintParse)
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ruby", MustParse("ruby>=3.0").Name)
	assert.Panics(t, func() { MustParse("ruby>=") })
}

func TestDependency_KeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
		dep   Dependency
	}{
		{name: "any version", key: "foo-doc", value: "*", dep: New("foo-doc", nil)},
		{name: "equal", key: "foo-doc", value: "= 1.2.3", dep: New("foo-doc", NewConstraint(Equal, "1.2.3"))},
		{name: "less or equal", key: "foo", value: "<= 1.2", dep: New("foo", NewConstraint(Less|Equal, "1.2"))},
		{name: "fuzzy", key: "foo", value: "~ 1.2", dep: New("foo", NewConstraint(Fuzzy|Equal, "1.2"))},
		{name: "conflict", key: "foo", value: "!", dep: NewConflict("foo")},
		{
			name: "conflict with constraint", key: "foo", value: "!> 1.2.3",
			dep: Dependency{Name: "foo", Constraint: NewConstraint(Greater, "1.2.3"), Conflict: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			k, v := tt.dep.KeyValue()
			assert.Equal(t, tt.key, k)
			assert.Equal(t, tt.value, v)

			got, err := FromKeyValue(tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.dep, got)
		})
	}
}

func TestDependency_KeyValueDropsPin(t *testing.T) {
	t.Parallel()

	d := MustParse("foo>1@testing")
	k, v := d.KeyValue()
	assert.Equal(t, "foo", k)
	assert.Equal(t, "> 1", v)

	back, err := FromKeyValue(k, v)
	require.NoError(t, err)
	d.RepoPin = ""
	assert.Equal(t, d, back)
}

func TestFromKeyValue_Invalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "1.2", "!1.2", ">=", "!*"} {
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			_, err := FromKeyValue("foo", value)
			require.ErrorIs(t, err, ErrConstraintParse)
		})
	}
}

func TestDependency_Equal(t *testing.T) {
	t.Parallel()

	a := MustParse("foo>=1")
	assert.True(t, a.Equal(MustParse("foo>=1")))
	assert.False(t, a.Equal(MustParse("foo >= 1")), "spaces belong to the name")
	assert.False(t, a.Equal(MustParse("foo>=2")))
	assert.False(t, a.Equal(MustParse("foo")))
	assert.False(t, a.Equal(MustParse("!foo>=1")))
	assert.False(t, a.Equal(MustParse("foo>=1@x")))
	assert.True(t, New("foo", nil).Equal(MustParse("foo")))
}

func TestDependency_Text(t *testing.T) {
	t.Parallel()

	var d Dependency
	require.NoError(t, d.UnmarshalText([]byte("!foo<2")))
	assert.Equal(t, Dependency{Name: "foo", Constraint: NewConstraint(Less, "2"), Conflict: true}, d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "!foo<2", string(text))

	require.Error(t, d.UnmarshalText([]byte("foo<")))
}
