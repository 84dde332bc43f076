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

func TestEnumConverter(t *testing.T) {
	t.Parallel()

	conv := EnumConverter[mode]("fast", "safe")

	tests := []struct {
		name    string
		input   string
		want    mode
		wantErr bool
	}{
		{name: "allowed", input: "fast", want: "fast"},
		{name: "other allowed", input: "safe", want: "safe"},
		{name: "case sensitive", input: "FAST", wantErr: true},
		{name: "unknown", input: "slow", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotAllowed)
				assert.Contains(t, err.Error(), "fast, safe")

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolConverter(t *testing.T) {
	t.Parallel()

	conv := BoolConverter([]string{"enabled", "Y"}, []string{"disabled", "n"})

	for input, want := range map[string]bool{
		"enabled":    true,
		"ENABLED":    true,
		"y":          true,
		" disabled ": false,
		"N":          false,
	} {
		got, err := conv(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := conv("true")
	require.ErrorIs(t, err, ErrInvalidBooleanValue)
}

func TestParseBoolGenerous(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"true", "1", "YES", "on"} {
		b, err := parseBoolGenerous(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "0", "no", "Off"} {
		b, err := parseBoolGenerous(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}

	_, err := parseBoolGenerous("2")
	require.ErrorIs(t, err, ErrInvalidBooleanValue)
}
