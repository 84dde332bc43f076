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

import "strings"

// Op is a version constraint operator, a set of flags.
type Op uint8

// Operator flags and their combinations.
const (
	Equal   Op = 1 << iota // =
	Less                   // <
	Greater                // >
	Fuzzy                  // ~

	Checksum = Less | Greater                // ><
	Any      = Equal | Less | Greater | Fuzzy // *
)

// isOpChar reports whether r may appear in an operator.
// '*' is excluded: it only appears as a whole operator.
func isOpChar(r rune) bool {
	switch r {
	case '<', '>', '=', '~':
		return true
	default:
		return false
	}
}

// ParseOp parses a one or two character operator such as "=", ">=", "~" or "*".
// A "~" implies Equal.
func ParseOp(s string) (Op, error) {
	if s == "" || len(s) > 2 {
		return 0, parseError(s)
	}

	var op Op
	for _, c := range s {
		switch c {
		case '=':
			op |= Equal
		case '<':
			op |= Less
		case '>':
			op |= Greater
		case '~':
			op |= Fuzzy | Equal
		case '*':
			op |= Any
		default:
			return 0, parseError(s)
		}
	}

	return op, nil
}

// Has reports whether every flag in flags is set.
func (o Op) Has(flags Op) bool {
	return o&flags == flags
}

// String returns the canonical text: "*" for [Any], otherwise the flags in
// the order ~ > < =, with = omitted when ~ is present.
func (o Op) String() string {
	if o == Any {
		return "*"
	}

	var b strings.Builder
	if o.Has(Fuzzy) {
		b.WriteByte('~')
	}
	if o.Has(Greater) {
		b.WriteByte('>')
	}
	if o.Has(Less) {
		b.WriteByte('<')
	}
	if o.Has(Equal) && !o.Has(Fuzzy) {
		b.WriteByte('=')
	}

	return b.String()
}

// MarshalText implements [encoding.TextMarshaler].
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Op) UnmarshalText(text []byte) error {
	op, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = op

	return nil
}
