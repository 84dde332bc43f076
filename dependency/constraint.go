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

// Constraint is a version constraint such as ">=1.2".
type Constraint struct {
	Op      Op
	Version string `validate:"pkgver_maybe_rel"`
}

// NewConstraint returns a Constraint for op and version.
//
// [Any] has no textual form next to a version: '*' is not an operator
// character, so a Constraint with Op Any renders as text that neither
// [ParseConstraint] nor [Parse] reads back as a constraint. Express "any
// version" as a [Dependency] without a Constraint instead.
func NewConstraint(op Op, version string) *Constraint {
	return &Constraint{Op: op, Version: version}
}

// ParseConstraint parses "<op><version>". Whitespace around either half is
// ignored, so "= 1.2.3" and "=1.2.3" are equal. Both halves are required.
func ParseConstraint(s string) (Constraint, error) {
	mid := strings.IndexFunc(s, func(r rune) bool { return !isOpChar(r) })
	if mid < 0 {
		return Constraint{}, parseError(s)
	}

	opText := strings.TrimSpace(s[:mid])
	version := strings.TrimSpace(s[mid:])
	if opText == "" || version == "" {
		return Constraint{}, parseError(s)
	}

	op, err := ParseOp(opText)
	if err != nil {
		return Constraint{}, err
	}

	return Constraint{Op: op, Version: version}, nil
}

// String returns the canonical text, the operator followed by the version.
func (c Constraint) String() string {
	return c.Op.String() + c.Version
}

// mappingValue returns the mapping form, "<op> <version>".
func (c Constraint) mappingValue() string {
	return c.Op.String() + " " + c.Version
}

// MarshalText implements [encoding.TextMarshaler].
func (c Constraint) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Constraint) UnmarshalText(text []byte) error {
	parsed, err := ParseConstraint(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
