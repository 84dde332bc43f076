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
	"fmt"
	"strings"
)

// Dependency is a dependency on, or a conflict with, a package or provider.
type Dependency struct {
	// Name is the package or provider name.
	Name string `validate:"required,provider"`

	// Constraint restricts acceptable versions; nil means any version.
	Constraint *Constraint `validate:"omitempty"`

	// Conflict marks an anti-dependency ("!name").
	Conflict bool

	// RepoPin is the tag of the repository the dependency is pinned to.
	// It is never set by PKGINFO or APKBUILD input and the mapping form
	// does not carry it. Empty means unpinned.
	RepoPin string `validate:"omitempty,repo_pin"`
}

// New returns a Dependency on name with an optional constraint.
func New(name string, constraint *Constraint) Dependency {
	return Dependency{Name: name, Constraint: constraint}
}

// NewConflict returns a conflict with any version of name.
func NewConflict(name string) Dependency {
	return Dependency{Name: name, Conflict: true}
}

// Parse parses the token form "[!]<name>[<op><version>][@<pin>]".
//
// The pin is split off at the first '@', then the constraint at the first
// operator character, then a leading '!' marks a conflict.
func Parse(s string) (Dependency, error) {
	var d Dependency

	s, d.RepoPin, _ = strings.Cut(s, "@")

	name := s
	if mid := strings.IndexFunc(s, isOpChar); mid >= 0 {
		name = s[:mid]
		c, err := ParseConstraint(s[mid:])
		if err != nil {
			return Dependency{}, err
		}
		d.Constraint = &c
	}

	d.Name, d.Conflict = strings.CutPrefix(name, "!")

	return d, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) Dependency {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("dependency.MustParse(%q): %v", s, err))
	}

	return d
}

// FromKeyValue builds a Dependency from its mapping form. value is "*" for
// any version, "<op> <version>", "!" for a conflict, or "!<op> <version>".
func FromKeyValue(name, value string) (Dependency, error) {
	d := Dependency{Name: name}

	if rest, ok := strings.CutPrefix(value, "!"); ok {
		d.Conflict = true
		value = rest
		if value == "" {
			return d, nil
		}
	} else if value == "*" {
		return d, nil
	}

	c, err := ParseConstraint(value)
	if err != nil {
		return Dependency{}, err
	}
	d.Constraint = &c

	return d, nil
}

// KeyValue returns the mapping form of d. The repository pin is dropped.
func (d Dependency) KeyValue() (name, value string) {
	switch {
	case d.Conflict && d.Constraint != nil:
		return d.Name, "!" + d.Constraint.mappingValue()
	case d.Conflict:
		return d.Name, "!"
	case d.Constraint != nil:
		return d.Name, d.Constraint.mappingValue()
	default:
		return d.Name, "*"
	}
}

// String returns the token form.
func (d Dependency) String() string {
	var b strings.Builder
	if d.Conflict {
		b.WriteByte('!')
	}
	b.WriteString(d.Name)
	if d.Constraint != nil {
		b.WriteString(d.Constraint.String())
	}
	if d.RepoPin != "" {
		b.WriteByte('@')
		b.WriteString(d.RepoPin)
	}

	return b.String()
}

// Equal reports whether d and other are the same dependency.
func (d Dependency) Equal(other Dependency) bool {
	if d.Name != other.Name || d.Conflict != other.Conflict || d.RepoPin != other.RepoPin {
		return false
	}
	if d.Constraint == nil || other.Constraint == nil {
		return d.Constraint == other.Constraint
	}

	return *d.Constraint == *other.Constraint
}

// MarshalText implements [encoding.TextMarshaler] with the token form.
func (d Dependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] with the token form.
func (d *Dependency) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
