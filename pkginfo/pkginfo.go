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

package pkginfo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"alpkit.dev/dependency"
	"alpkit.dev/keyvalue"
)

// PkgInfo is the content of a .PKGINFO file.
type PkgInfo struct {
	// Maintainer in the RFC 5322 mailbox format, e.g. "Kevin Flynn <kevin.flynn@encom.com>".
	Maintainer *string `kv:"maintainer" json:"maintainer,omitempty" yaml:"maintainer,omitempty" toml:"maintainer,omitempty" validate:"omitempty,mailbox"`

	Pkgname string `kv:"pkgname" json:"pkgname" yaml:"pkgname" toml:"pkgname" validate:"pkgname"`

	// Pkgver is the full version, including the release suffix "-r<n>".
	Pkgver string `kv:"pkgver" json:"pkgver" yaml:"pkgver" toml:"pkgver" validate:"pkgver_rel"`

	Pkgdesc string `kv:"pkgdesc" json:"pkgdesc" yaml:"pkgdesc" toml:"pkgdesc" validate:"max=128,one_line"`

	// URL of the upstream project homepage.
	URL string `kv:"url" json:"url" yaml:"url" toml:"url" validate:"http_url"`

	Arch string `kv:"arch" json:"arch" yaml:"arch" toml:"arch" validate:"word"`

	// License is an SPDX expression or a space-separated list of SPDX identifiers.
	License string `kv:"license" json:"license" yaml:"license" toml:"license" validate:"ascii,one_line"`

	// Depends never contains conflicts; see Conflicts.
	Depends dependency.Dependencies `kv:"depends,optional" json:"depends" yaml:"depends" toml:"depends" validate:"unique_deps,dive"`

	// Conflicts holds the "!name" entries of the depend key, without the '!'.
	// It is not a key of its own in the file.
	Conflicts dependency.Dependencies `kv:"conflicts,optional" json:"conflicts" yaml:"conflicts" toml:"conflicts" validate:"unique_deps,dive"`

	// InstallIf lists dependencies that, once all installed, pull in this package.
	InstallIf dependency.Dependencies `kv:"install_if,optional" json:"install_if" yaml:"install_if" toml:"install_if" validate:"dive"`

	Provides dependency.Dependencies `kv:"provides,optional" json:"provides" yaml:"provides" toml:"provides" validate:"unique_deps,dive"`

	// ProviderPriority breaks ties between providers of the same name.
	ProviderPriority *uint16 `kv:"provider_priority" json:"provider_priority,omitempty" yaml:"provider_priority,omitempty" toml:"provider_priority,omitempty"`

	// Replaces lists packages whose files this package may overwrite.
	Replaces dependency.Dependencies `kv:"replaces,optional" json:"replaces" yaml:"replaces" toml:"replaces" validate:"dive"`

	ReplacesPriority *uint16 `kv:"replaces_priority" json:"replaces_priority,omitempty" yaml:"replaces_priority,omitempty" toml:"replaces_priority,omitempty"`

	// Triggers are the monitored directories, which may contain '*'.
	Triggers []string `kv:"triggers,optional" json:"triggers" yaml:"triggers" toml:"triggers" validate:"dive,trigger_path"`

	// Origin is the name of the main package of the APKBUILD.
	Origin string `kv:"origin" json:"origin" yaml:"origin" toml:"origin" validate:"pkgname"`

	// Commit is the git commit the package was built from.
	Commit *string `kv:"commit" json:"commit,omitempty" yaml:"commit,omitempty" toml:"commit,omitempty" validate:"omitempty,sha1"`

	// BuildDate is a Unix timestamp.
	BuildDate int64 `kv:"builddate" json:"builddate" yaml:"builddate" toml:"builddate" validate:"min=0"`

	Packager string `kv:"packager" json:"packager" yaml:"packager" toml:"packager" validate:"mailbox"`

	// Size is the installed size in bytes.
	Size uint64 `kv:"size" json:"size" yaml:"size" toml:"size"`

	// DataHash is the hex SHA-256 of the data tarball.
	DataHash string `kv:"datahash" json:"datahash" yaml:"datahash" toml:"datahash" validate:"sha256"`
}

// maxLineLen bounds a single .PKGINFO line.
const maxLineLen = 1 << 20

// Parse parses the content of a .PKGINFO file.
//
// Errors are a [*SyntaxError] for a malformed line, or a decode error from
// [keyvalue] ([*keyvalue.MissingFieldError], [*keyvalue.FieldError]).
func Parse(s string) (*PkgInfo, error) {
	return ParseReader(strings.NewReader(s))
}

// ParseReader is like [Parse] but reads from r.
func ParseReader(r io.Reader) (*PkgInfo, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}

	info, err := keyvalue.FromPairs[PkgInfo](pairs)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

// readPairs turns the lines of r into pairs, splitting list values and
// moving "!" depend entries to conflicts.
func readPairs(r io.Reader) (keyvalue.Pairs, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)

	pairs := make(keyvalue.Pairs, 0, 64)
	for lno := 1; sc.Scan(); lno++ {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, " = ")
		if !ok {
			return nil, &SyntaxError{Line: lno, Text: line}
		}

		switch key {
		case "install_if", "triggers":
			pairs.AddFields(key, value)
		case "depend":
			if name, conflict := strings.CutPrefix(value, "!"); conflict {
				pairs.Add("conflicts", name)
			} else {
				pairs.Add("depends", value)
			}
		default:
			pairs.Add(key, value)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading .PKGINFO: %w", err)
	}

	return pairs, nil
}
