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

package apkbuild

import (
	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"alpkit.dev/dependency"
	"alpkit.dev/kvlist"
)

// ArchAll is the default list of architectures that the "all" and
// "noarch" keywords expand to.
var ArchAll = []string{"aarch64", "armhf", "armv7", "ppc64le", "riscv64", "s390x", "x86", "x86_64"}

// Apkbuild is the evaluated content of an APKBUILD recipe.
type Apkbuild struct {
	// Maintainer in the RFC 5322 mailbox format, taken from the
	// "# Maintainer:" comment.
	Maintainer *string `kv:"-" json:"maintainer,omitempty" yaml:"maintainer,omitempty" toml:"maintainer,omitempty" validate:"omitempty,mailbox"`

	// Contributors are taken from "# Contributor:" comments at the top of the file.
	Contributors []string `kv:"-" json:"contributors" yaml:"contributors" toml:"contributors" validate:"dive,mailbox"`

	// Pkgname is the name of the main package.
	Pkgname string `kv:"pkgname" json:"pkgname" yaml:"pkgname" toml:"pkgname" validate:"pkgname"`

	// Pkgver is the upstream version, without the release suffix.
	Pkgver string `kv:"pkgver" json:"pkgver" yaml:"pkgver" toml:"pkgver" validate:"pkgver"`

	// Pkgrel is the Alpine release number, starting at 0.
	Pkgrel uint32 `kv:"pkgrel" json:"pkgrel" yaml:"pkgrel" toml:"pkgrel"`

	Pkgdesc string `kv:"pkgdesc" json:"pkgdesc" yaml:"pkgdesc" toml:"pkgdesc" validate:"max=128,one_line"`

	URL string `kv:"url" json:"url" yaml:"url" toml:"url" validate:"http_url"`

	// Arch is the resolved architecture list. It never contains "all",
	// "noarch" or negated entries.
	Arch []string `kv:"-" json:"arch" yaml:"arch" toml:"arch" validate:"dive,word"`

	License string `kv:"license" json:"license" yaml:"license" toml:"license" validate:"ascii,one_line"`

	// Depends are the run-time dependencies of the main package that are
	// not discovered automatically during the build.
	Depends dependency.Dependencies `kv:"depends,optional" json:"depends" yaml:"depends" toml:"depends" validate:"dive"`

	Makedepends      dependency.Dependencies `kv:"makedepends,optional" json:"makedepends" yaml:"makedepends" toml:"makedepends" validate:"dive"`
	MakedependsBuild dependency.Dependencies `kv:"makedepends_build,optional" json:"makedepends_build" yaml:"makedepends_build" toml:"makedepends_build" validate:"dive"`
	MakedependsHost  dependency.Dependencies `kv:"makedepends_host,optional" json:"makedepends_host" yaml:"makedepends_host" toml:"makedepends_host" validate:"dive"`

	// Checkdepends are only needed to run the test suite.
	Checkdepends dependency.Dependencies `kv:"checkdepends,optional" json:"checkdepends" yaml:"checkdepends" toml:"checkdepends" validate:"dive"`

	// InstallIf lists dependencies that, once all installed, pull in the
	// main package.
	InstallIf dependency.Dependencies `kv:"install_if,optional" json:"install_if" yaml:"install_if" toml:"install_if" validate:"dive"`

	Pkgusers  []string `kv:"pkgusers,optional" json:"pkgusers" yaml:"pkgusers" toml:"pkgusers" validate:"dive,user_name"`
	Pkggroups []string `kv:"pkggroups,optional" json:"pkggroups" yaml:"pkggroups" toml:"pkggroups" validate:"dive,user_name"`

	Provides dependency.Dependencies `kv:"provides,optional" json:"provides" yaml:"provides" toml:"provides" validate:"dive"`

	// ProviderPriority breaks ties between providers of the same name.
	// Higher wins.
	ProviderPriority *uint32 `kv:"provider_priority" json:"provider_priority,omitempty" yaml:"provider_priority,omitempty" toml:"provider_priority,omitempty"`

	// Pcprefix prefixes providers derived from pkg-config files.
	Pcprefix *string `kv:"pcprefix" json:"pcprefix,omitempty" yaml:"pcprefix,omitempty" toml:"pcprefix,omitempty" validate:"omitempty,provider"`

	// Sonameprefix prefixes providers derived from shared objects.
	Sonameprefix *string `kv:"sonameprefix" json:"sonameprefix,omitempty" yaml:"sonameprefix,omitempty" toml:"sonameprefix,omitempty" validate:"omitempty,provider"`

	// Replaces lists packages whose files the main package may overwrite.
	Replaces dependency.Dependencies `kv:"replaces,optional" json:"replaces" yaml:"replaces" toml:"replaces" validate:"dive"`

	ReplacesPriority *uint32 `kv:"replaces_priority" json:"replaces_priority,omitempty" yaml:"replaces_priority,omitempty" toml:"replaces_priority,omitempty"`

	// Install lists the install scripts (e.g. "sample.post-install").
	Install []string `kv:"install,optional" json:"install" yaml:"install" toml:"install" validate:"dive,file_name"`

	// Triggers are of the form "<pkgname>.trigger=<dir1>[:<dir2>...]".
	Triggers []string `kv:"triggers,optional" json:"triggers" yaml:"triggers" toml:"triggers"`

	// Subpackages are the names of the packages built besides the main one.
	Subpackages []string `kv:"subpackages,optional" json:"subpackages" yaml:"subpackages" toml:"subpackages" validate:"dive,pkgname"`

	// Sources are the remote and local files needed for the build.
	Sources []Source `kv:"-" json:"sources" yaml:"sources" toml:"sources" validate:"dive"`

	// Options are abuild options such as "!check".
	Options []string `kv:"options,optional" json:"options" yaml:"options" toml:"options" validate:"dive,negatable_word"`

	// Secfixes maps fixed versions to vulnerability identifiers.
	Secfixes Secfixes `kv:"-" json:"secfixes" yaml:"secfixes" toml:"secfixes" validate:"dive"`
}

// Source is a file needed to build the package.
type Source struct {
	// Name is the local file name.
	Name string `json:"name" yaml:"name" toml:"name" validate:"file_name"`

	// URI is the URL of a remote file, or a path relative to the
	// APKBUILD's directory.
	URI string `json:"uri" yaml:"uri" toml:"uri" validate:"source_uri"`

	// Checksum is the hex SHA-512 of the file.
	Checksum string `json:"checksum" yaml:"checksum" toml:"checksum" validate:"sha512"`
}

// Secfix lists the vulnerabilities fixed in one version.
type Secfix struct {
	// Version is the full version ("1.2.3-r2") that fixes the
	// vulnerabilities, or "0" for ones that never affected the package.
	Version string   `json:"version" yaml:"version" toml:"version" validate:"pkgver_rel_or_zero"`
	Fixes   []string `json:"fixes" yaml:"fixes" toml:"fixes"`
}

// SecfixCodec converts secfixes between a mapping of version to fixes and
// a list. There is no token form.
var SecfixCodec = kvlist.Codec[Secfix, []string]{
	KeyValue: func(s Secfix) (string, []string) {
		return s.Version, s.Fixes
	},
	FromKeyValue: func(version string, fixes []string) (Secfix, error) {
		return Secfix{Version: version, Fixes: fixes}, nil
	},
}

// Secfixes is an ordered collection of [Secfix]. In JSON, YAML, TOML and
// MessagePack documents it is a mapping of version to fixes.
type Secfixes []Secfix

// Fixes returns the vulnerabilities fixed in version.
func (s Secfixes) Fixes(version string) []string {
	for _, fix := range s {
		if fix.Version == version {
			return fix.Fixes
		}
	}

	return nil
}

// FixedIn returns the first version that fixes id.
func (s Secfixes) FixedIn(id string) (string, bool) {
	for _, fix := range s {
		for _, f := range fix.Fixes {
			if f == id {
				return fix.Version, true
			}
		}
	}

	return "", false
}

// MarshalJSON implements [json.Marshaler].
func (s Secfixes) MarshalJSON() ([]byte, error) {
	return SecfixCodec.MarshalJSON(s)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (s *Secfixes) UnmarshalJSON(data []byte) error {
	return s.set(SecfixCodec.UnmarshalJSON(data))
}

// MarshalYAML implements [yaml.Marshaler].
func (s Secfixes) MarshalYAML() (any, error) {
	return SecfixCodec.MarshalYAML(s)
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (s *Secfixes) UnmarshalYAML(node *yaml.Node) error {
	return s.set(SecfixCodec.UnmarshalYAML(node))
}

// MarshalTOML implements [toml.Marshaler].
func (s Secfixes) MarshalTOML() ([]byte, error) {
	return SecfixCodec.MarshalTOML(s)
}

// UnmarshalTOML implements [toml.Unmarshaler].
func (s *Secfixes) UnmarshalTOML(data any) error {
	return s.set(SecfixCodec.UnmarshalTOML(data))
}

// EncodeMsgpack implements [msgpack.CustomEncoder].
func (s Secfixes) EncodeMsgpack(enc *msgpack.Encoder) error {
	return SecfixCodec.EncodeMsgpack(enc, s)
}

// DecodeMsgpack implements [msgpack.CustomDecoder].
func (s *Secfixes) DecodeMsgpack(dec *msgpack.Decoder) error {
	return s.set(SecfixCodec.DecodeMsgpack(dec))
}

func (s *Secfixes) set(items []Secfix, err error) error {
	if err != nil {
		return err
	}
	*s = items

	return nil
}

var (
	_ yaml.Marshaler        = Secfixes(nil)
	_ toml.Marshaler        = Secfixes(nil)
	_ msgpack.CustomEncoder = Secfixes(nil)
	_ yaml.Unmarshaler      = (*Secfixes)(nil)
	_ toml.Unmarshaler      = (*Secfixes)(nil)
	_ msgpack.CustomDecoder = (*Secfixes)(nil)
)
