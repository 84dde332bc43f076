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

package apk

import (
	"fmt"
	"strings"
)

// SignatureInfo identifies a signature of the package.
type SignatureInfo struct {
	// Alg is the signature algorithm, e.g. "RSA".
	Alg string `json:"alg" yaml:"alg" toml:"alg" validate:"required,ascii"`

	// KeyName is the file name of the public key.
	KeyName string `json:"keyname" yaml:"keyname" toml:"keyname" validate:"file_name"`
}

// signaturePrefix starts the name of a signature entry.
const signaturePrefix = ".SIGN."

// signatureFromName parses an entry name of the form ".SIGN.<alg>.<keyname>".
func signatureFromName(name string) (SignatureInfo, bool) {
	rest, ok := strings.CutPrefix(name, signaturePrefix)
	if !ok {
		return SignatureInfo{}, false
	}
	alg, keyName, ok := strings.Cut(rest, ".")
	if !ok {
		return SignatureInfo{}, false
	}

	return SignatureInfo{Alg: alg, KeyName: keyName}, true
}

// Script is the kind of an install script in the control segment.
type Script string

// Install scripts, run by apk around (de)installation and upgrade.
const (
	PreInstall    Script = "pre-install"
	PostInstall   Script = "post-install"
	PreUpgrade    Script = "pre-upgrade"
	PostUpgrade   Script = "post-upgrade"
	PreDeinstall  Script = "pre-deinstall"
	PostDeinstall Script = "post-deinstall"
)

// ParseScript parses a script name such as "post-install".
func ParseScript(s string) (Script, error) {
	switch sc := Script(s); sc {
	case PreInstall, PostInstall, PreUpgrade, PostUpgrade, PreDeinstall, PostDeinstall:
		return sc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScript, s)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseScript].
func (s *Script) UnmarshalText(text []byte) error {
	sc, err := ParseScript(string(text))
	if err != nil {
		return err
	}
	*s = sc

	return nil
}
