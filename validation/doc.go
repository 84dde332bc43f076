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

// Package validation checks decoded package records against the syntax
// rules of Alpine package metadata.
//
// Decoding and validation are separate steps. The keyvalue, pkginfo and
// apkbuild packages only check that values have the right shape for their
// Go types; whether a package name, version or checksum is well formed is
// decided here, from `validate` struct tags evaluated by
// go-playground/validator.
//
// # Getting Started
//
//	pkg, err := pkginfo.Parse(text)
//	if err != nil {
//		return err // decode error
//	}
//	if err := validation.Validate(pkg); err != nil {
//		var verr *validation.Error
//		if errors.As(err, &verr) {
//			for _, f := range verr.Fields {
//				fmt.Printf("%s: %s\n", f.Path, f.Message)
//			}
//		}
//	}
//
// # Tags
//
// On top of the go-playground/validator built-ins, every [Validator] knows:
//
//	pkgname             package name
//	pkgver              version without release, e.g. 1.2.3_rc1
//	pkgver_rel          version with release, e.g. 1.2.3-r0
//	pkgver_maybe_rel    version with optional release
//	pkgver_rel_or_zero  version with release, or 0
//	provider            package or provider name, e.g. so:libc.musl-x86_64.so.1
//	repo_pin            repository tag of a pinned dependency
//	sha1, sha256, sha512
//	                    lowercase hex digests
//	word                [a-z0-9_-]+
//	negatable_word      word with an optional leading '!'
//	user_name           user or group name
//	trigger_path        absolute directory path
//	file_name           file name without '/' or whitespace
//	one_line            text without line breaks
//	mailbox             "Name <user@example.org>"
//	http_url            http or https URL without userinfo
//	source_uri          http(s) URL or relative path inside the recipe directory
//	unique_deps         dependency collection without repeated names
//
// More can be added with [WithCustomTag].
//
// # JSON Schemas
//
// [Validator.ValidateJSON] checks JSON documents, such as the output of the
// transcode package, against embedded JSON Schemas for APKBUILD and PKGINFO
// records and their dependency and secfixes collections. [Schema] returns
// the schema source.
package validation
