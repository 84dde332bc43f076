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

// Package transcode reads and writes package records as JSON, YAML, TOML
// and MessagePack documents.
//
// The records of the pkginfo, apkbuild and fileinfo packages carry struct
// tags for each format, and their collections (dependencies, secfixes,
// extended attributes) encode themselves as mappings through kvlist. This
// package adds the plumbing: one entry point per format, strict decoding
// and an optional validation step.
//
//	pkg, err := transcode.YAML[pkginfo.PkgInfo](data,
//	    transcode.WithStrict(),
//	    transcode.WithValidator(validation.MustNew()),
//	)
//
//	out, err := transcode.MarshalJSON(pkg)
//
// [Transcode] converts a document between two formats by way of a record
// type, so that the output is normalized:
//
//	toml, err := transcode.Transcode[apkbuild.Apkbuild](data, transcode.FormatJSON, transcode.FormatTOML)
//
// MessagePack documents use the json struct tags for field names.
package transcode
