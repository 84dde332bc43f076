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

// Package fileinfo describes the entries of an APK package archive.
//
// A [FileInfo] is built from a tar header with [FromTarHeader] and
// serializes to a compact JSON or YAML document: the owner fields are
// omitted when they are "root", the mode is written as octal text and
// extended attributes become a mapping of name to base64 value.
//
//	{
//	  "path": "/usr/bin/something",
//	  "type": "r",
//	  "size": 926,
//	  "mode": "04755",
//	  "xattrs": {"user.pax.flags": "ZXBt"}
//	}
package fileinfo
