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

// Package pkginfo parses and writes the .PKGINFO control file of an APK
// package.
//
// The file is a list of "key = value" lines. Blank lines and lines starting
// with '#' are ignored. Repeated keys form lists, and the lines of one key
// need not be adjacent.
//
//	pkgname = sample
//	pkgver = 1.2.3-r2
//	depend = ruby>=3.0
//	depend = !sample-legacy
//
// A "depend" value starting with '!' is a conflict and lands in
// [PkgInfo.Conflicts]; the others land in [PkgInfo.Depends]. The values of
// install_if and triggers are space-separated lists.
package pkginfo
