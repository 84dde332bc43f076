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

// Package apk loads APKv2 package files.
//
// A package is three gzip streams concatenated together, each holding a
// tar segment:
//
//  1. the signature segment, with one ".SIGN.<alg>.<keyname>" entry per
//     signature
//  2. the control segment, with .PKGINFO and the install scripts
//  3. the data segment, with the files of the package
//
// The signature and control segments are usually cut, i.e. they have no
// end-of-archive blocks, so that the three streams can be concatenated.
//
//	f, err := os.Open("sample-1.2.3-r2.apk")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	pkg, err := apk.LoadWithoutFiles(f)
//
// [LoadWithoutFiles] stops after the control segment, which is much faster
// for big packages when the file list is not needed.
package apk
