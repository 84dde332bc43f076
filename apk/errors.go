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
	"errors"
	"fmt"
)

var (
	// ErrMissingPkgInfo is returned when the control segment has no .PKGINFO.
	ErrMissingPkgInfo = errors.New("no .PKGINFO found in package")

	// ErrMissingSignature is returned when the signature segment has no
	// ".SIGN.*" entry.
	ErrMissingSignature = errors.New("no signatures found in package")

	// ErrUnknownScript is returned by [ParseScript] for names that are not
	// install scripts.
	ErrUnknownScript = errors.New("unknown install script")
)

// SegmentError reports a failure while reading one segment of a package.
type SegmentError struct {
	Segment string // "signature", "control" or "data"
	Err     error
}

// Error returns a formatted error message.
func (e *SegmentError) Error() string {
	return fmt.Sprintf("apk: %s segment: %v", e.Segment, e.Err)
}

// Unwrap returns the underlying error.
func (e *SegmentError) Unwrap() error {
	return e.Err
}
