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
	"errors"
	"fmt"
	"strings"
)

// Static errors for evaluation.
var (
	// ErrTimeout is returned when evaluation exceeds the configured timeout.
	ErrTimeout = errors.New("APKBUILD evaluation timed out")

	// ErrExecDenied is returned when the script runs an external command
	// and [WithAllowExec] is not set.
	ErrExecDenied = errors.New("external command not allowed")

	// ErrInvalidPath is returned for a path without a file name.
	ErrInvalidPath = errors.New("invalid APKBUILD path")
)

// EvaluateError reports a failure to evaluate an APKBUILD.
type EvaluateError struct {
	Path   string // Path of the APKBUILD
	Stderr string // Diagnostic output of the script, if any
	Err    error  // Underlying error
}

// Error returns a formatted error message.
func (e *EvaluateError) Error() string {
	msg := fmt.Sprintf("failed to evaluate %s: %v", e.Path, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}

	return msg
}

// Unwrap returns the underlying error.
func (e *EvaluateError) Unwrap() error {
	return e.Err
}

// MissingChecksumError reports a source file without a sha512sums entry.
type MissingChecksumError struct {
	Name string
}

// Error returns a formatted error message.
func (e *MissingChecksumError) Error() string {
	return fmt.Sprintf("missing sha512sum for: '%s'", e.Name)
}

// SecfixesSyntaxError reports a malformed line in the secfixes comment block.
type SecfixesSyntaxError struct {
	Line int    // 1-based line number within the file
	Text string // The line without its comment prefix
}

// Error returns a formatted error message.
func (e *SecfixesSyntaxError) Error() string {
	return fmt.Sprintf("syntax error in secfixes on line %d: '%s'", e.Line, e.Text)
}
