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

import "fmt"

// SyntaxError reports a line that is not of the form "key = value".
type SyntaxError struct {
	Line int    // 1-based line number
	Text string // The offending line
}

// Error returns a formatted error message.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: missing ' = ' in '%s'", e.Line, e.Text)
}
