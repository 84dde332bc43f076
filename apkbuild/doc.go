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

// Package apkbuild reads Alpine APKBUILD recipes into an [Apkbuild] record.
//
// An APKBUILD is a shell script. A [Reader] evaluates it with an
// [Evaluator] (by default an in-process POSIX shell interpreter, see
// [ShellEvaluator]) and reads the resulting variables. Values that hold
// lists are split on whitespace and decoded with [keyvalue.FromOrderedPairs].
// A few values get extra treatment:
//
//   - arch is expanded: "all" and "noarch" become the configured
//     architecture list and "!x" removes x.
//   - source is merged with sha512sums into [Source] records.
//   - subpackages are truncated at the first ':'.
//
// Comment metadata (maintainer, contributors and the secfixes block) is
// parsed from the file text rather than evaluated.
//
// # Quick Start
//
//	r := apkbuild.MustNew(apkbuild.WithTimeout(time.Second))
//	ab, err := r.Read(ctx, "aports/main/sample/APKBUILD")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ab.Pkgname, ab.Pkgver, ab.Pkgrel)
//
// # Sandbox
//
// [ShellEvaluator] runs the script with a cleared environment in the
// directory of the file. Shell builtins work, but external commands are
// refused unless [WithAllowExec] is set. Evaluation is bounded by
// [WithTimeout].
package apkbuild
