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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Evaluator runs an APKBUILD script and reports the values of the named
// variables. Unset variables map to "".
type Evaluator interface {
	Evaluate(ctx context.Context, path string, src []byte, names []string) (map[string]string, error)
}

// EvaluatorFunc adapts a function to the [Evaluator] interface.
type EvaluatorFunc func(ctx context.Context, path string, src []byte, names []string) (map[string]string, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, path string, src []byte, names []string) (map[string]string, error) {
	return f(ctx, path, src, names)
}

// ShellEvaluator interprets APKBUILD scripts with an in-process POSIX
// shell. The script runs in the directory of its file with APKBUILD set
// to the file name. Standard output is discarded.
//
// ShellEvaluator is safe for concurrent use; every call gets its own
// interpreter.
type ShellEvaluator struct {
	// Env is the environment in "KEY=value" form.
	Env []string

	// AllowExec permits external commands. Without it only shell builtins
	// and functions can run.
	AllowExec bool
}

// Evaluate implements [Evaluator].
func (e *ShellEvaluator) Evaluate(ctx context.Context, path string, src []byte, names []string) (map[string]string, error) {
	file, err := syntax.NewParser().Parse(bytes.NewReader(src), path)
	if err != nil {
		return nil, &EvaluateError{Path: path, Err: fmt.Errorf("failed to parse script: %w", err)}
	}

	env := append(slices.Clone(e.Env), "APKBUILD="+filepath.Base(path))

	var (
		stderr bytes.Buffer
		guard  execGuard
	)
	runner, err := interp.New(
		interp.Dir(filepath.Dir(path)),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, io.Discard, &stderr),
		interp.ExecHandlers(guard.middleware(e.AllowExec)),
	)
	if err != nil {
		return nil, &EvaluateError{Path: path, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	err = runner.Run(ctx, file)
	// The shell swallows handler errors raised inside command substitutions.
	if denied := guard.first(); denied != "" {
		return nil, &EvaluateError{Path: path, Stderr: stderr.String(), Err: fmt.Errorf("%w: %s", ErrExecDenied, denied)}
	}
	if err != nil {
		// A non-zero status of the last command is not a failure, an
		// explicit exit is.
		var status interp.ExitStatus
		if !errors.As(err, &status) || runner.Exited() {
			return nil, &EvaluateError{Path: path, Stderr: stderr.String(), Err: err}
		}
	}

	vars := make(map[string]string, len(names))
	for _, name := range names {
		vars[name] = runner.Vars[name].String()
	}

	return vars, nil
}

// execGuard refuses external commands and remembers the first one refused.
type execGuard struct {
	mu     sync.Mutex
	denied string
}

func (g *execGuard) middleware(allow bool) func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if allow {
				return next(ctx, args)
			}

			g.mu.Lock()
			if g.denied == "" {
				g.denied = args[0]
			}
			g.mu.Unlock()

			return fmt.Errorf("%w: %s", ErrExecDenied, args[0])
		}
	}
}

func (g *execGuard) first() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.denied
}
