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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"alpkit.dev/keyvalue"
)

// DefaultTimeout bounds the evaluation of a single APKBUILD.
const DefaultTimeout = 500 * time.Millisecond

// defaultPath is used for PATH when the process has none.
const defaultPath = "/usr/bin:/bin"

// evalFields are the variables read from an evaluated APKBUILD, in the
// order their pairs are assembled.
var evalFields = []string{
	"pkgname", "pkgver", "pkgrel", "pkgdesc", "url", "arch", "license",
	"depends", "makedepends", "makedepends_build", "makedepends_host",
	"checkdepends", "install_if", "pkgusers", "pkggroups", "provides",
	"provider_priority", "pcprefix", "sonameprefix", "replaces",
	"replaces_priority", "install", "triggers", "subpackages", "source",
	"options", "sha512sums",
}

// Option configures a [Reader].
type Option func(*Reader)

// WithArchAll sets the architectures that "all" and "noarch" expand to.
// The default is [ArchAll].
func WithArchAll(arches ...string) Option {
	return func(r *Reader) {
		r.archAll = slices.Clone(arches)
	}
}

// WithEnv sets an environment variable for the evaluated script.
func WithEnv(key, value string) Option {
	return func(r *Reader) {
		r.env[key] = value
	}
}

// WithInheritEnv passes the environment of the current process to the
// script. By default the environment is cleared except for PATH.
func WithInheritEnv(inherit bool) Option {
	return func(r *Reader) {
		r.inheritEnv = inherit
	}
}

// WithTimeout bounds the evaluation of one APKBUILD. Zero disables the
// limit. The default is [DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(r *Reader) {
		r.timeout = d
	}
}

// WithAllowExec lets the script run external commands.
func WithAllowExec(allow bool) Option {
	return func(r *Reader) {
		r.allowExec = allow
	}
}

// WithEvaluator replaces the default [ShellEvaluator]. The environment
// options have no effect on a custom evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(r *Reader) {
		r.evaluator = e
	}
}

// WithConcurrency limits the number of files [Reader.ReadAll] evaluates
// at once. The default is 4.
func WithConcurrency(n int) Option {
	return func(r *Reader) {
		r.concurrency = n
	}
}

// WithLogger sets the logger for evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// Reader reads APKBUILD files.
//
// Reader is safe for concurrent use by multiple goroutines.
type Reader struct {
	archAll     []string
	env         map[string]string
	inheritEnv  bool
	timeout     time.Duration
	allowExec   bool
	concurrency int
	logger      *slog.Logger
	evaluator   Evaluator
	decoder     *keyvalue.Decoder
}

// New creates a [Reader] with the given options.
// It returns an error if the configuration is invalid.
func New(opts ...Option) (*Reader, error) {
	path := os.Getenv("PATH")
	if path == "" {
		path = defaultPath
	}

	r := &Reader{
		archAll:     slices.Clone(ArchAll),
		env:         map[string]string{"PATH": path},
		timeout:     DefaultTimeout,
		concurrency: 4,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if r.evaluator == nil {
		r.evaluator = &ShellEvaluator{Env: r.environ(), AllowExec: r.allowExec}
	}

	dec, err := keyvalue.New(keyvalue.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	r.decoder = dec

	return r, nil
}

// MustNew is like [New] but panics on invalid configuration.
func MustNew(opts ...Option) *Reader {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("apkbuild.MustNew: %v", err))
	}

	return r
}

func (r *Reader) validate() error {
	if r.timeout < 0 {
		return errors.New("apkbuild: timeout must not be negative")
	}
	if r.concurrency < 1 {
		return errors.New("apkbuild: concurrency must be at least 1")
	}
	if r.logger == nil {
		return errors.New("apkbuild: logger must not be nil")
	}

	return nil
}

// environ builds the script environment in "KEY=value" form. Configured
// variables override inherited ones.
func (r *Reader) environ() []string {
	var env []string
	if r.inheritEnv {
		env = os.Environ()
	}
	keys := make([]string, 0, len(r.env))
	for k := range r.env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		env = append(env, k+"="+r.env[k])
	}

	return env
}

// Read evaluates the APKBUILD at path and decodes it.
//
// Errors are an [*EvaluateError] (which may wrap [ErrTimeout] or
// [ErrExecDenied]), a decode error from [keyvalue], a
// [*MissingChecksumError] or a [*SecfixesSyntaxError].
func (r *Reader) Read(ctx context.Context, path string) (*Apkbuild, error) {
	if base := filepath.Base(path); base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read APKBUILD: %w", err)
	}

	start := time.Now()
	vars, err := r.evaluate(ctx, path, src)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "evaluated APKBUILD", "path", path, "duration", time.Since(start))

	ab, err := keyvalue.DecodeWith[Apkbuild](r.decoder, toPairs(evalFields, vars))
	if err != nil {
		return nil, err
	}

	ab.Arch = expandArch(vars["arch"], r.archAll)
	var unused []string
	if ab.Sources, unused, err = decodeSources(vars["source"], vars["sha512sums"]); err != nil {
		return nil, err
	}
	for _, name := range unused {
		r.logger.WarnContext(ctx, "unused checksum", "path", path, "name", name)
	}

	lines := splitLines(string(src))
	ab.Maintainer = parseMaintainer(lines)
	ab.Contributors = parseContributors(lines)
	if ab.Secfixes, err = parseSecfixes(lines); err != nil {
		return nil, err
	}

	return &ab, nil
}

func (r *Reader) evaluate(ctx context.Context, path string, src []byte) (map[string]string, error) {
	if r.timeout == 0 {
		return r.evaluator.Evaluate(ctx, path, src, evalFields)
	}

	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vars, err := r.evaluator.Evaluate(tctx, path, src, evalFields)
	if err != nil && ctx.Err() == nil && errors.Is(tctx.Err(), context.DeadlineExceeded) {
		r.logger.WarnContext(ctx, "APKBUILD evaluation timed out", "path", path, "timeout", r.timeout)
		return nil, &EvaluateError{Path: path, Err: fmt.Errorf("%w after %s", ErrTimeout, r.timeout)}
	}

	return vars, err
}

// ReadAll reads every path concurrently and returns the results in the
// order of paths. It stops at the first error.
func (r *Reader) ReadAll(ctx context.Context, paths []string) ([]*Apkbuild, error) {
	out := make([]*Apkbuild, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			ab, err := r.Read(gctx, path)
			if err != nil {
				return err
			}
			out[i] = ab

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
