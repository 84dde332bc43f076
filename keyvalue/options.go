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

package keyvalue

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"time"
)

// TagKV is the default struct tag read by the decoder and encoder.
const TagKV = "kv"

// DefaultMaxSliceLen is the default maximum number of values per sequence field.
const DefaultMaxSliceLen = 10_000

// TypeConverter converts a string value to a custom type.
// Registered converters are checked before built-in type handling.
type TypeConverter func(string) (any, error)

// Events provides hooks for observability without coupling.
type Events struct {
	// FieldBound is called after a field has been assembled.
	// name is the Go struct field name, key the input key.
	FieldBound func(name, key string)

	// UnknownKey is called for every key group that matches no field.
	UnknownKey func(key string)

	// Done is called at the end of every decode, even on error.
	Done func(stats Stats)
}

// Stats tracks decode metrics for a single call.
type Stats struct {
	PairsRead         int           // Pairs consumed from the stream
	FieldsBound       int           // Fields successfully assembled
	UnknownKeys       int           // Key groups that matched no field
	ErrorsEncountered int           // Errors hit during decoding
	Duration          time.Duration // Wall time of the decode
}

// config holds decoder configuration. It is immutable once built.
type config struct {
	tag            string
	typeConverters map[reflect.Type]TypeConverter
	events         Events
	logger         *slog.Logger
	maxSliceLen    int
	intBaseAuto    bool
}

// Option configures decode and encode behavior.
type Option func(*config)

// WithTag changes the struct tag that names fields. The default is [TagKV].
func WithTag(tag string) Option {
	return func(c *config) {
		c.tag = tag
	}
}

// WithTypeConverter registers a converter for a type.
// It works transparently for both T and *T.
//
// Example:
//
//	keyvalue.WithTypeConverter(reflect.TypeFor[netip.Addr](), func(s string) (any, error) {
//	    return netip.ParseAddr(s)
//	})
func WithTypeConverter(targetType reflect.Type, converter TypeConverter) Option {
	return func(c *config) {
		if c.typeConverters == nil {
			c.typeConverters = make(map[reflect.Type]TypeConverter)
		}
		c.typeConverters[targetType] = converter
	}
}

// WithConverter registers a type-safe converter for T.
//
// Example:
//
//	keyvalue.WithConverter(keyvalue.EnumConverter(ArchX86, ArchAarch64))
func WithConverter[T any](fn func(string) (T, error)) Option {
	return func(c *config) {
		if c.typeConverters == nil {
			c.typeConverters = make(map[reflect.Type]TypeConverter)
		}
		c.typeConverters[reflect.TypeFor[T]()] = func(s string) (any, error) {
			return fn(s)
		}
	}
}

// WithEvents sets observability hooks.
func WithEvents(events Events) Option {
	return func(c *config) {
		c.events = events
	}
}

// WithLogger logs field assembly and a per-decode summary at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxSliceLen limits the number of values per sequence field.
// Set to 0 to disable the limit.
func WithMaxSliceLen(n int) Option {
	return func(c *config) {
		c.maxSliceLen = n
	}
}

// WithIntBaseAuto enables 0x, 0o and 0b prefixes for integer fields.
func WithIntBaseAuto(enabled bool) Option {
	return func(c *config) {
		c.intBaseAuto = enabled
	}
}

// noopLogger discards all log records.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func defaultConfig() *config {
	return &config{
		tag:         TagKV,
		logger:      noopLogger,
		maxSliceLen: DefaultMaxSliceLen,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func (c *config) validate() error {
	if c.tag == "" {
		return errors.New("keyvalue: tag must not be empty")
	}
	if c.maxSliceLen < 0 {
		return errors.New("keyvalue: max slice length must not be negative")
	}
	if c.logger == nil {
		return errors.New("keyvalue: logger must not be nil")
	}

	return nil
}

// run carries the per-call state of one decode.
type run struct {
	cfg   *config
	stats Stats
	start time.Time
}

func newRun(cfg *config) *run {
	return &run{cfg: cfg, start: time.Now()}
}

func (r *run) trackField(name, key string) {
	r.stats.FieldsBound++
	if r.cfg.events.FieldBound != nil {
		r.cfg.events.FieldBound(name, key)
	}
	r.cfg.logger.Debug("field assembled", "field", name, "key", key)
}

func (r *run) trackUnknown(key string) {
	r.stats.UnknownKeys++
	if r.cfg.events.UnknownKey != nil {
		r.cfg.events.UnknownKey(key)
	}
}

func (r *run) trackError() {
	r.stats.ErrorsEncountered++
}

// finish emits the Done event. Always called via defer.
func (r *run) finish() {
	r.stats.Duration = time.Since(r.start)
	if r.cfg.events.Done != nil {
		r.cfg.events.Done(r.stats)
	}
	r.cfg.logger.Debug("decode finished",
		"pairs", r.stats.PairsRead,
		"fields", r.stats.FieldsBound,
		"unknown", r.stats.UnknownKeys,
		"errors", r.stats.ErrorsEncountered,
		"duration", r.stats.Duration,
	)
}
