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

package transcode

// Validator checks a decoded value. *validation.Validator implements it.
type Validator interface {
	Validate(v any) error
}

// Option configures decoding.
type Option func(*config)

type config struct {
	validator Validator
	strict    bool
}

// WithValidator runs v on every successfully decoded value. A failure is
// returned as an [*Error] with Op "validate" wrapping the validator's error.
func WithValidator(v Validator) Option {
	return func(c *config) {
		c.validator = v
	}
}

// WithStrict rejects documents with keys that the target type does not
// decode.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
