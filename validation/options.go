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

package validation

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"
)

type customTag struct {
	name    string
	fn      validator.Func
	message string
}

type config struct {
	maxErrors  int
	customTags []customTag
	messages   map[string]string
}

func newConfig() *config {
	return &config{}
}

func (c *config) validate() error {
	if c.maxErrors < 0 {
		return errors.New("maxErrors must be non-negative")
	}
	for _, ct := range c.customTags {
		if ct.name == "" || ct.fn == nil {
			return fmt.Errorf("custom tag %q: name and function are required", ct.name)
		}
	}

	return nil
}

// Option configures a [Validator].
type Option func(*config)

// WithMaxErrors stops collecting field errors after n and marks the
// result truncated. Zero, the default, collects all of them.
func WithMaxErrors(n int) Option {
	return func(c *config) {
		c.maxErrors = n
	}
}

// WithCustomTag registers an additional struct tag. A tag with the same
// name as a built-in one replaces it. message is reported for failures;
// when empty a generic message naming the tag is used.
//
//	v := validation.MustNew(
//	    validation.WithCustomTag("community_repo", func(fl validator.FieldLevel) bool {
//	        return fl.Field().String() == "community"
//	    }, "must be community"),
//	)
func WithCustomTag(name string, fn validator.Func, message string) Option {
	return func(c *config) {
		c.customTags = append(c.customTags, customTag{name: name, fn: fn, message: message})
	}
}

// WithMessages overrides the message reported for the given tags.
func WithMessages(messages map[string]string) Option {
	return func(c *config) {
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		maps.Copy(c.messages, messages)
	}
}
