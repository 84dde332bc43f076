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
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks decoded records against their `validate` struct tags
// and raw documents against the embedded JSON Schemas.
//
// Validation never changes a record and is independent of decoding: a
// record that decoded fine may still fail here, and the two failures are
// told apart with errors.Is(err, ErrValidation).
//
// A Validator is safe for concurrent use.
type Validator struct {
	cfg      *config
	validate *validator.Validate
}

// New returns a [Validator] with the built-in tags and those added with
// [WithCustomTag].
func New(opts ...Option) (*Validator, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	v := &Validator{cfg: cfg}
	if err := v.initTagValidator(); err != nil {
		return nil, fmt.Errorf("initialize tag validator: %w", err)
	}

	return v, nil
}

// MustNew is like [New] but panics on invalid configuration.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validation.MustNew: %v", err))
	}

	return v
}

func (v *Validator) initTagValidator() error {
	v.validate = validator.New(validator.WithRequiredStructEnabled())
	v.validate.RegisterTagNameFunc(fieldName)

	for name, r := range rules {
		if err := v.validate.RegisterValidation(name, r.fn); err != nil {
			return fmt.Errorf("register tag %q: %w", name, err)
		}
	}

	for _, ct := range v.cfg.customTags {
		if err := v.validate.RegisterValidation(ct.name, ct.fn); err != nil {
			return fmt.Errorf("register custom tag %q: %w", ct.name, err)
		}
		if ct.message != "" {
			if v.cfg.messages == nil {
				v.cfg.messages = make(map[string]string)
			}
			if _, ok := v.cfg.messages[ct.name]; !ok {
				v.cfg.messages[ct.name] = ct.message
			}
		}
	}

	return nil
}

// fieldName names fields in error paths by their json tag, falling back to
// the lower-cased Go name.
func fieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(fld.Name)
	default:
		return name
	}
}

// Validate checks the struct v points to, or is. It returns nil, an
// [*Error] listing every violated rule, or an error wrapping
// [ErrCannotValidateNilValue] or [ErrInvalidType].
func (v *Validator) Validate(val any) error {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrCannotValidateNilValue
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return ErrCannotValidateNilValue
	case reflect.Struct:
	default:
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidType, rv.Type())
	}

	err := v.validate.Struct(rv.Interface())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Code: "tag_error", Message: err.Error()}}}
	}

	return v.formatTagErrors(verrs)
}

// Var checks a single value against a tag list such as "dive,provider".
// Failures have an empty path.
func (v *Validator) Var(field any, tag string) error {
	err := v.validate.Var(field, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Fields: []FieldError{{Code: "tag_error", Message: err.Error()}}}
	}

	return v.formatTagErrors(verrs)
}

func (v *Validator) formatTagErrors(errs validator.ValidationErrors) error {
	var result Error
	for _, e := range errs {
		if result.full(v.cfg.maxErrors) {
			break
		}
		result.Add(namespaceToPath(e.Namespace()), "tag."+e.Tag(), valueText(e.Value()), v.tagMessage(e))
	}

	result.Sort()

	return &result
}

// valueText renders a failed value for [FieldError.Value]. Collections
// are left out.
func valueText(value any) string {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Invalid, reflect.Slice, reflect.Map, reflect.Array, reflect.Struct:
		return ""
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return valueText(rv.Elem().Interface())
	default:
		return fmt.Sprint(value)
	}
}

var defaultValidator = sync.OnceValue(func() *Validator {
	return MustNew()
})

// Validate checks v with a [Validator] that has the default configuration.
func Validate(v any) error {
	return defaultValidator().Validate(v)
}
