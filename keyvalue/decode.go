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
	"fmt"
	"reflect"
	"strings"
)

// Decode assembles a T from pairs in the order given.
// Equal keys must be adjacent to form a sequence; see [Stream.NextGroup].
//
// Example:
//
//	type Info struct {
//	    Name string   `kv:"name"`
//	    Tags []string `kv:"tag,optional"`
//	}
//
//	info, err := keyvalue.Decode[Info](keyvalue.Pairs{
//	    keyvalue.P("name", "foo"),
//	    keyvalue.P("tag", "a"),
//	    keyvalue.P("tag", "b"),
//	})
//
// Errors:
//   - [MissingFieldError]: a required field had no key in the input
//   - [FieldError]: a value failed coercion; the cause is wrapped
//   - [ErrOutMustBePointer]: T is not a struct type
func Decode[T any](pairs Pairs, opts ...Option) (T, error) {
	var result T
	if err := DecodeTo(pairs, &result, opts...); err != nil {
		return result, err
	}

	return result, nil
}

// DecodeTo assembles pairs into out, which must be a non-nil pointer to struct.
func DecodeTo(pairs Pairs, out any, opts ...Option) error {
	return DecodeStream(NewStream(pairs), out, opts...)
}

// DecodeStream assembles the remaining pairs of s into out.
func DecodeStream(s *Stream, out any, opts ...Option) error {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	return decodeStream(s, out, cfg)
}

// FromPairs stably sorts pairs by key and then decodes them, so repeated
// keys do not have to be adjacent in the input.
func FromPairs[T any](pairs Pairs, opts ...Option) (T, error) {
	return Decode[T](pairs.Sorted(), opts...)
}

// FromOrderedPairs decodes pairs as given, without sorting.
// It is the same as [Decode].
func FromOrderedPairs[T any](pairs Pairs, opts ...Option) (T, error) {
	return Decode[T](pairs, opts...)
}

func decodeStream(s *Stream, out any, cfg *config) error {
	r := newRun(cfg)
	defer r.finish()

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer {
		r.trackError()
		return ErrOutMustBePointer
	}
	if rv.IsNil() {
		r.trackError()
		return ErrOutPointerNil
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		r.trackError()
		return ErrOutMustBePointer
	}

	info, err := getStructInfo(elem.Type(), cfg.tag)
	if err != nil {
		r.trackError()
		return err
	}

	return assemble(elem, s, info, r)
}

// assemble consumes s group by group and populates the fields of elem.
// Unknown keys are skipped; required fields never seen fail the decode.
func assemble(elem reflect.Value, s *Stream, info *structInfo, r *run) error {
	seen := make([]bool, len(info.fields))

	for {
		key, values, ok := s.NextGroup()
		if !ok {
			break
		}
		r.stats.PairsRead += len(values)

		idx, known := info.byKey[key]
		if !known {
			r.trackUnknown(key)
			continue
		}

		field := &info.fields[idx]
		if err := assignField(elem.FieldByIndex(field.index), field, values, r.cfg); err != nil {
			r.trackError()
			return err
		}
		seen[idx] = true
		r.trackField(field.name, field.key)
	}

	for i := range info.fields {
		if !seen[i] && !info.fields[i].optional {
			r.trackError()
			return &MissingFieldError{Field: info.fields[i].key}
		}
	}

	return nil
}

// assignField decides between scalar and sequence from the declared field
// shape, never from the number of values received.
func assignField(fv reflect.Value, field *fieldInfo, values []string, cfg *config) error {
	var err error

	switch {
	case field.isSlice && findConverter(field.fieldType, cfg) == nil:
		if field.isPtr {
			ptr := reflect.New(field.fieldType.Elem())
			if err = setSliceField(ptr.Elem(), values, cfg); err == nil {
				fv.Set(ptr)
			}
		} else {
			err = setSliceField(fv, values, cfg)
		}
	case len(values) > 1:
		err = fmt.Errorf("%w: got %d values", ErrDuplicateScalar, len(values))
	default:
		err = setField(fv, values[0], field.isPtr, cfg)
	}

	if err != nil {
		return &FieldError{
			Field: field.key,
			Value: strings.Join(values, " "),
			Type:  field.fieldType,
			Err:   err,
		}
	}

	return nil
}
