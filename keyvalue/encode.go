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
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// Encode converts a tagged struct into pairs, in field declaration order.
// Sequence fields expand to one pair per element; nil pointer fields are
// omitted. Values implementing encoding.TextMarshaler use their text form.
//
// Decoding the result with [Decode] yields a value equal to v, provided every
// required sequence field is non-empty.
func Encode(v any, opts ...Option) (Pairs, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return encode(v, cfg)
}

func encode(v any, cfg *config) (Pairs, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, ErrOutPointerNil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrInMustBeStruct
	}
	if !rv.CanAddr() {
		tmp := reflect.New(rv.Type()).Elem()
		tmp.Set(rv)
		rv = tmp
	}

	info, err := getStructInfo(rv.Type(), cfg.tag)
	if err != nil {
		return nil, err
	}

	out := make(Pairs, 0, len(info.fields))
	for _, field := range info.fields {
		fv := rv.FieldByIndex(field.index)
		if field.isPtr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		if field.isSlice {
			for i := range fv.Len() {
				s, err := formatValue(fv.Index(i))
				if err != nil {
					return nil, &FieldError{Field: field.key, Type: field.fieldType, Err: err}
				}
				out.Add(field.key, s)
			}

			continue
		}

		s, err := formatValue(fv)
		if err != nil {
			return nil, &FieldError{Field: field.key, Type: field.fieldType, Err: err}
		}
		out.Add(field.key, s)
	}

	return out, nil
}

// formatValue is the inverse of setFieldValue for the built-in kinds.
func formatValue(v reflect.Value) (string, error) {
	if v.CanAddr() && v.Addr().Type().Implements(textMarshalerType) {
		m, ok := v.Addr().Interface().(encoding.TextMarshaler)
		if !ok {
			return "", fmt.Errorf("%w: failed to assert TextMarshaler", ErrUnsupportedType)
		}
		b, err := m.MarshalText()

		return string(b), err
	}
	if v.Type().Implements(textMarshalerType) {
		m, ok := v.Interface().(encoding.TextMarshaler)
		if !ok {
			return "", fmt.Errorf("%w: failed to assert TextMarshaler", ErrUnsupportedType)
		}
		b, err := m.MarshalText()

		return string(b), err
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnsupportedType, v.Type())
	}
}
