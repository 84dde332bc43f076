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
	"strings"
)

// setField sets a single field value with type conversion.
// Pointer fields are left nil for empty values.
func setField(field reflect.Value, value string, isPtr bool, cfg *config) error {
	if isPtr {
		if value == "" {
			return nil
		}
		ptr := reflect.New(field.Type().Elem())
		if err := setFieldValue(ptr.Elem(), value, cfg); err != nil {
			return err
		}
		field.Set(ptr)

		return nil
	}

	return setFieldValue(field, value, cfg)
}

// setFieldValue coerces value into field. Registered converters win, then
// encoding.TextUnmarshaler, then the primitive kinds.
func setFieldValue(field reflect.Value, value string, cfg *config) error {
	fieldType := field.Type()

	if converter := findConverter(fieldType, cfg); converter != nil {
		converted, err := converter(value)
		if err != nil {
			return err
		}
		cv := reflect.ValueOf(converted)
		if !cv.IsValid() || !cv.Type().AssignableTo(fieldType) {
			return fmt.Errorf("%w: converter returned %T for %s", ErrUnsupportedType, converted, fieldType)
		}
		field.Set(cv)

		return nil
	}

	if field.CanAddr() && field.Addr().Type().Implements(textUnmarshalerType) {
		unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler)
		if !ok {
			return fmt.Errorf("%w: failed to assert TextUnmarshaler", ErrUnsupportedType)
		}

		return unmarshaler.UnmarshalText([]byte(value))
	}

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, intBase(cfg), fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, intBase(cfg), fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %w", err)
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %w", err)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := parseBoolGenerous(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedType, fieldType)
	}

	return nil
}

// setSliceField builds a slice from values in order, coercing each element.
func setSliceField(field reflect.Value, values []string, cfg *config) error {
	if cfg.maxSliceLen > 0 && len(values) > cfg.maxSliceLen {
		return fmt.Errorf("%w: %d > %d (use WithMaxSliceLen to increase)",
			ErrSliceExceedsMaxLength, len(values), cfg.maxSliceLen)
	}

	slice := reflect.MakeSlice(field.Type(), len(values), len(values))
	for i, val := range values {
		if err := setFieldValue(slice.Index(i), val, cfg); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	field.Set(slice)

	return nil
}

func intBase(cfg *config) int {
	if cfg.intBaseAuto {
		return 0 // 0x=hex, 0o=octal, 0b=binary
	}

	return 10
}

// parseBoolGenerous parses true/false, 1/0, yes/no, on/off (case-insensitive).
func parseBoolGenerous(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBooleanValue, s)
	}
}

// findConverter locates a registered converter for the given type,
// falling back from *T to T.
func findConverter(fieldType reflect.Type, cfg *config) TypeConverter {
	if cfg.typeConverters == nil {
		return nil
	}
	if conv, ok := cfg.typeConverters[fieldType]; ok {
		return conv
	}
	if fieldType.Kind() == reflect.Pointer {
		if conv, ok := cfg.typeConverters[fieldType.Elem()]; ok {
			return func(s string) (any, error) {
				v, err := conv(s)
				if err != nil {
					return nil, err
				}
				ptr := reflect.New(fieldType.Elem())
				ptr.Elem().Set(reflect.ValueOf(v))

				return ptr.Interface(), nil
			}
		}
	}

	return nil
}
