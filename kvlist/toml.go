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

package kvlist

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"
)

// UnmarshalTOML decodes a value handed over by a TOML decoder (a table, an
// array or a string) into entries. Table entries are decoded in key order.
func (c Codec[T, V]) UnmarshalTOML(data any) ([]T, error) {
	switch data := data.(type) {
	case nil:
		return nil, nil
	case string:
		return c.decodeScalar(data)
	case map[string]any:
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		entries := make([]Entry[V], 0, len(keys))
		for _, k := range keys {
			var value V
			if err := assign(reflect.ValueOf(&value).Elem(), data[k]); err != nil {
				return nil, &EntryError{Key: k, Err: err}
			}
			entries = append(entries, Entry[V]{Key: k, Value: value})
		}

		return c.FromEntries(entries)
	case []any:
		if c.ParseToken == nil {
			return nil, ErrSequenceUnsupported
		}
		tokens := make([]string, 0, len(data))
		for i, item := range data {
			s, ok := item.(string)
			if !ok {
				return nil, &EntryError{Index: i, Err: shapeError(fmt.Sprintf("TOML %T", item))}
			}
			tokens = append(tokens, s)
		}

		return c.FromTokens(tokens)
	}

	return nil, shapeError(fmt.Sprintf("TOML %T", data))
}

// assign stores a decoded TOML value into dst, converting []any element-wise.
func assign(dst reflect.Value, src any) error {
	if src == nil {
		return nil
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}

	if dst.Kind() == reflect.Slice && sv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), sv.Len(), sv.Len())
		for i := range sv.Len() {
			if err := assign(out.Index(i), sv.Index(i).Interface()); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(out)

		return nil
	}

	if sv.Type().ConvertibleTo(dst.Type()) && sv.Kind() == dst.Kind() {
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign TOML %T to %s", src, dst.Type())
}

// MarshalTOML encodes items as a TOML inline table. Nil or empty input
// encodes as {}.
func (c Codec[T, V]) MarshalTOML(items []T) ([]byte, error) {
	entries := c.Entries(items)
	if len(entries) == 0 {
		return []byte("{}"), nil
	}

	var b bytes.Buffer
	b.WriteString("{ ")
	for i, e := range entries {
		kv, err := marshalTOMLEntry(e.Key, e.Value)
		if err != nil {
			return nil, &EntryError{Key: e.Key, Err: err}
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.Write(kv)
	}
	b.WriteString(" }")

	return b.Bytes(), nil
}

// marshalTOMLEntry renders a single `key = value` through the TOML encoder.
// A nil slice is written as an empty array.
func marshalTOMLEntry[V any](key string, value V) ([]byte, error) {
	rv := reflect.ValueOf(&value).Elem()
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}

	out, err := toml.Marshal(map[string]V{key: value})
	if err != nil {
		return nil, err
	}

	out = bytes.TrimSuffix(out, []byte("\n"))
	if len(out) == 0 || bytes.IndexByte(out, '\n') >= 0 {
		return nil, fmt.Errorf("%T has no inline TOML form", value)
	}

	return out, nil
}
