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
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a JSON object, array or string into entries.
// Object entries are decoded in document order. A JSON null yields nil.
func (c Codec[T, V]) UnmarshalJSON(data []byte) ([]T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch tok := tok.(type) {
	case nil:
		return nil, nil
	case string:
		return c.decodeScalar(tok)
	case json.Delim:
		switch tok {
		case '{':
			return c.decodeJSONObject(dec)
		case '[':
			return c.decodeJSONArray(dec)
		}
	}

	return nil, shapeError(fmt.Sprintf("JSON %v", tok))
}

func (c Codec[T, V]) decodeJSONObject(dec *json.Decoder) ([]T, error) {
	var entries []Entry[V]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, shapeError(fmt.Sprintf("JSON key %v", keyTok))
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return nil, &EntryError{Key: key, Err: err}
		}
		entries = append(entries, Entry[V]{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return c.FromEntries(entries)
}

func (c Codec[T, V]) decodeJSONArray(dec *json.Decoder) ([]T, error) {
	if c.ParseToken == nil {
		return nil, ErrSequenceUnsupported
	}

	var tokens []string
	for dec.More() {
		var s string
		if err := dec.Decode(&s); err != nil {
			return nil, &EntryError{Index: len(tokens), Err: err}
		}
		tokens = append(tokens, s)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return c.FromTokens(tokens)
}

// MarshalJSON encodes items as a JSON object. Nil or empty input encodes as {}.
func (c Codec[T, V]) MarshalJSON(items []T) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.Entries(items) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, e.Value); err != nil {
			return nil, &EntryError{Key: e.Key, Err: err}
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeJSON appends v without HTML escaping. encoding/json compacts the
// output of a MarshalJSON method with escaping on, so ">= 3.0" only stays
// literal when the codec is called directly or through an Encoder with
// SetEscapeHTML(false).
func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // trailing newline

	return nil
}
