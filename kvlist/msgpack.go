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
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// DecodeMsgpack decodes a MessagePack map, array or string into entries,
// streaming from dec so map entries keep their encoded order. Nil yields nil.
func (c Codec[T, V]) DecodeMsgpack(dec *msgpack.Decoder) ([]T, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case code == msgpcode.Nil:
		return nil, dec.DecodeNil()
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		return c.decodeMsgpackMap(dec)
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		return c.decodeMsgpackArray(dec)
	case msgpcode.IsString(code):
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}

		return c.decodeScalar(s)
	}

	return nil, shapeError(fmt.Sprintf("MessagePack code 0x%02x", code))
}

func (c Codec[T, V]) decodeMsgpackMap(dec *msgpack.Decoder) ([]T, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry[V], 0, max(n, 0))
	for range n {
		key, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return nil, &EntryError{Key: key, Err: err}
		}
		entries = append(entries, Entry[V]{Key: key, Value: value})
	}

	return c.FromEntries(entries)
}

func (c Codec[T, V]) decodeMsgpackArray(dec *msgpack.Decoder) ([]T, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if c.ParseToken == nil {
		return nil, ErrSequenceUnsupported
	}

	tokens := make([]string, 0, max(n, 0))
	for i := range n {
		s, err := dec.DecodeString()
		if err != nil {
			return nil, &EntryError{Index: i, Err: err}
		}
		tokens = append(tokens, s)
	}

	return c.FromTokens(tokens)
}

// EncodeMsgpack writes items to enc as a MessagePack map.
func (c Codec[T, V]) EncodeMsgpack(enc *msgpack.Encoder, items []T) error {
	entries := c.Entries(items)
	if err := enc.EncodeMapLen(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := enc.EncodeString(e.Key); err != nil {
			return err
		}
		if err := enc.Encode(e.Value); err != nil {
			return &EntryError{Key: e.Key, Err: err}
		}
	}

	return nil
}
