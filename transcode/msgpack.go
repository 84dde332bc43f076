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

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// structTag names struct fields in MessagePack documents when a field has
// no msgpack tag, so that keys match the JSON ones.
const structTag = "json"

// MsgPack decodes a MessagePack document into a new T.
func MsgPack[T any](data []byte, opts ...Option) (T, error) {
	return Decode[T](FormatMsgPack, data, opts...)
}

// MarshalMsgPack encodes v as MessagePack.
func MarshalMsgPack(v any) ([]byte, error) {
	return Encode(FormatMsgPack, v)
}

func decodeMsgPack(data []byte, out any, cfg *config) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	dec.DisallowUnknownFields(cfg.strict)

	return asUnknownField(dec.Decode(out), "msgpack: unknown field ")
}

func encodeMsgPack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
