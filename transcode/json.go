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
	"encoding/json"
)

// JSON decodes a JSON document into a new T.
func JSON[T any](data []byte, opts ...Option) (T, error) {
	return Decode[T](FormatJSON, data, opts...)
}

// MarshalJSON encodes v as indented JSON followed by a newline.
func MarshalJSON(v any) ([]byte, error) {
	return Encode(FormatJSON, v)
}

func decodeJSON(data []byte, out any, cfg *config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if cfg.strict {
		dec.DisallowUnknownFields()
	}

	return asUnknownField(dec.Decode(out), "json: unknown field ")
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
