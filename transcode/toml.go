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

	"github.com/BurntSushi/toml"
)

// TOML decodes a TOML document into a new T.
func TOML[T any](data []byte, opts ...Option) (T, error) {
	return Decode[T](FormatTOML, data, opts...)
}

// MarshalTOML encodes v, which must be a struct or a map, as TOML.
func MarshalTOML(v any) ([]byte, error) {
	return Encode(FormatTOML, v)
}

func decodeTOML(data []byte, out any, cfg *config) error {
	meta, err := toml.Decode(string(data), out)
	if err != nil {
		return err
	}

	if cfg.strict {
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			fields := make([]string, len(undecoded))
			for i, key := range undecoded {
				fields[i] = key.String()
			}

			return &UnknownFieldError{Fields: fields}
		}
	}

	return nil
}

func encodeTOML(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
