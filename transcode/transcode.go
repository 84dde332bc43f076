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
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"
)

// Format names a document format.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgPack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatMsgPack}

// ParseFormat parses a format name. Common aliases and file extensions
// ("yml", ".json", "mpk") are accepted, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "msgpack", "mpk", "mp":
		return FormatMsgPack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseFormat].
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed

	return nil
}

type codec struct {
	decode func(data []byte, out any, cfg *config) error
	encode func(v any) ([]byte, error)
}

var codecs = map[Format]codec{
	FormatJSON:    {decode: decodeJSON, encode: encodeJSON},
	FormatYAML:    {decode: decodeYAML, encode: encodeYAML},
	FormatTOML:    {decode: decodeTOML, encode: encodeTOML},
	FormatMsgPack: {decode: decodeMsgPack, encode: encodeMsgPack},
}

func lookup(f Format) (codec, error) {
	c, ok := codecs[f]
	if !ok {
		return codec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	return c, nil
}

// Decode decodes a document of format f into a new T.
//
//	pkg, err := transcode.Decode[pkginfo.PkgInfo](transcode.FormatYAML, data,
//	    transcode.WithStrict(),
//	    transcode.WithValidator(validation.MustNew()),
//	)
func Decode[T any](f Format, data []byte, opts ...Option) (T, error) {
	var result T
	if err := DecodeTo(f, data, &result, opts...); err != nil {
		return result, err
	}

	return result, nil
}

// DecodeReader is like [Decode] but reads the document from r.
func DecodeReader[T any](f Format, r io.Reader, opts ...Option) (T, error) {
	var result T

	data, err := io.ReadAll(r)
	if err != nil {
		return result, &Error{Format: f, Op: "decode", Err: err}
	}
	if err := DecodeTo(f, data, &result, opts...); err != nil {
		return result, err
	}

	return result, nil
}

// DecodeTo decodes a document of format f into out, which must be a
// non-nil pointer. The configured validator, if any, runs afterwards.
func DecodeTo(f Format, data []byte, out any, opts ...Option) error {
	c, err := lookup(f)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrOutMustBePointer
	}

	cfg := applyOptions(opts)
	if err := c.decode(data, out, cfg); err != nil {
		return &Error{Format: f, Op: "decode", Err: err}
	}

	if cfg.validator != nil {
		if err := cfg.validator.Validate(out); err != nil {
			return &Error{Format: f, Op: "validate", Err: err}
		}
	}

	return nil
}

// Encode encodes v as a document of format f.
func Encode(f Format, v any) ([]byte, error) {
	c, err := lookup(f)
	if err != nil {
		return nil, err
	}

	data, err := c.encode(v)
	if err != nil {
		return nil, &Error{Format: f, Op: "encode", Err: err}
	}

	return data, nil
}

// Transcode decodes a document of format from into a T and encodes it
// again as format to. Options apply to the decoding step.
//
//	yml, err := transcode.Transcode[apkbuild.Apkbuild](data, transcode.FormatJSON, transcode.FormatYAML)
func Transcode[T any](data []byte, from, to Format, opts ...Option) ([]byte, error) {
	if _, err := lookup(to); err != nil {
		return nil, err
	}

	v, err := Decode[T](from, data, opts...)
	if err != nil {
		return nil, err
	}

	return Encode(to, &v)
}
