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

//go:build !integration

package transcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"alpkit.dev/apkbuild"
	"alpkit.dev/dependency"
	"alpkit.dev/pkginfo"
	"alpkit.dev/validation"
)

const samplePkgInfo = `pkgname = sample
pkgver = 1.2.3-r2
pkgdesc = A sample aport for testing
url = https://example.org/sample
builddate = 1671582086
packager = Jakub Jirutka <jakub@jirutka.cz>
size = 696320
arch = x86_64
origin = sample
commit = 994dcb4685405e710a1e599cff82d2e45ec9daae
maintainer = Jakub Jirutka <jakub@jirutka.cz>
license = ISC and BSD-2-Clause and BSD-3-Clause
triggers = /bin/* /usr/bin/*
provider_priority = 10
depend = ruby>=3.0
depend = !sample-legacy
install_if = sample=1.2.3-r2 bar
provides = cmd:sample=1.2.3-r2
depend = so:libc.musl-x86_64.so.1
datahash = 4c36284c04dd1e18e4df59b4bc873fd89b6240861b925cac59341cc66e36d94b
`

type record struct {
	Name string `json:"name" yaml:"name" toml:"name"`
}

func samplePkg(t *testing.T) *pkginfo.PkgInfo {
	t.Helper()

	pkg, err := pkginfo.Parse(samplePkgInfo)
	require.NoError(t, err)

	return pkg
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "json", want: FormatJSON},
		{name: ".json", want: FormatJSON},
		{name: "YAML", want: FormatYAML},
		{name: "yml", want: FormatYAML},
		{name: "toml", want: FormatTOML},
		{name: "msgpack", want: FormatMsgPack},
		{name: "mpk", want: FormatMsgPack},
		{name: "xml", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	f, err := FormatOf("/tmp/sample.PKGINFO.yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatOf("APKBUILD")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	var parsed Format
	require.NoError(t, parsed.UnmarshalText([]byte("toml")))
	assert.Equal(t, FormatTOML, parsed)
	assert.Equal(t, "toml", parsed.String())
}

func TestRoundTrip_PkgInfo(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)
	want, err := MarshalJSON(pkg)
	require.NoError(t, err)

	for _, f := range Formats {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()

			data, err := Encode(f, pkg)
			require.NoError(t, err)

			back, err := Decode[pkginfo.PkgInfo](f, data, WithStrict())
			require.NoError(t, err)

			got, err := MarshalJSON(&back)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := MarshalJSON(record{Name: "a<b>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a<b>\"\n}\n", string(data))
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)

	data, err := MarshalYAML(pkg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "depends:\n  ruby: '>= 3.0'\n")

	back, err := YAML[pkginfo.PkgInfo](data)
	require.NoError(t, err)
	assert.Equal(t, pkg.Depends, back.Depends)
}

func TestMarshalTOML(t *testing.T) {
	t.Parallel()

	data, err := MarshalTOML(samplePkg(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), `pkgname = "sample"`)

	back, err := TOML[pkginfo.PkgInfo](data)
	require.NoError(t, err)
	assert.Equal(t, "sample", back.Pkgname)
	assert.Equal(t, uint64(696320), back.Size)
}

func TestMarshalMsgPack(t *testing.T) {
	t.Parallel()

	data, err := MarshalMsgPack(record{Name: "sample"})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, msgpack.Unmarshal(data, &doc))
	assert.Equal(t, map[string]any{"name": "sample"}, doc)

	back, err := MsgPack[record](data)
	require.NoError(t, err)
	assert.Equal(t, "sample", back.Name)
}

func TestWithStrict(t *testing.T) {
	t.Parallel()

	extra, err := msgpack.Marshal(map[string]any{"name": "sample", "bogus": 1})
	require.NoError(t, err)

	tests := []struct {
		format  Format
		data    []byte
		unknown []string
	}{
		{format: FormatJSON, data: []byte(`{"name": "sample", "bogus": 1}`), unknown: []string{"bogus"}},
		{format: FormatYAML, data: []byte("name: sample\nbogus: 1\n")},
		{format: FormatTOML, data: []byte("name = \"sample\"\nbogus = 1\n"), unknown: []string{"bogus"}},
		{format: FormatMsgPack, data: extra, unknown: []string{"bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			lax, err := Decode[record](tt.format, tt.data)
			require.NoError(t, err)
			assert.Equal(t, "sample", lax.Name)

			_, err = Decode[record](tt.format, tt.data, WithStrict())
			require.Error(t, err)

			var terr *Error
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.format, terr.Format)
			assert.Equal(t, "decode", terr.Op)

			if tt.unknown != nil {
				var uerr *UnknownFieldError
				require.ErrorAs(t, err, &uerr)
				assert.Equal(t, tt.unknown, uerr.Fields)
			}
		})
	}
}

func TestWithValidator(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)
	data, err := MarshalJSON(pkg)
	require.NoError(t, err)

	v := validation.MustNew()

	_, err = JSON[pkginfo.PkgInfo](data, WithValidator(v))
	require.NoError(t, err)

	pkg.Pkgver = "1.2.3"
	data, err = MarshalJSON(pkg)
	require.NoError(t, err)

	_, err = JSON[pkginfo.PkgInfo](data, WithValidator(v))
	require.ErrorIs(t, err, validation.ErrValidation)

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "validate", terr.Op)
	assert.Equal(t, "json validate: pkgver: "+
		"is not a valid package version with a release (e.g. 1.2.3-r0)", err.Error())
}

func TestTranscode(t *testing.T) {
	t.Parallel()

	recipe := apkbuild.Apkbuild{
		Pkgname: "sample",
		Pkgver:  "1.2.3",
		Pkgrel:  2,
		Depends: dependency.Dependencies{dependency.MustParse("ruby>=3.0"), dependency.MustParse("!sample-legacy")},
		Sources: []apkbuild.Source{{
			Name:     "sample.initd",
			URI:      "sample.initd",
			Checksum: strings.Repeat("ab", 64),
		}},
		Secfixes: apkbuild.Secfixes{
			{Version: "1.2.3-r2", Fixes: []string{"CVE-2022-12347"}},
		},
	}

	data, err := MarshalJSON(&recipe)
	require.NoError(t, err)

	yml, err := Transcode[apkbuild.Apkbuild](data, FormatJSON, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(yml), "secfixes:\n  1.2.3-r2:\n    - CVE-2022-12347\n")
	assert.Contains(t, string(yml), "sample-legacy: '!'")

	back, err := YAML[apkbuild.Apkbuild](yml)
	require.NoError(t, err)
	assert.Equal(t, recipe.Depends, back.Depends)
	assert.Equal(t, recipe.Sources, back.Sources)
	assert.Equal(t, recipe.Secfixes, back.Secfixes)

	_, err = Transcode[apkbuild.Apkbuild](data, FormatJSON, Format("xml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	var out record
	require.ErrorIs(t, DecodeTo(FormatJSON, []byte(`{}`), out), ErrOutMustBePointer)
	require.ErrorIs(t, DecodeTo(FormatJSON, []byte(`{}`), (*record)(nil)), ErrOutMustBePointer)
	require.ErrorIs(t, DecodeTo(Format("xml"), []byte(`{}`), &out), ErrUnsupportedFormat)

	_, err := JSON[record]([]byte(`{"name": 1}`))
	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, FormatJSON, terr.Format)
	assert.Equal(t, "decode", terr.Op)

	_, err = Encode(Format("xml"), out)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = MarshalTOML([]string{"not", "a", "table"})
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "encode", terr.Op)
}

func TestDecodeReader(t *testing.T) {
	t.Parallel()

	got, err := DecodeReader[record](FormatYAML, strings.NewReader("name: sample\n"))
	require.NoError(t, err)
	assert.Equal(t, "sample", got.Name)
}
