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

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpkit.dev/apkbuild"
	"alpkit.dev/dependency"
	"alpkit.dev/pkginfo"
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
depend = ruby>=3.0
depend = !sample-legacy
install_if = sample=1.2.3-r2 bar
provides = cmd:sample=1.2.3-r2
depend = so:libc.musl-x86_64.so.1
datahash = 4c36284c04dd1e18e4df59b4bc873fd89b6240861b925cac59341cc66e36d94b
`

func samplePkg(t *testing.T) *pkginfo.PkgInfo {
	t.Helper()

	pkg, err := pkginfo.Parse(samplePkgInfo)
	require.NoError(t, err)

	return pkg
}

func sampleApkbuild() *apkbuild.Apkbuild {
	maintainer := "Jakub Jirutka <jakub@jirutka.cz>"

	return &apkbuild.Apkbuild{
		Maintainer:   &maintainer,
		Contributors: []string{"Francesco Colista <fcolista@alpinelinux.org>"},
		Pkgname:      "sample",
		Pkgver:       "1.2.3",
		Pkgrel:       2,
		Pkgdesc:      "A sample aport for testing",
		URL:          "https://example.org/sample",
		Arch:         []string{"aarch64", "x86_64"},
		License:      "ISC and BSD-2-Clause",
		Depends:      dependency.Dependencies{dependency.MustParse("ruby>=3.0"), dependency.MustParse("!sample-legacy")},
		Makedepends:  dependency.Dependencies{dependency.MustParse("openssl-dev>3")},
		Pkgusers:     []string{"sample"},
		Install:      []string{"sample.pre-install"},
		Subpackages:  []string{"sample-doc", "sample-dev"},
		Sources: []apkbuild.Source{{
			Name:     "sample-1.2.3.tar.gz",
			URI:      "https://example.org/sample/sample-1.2.3.tar.gz",
			Checksum: strings.Repeat("ab", 64),
		}, {
			Name:     "sample.initd",
			URI:      "sample.initd",
			Checksum: strings.Repeat("cd", 64),
		}},
		Options: []string{"!check", "net"},
		Secfixes: apkbuild.Secfixes{
			{Version: "1.2.3-r2", Fixes: []string{"CVE-2022-12347"}},
			{Version: "0", Fixes: []string{"CVE-2021-12345"}},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(samplePkg(t)))
	require.NoError(t, Validate(sampleApkbuild()))
}

func TestValidate_PkgInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(p *pkginfo.PkgInfo)
		path   string
		code   string
	}{
		{
			name:   "pkgname",
			modify: func(p *pkginfo.PkgInfo) { p.Pkgname = "-sample" },
			path:   "pkgname",
			code:   "tag.pkgname",
		},
		{
			name:   "pkgver without release",
			modify: func(p *pkginfo.PkgInfo) { p.Pkgver = "1.2.3" },
			path:   "pkgver",
			code:   "tag.pkgver_rel",
		},
		{
			name:   "multiline pkgdesc",
			modify: func(p *pkginfo.PkgInfo) { p.Pkgdesc = "line\nline" },
			path:   "pkgdesc",
			code:   "tag.one_line",
		},
		{
			name:   "long pkgdesc",
			modify: func(p *pkginfo.PkgInfo) { p.Pkgdesc = strings.Repeat("x", 129) },
			path:   "pkgdesc",
			code:   "tag.max",
		},
		{
			name:   "url with userinfo",
			modify: func(p *pkginfo.PkgInfo) { p.URL = "https://user@example.org" },
			path:   "url",
			code:   "tag.http_url",
		},
		{
			name:   "ftp url",
			modify: func(p *pkginfo.PkgInfo) { p.URL = "ftp://example.org" },
			path:   "url",
			code:   "tag.http_url",
		},
		{
			name:   "packager without mailbox",
			modify: func(p *pkginfo.PkgInfo) { p.Packager = "jakub@jirutka.cz" },
			path:   "packager",
			code:   "tag.mailbox",
		},
		{
			name:   "uppercase commit",
			modify: func(p *pkginfo.PkgInfo) { c := strings.ToUpper(*p.Commit); p.Commit = &c },
			path:   "commit",
			code:   "tag.sha1",
		},
		{
			name:   "short datahash",
			modify: func(p *pkginfo.PkgInfo) { p.DataHash = "4c36" },
			path:   "datahash",
			code:   "tag.sha256",
		},
		{
			name:   "relative trigger",
			modify: func(p *pkginfo.PkgInfo) { p.Triggers = []string{"usr/bin"} },
			path:   "triggers.0",
			code:   "tag.trigger_path",
		},
		{
			name:   "invalid dependency name",
			modify: func(p *pkginfo.PkgInfo) { p.Depends[0].Name = "ruby gems" },
			path:   "depends.0.name",
			code:   "tag.provider",
		},
		{
			name: "invalid constraint version",
			modify: func(p *pkginfo.PkgInfo) {
				p.Depends[0].Constraint = dependency.NewConstraint(dependency.Greater, "three")
			},
			path: "depends.0.constraint.version",
			code: "tag.pkgver_maybe_rel",
		},
		{
			name: "duplicate dependency",
			modify: func(p *pkginfo.PkgInfo) {
				p.Depends = append(p.Depends, dependency.MustParse("!ruby"))
			},
			path: "depends",
			code: "tag.unique_deps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pkg := samplePkg(t)
			tt.modify(pkg)

			err := Validate(pkg)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrValidation)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1, verr.Error())
			assert.Equal(t, tt.path, verr.Fields[0].Path)
			assert.Equal(t, tt.code, verr.Fields[0].Code)
			assert.NotEmpty(t, verr.Fields[0].Message)
		})
	}
}

func TestValidate_Apkbuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(a *apkbuild.Apkbuild)
		path    string
		code    string
		message string
	}{
		{
			name:   "pkgver with release",
			modify: func(a *apkbuild.Apkbuild) { a.Pkgver = "1.2.3-r0" },
			path:   "pkgver",
			code:   "tag.pkgver",
		},
		{
			name:   "contributor",
			modify: func(a *apkbuild.Apkbuild) { a.Contributors = append(a.Contributors, "Nobody") },
			path:   "contributors.1",
			code:   "tag.mailbox",
		},
		{
			name:   "arch",
			modify: func(a *apkbuild.Apkbuild) { a.Arch = []string{"x86 64"} },
			path:   "arch.0",
			code:   "tag.word",
		},
		{
			name:   "user name",
			modify: func(a *apkbuild.Apkbuild) { a.Pkgusers = []string{"Sample"} },
			path:   "pkgusers.0",
			code:   "tag.user_name",
		},
		{
			name:   "install script path",
			modify: func(a *apkbuild.Apkbuild) { a.Install = []string{"scripts/sample.pre-install"} },
			path:   "install.0",
			code:   "tag.file_name",
		},
		{
			name:   "option",
			modify: func(a *apkbuild.Apkbuild) { a.Options = []string{"!!check"} },
			path:   "options.0",
			code:   "tag.negatable_word",
		},
		{
			name:    "absolute source",
			modify:  func(a *apkbuild.Apkbuild) { a.Sources[1].URI = "/etc/passwd" },
			path:    "sources.1.uri",
			code:    "tag.source_uri",
			message: "is not a relative path with no '../'",
		},
		{
			name:    "source escaping the directory",
			modify:  func(a *apkbuild.Apkbuild) { a.Sources[1].URI = "files/../../secret" },
			path:    "sources.1.uri",
			code:    "tag.source_uri",
			message: "is not a relative path with no '../'",
		},
		{
			name:    "source with whitespace",
			modify:  func(a *apkbuild.Apkbuild) { a.Sources[1].URI = "sample init" },
			path:    "sources.1.uri",
			code:    "tag.source_uri",
			message: "must not contain whitespaces",
		},
		{
			name:    "source with other scheme",
			modify:  func(a *apkbuild.Apkbuild) { a.Sources[0].URI = "git://example.org/sample.git" },
			path:    "sources.0.uri",
			code:    "tag.source_uri",
			message: msgHTTPURL,
		},
		{
			name:   "checksum",
			modify: func(a *apkbuild.Apkbuild) { a.Sources[0].Checksum = "abc" },
			path:   "sources.0.checksum",
			code:   "tag.sha512",
		},
		{
			name:   "secfix version",
			modify: func(a *apkbuild.Apkbuild) { a.Secfixes[0].Version = "1.2.3" },
			path:   "secfixes.0.version",
			code:   "tag.pkgver_rel_or_zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := sampleApkbuild()
			tt.modify(a)

			var verr *Error
			require.ErrorAs(t, Validate(a), &verr)
			require.Len(t, verr.Fields, 1, verr.Error())
			assert.Equal(t, tt.path, verr.Fields[0].Path)
			assert.Equal(t, tt.code, verr.Fields[0].Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, verr.Fields[0].Message)
			}
		})
	}
}

func TestValidate_DuplicateMessage(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)
	pkg.Provides = dependency.Dependencies{
		dependency.MustParse("cmd:sample"),
		dependency.MustParse("cmd:sample=1.0-r0"),
	}

	var verr *Error
	require.ErrorAs(t, Validate(pkg), &verr)
	f := verr.GetField("provides")
	require.NotNil(t, f)
	assert.Equal(t, "contains duplicate names: cmd:sample", f.Message)
	assert.Empty(t, f.Value)
}

func TestValidate_Value(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)
	pkg.Arch = "x86 64"

	var verr *Error
	require.ErrorAs(t, Validate(pkg), &verr)
	require.True(t, verr.Has("arch"))
	assert.Equal(t, "x86 64", verr.GetField("arch").Value)
	assert.Equal(t, "arch: must be a word of [a-z0-9_-]", verr.Error())
}

func TestValidate_InvalidInput(t *testing.T) {
	t.Parallel()

	var nilPkg *pkginfo.PkgInfo

	require.ErrorIs(t, Validate(nil), ErrCannotValidateNilValue)
	require.ErrorIs(t, Validate(nilPkg), ErrCannotValidateNilValue)
	require.ErrorIs(t, Validate("sample"), ErrInvalidType)

	err := Validate(42)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestValidate_MaxErrors(t *testing.T) {
	t.Parallel()

	v := MustNew(WithMaxErrors(2))

	pkg := samplePkg(t)
	pkg.Pkgname = "-"
	pkg.Origin = "-"
	pkg.Arch = "?"
	pkg.DataHash = ""

	var verr *Error
	require.ErrorAs(t, v.Validate(pkg), &verr)
	assert.Len(t, verr.Fields, 2)
	assert.True(t, verr.Truncated)
	assert.Contains(t, verr.Error(), "(truncated)")

	require.ErrorAs(t, Validate(pkg), &verr)
	assert.Len(t, verr.Fields, 4)
	assert.False(t, verr.Truncated)
}

func TestValidate_Sorted(t *testing.T) {
	t.Parallel()

	pkg := samplePkg(t)
	pkg.URL = "example.org"
	pkg.Arch = "?"

	var verr *Error
	require.ErrorAs(t, Validate(pkg), &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "arch", verr.Fields[0].Path)
	assert.Equal(t, "url", verr.Fields[1].Path)
}

func TestVar(t *testing.T) {
	t.Parallel()

	v := MustNew()

	require.NoError(t, v.Var("so:libc.musl-x86_64.so.1", "provider"))
	require.NoError(t, v.Var([]string{"1.0-r0", "0"}, "dive,pkgver_rel_or_zero"))

	var verr *Error
	require.ErrorAs(t, v.Var([]string{"1.0-r0", "1.0"}, "dive,pkgver_rel_or_zero"), &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "1", verr.Fields[0].Path)
	assert.Equal(t, "1.0", verr.Fields[0].Value)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(WithMaxErrors(-1))
	require.Error(t, err)

	_, err = New(WithCustomTag("", nil, ""))
	require.Error(t, err)

	assert.Panics(t, func() { MustNew(WithMaxErrors(-1)) })
}

func TestWithCustomTag(t *testing.T) {
	t.Parallel()

	type repo struct {
		Name string `json:"name" validate:"community"`
	}

	v := MustNew(WithCustomTag("community", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "community"
	}, "must be community"))

	require.NoError(t, v.Validate(repo{Name: "community"}))

	var verr *Error
	require.ErrorAs(t, v.Validate(&repo{Name: "testing"}), &verr)
	assert.Equal(t, "name: must be community", verr.Error())
}

func TestWithMessages(t *testing.T) {
	t.Parallel()

	v := MustNew(WithMessages(map[string]string{"pkgname": "bad name"}))

	pkg := samplePkg(t)
	pkg.Pkgname = "_sample"

	err := v.Validate(pkg)
	require.Error(t, err)
	assert.Equal(t, "pkgname: bad name", err.Error())
}

func TestErrorIsNotDecodeError(t *testing.T) {
	t.Parallel()

	_, decodeErr := pkginfo.Parse("pkgname = sample\n")
	require.Error(t, decodeErr)
	assert.False(t, errors.Is(decodeErr, ErrValidation))
}
