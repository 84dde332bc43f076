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

package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const pkgverPart = `[0-9]+(?:\.[0-9]+)*[a-z]?[0-9]*(?:_[a-z]+[0-9]*)*`

// Patterns behind the built-in tags.
var (
	reFileName        = regexp.MustCompile(`^[^/\t\n\r ]+$`)
	reNegatableWord   = regexp.MustCompile(`^!?[a-z0-9_-]+$`)
	reOneLine         = regexp.MustCompile(`^[^\n\r]*$`)
	rePkgname         = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.+-]*$`)
	rePkgver          = regexp.MustCompile(`^` + pkgverPart + `$`)
	rePkgverMaybeRel  = regexp.MustCompile(`^` + pkgverPart + `(?:-r[0-9]+)?$`)
	rePkgverRel       = regexp.MustCompile(`^` + pkgverPart + `-r[0-9]+$`)
	rePkgverRelOrZero = regexp.MustCompile(`^(?:` + pkgverPart + `-r[0-9]+|0)$`)
	reProvider        = regexp.MustCompile(`^[a-zA-Z0-9_.+\-:/\[\]]+$`)
	reRepoPin         = regexp.MustCompile(`^[^\t\n\r @<>=~]+$`)
	reSHA1            = regexp.MustCompile(`^[a-f0-9]{40}$`)
	reSHA256          = regexp.MustCompile(`^[a-f0-9]{64}$`)
	reSHA512          = regexp.MustCompile(`^[a-f0-9]{128}$`)
	reTriggerPath     = regexp.MustCompile(`^(?:/[^/\t\n\r :]+)+/?$`)
	reUserName        = regexp.MustCompile(`^[a-z_][a-z0-9._-]*\$?$`)
	reWord            = regexp.MustCompile(`^[a-z0-9_-]+$`)
	reMailbox         = regexp.MustCompile(`^[^\n\r@<>"]*<[a-zA-Z0-9.!#$%&*+/=?^_{|}~-]{1,64}@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z][a-zA-Z0-9-]*[a-zA-Z]>$`)
	reHTTPURL         = regexp.MustCompile(`(?i)^https?://(?:\[(?:[a-f0-9]{1,4}::?){1,7}[a-f0-9]{0,4}\]|[0-9]{1,3}(?:\.[0-9]{1,3}){3}|(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z][a-z0-9-]*[a-z])(?::[0-9]+)?(?:[/?#][a-z0-9\-._~!$&'()*+,;=:/?#@%]*)?$`)
)

const (
	msgHTTPURL = "is not a valid URL with http or https scheme and without userinfo"
	msgMailbox = "is not a valid email address in the mailbox format (e.g. Foo <foo@example.org>)"
)

// rule is a built-in tag: the check and the message reported when it fails.
type rule struct {
	fn      validator.Func
	message func(e validator.FieldError) string
}

var rules = map[string]rule{
	"file_name":          match(reFileName, "must be a file name without '/' or whitespace"),
	"negatable_word":     match(reNegatableWord, "must be a word of [a-z0-9_-], optionally prefixed with '!'"),
	"one_line":           match(reOneLine, "must not contain line breaks"),
	"pkgname":            match(rePkgname, "is not a valid package name"),
	"pkgver":             match(rePkgver, "is not a valid package version"),
	"pkgver_maybe_rel":   match(rePkgverMaybeRel, "is not a valid package version with an optional release"),
	"pkgver_rel":         match(rePkgverRel, "is not a valid package version with a release (e.g. 1.2.3-r0)"),
	"pkgver_rel_or_zero": match(rePkgverRelOrZero, "must be a package version with a release, or 0"),
	"provider":           match(reProvider, "is not a valid package or provider name"),
	"repo_pin":           match(reRepoPin, "is not a valid repository tag"),
	"sha1":               match(reSHA1, "is not a lowercase hex SHA-1 digest"),
	"sha256":             match(reSHA256, "is not a lowercase hex SHA-256 digest"),
	"sha512":             match(reSHA512, "is not a lowercase hex SHA-512 digest"),
	"trigger_path":       match(reTriggerPath, "is not an absolute directory path"),
	"user_name":          match(reUserName, "is not a valid user or group name"),
	"word":               match(reWord, "must be a word of [a-z0-9_-]"),
	"mailbox":            match(reMailbox, msgMailbox),
	"http_url":           match(reHTTPURL, msgHTTPURL),
	"source_uri": {
		fn: func(fl validator.FieldLevel) bool {
			return sourceURIProblem(fl.Field().String()) == ""
		},
		message: func(e validator.FieldError) string {
			return sourceURIProblem(fmt.Sprint(e.Value()))
		},
	},
	"unique_deps": {
		fn: func(fl validator.FieldLevel) bool {
			return len(duplicates(fl.Field())) == 0
		},
		message: func(e validator.FieldError) string {
			return "contains duplicate names: " + strings.Join(duplicates(reflect.ValueOf(e.Value())), ", ")
		},
	},
}

func match(re *regexp.Regexp, message string) rule {
	return rule{
		fn: func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		},
		message: func(validator.FieldError) string { return message },
	}
}

// sourceURIProblem returns why s is not a usable source entry, or "" if it
// is one. Remote sources must be http(s) URLs; local ones must stay inside
// the recipe directory.
func sourceURIProblem(s string) string {
	switch {
	case strings.ContainsAny(s, " \t\n\r"):
		return "must not contain whitespaces"
	case strings.Contains(s, "://"):
		if !reHTTPURL.MatchString(s) {
			return msgHTTPURL
		}
	case strings.HasPrefix(s, "/"), strings.HasPrefix(s, "../"), strings.Contains(s, "/../"):
		return "is not a relative path with no '../'"
	}

	return ""
}

type duplicateNamer interface {
	Duplicates() []string
}

// duplicates returns the names listed more than once in a collection that
// knows how to find them, such as dependency.Dependencies.
func duplicates(v reflect.Value) []string {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	if d, ok := v.Interface().(duplicateNamer); ok {
		return d.Duplicates()
	}

	return nil
}

// tagMessage returns the message for a failed tag, preferring overrides
// from WithMessages and WithCustomTag.
func (v *Validator) tagMessage(e validator.FieldError) string {
	if msg, ok := v.cfg.messages[e.Tag()]; ok {
		return msg
	}
	if r, ok := rules[e.Tag()]; ok {
		return r.message(e)
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "ascii":
		return "must contain only ASCII characters"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

// namespaceToPath turns a validator namespace such as
// "Apkbuild.depends[1].name" into "depends.1.name".
func namespaceToPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	} else if i := strings.IndexByte(ns, '['); i >= 0 {
		ns = ns[i:]
	}

	ns = strings.ReplaceAll(ns, "]", "")
	ns = strings.ReplaceAll(ns, "[", ".")

	return strings.TrimPrefix(ns, ".")
}
