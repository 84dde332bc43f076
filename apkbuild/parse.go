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

package apkbuild

import (
	"slices"
	"strings"

	"alpkit.dev/keyvalue"
)

// maxContributorLines bounds the header searched for contributor comments.
const maxContributorLines = 10

// singleValueFields are evaluated variables kept as one pair even when
// they contain whitespace.
var singleValueFields = map[string]bool{
	"license": true,
	"pkgdesc": true,
	"pkgver":  true,
	"url":     true,
}

// toPairs turns evaluated variables into pairs in field order. Variables
// that need post-processing (arch, source, sha512sums) are skipped.
func toPairs(fields []string, vars map[string]string) keyvalue.Pairs {
	pairs := make(keyvalue.Pairs, 0, 64)
	for _, key := range fields {
		value := vars[key]
		switch {
		case key == "arch" || key == "source" || key == "sha512sums":
		case singleValueFields[key]:
			pairs.Add(key, value)
		case key == "subpackages":
			for _, word := range strings.Fields(value) {
				name, _, _ := strings.Cut(word, ":")
				pairs.Add(key, name)
			}
		default:
			pairs.AddFields(key, value)
		}
	}

	return pairs
}

// expandArch resolves the arch keywords against all. "all" and "noarch"
// add every entry of all, "!x" removes x from what was collected so far.
// The result is sorted and deduplicated.
func expandArch(value string, all []string) []string {
	arches := make([]string, 0, len(all))
	for _, token := range strings.Fields(value) {
		switch {
		case token == "all" || token == "noarch":
			arches = append(arches, all...)
		case strings.HasPrefix(token, "!"):
			name := token[1:]
			arches = slices.DeleteFunc(arches, func(a string) bool { return a == name })
		default:
			arches = append(arches, token)
		}
	}
	slices.Sort(arches)

	return slices.Compact(arches)
}

// decodeSources pairs each source item with its checksum. An item is
// "name::uri", a URL whose last path segment is the name, or a plain
// local file name. sha512sums holds "checksum name" pairs. The names of
// checksums that no item used are returned in sha512sums order.
func decodeSources(source, sha512sums string) ([]Source, []string, error) {
	words := strings.Fields(sha512sums)
	checksums := make(map[string]string, len(words)/2)
	var names []string
	for i := 0; i+1 < len(words); i += 2 {
		if _, dup := checksums[words[i+1]]; !dup {
			names = append(names, words[i+1])
		}
		checksums[words[i+1]] = words[i]
	}

	items := strings.Fields(source)
	sources := make([]Source, 0, len(items))
	for _, item := range items {
		name, uri := item, item
		if n, u, ok := strings.Cut(item, "::"); ok {
			name, uri = n, u
		} else if i := strings.LastIndexByte(item, '/'); i >= 0 {
			name = item[i+1:]
		}

		checksum, ok := checksums[name]
		if !ok {
			return nil, nil, &MissingChecksumError{Name: name}
		}
		delete(checksums, name)
		sources = append(sources, Source{Name: name, URI: uri, Checksum: checksum})
	}

	var unused []string
	for _, name := range names {
		if _, ok := checksums[name]; ok {
			unused = append(unused, name)
		}
	}

	return sources, unused, nil
}

// commentAttribute returns the value of a "# <name> <value>" comment line.
func commentAttribute(name, line string) (string, bool) {
	s, ok := strings.CutPrefix(strings.TrimSpace(line), "# ")
	if !ok {
		return "", false
	}
	s, ok = strings.CutPrefix(strings.TrimLeft(s, " \t"), name)
	if !ok {
		return "", false
	}
	s = strings.TrimLeft(s, " \t")

	return s, s != ""
}

func parseMaintainer(lines []string) *string {
	for _, line := range lines {
		if v, ok := commentAttribute("Maintainer:", line); ok {
			return &v
		}
	}

	return nil
}

func parseContributors(lines []string) []string {
	contributors := []string{}
	for _, line := range lines[:min(len(lines), maxContributorLines)] {
		if v, ok := commentAttribute("Contributor:", line); ok {
			contributors = append(contributors, v)
		}
	}

	return contributors
}

// parseSecfixes reads the "# secfixes:" comment block:
//
//	# secfixes:
//	#   1.2.3-r2:
//	#     - CVE-2022-12347
//
// The block ends at the first line without the "#   " prefix. Trailing
// " #" comments are ignored.
func parseSecfixes(lines []string) (Secfixes, error) {
	secfixes := Secfixes{}

	start := slices.IndexFunc(lines, func(s string) bool {
		return strings.HasPrefix(s, "# secfixes:")
	})
	if start < 0 {
		return secfixes, nil
	}

	for i := start + 1; i < len(lines); i++ {
		raw, ok := strings.CutPrefix(lines[i], "#   ")
		if !ok {
			break
		}
		line, _, _ := strings.Cut(raw, " #")
		line = strings.TrimSpace(line)

		if id, ok := strings.CutPrefix(line, "- "); ok {
			if len(secfixes) == 0 {
				return nil, &SecfixesSyntaxError{Line: i + 1, Text: raw}
			}
			last := &secfixes[len(secfixes)-1]
			last.Fixes = append(last.Fixes, strings.TrimLeft(id, " \t"))
		} else if version, ok := strings.CutSuffix(line, ":"); ok {
			secfixes = append(secfixes, Secfix{Version: version, Fixes: []string{}})
		} else {
			return nil, &SecfixesSyntaxError{Line: i + 1, Text: raw}
		}
	}

	return secfixes, nil
}

// splitLines splits text into lines, dropping the line terminators.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
