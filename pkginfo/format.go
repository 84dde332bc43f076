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

package pkginfo

import (
	"fmt"
	"io"
	"strings"

	"alpkit.dev/keyvalue"
)

// Pairs returns the .PKGINFO lines of p as pairs, in field order.
// Depends and Conflicts are merged back into "depend" keys, and the list
// values of install_if and triggers are joined by spaces.
func (p *PkgInfo) Pairs() (keyvalue.Pairs, error) {
	fields, err := keyvalue.Encode(p)
	if err != nil {
		return nil, err
	}

	out := make(keyvalue.Pairs, 0, len(fields))
	for i := 0; i < len(fields); {
		key := fields[i].Key

		j := i
		var values []string
		for ; j < len(fields) && fields[j].Key == key; j++ {
			values = append(values, fields[j].Value)
		}

		switch key {
		case "depends":
			for _, v := range values {
				out.Add("depend", v)
			}
		case "conflicts":
			for _, v := range values {
				out.Add("depend", "!"+v)
			}
		case "install_if", "triggers":
			out.Add(key, strings.Join(values, " "))
		default:
			for _, v := range values {
				out.Add(key, v)
			}
		}
		i = j
	}

	return out, nil
}

// WriteTo writes p in the .PKGINFO format. It implements [io.WriterTo].
func (p *PkgInfo) WriteTo(w io.Writer) (int64, error) {
	pairs, err := p.Pairs()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, pair := range pairs {
		n, err := fmt.Fprintf(w, "%s = %s\n", pair.Key, pair.Value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// String returns p in the .PKGINFO format, or an empty string if p cannot
// be encoded.
func (p *PkgInfo) String() string {
	var b strings.Builder
	if _, err := p.WriteTo(&b); err != nil {
		return ""
	}

	return b.String()
}
